package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/collections"
	"github.com/joshuapare/heapkit/heap/global"
	"github.com/joshuapare/heapkit/internal/logger"
)

// bootVecLen is the number of elements the smoke test pushes.
const bootVecLen = 500

// bootSuffixes are appended one at a time to grow the smoke-test string.
var bootSuffixes = []string{
	" Sucks!",
	" Join me in an adventure when we find out who the murderer is.",
}

func init() {
	rootCmd.AddCommand(newBootCmd())
}

func newBootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boot",
		Short: "Map the heap and run the boot-time allocation smoke test",
		Long: `The boot command maps the heap window, initializes the selected
strategy, and exercises it the way the kernel does right after boot. It boxes
a value and grows a string by concatenation. Then it fills a vector with
0..499 and checks the sum. Finally it frees everything and boxes again.

Example:
  heapctl boot
  heapctl boot --strategy bump
  heapctl boot --strategy linked-list --heap-size 4096`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := heapConfig()
			if err != nil {
				return err
			}
			return runBoot(cmd.OutOrStdout(), cfg)
		},
	}
}

func runBoot(w io.Writer, cfg global.Config) (err error) {
	g, cleanup, err := global.Boot(cfg)
	if err != nil {
		return fmt.Errorf("heap initialization failed: %w", err)
	}
	defer cleanup()

	r := g.Region()
	printInfo(w, "%s %s heap at %s, %s\n",
		styled(headerStyle, "boot:"), g.Strategy(), formatAddr(r.Start), formatBytes(r.Size))

	// Allocation failure is fatal to the kernel; report it as a halt.
	defer func() {
		if rec := recover(); rec != nil {
			var allocErr *collections.AllocError
			if e, ok := rec.(error); ok && errors.As(e, &allocErr) {
				logger.Error("kernel halted", "size", allocErr.Size, "align", allocErr.Align, "err", allocErr.Err)
				printInfo(w, "%s\n", styled(failStyle, "kernel halted: "+allocErr.Error()))
				err = fmt.Errorf("kernel halted: %w", allocErr)
				return
			}
			panic(rec)
		}
	}()

	value := collections.NewBox(g, binary.LittleEndian.AppendUint64(nil, 41))
	printInfo(w, "heap_value at %s\n", formatAddr(value.Addr()))

	str := collections.NewString(g, "Test String")
	printString(w, "string before", str)
	for _, suffix := range bootSuffixes {
		str.Append(suffix)
		printString(w, "string after", str)
	}

	vec := collections.NewVec(g)
	for i := uint64(0); i < uint64(bootVecLen); i++ {
		vec.Push(i)
	}
	var sum uint64
	for i := 0; i < vec.Len(); i++ {
		sum += vec.Get(i)
	}
	want := uint64(bootVecLen * (bootVecLen - 1) / 2)
	if sum != want {
		return fmt.Errorf("vector sum %d, want %d", sum, want)
	}
	printInfo(w, "vec of %d elements, sum %d\n", vec.Len(), sum)

	first := value.Addr()
	if err := str.Free(); err != nil {
		return fmt.Errorf("free string: %w", err)
	}
	if err := vec.Free(); err != nil {
		return fmt.Errorf("free vector: %w", err)
	}
	if err := value.Free(); err != nil {
		return fmt.Errorf("free box: %w", err)
	}

	again := collections.NewBox(g, binary.LittleEndian.AppendUint64(nil, 13))
	reuse := "fresh"
	if again.Addr() == first {
		reuse = "reused"
	}
	printInfo(w, "second box at %s (%s)\n", formatAddr(again.Addr()), reuse)
	if err := again.Free(); err != nil {
		return fmt.Errorf("free second box: %w", err)
	}

	printInfo(w, "%s\n", styled(okStyle, "boot ok"))
	return nil
}

func printString(w io.Writer, label string, s *collections.String) {
	printInfo(w, "%s: %q at %s (%s)\n", label, s.String(), formatAddr(s.Addr()), formatBytes(uintptr(s.Cap())))
}
