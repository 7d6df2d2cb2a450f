package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/global"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonLog  bool
	noColor  bool
	strategy string
	heapSize uint64
	preset   string
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Boot and exercise the kernel heap allocators",
	Long: `heapctl maps the kernel heap window in user space, binds one of the
allocation strategies to it and runs workloads against it, such as the
boot-time smoke test or a recorded allocation trace.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger.Init(logger.Options{
			Enabled: verbose && !quiet,
			Output:  os.Stderr,
			JSON:    jsonLog,
			Level:   level,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Emit log records as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		StringVarP(&strategy, "strategy", "s", global.DefaultStrategy, "Allocator: "+strategyNames())
	rootCmd.PersistentFlags().
		Uint64Var(&heapSize, "heap-size", uint64(format.DefaultHeapSize), "Heap window size in bytes")
	rootCmd.PersistentFlags().
		StringVar(&preset, "preset", "kernel", "Size-class table for fixed-size-block: "+strings.Join(presetNames(), ", "))
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// heapConfig builds the heap configuration from the global flags.
func heapConfig() (global.Config, error) {
	s, err := alloc.ParseStrategy(strategy)
	if err != nil {
		return global.Config{}, err
	}
	blockSizes, err := presetConfig(preset)
	if err != nil {
		return global.Config{}, err
	}
	cfg := global.DefaultConfig()
	cfg.Strategy = s
	cfg.HeapSize = uintptr(heapSize)
	cfg.BlockSizes = blockSizes
	return cfg, nil
}

// strategyNames lists the selectable strategies for help text.
func strategyNames() string {
	var names []string
	for _, s := range alloc.Strategies() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
