package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// blockSizePresets maps preset names to class tables.
var blockSizePresets = map[string]alloc.BlockSizeConfig{
	"kernel": alloc.ConfigKernel,
	"small":  alloc.ConfigSmall,
	"page":   alloc.ConfigPage,
}

func init() {
	rootCmd.AddCommand(newClassesCmd())
}

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Show the fixed-size-block size classes",
		Long: `The classes command prints the size classes of the fixed-size-block
allocator. A request goes to the first class whose block size is at least
max(size, align); anything larger is served by the linked-list fallback.

Example:
  heapctl classes
  heapctl classes --preset small`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := presetConfig(preset)
			if err != nil {
				return err
			}
			return runClasses(cmd.OutOrStdout(), *cfg)
		},
	}
}

// presetConfig looks up a size-class preset by name.
func presetConfig(name string) (*alloc.BlockSizeConfig, error) {
	cfg, ok := blockSizePresets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (want %s)", name, strings.Join(presetNames(), ", "))
	}
	return &cfg, nil
}

func presetNames() []string {
	return []string{"kernel", "small", "page"}
}

func runClasses(w io.Writer, cfg alloc.BlockSizeConfig) error {
	// Constructing the allocator validates the table.
	if _, err := alloc.NewFixedSizeBlock(&cfg); err != nil {
		return err
	}

	printInfo(w, "%s\n", styled(headerStyle, fmt.Sprintf("%s size classes", cfg.Name)))
	for i, size := range cfg.Sizes {
		printInfo(w, "  class %2d: %s\n", i, formatBytes(size))
	}
	printInfo(w, "  fallback: > %s (linked list)\n", formatBytes(cfg.Sizes[len(cfg.Sizes)-1]))
	return nil
}
