package global

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/format"
)

// DefaultStrategy names the strategy DefaultConfig selects. Override it at
// link time with -ldflags "-X .../heap/global.DefaultStrategy=<name>".
var DefaultStrategy = "fixed-size-block"

// Config selects the heap layout and strategy.
type Config struct {
	// Strategy is the allocator bound at Init.
	Strategy alloc.Strategy

	// HeapStart and HeapSize define the heap window Boot maps.
	HeapStart uintptr
	HeapSize  uintptr

	// BlockSizes configures StrategyFixedSizeBlock (nil for alloc.DefaultBlockSizes).
	BlockSizes *alloc.BlockSizeConfig
}

// DefaultConfig returns the compiled-in layout: the 100 KiB window at
// format.DefaultHeapStart with DefaultStrategy. It panics if DefaultStrategy
// was set to an unknown name at build time.
func DefaultConfig() Config {
	s, err := alloc.ParseStrategy(DefaultStrategy)
	if err != nil {
		panic(fmt.Errorf("global: bad build-time DefaultStrategy: %w", err))
	}
	return Config{
		Strategy:  s,
		HeapStart: format.DefaultHeapStart,
		HeapSize:  format.DefaultHeapSize,
	}
}
