package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// BlockSizeConfig defines the size classes of a FixedSizeBlockAllocator.
// Different configurations trade internal fragmentation against how many
// requests bypass the classes and hit the fallback allocator.
type BlockSizeConfig struct {
	// Name for this configuration (for heapctl and benchmarks)
	Name string

	// Sizes are the class block sizes, ascending powers of two. Each block
	// size is also the class's alignment. The smallest must hold a free link.
	Sizes []uintptr
}

// Predefined configurations.
var (
	// ConfigKernel: 8 B to 2 KiB, the classic kernel heap table.
	ConfigKernel = BlockSizeConfig{
		Name:  "Kernel",
		Sizes: PowersOfTwo(8, 2048),
	}

	// ConfigSmall: 8 B to 256 B. Anything bigger goes to the fallback, which
	// suits heaps dominated by small nodes.
	ConfigSmall = BlockSizeConfig{
		Name:  "Small",
		Sizes: PowersOfTwo(8, 256),
	}

	// ConfigPage: 8 B to 4 KiB, so page-sized buffers are recycled too.
	ConfigPage = BlockSizeConfig{
		Name:  "Page",
		Sizes: PowersOfTwo(8, 4096),
	}

	// DefaultBlockSizes is used when no configuration is given.
	DefaultBlockSizes = ConfigKernel
)

// PowersOfTwo returns min, 2*min, ... up to and including max.
func PowersOfTwo(minSize, maxSize uintptr) []uintptr {
	var sizes []uintptr
	for s := minSize; s != 0 && s <= maxSize; s <<= 1 {
		sizes = append(sizes, s)
	}
	return sizes
}

// sizeClassTable holds the validated class sizes.
type sizeClassTable struct {
	config BlockSizeConfig
	sizes  []uintptr
}

// newSizeClassTable validates config and builds the lookup table.
func newSizeClassTable(config BlockSizeConfig) (*sizeClassTable, error) {
	if len(config.Sizes) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrBadSizeClasses)
	}
	for i, s := range config.Sizes {
		if !format.IsPowerOfTwo(s) || s < format.LinkSize {
			return nil, fmt.Errorf("%w: class %d is %d", ErrBadSizeClasses, i, s)
		}
		if i > 0 && s <= config.Sizes[i-1] {
			return nil, fmt.Errorf("%w: class %d (%d) not above class %d", ErrBadSizeClasses, i, s, i-1)
		}
	}
	return &sizeClassTable{
		config: config,
		sizes:  append([]uintptr(nil), config.Sizes...),
	}, nil
}

// classFor returns the index of the smallest class that can hold l, i.e.
// the first block size >= max(l.Size, l.Align). Block sizes are powers of two,
// so such a class is also aligned for l. Returns NumClasses() when no class
// qualifies (use the fallback).
func (t *sizeClassTable) classFor(l Layout) int {
	required := max(l.Size, l.Align)

	lo, hi := 0, len(t.sizes)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if required <= t.sizes[mid] {
			if mid == 0 || required > t.sizes[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return len(t.sizes)
}

// blockSize returns the block size of class idx.
func (t *sizeClassTable) blockSize(idx int) uintptr {
	return t.sizes[idx]
}

// String returns the configuration name.
func (t *sizeClassTable) String() string {
	return t.config.Name
}

// NumClasses returns the number of size classes.
func (t *sizeClassTable) NumClasses() int {
	return len(t.sizes)
}
