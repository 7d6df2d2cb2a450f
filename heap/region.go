package heap

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

var (
	// ErrEmptyRegion indicates a region of size zero.
	ErrEmptyRegion = errors.New("heap: region size must be > 0")

	// ErrRegionOverflow indicates a region whose end wraps the address space.
	ErrRegionOverflow = errors.New("heap: region end overflows address space")

	// ErrOutOfRange indicates an address range outside the arena.
	ErrOutOfRange = errors.New("heap: address range outside arena")

	// ErrNilAddress indicates a region starting at address zero, which the
	// intrusive lists reserve as their terminator.
	ErrNilAddress = errors.New("heap: region must not start at address 0")
)

// Region is a contiguous heap address range. It is immutable once the
// allocator has been initialized from it.
type Region struct {
	Start uintptr
	Size  uintptr
}

// End returns the first address past the region.
func (r Region) End() uintptr {
	return r.Start + r.Size
}

// Validate checks the region invariants: non-empty, non-nil, no wraparound.
func (r Region) Validate() error {
	if r.Size == 0 {
		return ErrEmptyRegion
	}
	if r.Start == 0 {
		return ErrNilAddress
	}
	if _, ok := buf.AddOverflowSafe(r.Start, r.Size); !ok {
		return ErrRegionOverflow
	}
	return nil
}

// Contains reports whether [addr, addr+n) lies inside the region.
func (r Region) Contains(addr, n uintptr) bool {
	if addr < r.Start {
		return false
	}
	end, ok := buf.AddOverflowSafe(addr, n)
	return ok && end <= r.End()
}

func (r Region) String() string {
	return fmt.Sprintf("[%#x, %#x) %d bytes", r.Start, r.End(), r.Size)
}
