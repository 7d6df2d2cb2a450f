// Package mmheap backs the kernel heap window with writable memory before
// the allocator is told about it. It is the only place that talks to the
// platform's memory-mapping primitives.
package mmheap

import (
	"errors"

	"github.com/joshuapare/heapkit/internal/format"
)

// ErrZeroSize is returned when asked to back an empty heap.
var ErrZeroSize = errors.New("mmheap: heap size must be > 0")

// pageRound returns size rounded up to whole pages.
func pageRound(size uintptr) uintptr {
	return format.AlignUp(size, format.PageSize)
}
