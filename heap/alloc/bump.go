package alloc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// BumpAllocator hands out memory by advancing a cursor through the heap.
//
// Key characteristics:
//   - O(1) allocation: align the cursor, advance it
//   - No reuse: Dealloc only decrements the outstanding count
//   - Full reclaim: when the count returns to zero the cursor rewinds to
//     the heap start
//
// A single long-lived allocation therefore pins everything allocated after
// it until it is freed.
type BumpAllocator struct {
	heapStart uintptr
	heapEnd   uintptr

	// next is the address the next allocation starts from (before alignment).
	// heapStart <= next <= heapEnd.
	next uintptr

	// allocations is the number of live allocations.
	allocations uint64
}

// NewBump returns an uninitialized bump allocator.
func NewBump() *BumpAllocator {
	return &BumpAllocator{}
}

// Init sets the heap bounds and places the cursor at the start.
func (b *BumpAllocator) Init(arena *heap.Arena) error {
	r := arena.Region()
	b.heapStart = r.Start
	b.heapEnd = r.End()
	b.next = r.Start
	b.allocations = 0
	return nil
}

// Alloc aligns the cursor up to l.Align and reserves l.Size bytes there.
func (b *BumpAllocator) Alloc(l Layout) (uintptr, error) {
	l, err := l.check()
	if err != nil {
		return 0, err
	}

	start, ok := format.AlignUpChecked(b.next, l.Align)
	if !ok {
		return 0, ErrOutOfMemory
	}
	end, ok := buf.AddOverflowSafe(start, l.Size)
	if !ok || end > b.heapEnd {
		return 0, ErrOutOfMemory
	}

	b.next = end
	b.allocations++
	return start, nil
}

// Dealloc forgets one allocation. Memory is only recovered when the last
// live allocation is freed.
func (b *BumpAllocator) Dealloc(_ uintptr, l Layout) error {
	if _, err := l.check(); err != nil {
		return err
	}
	if b.allocations == 0 {
		return ErrNoOutstanding
	}

	b.allocations--
	if b.allocations == 0 {
		b.next = b.heapStart
	}
	return nil
}

// Compile-time interface check
var _ Allocator = (*BumpAllocator)(nil)
