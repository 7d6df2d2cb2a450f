package alloc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// LinkedListAllocator keeps a singly linked list of free regions inside the
// free memory itself. Each free region starts with a node:
//
//	+0  size  (8 bytes, includes the node)
//	+8  next  (8 bytes, address of the next node or 0)
//
// Allocation is first-fit in list order. Freed regions are pushed to the
// front. Adjacent free regions are never merged, so fragmentation grows over
// the heap's lifetime and is visible to callers as ErrOutOfMemory even when
// the free total would be enough.
type LinkedListAllocator struct {
	arena *heap.Arena
	head  uintptr
}

// NewLinkedList returns an uninitialized linked-list allocator.
func NewLinkedList() *LinkedListAllocator {
	return &LinkedListAllocator{}
}

// Init registers the whole heap as one free region. Trailing bytes that do
// not fill a node-aligned word are ignored.
func (ll *LinkedListAllocator) Init(arena *heap.Arena) error {
	r := arena.Region()
	if !format.IsAligned(r.Start, format.NodeAlign) {
		return ErrMisaligned
	}
	size := format.AlignDown(r.Size, format.NodeAlign)
	if size < format.NodeSize {
		return ErrRegionTooSmall
	}

	ll.arena = arena
	ll.head = format.NilAddr
	ll.push(r.Start, size)
	return nil
}

// Alloc returns the first free region that can hold l.
//
// The chosen node is unlinked. A leading alignment gap and a trailing
// remainder are each re-registered as free nodes when they can hold a node;
// otherwise they stay attached to the allocation as waste.
func (ll *LinkedListAllocator) Alloc(l Layout) (uintptr, error) {
	size, align, err := nodeLayout(l)
	if err != nil {
		return 0, err
	}
	if ll.arena == nil {
		return 0, ErrOutOfMemory
	}

	prev := format.NilAddr
	cur := ll.head
	for cur != format.NilAddr {
		regionSize, next := ll.arena.ReadNode(cur)
		start, end, ok := fitRegion(cur, regionSize, size, align)
		if !ok {
			prev, cur = cur, next
			continue
		}

		if prev == format.NilAddr {
			ll.head = next
		} else {
			ll.arena.SetNext(prev, next)
		}

		if trailing := cur + regionSize - end; trailing >= format.NodeSize {
			ll.push(end, trailing)
		}
		if leading := start - cur; leading >= format.NodeSize {
			ll.push(cur, leading)
		}
		return start, nil
	}

	return 0, ErrOutOfMemory
}

// Dealloc turns the block back into a free node at the front of the list.
func (ll *LinkedListAllocator) Dealloc(ptr uintptr, l Layout) error {
	size, _, err := nodeLayout(l)
	if err != nil {
		return err
	}
	ll.push(ptr, size)
	return nil
}

// push writes a node describing [addr, addr+size) and makes it the head.
func (ll *LinkedListAllocator) push(addr, size uintptr) {
	ll.arena.WriteNode(addr, size, ll.head)
	ll.head = addr
}

// nodeLayout widens a layout so the block can later hold a free node:
// alignment at least 8, size a multiple of that alignment and at least 16.
func nodeLayout(l Layout) (size, align uintptr, err error) {
	l, err = l.check()
	if err != nil {
		return 0, 0, err
	}
	align = max(l.Align, format.NodeAlign)
	size, ok := format.AlignUpChecked(l.Size, align)
	if !ok {
		// Unsatisfiable, but that is an out-of-memory condition, not a bad layout.
		return ^uintptr(0), align, nil
	}
	return max(size, format.NodeSize), align, nil
}

// fitRegion places a size/align block inside the free region at
// [region, region+regionSize). It reports the block bounds and whether it fits.
func fitRegion(region, regionSize, size, align uintptr) (start, end uintptr, ok bool) {
	start, ok = format.AlignUpChecked(region, align)
	if !ok {
		return 0, 0, false
	}
	end, ok = buf.AddOverflowSafe(start, size)
	if !ok || end > region+regionSize {
		return 0, 0, false
	}
	return start, end, true
}

var _ Allocator = (*LinkedListAllocator)(nil)
