package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// testBase is the heap start used by every test arena.
const testBase = format.DefaultHeapStart

// region is a free region as seen by tests.
type region struct {
	start uintptr
	size  uintptr
}

// newTestArena returns an arena of size bytes at testBase.
func newTestArena(t testing.TB, size int) *heap.Arena {
	t.Helper()
	a, err := heap.NewArena(testBase, make([]byte, size))
	require.NoError(t, err)
	return a
}

// newTestAllocator constructs and initializes s over a fresh arena.
func newTestAllocator(t testing.TB, s Strategy, size int) Allocator {
	t.Helper()
	a, err := New(s, nil)
	require.NoError(t, err)
	require.NoError(t, a.Init(newTestArena(t, size)))
	return a
}

// freeRegions walks the list head-to-tail.
func freeRegions(ll *LinkedListAllocator) []region {
	var out []region
	for cur := ll.head; cur != format.NilAddr; {
		size, next := ll.arena.ReadNode(cur)
		out = append(out, region{start: cur, size: size})
		cur = next
	}
	return out
}

// freeBytes sums every free region of ll.
func freeBytes(ll *LinkedListAllocator) uintptr {
	var total uintptr
	for _, r := range freeRegions(ll) {
		total += r.size
	}
	return total
}

// classLen counts the blocks on class idx.
func classLen(fb *FixedSizeBlockAllocator, idx int) int {
	n := 0
	for cur := fb.heads[idx]; cur != format.NilAddr; cur = fb.arena.ReadLink(cur) {
		n++
	}
	return n
}

// requireNoOverlap fails if any two free regions intersect.
func requireNoOverlap(t testing.TB, regions []region) {
	t.Helper()
	for i, a := range regions {
		for j, b := range regions {
			if i == j {
				continue
			}
			overlap := a.start < b.start+b.size && b.start < a.start+a.size
			require.False(t, overlap, "free regions %d [%#x,+%d) and %d [%#x,+%d) overlap",
				i, a.start, a.size, j, b.start, b.size)
		}
	}
}
