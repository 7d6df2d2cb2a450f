package alloc

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// liveBlock is an allocation a property test still owns.
type liveBlock struct {
	ptr uintptr
	l   Layout
}

// Test_Property_RandomAllocFree_Invariants performs random alloc/free on every
// real strategy and checks after each step that:
//   - every returned address is aligned and inside the heap
//   - no two live allocations overlap
//   - (linked-list) no two free regions overlap
func Test_Property_RandomAllocFree_Invariants(t *testing.T) {
	const heapSize = 16384

	strategies := []Strategy{StrategyBump, StrategyLinkedList, StrategyFixedSizeBlock}
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility
			a := newTestAllocator(t, s, heapSize)
			heapEnd := testBase + heapSize

			var live []liveBlock
			for step := 0; step < 2000; step++ {
				if rng.Intn(3) > 0 || len(live) == 0 {
					l := MustLayout(uintptr(rng.Intn(600)), 1<<rng.Intn(8))
					p, err := a.Alloc(l)
					if err != nil {
						require.ErrorIs(t, err, ErrOutOfMemory, "step %d", step)
						continue
					}
					require.Zero(t, p%l.Align, "step %d: %#x not aligned to %d", step, p, l.Align)
					require.LessOrEqual(t, p+max(l.Size, 1), heapEnd, "step %d: past heap end", step)
					require.GreaterOrEqual(t, p, testBase, "step %d: before heap start", step)
					for _, b := range live {
						overlap := p < b.ptr+max(b.l.Size, 1) && b.ptr < p+max(l.Size, 1)
						require.False(t, overlap, "step %d: %#x overlaps live %#x", step, p, b.ptr)
					}
					live = append(live, liveBlock{p, l})
				} else {
					i := rng.Intn(len(live))
					require.NoError(t, a.Dealloc(live[i].ptr, live[i].l), "step %d", step)
					live = append(live[:i], live[i+1:]...)
				}

				switch impl := a.(type) {
				case *LinkedListAllocator:
					requireNoOverlap(t, freeRegions(impl))
				case *FixedSizeBlockAllocator:
					requireNoOverlap(t, freeRegions(&impl.fallback))
				}
			}

			for _, b := range live {
				require.NoError(t, a.Dealloc(b.ptr, b.l))
			}
			if b, ok := a.(*BumpAllocator); ok {
				require.Equal(t, testBase, b.next)
				require.Zero(t, b.allocations)
			}
		})
	}
}

// Test_Property_WritesDoNotCorruptFreeLists fills every allocation with a
// pattern and checks it survives other allocations and frees.
func Test_Property_WritesDoNotCorruptFreeLists(t *testing.T) {
	for _, s := range []Strategy{StrategyLinkedList, StrategyFixedSizeBlock} {
		t.Run(s.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			arena := newTestArena(t, 32768)
			a, err := New(s, nil)
			require.NoError(t, err)
			require.NoError(t, a.Init(arena))

			pattern := func(p uintptr) byte { return byte(p>>3) | 1 }

			var live []liveBlock
			for i := 0; i < 1000; i++ {
				if rng.Intn(2) == 0 || len(live) == 0 {
					l := MustLayout(uintptr(1+rng.Intn(300)), 8)
					p, err := a.Alloc(l)
					if err != nil {
						continue
					}
					b, err := arena.Bytes(p, l.Size)
					require.NoError(t, err)
					for i := range b {
						b[i] = pattern(p)
					}
					live = append(live, liveBlock{p, l})
				} else {
					i := rng.Intn(len(live))
					require.NoError(t, a.Dealloc(live[i].ptr, live[i].l))
					live = append(live[:i], live[i+1:]...)
				}

				for _, lb := range live {
					b, err := arena.Bytes(lb.ptr, lb.l.Size)
					require.NoError(t, err)
					require.Equal(t, bytes.Repeat([]byte{pattern(lb.ptr)}, len(b)), b, "block %#x clobbered", lb.ptr)
				}
			}
		})
	}
}
