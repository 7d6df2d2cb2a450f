// Package alloc implements the kernel heap allocation strategies.
//
// # Overview
//
// Every strategy manages one heap.Arena and satisfies the same three
// operation contract:
//
//   - Init(arena): take ownership of the heap window (exactly once)
//   - Alloc(layout): return an address aligned to layout.Align with at least
//     layout.Size usable bytes, or ErrOutOfMemory
//   - Dealloc(ptr, layout): give the memory back; layout must be the one
//     passed to Alloc
//
// None of the strategies are safe for concurrent use. The global facade
// (package global) wraps the selected one in a spin lock.
//
// # Implementations
//
// BumpAllocator: monotonic cursor
//
//   - O(1) allocation, no reuse while anything is live
//   - the whole heap is reclaimed when the outstanding count drops to zero
//
// LinkedListAllocator: intrusive free list, first-fit
//
//   - free regions describe themselves with a 16-byte {size, next} node
//   - freed regions are pushed to the front; no coalescing, ever
//   - remainders under 16 bytes are folded into the allocation and lost
//
// FixedSizeBlockAllocator: segregated per-class free lists
//
//   - 9 power-of-two classes by default (8 B to 2 KiB)
//   - O(1) pop/push per class, no per-block header
//   - empty classes and oversize requests go to a LinkedListAllocator
//
// Dummy: always fails; Dealloc panics.
//
// # Size Classes
//
//	Class 0:    8 bytes
//	Class 1:   16 bytes
//	Class 2:   32 bytes
//	...
//	Class 8: 2048 bytes
//	>2048 or align >2048: fallback allocator
//
// A request maps to the smallest class >= max(size, align). Dealloc
// re-applies the same rule to the caller's layout to find the list the block
// goes back to. Nothing records which class a block came from: a caller that
// frees with a different layout than it allocated with misfiles the block
// into the wrong class, silently.
//
// # Zero-Size Requests
//
// A zero-size layout is treated as a one-byte layout by every strategy. Each
// such allocation therefore has a distinct address and must be freed like any
// other.
//
// # Undetected Misuse
//
// Double free, use after free, and frees with a foreign pointer are not
// detected. They corrupt the free lists. This mirrors the environment the
// allocator runs in: there is nothing underneath to report to.
//
// # Usage Example
//
//	a, err := alloc.New(alloc.StrategyFixedSizeBlock, nil)
//	if err != nil {
//	    return err
//	}
//	if err := a.Init(arena); err != nil {
//	    return err
//	}
//
//	l := alloc.MustLayout(64, 8)
//	ptr, err := a.Alloc(l)
//	if err != nil {
//	    return err // ErrOutOfMemory
//	}
//	defer a.Dealloc(ptr, l)
package alloc
