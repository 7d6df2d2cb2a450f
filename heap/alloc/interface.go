package alloc

import "github.com/joshuapare/heapkit/heap"

// Allocator defines the contract every heap strategy satisfies.
//
// Implementations:
//   - BumpAllocator: cursor allocator, reclaims only when all memory is freed
//   - LinkedListAllocator: first-fit intrusive free list
//   - FixedSizeBlockAllocator: size-class free lists over a linked-list fallback
//   - Dummy: always out of memory
type Allocator interface {
	// Init hands the allocator the heap it manages. It must be called
	// exactly once, before any Alloc, and the arena must not be in use.
	Init(arena *heap.Arena) error

	// Alloc returns the address of a block satisfying l, or ErrOutOfMemory.
	Alloc(l Layout) (uintptr, error)

	// Dealloc returns the block at ptr. l must equal the layout passed to
	// the Alloc call that returned ptr.
	Dealloc(ptr uintptr, l Layout) error
}
