// Package heap describes the kernel heap window and the raw memory behind it.
//
// # Overview
//
// A Region is the passive, externally provisioned address range the
// allocators carve up: a compiled-in base address and a size. An Arena binds
// a Region to the bytes that actually back it, so that an address in
// [Start, Start+Size) resolves to arena.mem[addr-Start].
//
// # Raw Memory Boundary
//
// The allocators keep their bookkeeping inside free memory itself: a free
// node's size and next link are stored in the first bytes of the region it
// describes. Arena is the only type that reinterprets heap bytes as such
// records:
//
//   - ReadNode / WriteNode: 16-byte linked-list free node {size, next}
//   - ReadLink / WriteLink: 8-byte size-class free block {next}
//
// Node accessors do not validate what they read. A corrupted free list
// (double free, use after free) yields garbage addresses and eventually a
// bounds panic; detecting it is not this package's job.
//
// # Usage Example
//
//	mem, cleanup, err := mmheap.Map(format.DefaultHeapSize)
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
//	arena, err := heap.NewArena(format.DefaultHeapStart, mem)
//	if err != nil {
//	    return err
//	}
//
//	// After an allocator returns ptr for a 64-byte layout:
//	b, err := arena.Bytes(ptr, 64)
package heap
