// Package format holds the fixed layout of the kernel heap: its compiled-in
// base and size, the shape of the records the allocators store inside free
// memory, and the arithmetic used to place them.
package format

const (
	// DefaultHeapStart is the virtual address the heap is mapped at.
	// It is a build-time constant; the mapper backs exactly this window.
	DefaultHeapStart uintptr = 0x_4444_4444_0000

	// DefaultHeapSize is the size of the heap window (100 KiB).
	DefaultHeapSize uintptr = 100 * 1024

	// PageSize is the granularity the memory mapper backs the heap with.
	PageSize = 4096
)

const (
	// LinkSize is the size of an intrusive "next" pointer stored in free memory.
	LinkSize = 8

	// NodeSize is the size of a linked-list free node: size (8) + next (8).
	// A free region smaller than this cannot describe itself and is lost.
	NodeSize = 16

	// NodeAlign is the required alignment of every free-list node.
	NodeAlign = 8

	// NodeSizeOffset is the offset of the size field within a node.
	NodeSizeOffset = 0

	// NodeNextOffset is the offset of the next field within a node.
	NodeNextOffset = 8

	// NilAddr terminates an intrusive list. The heap never starts at zero.
	NilAddr uintptr = 0
)
