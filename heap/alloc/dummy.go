package alloc

import "github.com/joshuapare/heapkit/heap"

// Dummy is a placeholder strategy that owns no memory. Every Alloc fails and
// Dealloc panics, since nothing it handed out can exist.
type Dummy struct{}

// Init accepts and ignores the arena.
func (Dummy) Init(*heap.Arena) error { return nil }

// Alloc always reports ErrOutOfMemory.
func (Dummy) Alloc(Layout) (uintptr, error) { return 0, ErrOutOfMemory }

// Dealloc panics.
func (Dummy) Dealloc(uintptr, Layout) error {
	panic("alloc: Dummy.Dealloc should never be called")
}

var _ Allocator = Dummy{}
