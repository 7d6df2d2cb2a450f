package alloc

import (
	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// FixedSizeBlockAllocator serves requests from per-size-class free lists.
//
// Each class keeps a singly linked list of free blocks of exactly its block
// size; a free block stores only the address of the next one. A class list
// starts empty and is filled by Dealloc. When a class is empty, a fresh
// block is carved from the fallback LinkedListAllocator, which also serves
// every request no class can hold.
//
// Blocks carry no header. Dealloc finds the class again from the caller's
// layout, so it must be the layout used for Alloc.
type FixedSizeBlockAllocator struct {
	arena    *heap.Arena
	table    *sizeClassTable
	heads    []uintptr // free list head per class, 0 when empty
	fallback LinkedListAllocator
}

// NewFixedSizeBlock creates an allocator with the given class table
// (use nil for DefaultBlockSizes).
func NewFixedSizeBlock(config *BlockSizeConfig) (*FixedSizeBlockAllocator, error) {
	if config == nil {
		config = &DefaultBlockSizes
	}
	table, err := newSizeClassTable(*config)
	if err != nil {
		return nil, err
	}
	return &FixedSizeBlockAllocator{
		table: table,
		heads: make([]uintptr, table.NumClasses()),
	}, nil
}

// Init gives the whole heap to the fallback allocator; class lists start empty.
func (fb *FixedSizeBlockAllocator) Init(arena *heap.Arena) error {
	if err := fb.fallback.Init(arena); err != nil {
		return err
	}
	fb.arena = arena
	clear(fb.heads)
	return nil
}

// Alloc pops a block from l's class, carving a new one from the fallback
// when the class is empty. Requests no class can hold go to the fallback.
func (fb *FixedSizeBlockAllocator) Alloc(l Layout) (uintptr, error) {
	l, err := l.check()
	if err != nil {
		return 0, err
	}

	idx := fb.table.classFor(l)
	if idx == fb.table.NumClasses() {
		return fb.fallback.Alloc(l)
	}

	if head := fb.heads[idx]; head != format.NilAddr {
		fb.heads[idx] = fb.arena.ReadLink(head)
		return head, nil
	}

	bs := fb.table.blockSize(idx)
	return fb.fallback.Alloc(Layout{Size: bs, Align: bs})
}

// Dealloc pushes the block onto the class chosen by l, or hands it to the
// fallback when no class applies.
func (fb *FixedSizeBlockAllocator) Dealloc(ptr uintptr, l Layout) error {
	l, err := l.check()
	if err != nil {
		return err
	}

	idx := fb.table.classFor(l)
	if idx == fb.table.NumClasses() {
		return fb.fallback.Dealloc(ptr, l)
	}

	fb.arena.WriteLink(ptr, fb.heads[idx])
	fb.heads[idx] = ptr
	return nil
}

var _ Allocator = (*FixedSizeBlockAllocator)(nil)
