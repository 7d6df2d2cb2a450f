package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Arena is a Region together with the memory backing it.
type Arena struct {
	region Region
	mem    []byte
}

// NewArena binds mem to the address range [start, start+len(mem)).
// The caller (the memory mapper) must have backed every byte already.
func NewArena(start uintptr, mem []byte) (*Arena, error) {
	r := Region{Start: start, Size: uintptr(len(mem))}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &Arena{region: r, mem: mem}, nil
}

// Region returns the address range the arena backs.
func (a *Arena) Region() Region {
	return a.region
}

// Bytes returns the n bytes starting at addr. The slice aliases heap memory:
// it stays valid exactly as long as the allocation it belongs to.
func (a *Arena) Bytes(addr, n uintptr) ([]byte, error) {
	if !a.region.Contains(addr, n) {
		return nil, fmt.Errorf("%w: %#x+%d not in %s", ErrOutOfRange, addr, n, a.region)
	}
	b, ok := buf.Slice(a.mem, addr-a.region.Start, n)
	if !ok {
		return nil, ErrOutOfRange
	}
	return b[:n:n], nil
}

// off converts a heap address into an index into mem.
func (a *Arena) off(addr uintptr) int {
	return int(addr - a.region.Start)
}

// WriteNode stores a linked-list free node {size, next} at addr.
func (a *Arena) WriteNode(addr, size, next uintptr) {
	o := a.off(addr)
	format.PutWord(a.mem, o+format.NodeSizeOffset, uint64(size))
	format.PutWord(a.mem, o+format.NodeNextOffset, uint64(next))
}

// ReadNode loads the linked-list free node at addr.
func (a *Arena) ReadNode(addr uintptr) (size, next uintptr) {
	o := a.off(addr)
	size = uintptr(format.ReadWord(a.mem, o+format.NodeSizeOffset))
	next = uintptr(format.ReadWord(a.mem, o+format.NodeNextOffset))
	return size, next
}

// SetNext rewrites only the next field of the node at addr.
func (a *Arena) SetNext(addr, next uintptr) {
	format.PutWord(a.mem, a.off(addr)+format.NodeNextOffset, uint64(next))
}

// WriteLink stores a size-class free block link at addr.
func (a *Arena) WriteLink(addr, next uintptr) {
	format.PutWord(a.mem, a.off(addr), uint64(next))
}

// ReadLink loads the size-class free block link at addr.
func (a *Arena) ReadLink(addr uintptr) uintptr {
	return uintptr(format.ReadWord(a.mem, a.off(addr)))
}
