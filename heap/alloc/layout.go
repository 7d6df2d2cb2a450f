package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Layout is the shape of an allocation request.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout validates align and returns the layout.
func NewLayout(size, align uintptr) (Layout, error) {
	return Layout{Size: size, Align: align}.check()
}

// MustLayout is NewLayout for constant arguments. It panics on a bad align.
func MustLayout(size, align uintptr) Layout {
	l, err := NewLayout(size, align)
	if err != nil {
		panic(err)
	}
	return l
}

// check validates the alignment and applies the zero-size policy.
// Alloc and Dealloc both go through it, so they agree on the effective size.
func (l Layout) check() (Layout, error) {
	if !format.IsPowerOfTwo(l.Align) {
		return Layout{}, fmt.Errorf("%w: %d", ErrBadAlign, l.Align)
	}
	if l.Size == 0 {
		l.Size = 1
	}
	return l, nil
}

func (l Layout) String() string {
	return fmt.Sprintf("size=%d align=%d", l.Size, l.Align)
}
