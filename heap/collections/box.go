package collections

const boxAlign = 8

// Box owns one fixed-size heap allocation.
type Box struct {
	h    Heap
	ptr  uintptr
	data []byte
}

// NewBox copies value into a new allocation of len(value) bytes.
func NewBox(h Heap, value []byte) *Box {
	ptr, b := mustAllocate(h, uintptr(len(value)), boxAlign)
	copy(b, value)
	return &Box{h: h, ptr: ptr, data: b}
}

// Addr returns the heap address of the boxed bytes.
func (b *Box) Addr() uintptr { return b.ptr }

// Bytes returns the boxed bytes. The slice is invalid after Free.
func (b *Box) Bytes() []byte { return b.data }

// Free returns the allocation. The Box must not be used afterwards.
func (b *Box) Free() error {
	err := b.h.Deallocate(b.ptr, uintptr(len(b.data)), boxAlign)
	b.data = nil
	return err
}
