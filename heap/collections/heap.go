package collections

import "fmt"

// Heap is the allocator capability the containers need.
// *global.Global satisfies it.
type Heap interface {
	Allocate(size, align uintptr) (uintptr, error)
	Deallocate(ptr, size, align uintptr) error
	Bytes(ptr, size uintptr) ([]byte, error)
}

// AllocError is the panic value raised when the heap cannot satisfy a
// container's request.
type AllocError struct {
	Size  uintptr
	Align uintptr
	Err   error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("collections: allocation of %d bytes (align %d) failed: %v", e.Size, e.Align, e.Err)
}

func (e *AllocError) Unwrap() error { return e.Err }

// mustAllocate allocates or aborts.
func mustAllocate(h Heap, size, align uintptr) (uintptr, []byte) {
	ptr, err := h.Allocate(size, align)
	if err != nil {
		panic(&AllocError{Size: size, Align: align, Err: err})
	}
	b, err := h.Bytes(ptr, size)
	if err != nil {
		panic(&AllocError{Size: size, Align: align, Err: err})
	}
	return ptr, b
}
