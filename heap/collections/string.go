package collections

const strAlign = 1

// String is a growable UTF-8 byte string stored in heap memory. Appending
// past the capacity moves the contents into a new allocation of
// max(2*cap, needed) bytes.
type String struct {
	h    Heap
	ptr  uintptr
	data []byte
	n    int
}

// NewString copies s into a new allocation of exactly len(s) bytes.
// An empty s allocates nothing.
func NewString(h Heap, s string) *String {
	str := &String{h: h}
	str.Append(s)
	return str
}

// Len returns the length in bytes.
func (s *String) Len() int { return s.n }

// Cap returns the size of the current allocation.
func (s *String) Cap() int { return len(s.data) }

// Addr returns the heap address of the contents, or 0 before the first
// allocation.
func (s *String) Addr() uintptr { return s.ptr }

// String returns a Go copy of the contents.
func (s *String) String() string { return string(s.data[:s.n]) }

// Append adds suffix, reallocating when it does not fit.
func (s *String) Append(suffix string) {
	need := s.n + len(suffix)
	if need > len(s.data) {
		newCap := need
		if len(s.data) > 0 {
			newCap = max(2*len(s.data), need)
		}
		s.realloc(newCap)
	}
	copy(s.data[s.n:], suffix)
	s.n = need
}

// Free releases the allocation and empties the string.
func (s *String) Free() error {
	if len(s.data) == 0 {
		return nil
	}
	err := s.h.Deallocate(s.ptr, uintptr(len(s.data)), strAlign)
	s.ptr, s.data, s.n = 0, nil, 0
	return err
}

func (s *String) realloc(newCap int) {
	ptr, b := mustAllocate(s.h, uintptr(newCap), strAlign)
	copy(b, s.data[:s.n])

	if len(s.data) > 0 {
		if err := s.h.Deallocate(s.ptr, uintptr(len(s.data)), strAlign); err != nil {
			panic("collections: release old string storage: " + err.Error())
		}
	}
	s.ptr, s.data = ptr, b
}
