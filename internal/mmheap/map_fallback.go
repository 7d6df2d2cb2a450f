//go:build !unix

package mmheap

// Map allocates the heap from the Go heap when mmap is not available.
func Map(size uintptr) ([]byte, func() error, error) {
	if size == 0 {
		return nil, nil, ErrZeroSize
	}
	data := make([]byte, pageRound(size))
	return data[:size], func() error { return nil }, nil
}
