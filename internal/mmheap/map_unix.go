//go:build unix

package mmheap

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/heapkit/internal/format"
)

// Map reserves size bytes of anonymous private memory and faults in every
// page as present and writable. The returned slice is exactly size bytes;
// the cleanup function unmaps it.
func Map(size uintptr) ([]byte, func() error, error) {
	if size == 0 {
		return nil, nil, ErrZeroSize
	}
	mapped := pageRound(size)
	if mapped > uintptr(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("mmheap: heap too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(-1, 0, int(mapped), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmheap: mmap %d bytes: %w", mapped, err)
	}
	prefault(data)

	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		data = nil
		return err
	}
	return data[:size], cleanup, nil
}

// prefault writes one byte per page so every frame is backed before the
// allocator hands out addresses in it.
func prefault(data []byte) {
	for off := 0; off < len(data); off += format.PageSize {
		data[off] = 0
	}
}
