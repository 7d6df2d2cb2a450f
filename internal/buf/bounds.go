// Package buf contains overflow-safe address arithmetic and bounds checks
// for slicing raw heap memory.
package buf

import "fmt"

// AddOverflowSafe adds a and b, returning ok = false when the result would
// wrap around the address space.
func AddOverflowSafe(a, b uintptr) (uintptr, bool) {
	if a > ^uintptr(0)-b {
		return 0, false
	}
	return a + b, true
}

// CheckRange validates that [off, off+n) lies inside a buffer of bufLen bytes.
// Returns the end offset, or an error describing the failure.
func CheckRange(bufLen int, off, n uintptr) (uintptr, error) {
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: off=%d + n=%d", off, n)
	}
	if end > uintptr(bufLen) {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, bufLen)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n uintptr) ([]byte, bool) {
	end, err := CheckRange(len(b), off, n)
	if err != nil {
		return nil, false
	}
	return b[off:end], true
}
