package format

// Alignment utilities shared by every allocation strategy.
// All helpers require align to be a power of two; callers validate that
// once at the Layout boundary.

// IsPowerOfTwo reports whether n is a non-zero power of two.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// AlignUp returns addr rounded up to the next multiple of align.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 16) = 16
//
// The result wraps for addresses within align-1 of the top of the address
// space; use AlignUpChecked when addr is not already known to be in range.
func AlignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// AlignUpChecked is AlignUp with overflow detection.
func AlignUpChecked(addr, align uintptr) (uintptr, bool) {
	if addr > ^uintptr(0)-(align-1) {
		return 0, false
	}
	return AlignUp(addr, align), true
}

// AlignDown returns addr rounded down to a multiple of align.
//
// Example:
//
//	AlignDown(15, 8) = 8
//	AlignDown(16, 8) = 16
func AlignDown(addr, align uintptr) uintptr {
	return addr &^ (align - 1)
}

// IsAligned reports whether addr is a multiple of align.
func IsAligned(addr, align uintptr) bool {
	return addr&(align-1) == 0
}
