package alloc

import "errors"

var (
	// ErrOutOfMemory indicates that no free memory large enough was found.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrBadAlign indicates an alignment that is not a power of two.
	ErrBadAlign = errors.New("alloc: alignment must be a power of two")

	// ErrNoOutstanding indicates a bump dealloc with no live allocations.
	ErrNoOutstanding = errors.New("alloc: dealloc with no outstanding allocations")

	// ErrRegionTooSmall indicates a heap too small to hold one free node.
	ErrRegionTooSmall = errors.New("alloc: heap region smaller than a free node")

	// ErrMisaligned indicates a heap start that is not node-aligned.
	ErrMisaligned = errors.New("alloc: heap start must be 8-byte aligned")

	// ErrBadSizeClasses indicates an unusable block size table.
	ErrBadSizeClasses = errors.New("alloc: block sizes must be ascending powers of two >= 8")

	// ErrUnknownStrategy indicates an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("alloc: unknown strategy")
)
