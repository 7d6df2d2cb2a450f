package global

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInitialized indicates a second Init on the same Global.
	ErrAlreadyInitialized = errors.New("global: heap already initialized")

	// ErrLockHeld indicates an interrupt-context request found the heap
	// lock taken.
	ErrLockHeld = errors.New("global: heap lock held")

	// ErrUninitialized is the panic value for use before Init.
	ErrUninitialized = errors.New("global: heap used before initialization")
)

// MapError reports a failure to back the heap window with memory. Boot
// cannot continue past it.
type MapError struct {
	Start uintptr
	Size  uintptr
	Err   error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("global: map heap [%#x, +%d): %v", e.Start, e.Size, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }
