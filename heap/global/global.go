package global

import (
	"fmt"
	"sync/atomic"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/lock"
	"github.com/joshuapare/heapkit/internal/logger"
)

// State is the facade lifecycle state.
type State uint32

const (
	StateUninitialized State = iota
	stateInitializing
	StateInitialized
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case stateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// Global is the kernel heap: one strategy behind one spin lock.
type Global struct {
	state atomic.Uint32

	// Set once by Init, read-only afterwards.
	heap     *lock.Locked[alloc.Allocator]
	arena    *heap.Arena
	strategy alloc.Strategy
	trace    bool
}

// New returns an uninitialized heap.
func New() *Global {
	return &Global{}
}

// Init builds the configured strategy over arena and makes the heap usable.
// The transition is one-way; a second call returns ErrAlreadyInitialized.
func (g *Global) Init(arena *heap.Arena, cfg Config) error {
	if !g.state.CompareAndSwap(uint32(StateUninitialized), uint32(stateInitializing)) {
		return ErrAlreadyInitialized
	}

	a, err := alloc.New(cfg.Strategy, cfg.BlockSizes)
	if err == nil {
		err = a.Init(arena)
	}
	if err != nil {
		g.state.Store(uint32(StateUninitialized))
		return fmt.Errorf("global: init %v heap: %w", cfg.Strategy, err)
	}

	g.heap = lock.NewLocked(a)
	g.arena = arena
	g.strategy = cfg.Strategy
	g.trace = logger.TraceAllocs()
	g.state.Store(uint32(StateInitialized))

	r := arena.Region()
	logger.Info("heap initialized",
		"strategy", cfg.Strategy.String(),
		"start", fmt.Sprintf("%#x", r.Start),
		"size", r.Size)
	return nil
}

// State returns the current lifecycle state.
func (g *Global) State() State {
	return State(g.state.Load())
}

// mustBeInitialized aborts on use before Init.
func (g *Global) mustBeInitialized() {
	if State(g.state.Load()) != StateInitialized {
		panic(ErrUninitialized)
	}
}

// Allocate returns size bytes aligned to align, or alloc.ErrOutOfMemory.
// Callers with no way to recover treat a failure as fatal.
func (g *Global) Allocate(size, align uintptr) (uintptr, error) {
	g.mustBeInitialized()
	l, err := alloc.NewLayout(size, align)
	if err != nil {
		return 0, err
	}

	var ptr uintptr
	g.heap.With(func(a *alloc.Allocator) {
		ptr, err = (*a).Alloc(l)
	})

	if g.trace {
		logger.Debug("alloc", "size", size, "align", align, "ptr", fmt.Sprintf("%#x", ptr), "err", err)
	}
	return ptr, err
}

// Deallocate returns memory obtained from Allocate with the same size and
// align. Double frees and foreign pointers are not detected.
func (g *Global) Deallocate(ptr, size, align uintptr) error {
	g.mustBeInitialized()
	l, err := alloc.NewLayout(size, align)
	if err != nil {
		return err
	}

	g.heap.With(func(a *alloc.Allocator) {
		err = (*a).Dealloc(ptr, l)
	})

	if g.trace {
		logger.Debug("dealloc", "size", size, "align", align, "ptr", fmt.Sprintf("%#x", ptr), "err", err)
	}
	return err
}

// Bytes returns the memory of a live allocation.
func (g *Global) Bytes(ptr, size uintptr) ([]byte, error) {
	g.mustBeInitialized()
	return g.arena.Bytes(ptr, size)
}

// Strategy returns the bound strategy.
func (g *Global) Strategy() alloc.Strategy {
	g.mustBeInitialized()
	return g.strategy
}

// Region returns the heap window.
func (g *Global) Region() heap.Region {
	g.mustBeInitialized()
	return g.arena.Region()
}

// Interrupt returns the capability handed to interrupt handlers.
func (g *Global) Interrupt() InterruptContext {
	return InterruptContext{g: g}
}

// InterruptContext is the heap as seen from an interrupt handler. It has no
// blocking Allocate: the handler may have interrupted the lock holder, and
// spinning there would never end.
type InterruptContext struct {
	g *Global
}

// TryAllocate allocates only if the heap lock is free, failing with
// ErrLockHeld otherwise.
func (ic InterruptContext) TryAllocate(size, align uintptr) (uintptr, error) {
	ic.g.mustBeInitialized()
	l, err := alloc.NewLayout(size, align)
	if err != nil {
		return 0, err
	}

	a := ic.g.heap.TryAcquire()
	if a == nil {
		return 0, ErrLockHeld
	}
	defer ic.g.heap.Release()
	return (*a).Alloc(l)
}

// TryDeallocate frees only if the heap lock is free, failing with
// ErrLockHeld otherwise. The block stays owned by the caller on failure.
func (ic InterruptContext) TryDeallocate(ptr, size, align uintptr) error {
	ic.g.mustBeInitialized()
	l, err := alloc.NewLayout(size, align)
	if err != nil {
		return err
	}

	a := ic.g.heap.TryAcquire()
	if a == nil {
		return ErrLockHeld
	}
	defer ic.g.heap.Release()
	return (*a).Dealloc(ptr, l)
}
