// Package global binds one allocation strategy to the kernel-wide
// allocate/deallocate entry points.
//
// # Overview
//
// A Global is created Uninitialized and moves to Initialized exactly once,
// after the heap window has been backed by the memory mapper. Any Allocate
// or Deallocate before that is a kernel bug and panics.
//
//	g, cleanup, err := global.Boot(global.DefaultConfig())
//	if err != nil {
//	    return err // *MapError when the heap could not be backed
//	}
//	defer cleanup()
//
//	ptr, err := g.Allocate(64, 8)
//	...
//	err = g.Deallocate(ptr, 64, 8)
//
// There is no hidden singleton: callers construct a Global at startup and
// pass it to whatever needs heap memory.
//
// # Locking
//
// Every call takes a single spin lock around the strategy. The lock is not
// re-entrant. Code that runs in interrupt context, and may therefore have
// interrupted a holder of the lock, must not get a blocking allocate: it is
// handed an InterruptContext instead, whose TryAllocate fails with
// ErrLockHeld rather than spinning forever.
//
// # Strategy Selection
//
// The strategy comes from Config. DefaultConfig uses DefaultStrategy, which
// is fixed at build time:
//
//	go build -ldflags "-X github.com/joshuapare/heapkit/heap/global.DefaultStrategy=linked-list"
package global
