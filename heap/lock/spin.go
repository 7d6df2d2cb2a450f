// Package lock provides the spin lock that serializes every heap operation.
//
// Acquisition busy-waits and never sleeps or yields to a scheduler. There is
// no owner tracking: locking twice from the same context deadlocks. Code
// running in interrupt context must use TryLock (see global.InterruptContext)
// and give up when the lock is held.
package lock

import "sync/atomic"

// SpinLock is a test-and-set mutual exclusion lock.
// The zero value is an unlocked lock.
type SpinLock struct {
	locked atomic.Bool
}

// Lock spins until the lock is acquired.
func (l *SpinLock) Lock() {
	for !l.locked.CompareAndSwap(false, true) {
		// Wait with plain loads until the lock looks free.
		for l.locked.Load() {
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return l.locked.CompareAndSwap(false, true)
}

// Unlock releases the lock. Unlocking an unlocked lock is a no-op.
func (l *SpinLock) Unlock() {
	l.locked.Store(false)
}

// Locked wraps a value so it can only be reached while holding its lock.
type Locked[T any] struct {
	mu    SpinLock
	inner T
}

// NewLocked wraps inner.
func NewLocked[T any](inner T) *Locked[T] {
	return &Locked[T]{inner: inner}
}

// Acquire spins until the lock is held and returns the inner value.
// The pointer must not be used after Release.
func (l *Locked[T]) Acquire() *T {
	l.mu.Lock()
	return &l.inner
}

// TryAcquire returns the inner value if the lock was free, or nil.
func (l *Locked[T]) TryAcquire() *T {
	if !l.mu.TryLock() {
		return nil
	}
	return &l.inner
}

// Release gives up the lock taken by Acquire or TryAcquire.
func (l *Locked[T]) Release() {
	l.mu.Unlock()
}

// With runs fn while holding the lock.
func (l *Locked[T]) With(fn func(*T)) {
	inner := l.Acquire()
	defer l.Release()
	fn(inner)
}
