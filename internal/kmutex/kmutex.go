// Package kmutex gives call sites kernel vocabulary (Acquire/Release) over
// a plain sync.Mutex, the way internal/xsync gives typed names to
// sync.Pool/sync.Map for the same reason: readability at the call site, not
// new behavior.
package kmutex

import "sync"

// Lock wraps a sync.Mutex. The zero value is an unlocked Lock.
type Lock struct {
	mu sync.Mutex
}

// Acquire blocks until the lock is held.
func (l *Lock) Acquire() { l.mu.Lock() }

// Release releases the lock. Releasing an unheld lock panics, same as
// sync.Mutex.Unlock.
func (l *Lock) Release() { l.mu.Unlock() }

// TryAcquire acquires the lock without blocking, reporting whether it
// succeeded.
func (l *Lock) TryAcquire() bool { return l.mu.TryLock() }

// Guard acquires the lock, runs fn, and releases it, even if fn panics.
func (l *Lock) Guard(fn func()) {
	l.Acquire()
	defer l.Release()
	fn()
}
