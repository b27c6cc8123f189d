// Package kthread models the scheduler's externally-visible pieces just
// far enough to exercise the signal subsystem: a thread control block,
// parent links for permission checks, a per-thread pending-signal queue,
// and a goroutine-local CurrentThread, one goroutine standing in for one
// kernel thread.
package kthread

import (
	"github.com/nanoos/kernelmem/internal/klist"
	"github.com/nanoos/kernelmem/internal/kmutex"
)

// Status is a thread's coarse scheduling state, enough to drive the
// signal-delivery default handlers and the UBLOCK no-op check.
type Status int

const (
	Running Status = iota
	Blocked
	Terminated
)

// Set is a signal mask: bit 1<<k is signal k. Defined here (rather than in
// package sig) so Thread can embed it without an import cycle; sig
// re-exports it as sig.Set via a type alias.
type Set uint16

// Pending is a queued-but-undelivered signal: the signal number and the
// TID of the thread that sent it. Coalescing (one record per signum) is
// enforced by the enqueue logic in package sig, not by this type.
type Pending struct {
	Signum int
	Sender int
}

// RootTID is the TID of the root thread, its own parent, used as the
// permission-walk's termination condition.
const RootTID = 1

// Thread is the TCB: the fields spec.md's Design Notes call out as
// belonging to "thread signal state", plus the bookkeeping needed to walk
// the parent chain and drive the two default handlers that touch
// scheduling state.
type Thread struct {
	TID    int
	Parent *Thread

	mu      kmutex.Lock
	sigmask Set
	pending *klist.List[Pending]

	status        Status
	aliveChildren int
}

func newThread(tid int, parent *Thread) *Thread {
	return &Thread{
		TID:     tid,
		Parent:  parent,
		pending: klist.New[Pending](),
		status:  Running,
	}
}

// Mask returns the thread's current signal mask.
func (t *Thread) Mask() Set {
	t.mu.Acquire()
	defer t.mu.Release()
	return t.sigmask
}

// SetMask replaces the thread's signal mask wholesale, used by
// Sigprocmask.
func (t *Thread) SetMask(s Set) {
	t.mu.Acquire()
	defer t.mu.Release()
	t.sigmask = s
}

// Status reports the thread's scheduling state.
func (t *Thread) Status() Status {
	t.mu.Acquire()
	defer t.mu.Release()
	return t.status
}

// SetStatus sets the thread's scheduling state.
func (t *Thread) SetStatus(s Status) {
	t.mu.Acquire()
	defer t.mu.Release()
	t.status = s
}

// AliveChildren reports the thread's live-child count, decremented by the
// CHLD default handler.
func (t *Thread) AliveChildren() int {
	t.mu.Acquire()
	defer t.mu.Release()
	return t.aliveChildren
}

// addChild increments the thread's live-child count; Create calls this on
// the new thread's parent.
func (t *Thread) addChild() {
	t.mu.Acquire()
	defer t.mu.Release()
	t.aliveChildren++
}

// DecrementAliveChildren decrements the thread's live-child count, called
// by the CHLD default handler.
func (t *Thread) DecrementAliveChildren() {
	t.mu.Acquire()
	defer t.mu.Release()
	t.aliveChildren--
}

// FindPending returns the pending record for signum, if any.
func (t *Thread) FindPending(signum int) (Pending, bool) {
	t.mu.Acquire()
	defer t.mu.Release()
	n := t.pending.Find(func(p Pending) bool { return p.Signum == signum })
	if n == nil {
		return Pending{}, false
	}
	return n.Value(), true
}

// Enqueue appends p to the pending list without checking for an existing
// record of the same signal; callers that need coalescing (USR, KILL) use
// ReplacePending instead.
func (t *Thread) Enqueue(p Pending) {
	t.mu.Acquire()
	defer t.mu.Release()
	t.pending.PushBack(p)
}

// ReplacePending overwrites the sender of an existing record for
// p.Signum, or enqueues p as new if none exists. Reports whether an
// existing record was found.
func (t *Thread) ReplacePending(p Pending) (replaced bool) {
	t.mu.Acquire()
	defer t.mu.Release()

	// Rotate the whole queue once so the matching record keeps its place.
	for i, n := 0, t.pending.Len(); i < n; i++ {
		q, _ := t.pending.PopFront()
		if q.Signum == p.Signum {
			q.Sender = p.Sender
			replaced = true
		}
		t.pending.PushBack(q)
	}

	if !replaced {
		t.pending.PushBack(p)
	}
	return replaced
}

// DrainPending removes and returns every pending record, in FIFO order.
func (t *Thread) DrainPending() []Pending {
	t.mu.Acquire()
	defer t.mu.Release()

	out := make([]Pending, 0, t.pending.Len())
	for {
		p, ok := t.pending.PopFront()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}
