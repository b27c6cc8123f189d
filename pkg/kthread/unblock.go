package kthread

import "github.com/nanoos/kernelmem/internal/klist"

// unblockQueue is the global UBLOCK request queue: kill.go's UBLOCK case
// appends here instead of touching scheduler state directly, since actual
// unblocking (moving a thread from Blocked to the ready list) is the
// scheduler's job and out of scope here.
var unblockQueue = klist.New[int]()

// UnblockQueue exposes the pending UBLOCK requests, consumed by the
// scheduler stub (or by tests standing in for it).
type unblockQueueT struct{}

// UnblockQueue is the package-level handle tests and the scheduler stub
// use to drain pending UBLOCK requests.
var UnblockQueue unblockQueueT

// Push appends tid to the unblock-request queue.
func (unblockQueueT) Push(tid int) {
	unblockQueue.PushBack(tid)
}

// Pop removes and returns the oldest pending request, if any.
func (unblockQueueT) Pop() (tid int, ok bool) {
	return unblockQueue.PopFront()
}

// Len reports how many UBLOCK requests are pending.
func (unblockQueueT) Len() int {
	return unblockQueue.Len()
}
