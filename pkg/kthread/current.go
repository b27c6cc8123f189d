package kthread

import "github.com/timandy/routine"

// tls attaches a *Thread to each goroutine, the way internal/debug
// attaches a testing.TB for debug-log capture: one goroutine plays the
// role of one kernel thread, so whichever thread last called Bind is
// "current" for every call this goroutine makes afterward.
var tls = routine.NewThreadLocal[*Thread]()

// CurrentThread returns the thread bound to the calling goroutine,
// creating and binding a fresh child of Root on first use so callers
// never need an explicit bootstrap step.
func CurrentThread() *Thread {
	if t := tls.Get(); t != nil {
		return t
	}

	t := Create(Root())
	tls.Set(t)

	return t
}

// Bind attaches t as the calling goroutine's current thread, returning a
// function that restores whatever was bound before. Tests use this to
// simulate several threads without spawning real goroutines per thread.
func Bind(t *Thread) func() {
	prev := tls.Get()
	tls.Set(t)
	return func() {
		tls.Set(prev)
	}
}
