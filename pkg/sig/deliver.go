package sig

import (
	"github.com/nanoos/kernelmem/internal/debug"
	"github.com/nanoos/kernelmem/pkg/kthread"
)

// Effect names an observable side effect one delivered signal had on its
// receiver, so Deliver's default handlers are testable end-to-end without
// a real scheduler to observe.
type Effect struct {
	Signum   int
	Sender   int
	Describe string
}

// Deliver drains t's pending queue and applies each default handler of
// spec.md §4.8, in FIFO order, returning the effects observed. Delivery
// timing is out of scope — this is the caller (a test, or something
// standing in for the scheduler) choosing to run the handlers now.
func Deliver(t *kthread.Thread) []Effect {
	pending := t.DrainPending()
	effects := make([]Effect, 0, len(pending))

	for _, p := range pending {
		effects = append(effects, applyDefault(t, p))
	}

	return effects
}

func applyDefault(t *kthread.Thread, p kthread.Pending) Effect {
	switch p.Signum {
	case CHLD:
		t.DecrementAliveChildren()
		return Effect{Signum: p.Signum, Sender: p.Sender, Describe: "alive-children decremented"}
	case KILL, CPU:
		t.SetStatus(kthread.Terminated)
		return Effect{Signum: p.Signum, Sender: p.Sender, Describe: "thread terminated"}
	case USR:
		debug.Log(nil, "sig", "USR delivered to tid=%d from tid=%d", t.TID, p.Sender)
		return Effect{Signum: p.Signum, Sender: p.Sender, Describe: "no-op"}
	default:
		return Effect{Signum: p.Signum, Sender: p.Sender, Describe: "unhandled"}
	}
}
