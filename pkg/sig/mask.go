package sig

import "github.com/nanoos/kernelmem/pkg/kthread"

// Set is a signal mask. Defined as an alias of kthread.Set, whose fields
// live on Thread, so this package and kthread each expose the same
// concrete type under the vocabulary that makes sense for their callers
// (kthread.Thread.sigmask internally, sig.Set at this package's API
// boundary) without an import cycle between the two.
type Set = kthread.Set

// Signal numbers, fixed and small per spec.md §4.6.
const (
	CHLD = iota
	CPU
	UBLOCK
	USR
	KILL
)

const numSignals = 5

// Sigprocmask how-values.
const (
	SigBlock = iota
	SigUnblock
	SigSetMask
)

func validSignum(s int) bool { return s >= 0 && s < numSignals }

// Sigemptyset clears every bit of set.
func Sigemptyset(set *Set) {
	*set = 0
}

// Sigfillset sets every bit of set, including KILL's — per spec.md §4.6
// (Design Notes open question 4), the bitset permits KILL to be set, but
// Kill ignores the mask bit for KILL and checks only the parent-chain
// permission.
func Sigfillset(set *Set) {
	*set = Set(1<<numSignals) - 1
}

// Sigaddset sets the bit for signum in set.
func Sigaddset(set *Set, signum int) error {
	if !validSignum(signum) {
		return errf("Sigaddset", 0, signum, "signal number out of range")
	}
	*set |= Set(1 << signum)
	return nil
}

// Sigdelset clears the bit for signum in set.
func Sigdelset(set *Set, signum int) error {
	if !validSignum(signum) {
		return errf("Sigdelset", 0, signum, "signal number out of range")
	}
	*set &^= Set(1 << signum)
	return nil
}

// Sigismember reports whether signum's bit is set in set.
func Sigismember(set Set, signum int) bool {
	return validSignum(signum) && set&Set(1<<signum) != 0
}

// Sigprocmask examines and/or changes the calling thread's signal mask,
// per the how values SigBlock/SigUnblock/SigSetMask. If old is non-nil,
// the previous mask is written there first.
func Sigprocmask(how int, set *Set, old *Set) error {
	t := kthread.CurrentThread()

	if old != nil {
		*old = t.Mask()
	}

	if set == nil {
		return nil
	}

	cur := t.Mask()

	switch how {
	case SigBlock:
		t.SetMask(cur | *set)
	case SigUnblock:
		t.SetMask(cur &^ *set)
	case SigSetMask:
		t.SetMask(*set)
	default:
		return errf("Sigprocmask", 0, 0, "unknown how value")
	}

	return nil
}
