package sig

import "github.com/nanoos/kernelmem/pkg/kthread"

// Disposition values for Signal, named after the pintos original's
// SIG_IGN/SIG_DFL: SIG_IGN masks the signal, SIG_DFL unmasks it.
const (
	SigIgn = iota
	SigDfl
)

// Signal sets or clears the calling thread's mask bit for sig, per
// pintos signal_(): SigIgn masks (sets) the bit, SigDfl clears it. A
// request naming KILL is accepted but has no effect on delivery, since
// Kill never consults KILL's mask bit.
func Signal(signum, disposition int) error {
	if !validSignum(signum) {
		return errf("Signal", 0, signum, "signal number out of range")
	}

	t := kthread.CurrentThread()
	mask := t.Mask()

	switch disposition {
	case SigIgn:
		_ = Sigaddset(&mask, signum)
	case SigDfl:
		_ = Sigdelset(&mask, signum)
	default:
		return errf("Signal", 0, signum, "unknown disposition")
	}

	t.SetMask(mask)

	return nil
}
