package sig

import "github.com/nanoos/kernelmem/pkg/kthread"

// Kill sends signum to the thread registered under tid, on behalf of the
// calling thread (kthread.CurrentThread()). Per spec.md §4.8:
//
//   - UBLOCK: fails if the target masks UBLOCK; succeeds as a no-op if
//     the target isn't blocked; otherwise appends tid to the global
//     unblock-request queue.
//   - USR: fails if the target masks USR; otherwise coalesces with any
//     already-pending USR record.
//   - KILL: a parent-chain permission check (see canKill), inclusive of
//     the target itself, so self-Kill always succeeds; coalesces with
//     any already-pending KILL record.
//   - every other (tid, signum) pair, and unknown tid, fails.
func Kill(tid, signum int) error {
	target, ok := kthread.Lookup(tid)
	if !ok {
		return errf("Kill", tid, signum, "unknown thread")
	}

	caller := kthread.CurrentThread()

	switch signum {
	case UBLOCK:
		return killUBLOCK(caller, target)
	case USR:
		return killUSR(caller, target)
	case KILL:
		return killKILL(caller, target)
	default:
		return errf("Kill", tid, signum, "signal is not sendable via Kill")
	}
}

func killUBLOCK(caller, target *kthread.Thread) error {
	if Sigismember(target.Mask(), UBLOCK) {
		return errf("Kill", target.TID, UBLOCK, "target is masking UBLOCK")
	}

	if target.Status() != kthread.Blocked {
		return nil
	}

	kthread.UnblockQueue.Push(target.TID)

	return nil
}

func killUSR(caller, target *kthread.Thread) error {
	if Sigismember(target.Mask(), USR) {
		return errf("Kill", target.TID, USR, "target is masking USR")
	}

	target.ReplacePending(kthread.Pending{Signum: USR, Sender: caller.TID})

	return nil
}

func killKILL(caller, target *kthread.Thread) error {
	if !canKill(caller, target) {
		return errf("Kill", target.TID, KILL, "permission denied")
	}

	target.ReplacePending(kthread.Pending{Signum: KILL, Sender: caller.TID})

	return nil
}

// canKill walks the chain starting at target itself: at each node, a
// match on caller.TID permits the kill; reaching the root thread without
// a match denies it; otherwise the walk advances to node.Parent. This
// walk is inclusive of target, which is exactly what makes self-Kill
// succeed on the first iteration — the corrected, spec-mandated reading
// of the pintos original's parent-chain walk, which checks the parent
// first and so never handles self-kill.
func canKill(caller, target *kthread.Thread) bool {
	node := target
	for {
		if node.TID == caller.TID {
			return true
		}
		if node.TID == kthread.RootTID {
			return false
		}
		node = node.Parent
	}
}
