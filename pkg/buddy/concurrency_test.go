package buddy_test

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/nanoos/kernelmem/pkg/xunsafe"
)

// TestConcurrentAllocNoRace guards against the look-then-pop race spec.md
// Design Notes open question 1 forbids: many goroutines racing Alloc at
// the same class must never observe a spurious miss caused by one
// goroutine's peek being stale by the time it pops, and never hand out
// the same block twice.
func TestConcurrentAllocNoRace(t *testing.T) {
	Convey("concurrent Alloc never double-hands-out a block", t, func() {
		h, _ := newHeap(16)

		const n = 200
		results := make([]xunsafe.Addr[byte], n)

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = h.Alloc(32)
			}(i)
		}
		wg.Wait()

		seen := make(map[xunsafe.Addr[byte]]bool, n)
		for _, p := range results {
			So(p, ShouldNotEqual, xunsafe.Addr[byte](0))
			So(seen[p], ShouldBeFalse)
			seen[p] = true
		}
	})
}
