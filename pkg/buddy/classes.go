package buddy

import "github.com/nanoos/kernelmem/internal/kmutex"

// descriptor is the per-class bookkeeping of spec.md §3/§4.1: one fixed
// block size, a free list of that size's blocks, and a lock guarding it.
//
// The free list is intrusive: free blocks chain through a next-pointer
// written into their own first machine word (see freelist.go), the way
// flier-goutil's pkg/arena/recycle.go stores a free-list link in freed
// memory rather than an out-of-band node.
type descriptor struct {
	blockSize      int
	blocksPerArena int

	lock kmutex.Lock
	head byteAddr // 0 (no valid arena lives at address 0) means empty.
}

// classTable holds one descriptor per power-of-two class from cfg.MinClass
// up to the largest power of two strictly below cfg.PageSize/2, per
// spec.md §4.1.
type classTable struct {
	descs []*descriptor
}

func newClassTable(pageSize, headerSize, minClass int) *classTable {
	t := &classTable{}
	for size := minClass; size < pageSize/2; size *= 2 {
		t.descs = append(t.descs, &descriptor{
			blockSize:      size,
			blocksPerArena: (pageSize - headerSize) / size,
		})
	}
	return t
}

// topClass is the largest size class, i.e. the class a fresh arena's first
// block belongs to before any splitting.
func (t *classTable) topClass() int { return len(t.descs) - 1 }

// indexFor returns the index of the smallest class able to hold n bytes, or
// -1 if n exceeds every class (the oversized/big-arena path applies).
func (t *classTable) indexFor(n int) int {
	for i, d := range t.descs {
		if d.blockSize >= n {
			return i
		}
	}
	return -1
}
