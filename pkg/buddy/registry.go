package buddy

import (
	"github.com/nanoos/kernelmem/internal/klist"
	"github.com/nanoos/kernelmem/internal/kmutex"
)

// registry is C5: the process-wide list of live small arenas, per
// spec.md §4.5. Guarded by its own lock, independent of every descriptor's
// lock, as spec.md §5's locking-order rules require.
type registry struct {
	lock kmutex.Lock
	list *klist.List[*smallArena]
	// byBase indexes small arenas by page base address so Free(p) can find
	// the owning smallArena's classOf bookkeeping in O(1) instead of
	// walking the registry.
	byBase map[byteAddr]*klist.Node[*smallArena]
}

func newRegistry() *registry {
	return &registry{
		list:   klist.New[*smallArena](),
		byBase: make(map[byteAddr]*klist.Node[*smallArena]),
	}
}

// add registers a. Must be called outside any descriptor lock.
func (r *registry) add(a *smallArena) {
	r.lock.Acquire()
	defer r.lock.Release()

	r.byBase[a.base] = r.list.PushBack(a)
}

// remove unregisters the arena based at base, if present.
func (r *registry) remove(base byteAddr) {
	r.lock.Acquire()
	defer r.lock.Release()

	n, ok := r.byBase[base]
	if !ok {
		return
	}
	r.list.Remove(n)
	delete(r.byBase, base)
}

// lookup returns the smallArena based at base, or nil.
func (r *registry) lookup(base byteAddr) *smallArena {
	r.lock.Acquire()
	defer r.lock.Release()

	n, ok := r.byBase[base]
	if !ok {
		return nil
	}
	return n.Value()
}

// each calls fn for every registered small arena.
func (r *registry) each(fn func(*smallArena)) {
	r.lock.Acquire()
	defer r.lock.Release()

	r.list.Each(fn)
}

// count returns the number of registered small arenas.
func (r *registry) count() int {
	r.lock.Acquire()
	defer r.lock.Release()

	return r.list.Len()
}
