package kthread

import (
	"sync"

	"github.com/dolthub/maphash"
)

// registry is the process-wide TID -> *Thread table. Hashing a raw int
// TID under a seeded hasher is exactly what flier-goutil's
// pkg/arena/swiss.Map builds maphash.Hasher[K] for; here the table itself
// is a plain Go map, since the registry is small and long-lived rather
// than bump-arena-backed. The map uses Go's built-in key hashing: hash
// computes a TID's maphash value, but no lookup goes through it.
type registry struct {
	mu     sync.Mutex
	hasher maphash.Hasher[int]
	byTID  map[int]*Thread
	nextID int
}

var global = newRegistry()

func newRegistry() *registry {
	return &registry{
		hasher: maphash.NewHasher[int](),
		byTID:  make(map[int]*Thread),
		nextID: RootTID,
	}
}

func (r *registry) hash(tid int) uint64 {
	return r.hasher.Hash(tid)
}

func (r *registry) create(parent *Thread) *Thread {
	r.mu.Lock()
	defer r.mu.Unlock()

	tid := r.nextID
	r.nextID++

	t := newThread(tid, parent)
	r.byTID[tid] = t

	if parent != nil {
		parent.addChild()
	}

	return t
}

func (r *registry) lookup(tid int) (*Thread, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byTID[tid]
	return t, ok
}

func (r *registry) root() *Thread {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.byTID[RootTID]; ok {
		return t
	}

	root := newThread(RootTID, nil)
	root.Parent = root
	r.byTID[RootTID] = root
	r.nextID = RootTID + 1

	return root
}

// Create allocates a fresh thread whose parent is parent, or the root
// thread if parent is nil, registers it, and increments the parent's
// live-child count.
func Create(parent *Thread) *Thread {
	if parent == nil {
		parent = Root()
	}
	return global.create(parent)
}

// Lookup returns the thread registered under tid, if any.
func Lookup(tid int) (*Thread, bool) {
	return global.lookup(tid)
}

// Root returns the root thread, creating it (TID RootTID, its own
// parent) on first use.
func Root() *Thread {
	return global.root()
}
