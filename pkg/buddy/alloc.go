package buddy

import "github.com/nanoos/kernelmem/internal/debug"

// Alloc implements spec.md §4.2. It returns a region of at least size
// bytes, or the zero address on out-of-memory or size == 0.
//
// A small block starts HeaderSize + i*class bytes into its page, and a big
// allocation starts HeaderSize bytes into its first page, so the result is
// not aligned to its class size: with the default 32-byte header, classes
// of 64 bytes and up are only 32-byte aligned.
func (h *Heap) Alloc(size int) byteAddr {
	if size <= 0 {
		return 0
	}

	target := h.classes.indexFor(size)
	if target == -1 {
		return h.allocOversized(size)
	}

	source, p := h.popFirstNonEmptyAtOrAbove(target)
	if source == -1 {
		return h.allocFreshArena(target)
	}

	arenaBase := p.RoundDownTo(h.cfg.PageSize)
	if source == target {
		debug.Log(nil, "alloc", "class %d exact hit at %v", h.classes.descs[source].blockSize, p)
		return p
	}

	return h.splitDown(arenaBase, p, source, target)
}

// popFirstNonEmptyAtOrAbove scans the class table starting at target,
// looking upward for the first class with a free block, per spec.md §4.2
// step 2. Each candidate class is popped directly rather than peeked and
// then popped as two separate locked steps: that split would reopen the
// look-then-pop race spec.md's Design Notes mandate eliminating (another
// goroutine could drain the class in between). A pop that comes back
// empty just means that class lost the race or was already empty, so the
// scan continues upward. Returns -1, 0 if no class at or above target
// yielded a block.
func (h *Heap) popFirstNonEmptyAtOrAbove(target int) (int, byteAddr) {
	for i := target; i <= h.classes.topClass(); i++ {
		if p := h.classes.descs[i].popFront(); p != 0 {
			return i, p
		}
	}
	return -1, 0
}

// allocOversized implements spec.md §4.2 step 1: a big arena spanning
// whole pages, never entered into the registry.
func (h *Heap) allocOversized(size int) byteAddr {
	pages := (size + h.cfg.HeaderSize + h.cfg.PageSize - 1) / h.cfg.PageSize
	base := h.newBigArenaAt(pages)
	if base == 0 {
		return 0
	}

	debug.Log(nil, "alloc", "oversized: %d bytes -> %d pages at %v", size, pages, base)
	return base.ByteAdd(h.cfg.HeaderSize)
}

// allocFreshArena implements spec.md §4.2 step 4: obtain one page, carve
// it into a single top-class block, and split down to target.
func (h *Heap) allocFreshArena(target int) byteAddr {
	base := h.newSmallArenaAt()
	if base == 0 {
		return 0
	}

	top := h.classes.topClass()
	p := h.blockAddr(base, 0, h.classes.descs[top].blockSize)
	h.setClassOf(base, p, top)

	debug.Log(nil, "alloc", "fresh arena at %v, top class %d", base, h.classes.descs[top].blockSize)

	if top == target {
		return p
	}
	return h.splitDown(base, p, top, target)
}

// splitDown halves p repeatedly from class index from down to to, pushing
// each step's "other half" onto its class's free list and returning the
// final block at class to, per spec.md §4.2 step 3 and the XOR buddy
// addressing of §4.2/Design Notes open question 3.
func (h *Heap) splitDown(arenaBase, p byteAddr, from, to int) byteAddr {
	for cur := from; cur > to; cur-- {
		childClass := cur - 1
		childSize := h.classes.descs[childClass].blockSize

		i := h.blockIndex(arenaBase, p, h.classes.descs[cur].blockSize)
		left := h.blockAddr(arenaBase, i*2, childSize)
		right := h.blockAddr(arenaBase, i*2+1, childSize)

		h.classes.descs[childClass].push(right)
		h.setClassOf(arenaBase, right, childClass)
		h.setClassOf(arenaBase, left, childClass)

		p = left
	}

	return p
}

// setClassOf records that the min-granularity slot containing addr now
// belongs to class index idx, in the owning small arena's bookkeeping.
func (h *Heap) setClassOf(arenaBase, addr byteAddr, idx int) {
	sa := h.registry.lookup(arenaBase)
	if sa == nil {
		return
	}
	sa.classOf[h.minSlotIndex(arenaBase, addr)] = int8(idx)
}

// classOf reads back the class index last recorded for addr by setClassOf.
func (h *Heap) classOf(arenaBase, addr byteAddr) int {
	sa := h.registry.lookup(arenaBase)
	if sa == nil {
		return -1
	}
	return int(sa.classOf[h.minSlotIndex(arenaBase, addr)])
}
