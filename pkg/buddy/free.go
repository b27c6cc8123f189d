package buddy

import (
	"github.com/nanoos/kernelmem/internal/debug"
	"github.com/nanoos/kernelmem/internal/kassert"
)

// Free implements spec.md §4.3. free(0) is a no-op; otherwise p must have
// originated from this Heap and not been freed since.
func (h *Heap) Free(p byteAddr) {
	if p == 0 {
		return
	}

	arenaBase := h.arenaOf(p) // validates magic, fatal on corruption.
	hdr := readHeader(arenaBase)

	if hdr.kind == kindBig {
		debug.Log(nil, "free", "big arena at %v, %d pages", arenaBase, hdr.numPages)
		h.pages.FreePages(arenaBase, int(hdr.numPages))
		return
	}

	h.freeSmall(arenaBase, p)
}

// freeSmall runs the coalescing loop of spec.md §4.3 step 3.
func (h *Heap) freeSmall(arenaBase, p byteAddr) {
	cur := h.classOf(arenaBase, p)
	kassert.Fatal(cur >= 0, "free: %v is not a recorded block start in arena %v", p, arenaBase)

	offset := p.ByteSub(arenaBase) - h.cfg.HeaderSize
	kassert.Fatal(offset >= 0 && offset%h.cfg.MinClass == 0,
		"free: misaligned pointer %v in arena %v", p, arenaBase)

	for {
		if cur == h.classes.topClass() {
			// The top class holds exactly one block per arena: there is no
			// buddy to look for, and this block must not be left on any
			// free list, since the whole arena is about to be returned to
			// pkg/page below.
			h.setClassOf(arenaBase, p, cur)
			break
		}

		classSize := h.classes.descs[cur].blockSize
		i := h.blockIndex(arenaBase, p, classSize)
		buddy := h.blockAddr(arenaBase, i^1, classSize)

		d := h.classes.descs[cur]
		d.lock.Acquire()
		found := d.removeLocked(buddy)
		if !found {
			d.pushLocked(p)
			d.lock.Release()
			h.setClassOf(arenaBase, p, cur)
			break
		}
		d.lock.Release()

		parent := p
		if buddy < p {
			parent = buddy
		}
		p = parent
		cur++
		h.setClassOf(arenaBase, p, cur)
	}

	if cur == h.classes.topClass() {
		debug.Log(nil, "free", "arena %v fully coalesced, reclaiming page", arenaBase)
		h.registry.remove(arenaBase)
		h.pages.FreePages(arenaBase, 1)
	}
}
