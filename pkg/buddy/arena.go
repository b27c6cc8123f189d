package buddy

import (
	"github.com/nanoos/kernelmem/internal/kassert"
)

// arenaOf derives the owning arena's base address from a live pointer by
// rounding down to the page boundary, per spec.md §4.3 step 1, and
// validates its magic. Alloc, usableSize and DumpFreeMemory round down to
// the page boundary the same way but do not check the magic.
func (h *Heap) arenaOf(p byteAddr) byteAddr {
	base := p.RoundDownTo(h.cfg.PageSize)
	hdr := readHeader(base)
	kassert.Fatal(hdr.magic == arenaMagic, "corrupt arena header at %v: magic %#x", base, hdr.magic)
	return base
}

// newSmallArenaAt obtains one fresh page from h.pages, writes a small arena
// header into it, registers it, and returns its base address. The caller
// is responsible for treating the whole region as one free top-class
// block.
func (h *Heap) newSmallArenaAt() byteAddr {
	base := h.pages.AllocPages(1)
	if base == 0 {
		return 0
	}

	hdr := readHeader(base)
	*hdr = arenaHeader{magic: arenaMagic, kind: kindSmall}

	sa := newSmallArena(base, h.minSlots)
	h.registry.add(sa)

	return base
}

// newBigArenaAt requests npages contiguous pages and writes a big arena
// header into the first one.
func (h *Heap) newBigArenaAt(npages int) byteAddr {
	base := h.pages.AllocPages(npages)
	if base == 0 {
		return 0
	}

	hdr := readHeader(base)
	*hdr = arenaHeader{magic: arenaMagic, kind: kindBig, numPages: int32(npages)}

	return base
}
