package buddy

import (
	"math"

	"github.com/nanoos/kernelmem/pkg/xunsafe"
)

// Realloc implements spec.md §4.4. Realloc(0, n) is Alloc(n); Realloc(p, 0)
// frees p and returns the zero address.
func (h *Heap) Realloc(p byteAddr, n int) byteAddr {
	if p == 0 {
		return h.Alloc(n)
	}
	if n == 0 {
		h.Free(p)
		return 0
	}

	old := h.usableSize(p)

	next := h.Alloc(n)
	if next == 0 {
		return 0
	}

	min := old
	if n < min {
		min = n
	}
	xunsafe.Copy(next.AssertValid(), p.AssertValid(), min)

	h.Free(p)
	return next
}

// Calloc implements spec.md §4.4: s = a*b, detecting overflow via
// s < a || s < b (valid for unsigned fixed-width arithmetic), then
// allocating and zeroing s bytes.
func (h *Heap) Calloc(a, b int) byteAddr {
	if a < 0 || b < 0 {
		return 0
	}

	ua, ub := uint64(a), uint64(b)
	s := ua * ub
	if s < ua || s < ub || s > uint64(math.MaxInt) {
		return 0
	}

	p := h.Alloc(int(s))
	if p == 0 {
		return 0
	}

	xunsafe.Clear(p.AssertValid(), int(s))
	return p
}

// usableSize returns the number of bytes available at p's current class
// (small arenas) or in its whole region (big arenas), for Realloc's copy.
func (h *Heap) usableSize(p byteAddr) int {
	arenaBase := p.RoundDownTo(h.cfg.PageSize)
	hdr := readHeader(arenaBase)

	if hdr.kind == kindBig {
		return int(hdr.numPages)*h.cfg.PageSize - h.cfg.HeaderSize
	}

	idx := h.classOf(arenaBase, p)
	if idx < 0 {
		return 0
	}
	return h.classes.descs[idx].blockSize
}
