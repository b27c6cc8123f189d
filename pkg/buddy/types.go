// Package buddy implements the power-of-two buddy allocator: C2–C5 of the
// kernel memory subsystem. It is built on pkg/page (C1), internal/klist and
// internal/kmutex (the intrusive-list and lock primitives spec.md's Design
// Notes call out as external collaborators), and pkg/xunsafe (the narrow
// unsafe boundary for header-in-page address arithmetic).
package buddy

import (
	"github.com/nanoos/kernelmem/pkg/xunsafe"
)

// byteAddr is this package's shorthand for the typed address every piece of
// raw arena/block arithmetic is expressed in.
type byteAddr = xunsafe.Addr[byte]

type arenaKind uint8

const (
	kindSmall arenaKind = iota
	kindBig
)

// arenaMagic validates that an arena header is intact, per spec.md §3's
// "magic is set at creation and never rewritten" invariant. Chosen fresh
// for this header layout rather than copied from the pintos source's
// ARENA_MAGIC, since this header's shape (no embedded desc pointer, no
// registry link) differs from that source's.
const arenaMagic uint32 = 0xb0dd1e5

// arenaHeader is the fixed, page-resident prefix of every arena, small or
// big. It is placed at the start of a page (or page run) with xunsafe.Cast
// and must never be wider than the configured header size.
type arenaHeader struct {
	magic    uint32
	kind     arenaKind
	numPages int32 // big arenas only; always 0 for small arenas.
}

// smallArena is the Go-side bookkeeping a small arena needs beyond its
// in-page header: which class currently owns each minimum-granularity
// slot, so that Free(p) can recover p's current class from the bare
// address alone.
//
// This lives on the Go heap, addressed from the registry, rather than
// packed into the in-page header: spec.md's worked scenarios (S4 in
// particular) require the smallest class (16 bytes) to pack blocks with no
// per-block overhead at all, which rules out storing this bookkeeping
// inside each block's own bytes.
type smallArena struct {
	base    byteAddr
	classOf []int8 // classOf[i] = class-table index owning slot i; -1 if never assigned.
}

func newSmallArena(base byteAddr, slots int) *smallArena {
	classOf := make([]int8, slots)
	for i := range classOf {
		classOf[i] = -1
	}
	return &smallArena{base: base, classOf: classOf}
}

func readNext(p byteAddr) byteAddr {
	return *xunsafe.Cast[byteAddr](p.AssertValid())
}

func writeNext(p, next byteAddr) {
	*xunsafe.Cast[byteAddr](p.AssertValid()) = next
}

func readHeader(base byteAddr) *arenaHeader {
	return xunsafe.Cast[arenaHeader](base.AssertValid())
}
