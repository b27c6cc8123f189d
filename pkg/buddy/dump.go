package buddy

import (
	"fmt"
	"strings"
)

// HeapStats is a diagnostics snapshot beyond spec.md §6's minimum
// dump_free_memory, grounded on the pintos printMemory traversal this
// package's DumpFreeMemory adapts.
type HeapStats struct {
	SmallArenas int
	FreeBytes   map[int]int // class size -> total free bytes of that class.
}

// Stats returns a snapshot of registry and free-list occupancy.
func (h *Heap) Stats() HeapStats {
	stats := HeapStats{
		SmallArenas: h.registry.count(),
		FreeBytes:   make(map[int]int, len(h.classes.descs)),
	}

	for _, d := range h.classes.descs {
		d.lock.Acquire()
		n := 0
		d.eachLocked(func(byteAddr) { n++ })
		d.lock.Release()
		stats.FreeBytes[d.blockSize] = n * d.blockSize
	}

	return stats
}

// DumpFreeMemory implements spec.md §6: a human-readable dump, per small
// arena, listing for each class the addresses of free blocks owned by that
// arena. Big arenas are excluded, per spec.
func (h *Heap) DumpFreeMemory() string {
	var b strings.Builder

	b.WriteString("---------------------------------\n")
	b.WriteString("Free memory blocks\n")
	b.WriteString("---------------------------------\n")

	if h.registry.count() == 0 {
		b.WriteString("No free memory blocks\n")
		b.WriteString("---------------------------------\n")
		return b.String()
	}

	h.registry.each(func(sa *smallArena) {
		fmt.Fprintf(&b, "arena %v:\n", sa.base)

		for _, d := range h.classes.descs {
			d.lock.Acquire()
			var addrs []string
			d.eachLocked(func(p byteAddr) {
				if p.RoundDownTo(h.cfg.PageSize) == sa.base {
					addrs = append(addrs, p.String())
				}
			})
			d.lock.Release()

			if len(addrs) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  class %d: %s\n", d.blockSize, strings.Join(addrs, ", "))
		}
	})

	b.WriteString("---------------------------------\n")
	return b.String()
}
