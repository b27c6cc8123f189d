package buddy

import (
	"github.com/nanoos/kernelmem/internal/debug"
	"github.com/nanoos/kernelmem/pkg/kconfig"
	"github.com/nanoos/kernelmem/pkg/page"
)

// Heap is C4, the allocator core: it owns a class table, an arena
// registry, and the page allocator (C1) it provisions arenas from. The
// zero value is not usable; construct one with Init.
type Heap struct {
	pages page.Allocator
	cfg   kconfig.Config

	classes  *classTable
	registry *registry

	minSlots int // (pageSize-headerSize)/MinClass: classOf slice length for a fresh small arena.
}

// Init creates a Heap backed by pages, using cfg for page size, header
// size, and minimum class. This is the Go analogue of spec.md §9's
// malloc_init entry point: call it once before any Alloc/Free.
func Init(pages page.Allocator, cfg kconfig.Config) *Heap {
	if cfg.PageSize != pages.PageSize() {
		panic("buddy: cfg.PageSize does not match the page allocator's PageSize")
	}

	h := &Heap{
		pages:    pages,
		cfg:      cfg,
		classes:  newClassTable(cfg.PageSize, cfg.HeaderSize, cfg.MinClass),
		registry: newRegistry(),
		minSlots: (cfg.PageSize - cfg.HeaderSize) / cfg.MinClass,
	}

	debug.Log(nil, "init", "pageSize=%d headerSize=%d minClass=%d topClass=%d",
		cfg.PageSize, cfg.HeaderSize, cfg.MinClass, h.classes.descs[h.classes.topClass()].blockSize)

	return h
}

// blockOffset returns the byte offset of slot index i at class size within
// an arena (i.e. relative to the arena's base page address).
func (h *Heap) blockOffset(i, classSize int) int {
	return h.cfg.HeaderSize + i*classSize
}

// blockIndex returns the slot index of addr (relative to arena's base) at
// classSize granularity.
func (h *Heap) blockIndex(arenaBase, addr byteAddr, classSize int) int {
	return addr.ByteSub(arenaBase.ByteAdd(h.cfg.HeaderSize)) / classSize
}

// minSlotIndex returns the minimum-granularity slot index of addr within
// its arena, used to key smallArena.classOf.
func (h *Heap) minSlotIndex(arenaBase, addr byteAddr) int {
	return h.blockIndex(arenaBase, addr, h.cfg.MinClass)
}

// blockAddr returns the address of slot index i at classSize within the
// arena based at arenaBase.
func (h *Heap) blockAddr(arenaBase byteAddr, i, classSize int) byteAddr {
	return arenaBase.ByteAdd(h.blockOffset(i, classSize))
}
