// Package page implements the C1 page allocator: the external collaborator
// that the buddy allocator (pkg/buddy) builds on top of. It hands out and
// reclaims contiguous, page-aligned, page-granular regions and nothing
// else — no splitting, no size classes, no headers.
package page

import (
	"sync"

	"github.com/nanoos/kernelmem/pkg/xunsafe"
)

// Allocator is the C1 interface pkg/buddy is built on: page_alloc(n)/
// page_free(base, n) from spec.md §3, translated into Go method names.
type Allocator interface {
	// AllocPages returns the base address of n contiguous pages, or the zero
	// address if no such run is available.
	AllocPages(n int) xunsafe.Addr[byte]

	// FreePages returns the n pages starting at base to the allocator. base
	// must be the address a prior AllocPages(n) call returned; freeing a
	// sub-range, a non-page-aligned address, or the wrong n is undefined
	// behavior exactly as it would be for the real page allocator this
	// interface stands in for.
	FreePages(base xunsafe.Addr[byte], n int)

	// PageSize returns the size, in bytes, of one page. Constant for the
	// lifetime of the allocator.
	PageSize() int
}

// Arena is a reference C1 implementation: a single large slab carved into
// fixed-size pages, tracked with a used-page bitmap and a first-fit scan
// for contiguous runs.
//
// It exists so pkg/buddy can be built and tested without a real OS page
// allocator underneath it. On Linux and Darwin the slab is an anonymous
// mmap (slab_unix.go); elsewhere, or if mmap fails, it is a GC-traceable
// chunk allocated with the same trick flier-goutil's pkg/arena uses to
// grow its own backing store (slab_traceable.go).
type Arena struct {
	mu sync.Mutex

	pageSize int
	pages    int
	base     xunsafe.Addr[byte]
	slab     *byte // start of the backing allocation; keeps a GC-traceable slab alive; never read directly.

	used []bool // used[i] iff page i is currently allocated.
}

var _ Allocator = (*Arena)(nil)

// New creates an Arena backed by enough memory for npages pages of size
// pageSize, which must be a power of two.
func New(pageSize, npages int) *Arena {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		panic("page: pageSize must be a positive power of two")
	}
	if npages <= 0 {
		panic("page: npages must be positive")
	}

	size := pageSize * npages
	slab := allocSlab(size, pageSize)

	return &Arena{
		pageSize: pageSize,
		pages:    npages,
		base:     xunsafe.AddrOf(slab).RoundUpTo(pageSize),
		slab:     slab,
		used:     make([]bool, npages),
	}
}

// PageSize implements Allocator.
func (a *Arena) PageSize() int { return a.pageSize }

// AllocPages implements Allocator with a first-fit scan over the used-page
// bitmap.
func (a *Arena) AllocPages(n int) xunsafe.Addr[byte] {
	if n <= 0 {
		return 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	run := 0
	for i := 0; i <= len(a.used); i++ {
		if i < len(a.used) && !a.used[i] {
			run++
			if run == n {
				start := i - n + 1
				for j := start; j <= i; j++ {
					a.used[j] = true
				}
				return a.base.ByteAdd(start * a.pageSize)
			}
			continue
		}
		run = 0
	}

	return 0
}

// FreePages implements Allocator.
func (a *Arena) FreePages(base xunsafe.Addr[byte], n int) {
	if base == 0 || n <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	start := base.ByteSub(a.base) / a.pageSize
	for j := start; j < start+n; j++ {
		a.used[j] = false
	}
}

// Pages returns the total number of pages this arena was created with, for
// tests and diagnostics.
func (a *Arena) Pages() int { return a.pages }

// InUse reports how many pages are currently allocated.
func (a *Arena) InUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for _, u := range a.used {
		if u {
			n++
		}
	}
	return n
}
