// Command kernctl boots one buddy.Heap over a reference page.Arena and
// runs a scripted allocation sequence mirroring spec.md §8's worked
// scenarios, the way a kernel's "boot" path would exercise malloc_init
// once before handing control to the rest of the system. This is a
// smoke-test entry point, not a subsystem: no scheduler, no real pages.
package main

import (
	"flag"
	"fmt"

	"github.com/nanoos/kernelmem/pkg/buddy"
	"github.com/nanoos/kernelmem/pkg/kconfig"
	"github.com/nanoos/kernelmem/pkg/page"
)

func main() {
	flag.Parse()

	cfg := kconfig.FromFlags()
	pages := page.New(cfg.PageSize, cfg.HeapPages)
	heap := buddy.Init(pages, cfg)

	fmt.Printf("kernctl: booted heap (pageSize=%d headerSize=%d minClass=%d pages=%d)\n",
		cfg.PageSize, cfg.HeaderSize, cfg.MinClass, cfg.HeapPages)

	run(heap, pages)
}

func run(heap *buddy.Heap, pages *page.Arena) {
	fmt.Println("kernctl: S1 alloc(40)")
	s1 := heap.Alloc(40)
	report(heap, pages)

	fmt.Println("kernctl: S2 alloc(3000)")
	s2 := heap.Alloc(3000)
	report(heap, pages)

	fmt.Println("kernctl: S4 alloc(16) x2")
	a := heap.Alloc(16)
	b := heap.Alloc(16)
	report(heap, pages)

	fmt.Println("kernctl: freeing everything")
	heap.Free(s1)
	heap.Free(s2)
	heap.Free(a)
	heap.Free(b)
	report(heap, pages)
}

func report(heap *buddy.Heap, pages *page.Arena) {
	stats := heap.Stats()
	fmt.Printf("kernctl: pagesInUse=%d smallArenas=%d\n", pages.InUse(), stats.SmallArenas)
	fmt.Print(heap.DumpFreeMemory())
}
