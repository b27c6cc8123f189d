// Package kconfig holds the boot-time parameters the buddy allocator and
// signal subsystem are configured with, parsed once via flag the way
// internal/debug parses its own "filter" flag.
package kconfig

import (
	"errors"
	"flag"
	"strconv"

	"github.com/nanoos/kernelmem/internal/xflag"
)

// Defaults match spec.md's worked scenarios (page_size = 4096,
// header = 32, classes 16..1024).
const (
	DefaultPageSize   = 4096
	DefaultHeaderSize = 32
	DefaultMinClass   = 16
)

var (
	pageSize = flag.Int("page-size", DefaultPageSize, "bytes per page; must be a power of two")
	minClass = flag.Int("min-block-size", DefaultMinClass, "smallest buddy size class, in bytes; must be a power of two")
	numPages = xflag.Func("heap-pages", "number of pages in the reference page.Arena backing", parsePositiveInt)
)

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("kconfig: value must be positive")
	}
	return n, nil
}

// Config is the immutable set of boot parameters the heap is built from.
type Config struct {
	// PageSize is the size, in bytes, of one page. Must be a power of two.
	PageSize int

	// HeaderSize is sizeof(arena header) in spec.md's vocabulary: the fixed
	// prefix every arena (small or big) reserves for its metadata.
	HeaderSize int

	// MinClass is the smallest small-arena size class. Must be a power of
	// two strictly less than PageSize/2.
	MinClass int

	// HeapPages is how many pages the reference page.Arena is built with,
	// when one isn't supplied by the caller.
	HeapPages int
}

// FromFlags builds a Config from parsed command-line flags, falling back to
// spec.md's worked-scenario defaults for any flag that was not set.
//
// Call flag.Parse() before calling FromFlags.
func FromFlags() Config {
	cfg := Config{
		PageSize:   *pageSize,
		HeaderSize: DefaultHeaderSize,
		MinClass:   *minClass,
		HeapPages:  256,
	}
	if numPages != nil && *numPages > 0 {
		cfg.HeapPages = *numPages
	}
	return cfg
}

// Default returns spec.md's worked-scenario configuration: 4096-byte
// pages, a 32-byte header, and a minimum class of 16 bytes.
func Default() Config {
	return Config{
		PageSize:   DefaultPageSize,
		HeaderSize: DefaultHeaderSize,
		MinClass:   DefaultMinClass,
		HeapPages:  256,
	}
}
