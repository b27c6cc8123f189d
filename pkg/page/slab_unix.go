//go:build linux || darwin

package page

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// allocSlab reserves size+pageSize bytes directly from the OS via mmap,
// rather than through the Go heap, the way a real kernel's page allocator
// would reserve physical pages outside any language runtime's control.
//
// Grounded on xyproto-vibe67's use of golang.org/x/sys/unix for direct
// syscalls (there, inotify; here, mmap) instead of a pure-Go stand-in.
func allocSlab(size, pageSize int) *byte {
	b, err := unix.Mmap(-1, 0, size+pageSize,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		// Fall back to a GC-managed allocation rather than panicking; the
		// page allocator's job is to hand back null on exhaustion, not to
		// crash the process hosting it.
		return allocTraceable(size + pageSize)
	}

	return (*byte)(unsafe.Pointer(unsafe.SliceData(b)))
}
