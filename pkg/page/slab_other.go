//go:build !(linux || darwin)

package page

// allocSlab allocates size+pageSize bytes of GC-managed memory (the extra
// pageSize lets New round the base up to a page boundary) on platforms
// without golang.org/x/sys/unix.Mmap support.
//
// Grounded on flier-goutil/pkg/arena's allocTraceable: a reflection-shaped
// allocation of [N]byte whose only live reference the arena keeps is a
// *byte into the array, which is enough to keep the whole backing
// allocation — and therefore this page table — alive for the GC.
func allocSlab(size, pageSize int) *byte {
	return allocTraceable(size + pageSize)
}
