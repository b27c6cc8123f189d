//go:build go1.20

package xunsafe

import (
	"fmt"
	"unsafe"

	"github.com/nanoos/kernelmem/pkg/xunsafe/layout"
)

// Addr is a typed address: a uintptr that remembers the pointee type so that
// arithmetic on it is automatically scaled the way pointer arithmetic on *T
// would be in a language that allowed it.
//
// Addr does not keep its pointee alive. Converting an Addr back into a *T
// with AssertValid is exactly as unsafe as an equivalent unsafe.Pointer
// conversion would be; Addr exists so that every such conversion in this
// module funnels through one reviewable choke point instead of scattering
// raw unsafe.Pointer casts across callers.
type Addr[T any] uintptr

// AddrOf returns the address of p.
func AddrOf[T any](p *T) Addr[T] {
	return Addr[T](unsafe.Pointer(p))
}

// EndOf returns the address just past the last element of s.
func EndOf[S ~[]E, E any](s S) Addr[E] {
	size := layout.Size[E]()
	return Addr[E](unsafe.Add(unsafe.Pointer(unsafe.SliceData(s)), size*len(s)))
}

// AssertValid converts this address back into a pointer.
//
// The caller is asserting that the address is either zero (in which case the
// result is nil) or still points at a live T.
func (a Addr[T]) AssertValid() *T {
	if a == 0 {
		return nil
	}
	return (*T)(unsafe.Pointer(uintptr(a)))
}

// Add adds n, scaled by the size of T, to this address.
func (a Addr[T]) Add(n int) Addr[T] {
	size := layout.Size[T]()
	return a + Addr[T](n*size)
}

// ByteAdd adds n unscaled bytes to this address.
func (a Addr[T]) ByteAdd(n int) Addr[T] {
	return a + Addr[T](n)
}

// Sub computes the distance between two addresses, scaled by the size of T.
func (a Addr[T]) Sub(b Addr[T]) int {
	size := layout.Size[T]()
	return int(a-b) / size
}

// ByteSub computes the unscaled distance between two addresses.
func (a Addr[T]) ByteSub(b Addr[T]) int {
	return int(a - b)
}

// Padding returns how many bytes must be added to this address to round it
// up to align, which must be a power of two.
func (a Addr[T]) Padding(align int) int {
	return int(layout.Padding(uintptr(a), uintptr(align)))
}

// RoundUpTo rounds this address up to align, which must be a power of two.
func (a Addr[T]) RoundUpTo(align int) Addr[T] {
	return Addr[T](layout.RoundUp(uintptr(a), uintptr(align)))
}

// RoundDownTo rounds this address down to align, which must be a power of two.
func (a Addr[T]) RoundDownTo(align int) Addr[T] {
	return Addr[T](layout.RoundDown(uintptr(a), uintptr(align)))
}

// SignBit reports whether the high bit of this address is set.
func (a Addr[T]) SignBit() bool {
	return a&(1<<(unsafe.Sizeof(uintptr(0))*8-1)) != 0
}

// SignBitMask returns all-ones if the sign bit is set, all-zeros otherwise.
func (a Addr[T]) SignBitMask() Addr[T] {
	if a.SignBit() {
		return ^Addr[T](0)
	}
	return 0
}

// ClearSignBit clears the high bit of this address.
func (a Addr[T]) ClearSignBit() Addr[T] {
	return a &^ (1 << (unsafe.Sizeof(uintptr(0))*8 - 1))
}

func (a Addr[T]) String() string { return fmt.Sprintf("%#x", uintptr(a)) }

func (a Addr[T]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'x':
		fmt.Fprintf(s, "%x", uintptr(a))
	default:
		fmt.Fprintf(s, "%#x", uintptr(a))
	}
}
