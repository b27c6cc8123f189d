package page

import (
	"reflect"

	"github.com/nanoos/kernelmem/pkg/xunsafe/layout"
)

// allocTraceable allocates size bytes of garbage-collected memory using a
// reflection-built array type, the way flier-goutil/pkg/arena's function of
// the same name does. Unlike that function, this one does not cache shapes
// per power-of-two size, because Arena.New calls it at most once per Arena
// rather than once per allocation.
func allocTraceable(size int) *byte {
	size = layout.RoundUp(size, layout.Align[*byte]())
	shape := reflect.ArrayOf(size, reflect.TypeFor[byte]())
	return (*byte)(reflect.New(shape).UnsafePointer())
}
