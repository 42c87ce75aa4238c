package imvector

import (
	"unsafe"

	"github.com/GreyKit/imvector/abi"
)

// View is a non-owning typed projection of a native vector header.
type View interface {
	// Size returns the number of live elements
	Size() int
	// Capacity returns the number of allocated elements
	Capacity() int
	// Data returns the address of the first element
	Data() unsafe.Pointer
	// Native returns the header the view reads through
	Native() *abi.Vector
}

// Settable is a View whose header fields can be rewritten. Writing them never
// touches the allocation itself.
type Settable interface {
	View
	SetSize(int)
	SetCapacity(int)
	SetData(unsafe.Pointer)
}

// HeaderOf returns the untyped header the view exposes.
func HeaderOf(v View) abi.Vector {
	return abi.Vector{Size: int32(v.Size()), Capacity: int32(v.Capacity()), Data: v.Data()}
}

var (
	_ Settable = Vector[int32]{}
	_ Settable = PtrVector[struct{}]{}
	_ Settable = WrappedPtrVector[struct{ Native unsafe.Pointer }]{}
)
