package imvector

import (
	"iter"
	"unsafe"

	"github.com/GreyKit/imvector/abi"
)

// Vector is a view over a native vector of T values. Elements are copied in
// and out of native memory; sizeof(T) must equal the native element size.
type Vector[T any] struct {
	native *abi.Vector
}

// NewVector wraps the header native points to. It panics on a nil header and,
// under StrictLayout, on element types that can't live in native memory.
func NewVector[T any](native *abi.Vector) Vector[T] {
	if native == nil {
		panic("imvector: nil vector header")
	}
	if strictLayout.Load() {
		if err := checkLayout[T](); err != nil {
			panic("imvector: " + err.Error())
		}
	}

	return Vector[T]{native: native}
}

// NewVectorChecked is NewVector reporting problems as errors and always
// validating the element type.
func NewVectorChecked[T any](native *abi.Vector) (Vector[T], error) {
	if native == nil {
		return Vector[T]{}, ErrNilHeader
	}
	if err := checkLayout[T](); err != nil {
		return Vector[T]{}, err
	}

	return Vector[T]{native: native}, nil
}

func (v Vector[T]) Native() *abi.Vector { return v.native }
func (v Vector[T]) Header() abi.Vector  { return *v.native }

func (v Vector[T]) Size() int            { return int(v.native.Size) }
func (v Vector[T]) SetSize(n int)        { v.native.Size = toInt32(n, "size") }
func (v Vector[T]) Capacity() int        { return int(v.native.Capacity) }
func (v Vector[T]) SetCapacity(n int)    { v.native.Capacity = toInt32(n, "capacity") }
func (v Vector[T]) Data() unsafe.Pointer { return v.native.Data }

func (v Vector[T]) SetData(p unsafe.Pointer) { v.native.Data = p }

func (v Vector[T]) Empty() bool { return v.native.Size == 0 }

func (v Vector[T]) ElemSize() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// At returns a copy of element i.
func (v Vector[T]) At(i int) T {
	if !uncheckedBounds.Load() && !abi.InRange(i, v.native.Size) {
		indexPanic(i, v.native.Size)
	}

	return v.UnsafeAt(i)
}

// Set overwrites element i in native memory.
func (v Vector[T]) Set(i int, value T) {
	if !uncheckedBounds.Load() && !abi.InRange(i, v.native.Size) {
		indexPanic(i, v.native.Size)
	}

	v.UnsafeSet(i, value)
}

// UnsafeAt is At without the bounds test. Reading past Size is undefined.
func (v Vector[T]) UnsafeAt(i int) T {
	return *(*T)(abi.ElemAddr(v.native.Data, i, v.ElemSize()))
}

// UnsafeSet is Set without the bounds test.
func (v Vector[T]) UnsafeSet(i int, value T) {
	*(*T)(abi.ElemAddr(v.native.Data, i, v.ElemSize())) = value
}

// Ref returns the address of element i. It is valid until the native owner
// reallocates the buffer.
func (v Vector[T]) Ref(i int) *T {
	if !uncheckedBounds.Load() && !abi.InRange(i, v.native.Size) {
		indexPanic(i, v.native.Size)
	}

	return (*T)(abi.ElemAddr(v.native.Data, i, v.ElemSize()))
}

// Slice returns a Go slice aliasing [0, Size). Appending to it copies into Go
// memory; it is stale as soon as the native owner reallocates.
func (v Vector[T]) Slice() []T {
	if v.native.Size <= 0 || v.native.Data == nil {
		return nil
	}

	return unsafe.Slice((*T)(v.native.Data), v.native.Size)
}

// All yields index and element pairs, re-reading Size at every step.
func (v Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.Size(); i++ {
			if !yield(i, v.UnsafeAt(i)) {
				return
			}
		}
	}
}
