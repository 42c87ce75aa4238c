package imvector

import (
	"iter"
	"unsafe"

	"github.com/GreyKit/imvector/abi"
)

// PtrVector is a view over a native vector of T*. T is usually an opaque
// native record; only the addresses are read and written.
type PtrVector[T any] struct {
	native *abi.Vector
}

func NewPtrVector[T any](native *abi.Vector) PtrVector[T] {
	if native == nil {
		panic("imvector: nil vector header")
	}

	return PtrVector[T]{native: native}
}

func (v PtrVector[T]) Native() *abi.Vector { return v.native }
func (v PtrVector[T]) Header() abi.Vector  { return *v.native }

func (v PtrVector[T]) Size() int                { return int(v.native.Size) }
func (v PtrVector[T]) SetSize(n int)            { v.native.Size = toInt32(n, "size") }
func (v PtrVector[T]) Capacity() int            { return int(v.native.Capacity) }
func (v PtrVector[T]) SetCapacity(n int)        { v.native.Capacity = toInt32(n, "capacity") }
func (v PtrVector[T]) Data() unsafe.Pointer     { return v.native.Data }
func (v PtrVector[T]) SetData(p unsafe.Pointer) { v.native.Data = p }
func (v PtrVector[T]) Empty() bool              { return v.native.Size == 0 }

func (v PtrVector[T]) At(i int) *T {
	if !uncheckedBounds.Load() && !abi.InRange(i, v.native.Size) {
		indexPanic(i, v.native.Size)
	}

	return v.UnsafeAt(i)
}

func (v PtrVector[T]) Set(i int, p *T) {
	if !uncheckedBounds.Load() && !abi.InRange(i, v.native.Size) {
		indexPanic(i, v.native.Size)
	}

	v.UnsafeSet(i, p)
}

func (v PtrVector[T]) UnsafeAt(i int) *T {
	return (*T)(abi.LoadPtr(v.native.Data, i))
}

func (v PtrVector[T]) UnsafeSet(i int, p *T) {
	abi.StorePtr(v.native.Data, i, unsafe.Pointer(p))
}

// Slice returns the handle slots [0, Size) as a Go slice sharing native memory.
func (v PtrVector[T]) Slice() []*T {
	if v.native.Size <= 0 || v.native.Data == nil {
		return nil
	}

	return unsafe.Slice((**T)(v.native.Data), v.native.Size)
}

func (v PtrVector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.Size(); i++ {
			if !yield(i, v.UnsafeAt(i)) {
				return
			}
		}
	}
}
