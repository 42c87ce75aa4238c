package imvector

import (
	"iter"
	"unsafe"

	"github.com/GreyKit/imvector/abi"
)

// WrappedPtrVector is a view over a native vector of handles, each projected
// to a Go wrapper T on access.
type WrappedPtrVector[T any] struct {
	native *abi.Vector
	proj   *Projection[T]
}

// NewWrappedPtrVector resolves the projection of T (see Resolve) and wraps the
// header. When T has no Unwrap the view is read-only: Set and UnsafeSet panic
// with the *MissingMemberError recorded at resolution.
func NewWrappedPtrVector[T any](native *abi.Vector) (WrappedPtrVector[T], error) {
	if native == nil {
		return WrappedPtrVector[T]{}, ErrNilHeader
	}

	proj, err := Resolve[T]()
	if err != nil {
		return WrappedPtrVector[T]{}, err
	}

	return WrappedPtrVector[T]{native: native, proj: proj}, nil
}

// NewWrappedPtrVectorWith uses proj for this view only, bypassing the registry.
// proj.Wrap is required; a nil proj.Unwrap makes the view read-only.
func NewWrappedPtrVectorWith[T any](native *abi.Vector, proj Projection[T]) WrappedPtrVector[T] {
	if native == nil {
		panic("imvector: nil vector header")
	}
	if proj.Wrap == nil {
		panic("imvector: projection without Wrap")
	}
	if proj.Unwrap == nil && proj.unwrapErr == nil {
		proj.unwrapErr = &MissingMemberError{Type: typeName(typeOf[T]()), Member: "unwrap function", Op: "Unwrap"}
	}

	return WrappedPtrVector[T]{native: native, proj: &proj}
}

func (v WrappedPtrVector[T]) Native() *abi.Vector       { return v.native }
func (v WrappedPtrVector[T]) Header() abi.Vector        { return *v.native }
func (v WrappedPtrVector[T]) Projection() Projection[T] { return *v.proj }

func (v WrappedPtrVector[T]) Size() int                { return int(v.native.Size) }
func (v WrappedPtrVector[T]) SetSize(n int)            { v.native.Size = toInt32(n, "size") }
func (v WrappedPtrVector[T]) Capacity() int            { return int(v.native.Capacity) }
func (v WrappedPtrVector[T]) SetCapacity(n int)        { v.native.Capacity = toInt32(n, "capacity") }
func (v WrappedPtrVector[T]) Data() unsafe.Pointer     { return v.native.Data }
func (v WrappedPtrVector[T]) SetData(p unsafe.Pointer) { v.native.Data = p }
func (v WrappedPtrVector[T]) Empty() bool              { return v.native.Size == 0 }

func (v WrappedPtrVector[T]) At(i int) T {
	if !uncheckedBounds.Load() && !abi.InRange(i, v.native.Size) {
		indexPanic(i, v.native.Size)
	}

	return v.UnsafeAt(i)
}

func (v WrappedPtrVector[T]) Set(i int, value T) {
	if !uncheckedBounds.Load() && !abi.InRange(i, v.native.Size) {
		indexPanic(i, v.native.Size)
	}

	v.UnsafeSet(i, value)
}

func (v WrappedPtrVector[T]) UnsafeAt(i int) T {
	return v.proj.wrap(abi.LoadPtr(v.native.Data, i))
}

func (v WrappedPtrVector[T]) UnsafeSet(i int, value T) {
	abi.StorePtr(v.native.Data, i, v.proj.unwrap(value))
}

// Addr returns the raw handle in slot i without wrapping it.
func (v WrappedPtrVector[T]) Addr(i int) unsafe.Pointer {
	if !uncheckedBounds.Load() && !abi.InRange(i, v.native.Size) {
		indexPanic(i, v.native.Size)
	}

	return abi.LoadPtr(v.native.Data, i)
}

func (v WrappedPtrVector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.Size(); i++ {
			if !yield(i, v.UnsafeAt(i)) {
				return
			}
		}
	}
}
