package imvector

import (
	"errors"
	"unsafe"

	"github.com/GreyKit/imvector/abi"
)

// NativeField is the field the reflective unwrap reads the handle from.
const NativeField = "Native"

// Projection converts between a native address and its Go wrapper. A
// projection without Unwrap still serves reads; writes through it panic with
// the error that explains why Unwrap is missing.
type Projection[T any] struct {
	Wrap   func(unsafe.Pointer) T
	Unwrap func(T) unsafe.Pointer

	wrapErr, unwrapErr error
}

// Missing reports the directions that could not be resolved.
func (p Projection[T]) Missing() error {
	return errors.Join(p.wrapErr, p.unwrapErr)
}

func (p *Projection[T]) wrap(addr unsafe.Pointer) T {
	if p.Wrap == nil {
		panic(p.wrapErr)
	}

	return p.Wrap(addr)
}

func (p *Projection[T]) unwrap(v T) unsafe.Pointer {
	if p.Unwrap == nil {
		panic(p.unwrapErr)
	}

	return p.Unwrap(v)
}

// fill discovers by reflection every direction not set yet. Each direction
// succeeds or fails on its own; the errors are kept on p.
func (p *Projection[T]) fill() {
	if p.Wrap == nil {
		p.Wrap, p.wrapErr = ReflectWrap[T]()
	}
	if p.Unwrap == nil {
		p.Unwrap, p.unwrapErr = ReflectUnwrap[T]()
	}
}

// ReflectWrap builds T{addr} for wrapper structs with a single address field.
func ReflectWrap[T any]() (func(unsafe.Pointer) T, error) {
	t := typeOf[T]()

	f, ok := abi.SoleField(t)
	if !ok {
		return nil, &MissingMemberError{Type: typeName(t), Member: "single-argument constructor", Op: "Wrap"}
	}

	return func(p unsafe.Pointer) T {
		var v T
		*(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(&v), f.Offset)) = p
		return v
	}, nil
}

// ReflectUnwrap reads the address held in the Native field of T.
func ReflectUnwrap[T any]() (func(T) unsafe.Pointer, error) {
	t := typeOf[T]()

	f, ok := abi.FieldByName(t, NativeField)
	if !ok {
		return nil, &MissingMemberError{Type: typeName(t), Member: NativeField + " field", Op: "Unwrap"}
	}

	return func(v T) unsafe.Pointer {
		return *(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(&v), f.Offset))
	}, nil
}
