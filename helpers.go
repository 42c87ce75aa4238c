package imvector

import (
	"unsafe"

	"github.com/goccy/go-reflect"
)

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func typeId(p reflect.Type) uintptr {
	return uintptr(unsafe.Pointer(p))
}

func typeName(p reflect.Type) string {
	if p.Name() != "" && p.PkgPath() != "" {
		return p.PkgPath() + "." + p.Name()
	}

	return p.String()
}

// pointerOf returns the data word of an interface holding a pointer.
func pointerOf(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
