package abi

import (
	"errors"
	"fmt"

	"github.com/goccy/go-reflect"
)

// ErrNotPointerFree is returned by Check for element types holding memory
// managed by the Go runtime.
var ErrNotPointerFree = errors.New("type is not pointer-free")

// Layout describes how a Go type occupies native memory.
type Layout struct {
	Size        uintptr
	Align       uintptr
	PointerFree bool
}

// Describe reports the layout of t.
func Describe(t reflect.Type) Layout {
	return Layout{
		Size:        t.Size(),
		Align:       uintptr(t.Align()),
		PointerFree: managedPath(t, t.String()) == "",
	}
}

// Check returns ErrNotPointerFree naming the first component of t whose
// representation only exists inside the Go runtime (strings, slices, maps,
// interfaces, channels, funcs). Pointers are accepted: native structs carry
// them as plain addresses.
func Check(t reflect.Type) error {
	if path := managedPath(t, t.String()); path != "" {
		return fmt.Errorf("%w: %s", ErrNotPointerFree, path)
	}

	return nil
}

func managedPath(t reflect.Type, path string) string {
	switch t.Kind() {
	case reflect.String, reflect.Slice, reflect.Map,
		reflect.Interface, reflect.Chan, reflect.Func:
		return path + " (" + t.Kind().String() + ")"
	case reflect.Array:
		if t.Len() == 0 {
			return ""
		}
		return managedPath(t.Elem(), path+"[]")
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if p := managedPath(f.Type, path+"."+f.Name); p != "" {
				return p
			}
		}
	}

	return ""
}
