package abi

import "github.com/goccy/go-reflect"

// Field is a machine-word field holding a native address.
type Field struct {
	Name   string
	Offset uintptr
}

// IsAddress reports whether values of t are a single native address.
func IsAddress(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Uintptr:
		return t.Size() == PtrSize
	}

	return false
}

// SoleField returns the only field of struct type t, the one a positional
// literal T{addr} initialises. It fails when t is not a struct, has more or
// fewer than one field, or the field does not hold an address.
func SoleField(t reflect.Type) (Field, bool) {
	if t.Kind() != reflect.Struct || t.NumField() != 1 {
		return Field{}, false
	}

	f := t.Field(0)
	if !IsAddress(f.Type) {
		return Field{}, false
	}

	return Field{Name: f.Name, Offset: f.Offset}, true
}

// FieldByName returns the address field called name. Promoted fields of
// embedded structs are not considered.
func FieldByName(t reflect.Type, name string) (Field, bool) {
	if t.Kind() != reflect.Struct {
		return Field{}, false
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name != name {
			continue
		}
		if !IsAddress(f.Type) {
			return Field{}, false
		}

		return Field{Name: f.Name, Offset: f.Offset}, true
	}

	return Field{}, false
}
