package abi

import "unsafe"

// Vector mirrors the native ImVector header. Size and Capacity are written by
// the native owner; Data points at its first element.
type Vector struct {
	Size     int32
	Capacity int32
	Data     unsafe.Pointer
}

const intSizeBytes = (32 << (^uint(0) >> 63)) / 8

// PtrSize is the stride of an array of handles.
const PtrSize = uintptr(intSizeBytes)

// ElemAddr returns the address of element index in an array starting at base.
func ElemAddr(base unsafe.Pointer, index int, stride uintptr) unsafe.Pointer {
	return unsafe.Add(base, uintptr(index)*stride)
}

// InRange reports whether 0 <= index < size.
func InRange(index int, size int32) bool {
	return uint(index) < uint(size)
}

// LoadPtr reads the handle stored in slot index.
func LoadPtr(base unsafe.Pointer, index int) unsafe.Pointer {
	return *(*unsafe.Pointer)(ElemAddr(base, index, PtrSize))
}

// StorePtr writes p into slot index.
func StorePtr(base unsafe.Pointer, index int, p unsafe.Pointer) {
	*(*unsafe.Pointer)(ElemAddr(base, index, PtrSize)) = p
}
