// Package nativemem plays the native owner of a vector: it allocates element
// storage outside the Go heap and keeps an abi.Vector header in step with it,
// growing the way ImVector does.
package nativemem

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/GreyKit/imvector/abi"
)

var ErrFreed = errors.New("nativemem: buffer already freed")

// Buffer owns the storage Header.Data points to.
type Buffer struct {
	Header abi.Vector

	stride uintptr
	mem    []byte
	freed  bool
}

// New allocates room for capacity elements of stride bytes each.
func New(stride uintptr, capacity int) (*Buffer, error) {
	if stride == 0 {
		return nil, errors.New("nativemem: zero stride")
	}

	b := &Buffer{stride: stride}
	if capacity > 0 {
		if err := b.Reserve(capacity); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Buffer) Stride() uintptr { return b.stride }

// GrowCapacity mirrors ImVector::_grow_capacity.
func GrowCapacity(capacity, size int) int {
	grown := 8
	if capacity > 0 {
		grown = capacity + capacity/2
	}
	if grown > size {
		return grown
	}

	return size
}

// Reserve reallocates so that at least n elements fit. Existing elements are
// moved and the old storage is released, so every address previously handed
// out becomes invalid.
func (b *Buffer) Reserve(n int) error {
	if b.freed {
		return ErrFreed
	}
	if n <= int(b.Header.Capacity) {
		return nil
	}

	mem, err := mapBytes(n * int(b.stride))
	if err != nil {
		return fmt.Errorf("nativemem: reserve %d: %w", n, err)
	}

	copy(mem, b.mem[:int(b.Header.Size)*int(b.stride)])
	if b.mem != nil {
		if err := unmapBytes(b.mem); err != nil {
			return fmt.Errorf("nativemem: release: %w", err)
		}
	}

	b.mem = mem
	b.Header.Data = unsafe.Pointer(unsafe.SliceData(mem))
	b.Header.Capacity = int32(n)

	return nil
}

// Resize sets Size to n, growing storage first when needed.
func (b *Buffer) Resize(n int) error {
	if n > int(b.Header.Capacity) {
		if err := b.Reserve(GrowCapacity(int(b.Header.Capacity), n)); err != nil {
			return err
		}
	}

	b.Header.Size = int32(n)
	return nil
}

// PushBack appends stride bytes read from elem.
func (b *Buffer) PushBack(elem unsafe.Pointer) error {
	if b.Header.Size == b.Header.Capacity {
		if err := b.Reserve(GrowCapacity(int(b.Header.Capacity), int(b.Header.Size)+1)); err != nil {
			return err
		}
	}

	offset := int(b.Header.Size) * int(b.stride)
	copy(b.mem[offset:], unsafe.Slice((*byte)(elem), b.stride))
	b.Header.Size++

	return nil
}

// Bytes returns the storage of the live elements.
func (b *Buffer) Bytes() []byte {
	return b.mem[:int(b.Header.Size)*int(b.stride)]
}

// Free releases the storage and clears the header.
func (b *Buffer) Free() error {
	if b.freed {
		return ErrFreed
	}
	b.freed = true

	mem := b.mem
	b.mem = nil
	b.Header = abi.Vector{}

	if mem == nil {
		return nil
	}

	return unmapBytes(mem)
}
