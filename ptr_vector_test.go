package imvector

import (
	"testing"
	"unsafe"

	"github.com/GreyKit/imvector/abi"
	"github.com/GreyKit/imvector/internal/nativemem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// font stands in for an opaque native record.
type font struct {
	_ [32]byte
}

func TestPtrVector(t *testing.T) {
	fonts := []*font{new(font), new(font), new(font)}
	slots := make([]unsafe.Pointer, 4)
	header := abi.Vector{Size: 3, Capacity: 4, Data: unsafe.Pointer(&slots[0])}

	v := NewPtrVector[font](&header)
	for i, f := range fonts {
		v.Set(i, f)
	}

	for i, f := range fonts {
		assert.Same(t, f, v.At(i))
		assert.Equal(t, unsafe.Pointer(f), slots[i])
	}

	assert.Equal(t, fonts, v.Slice())
	assert.Equal(t, header, HeaderOf(v))
	assert.Same(t, &header, NewPtrVector[font](v.Native()).Native())

	assert.PanicsWithValue(t, "imvector: index out of range [3] with size 3", func() { v.At(3) })
	assert.Nil(t, v.UnsafeAt(3))

	v.Set(1, nil)
	assert.Equal(t, unsafe.Pointer(nil), slots[1])

	var seen int
	for i, f := range v.All() {
		assert.Equal(t, v.At(i), f)
		seen++
	}
	assert.Equal(t, 3, seen)
}

func TestPtrVectorFieldIndependence(t *testing.T) {
	slots := make([]unsafe.Pointer, 2)
	header := abi.Vector{Size: 2, Capacity: 2, Data: unsafe.Pointer(&slots[0])}
	v := NewPtrVector[font](&header)

	v.SetSize(0)
	assert.True(t, v.Empty())
	assert.Equal(t, 2, v.Capacity())
	assert.Nil(t, v.Slice())

	v.SetCapacity(8)
	v.SetData(nil)
	assert.Equal(t, abi.Vector{Size: 0, Capacity: 8}, v.Header())
}

func TestPtrVectorOverNativeMemory(t *testing.T) {
	records, err := nativemem.New(unsafe.Sizeof(font{}), 3)
	require.NoError(t, err)
	defer records.Free()
	require.NoError(t, records.Resize(3))

	handles, err := nativemem.New(abi.PtrSize, 0)
	require.NoError(t, err)
	defer handles.Free()

	for i := 0; i < 3; i++ {
		p := abi.ElemAddr(records.Header.Data, i, records.Stride())
		require.NoError(t, handles.PushBack(unsafe.Pointer(&p)))
	}

	v := NewPtrVector[font](&handles.Header)
	require.Equal(t, 3, v.Size())
	for i := range 3 {
		assert.Equal(t, abi.ElemAddr(records.Header.Data, i, records.Stride()), unsafe.Pointer(v.At(i)))
	}

	v.Set(0, v.At(2))
	assert.Same(t, v.At(2), v.At(0))
}
