package imvector

import (
	"math"
	"testing"
	"unsafe"

	"github.com/GreyKit/imvector/abi"
	"github.com/GreyKit/imvector/internal/nativemem"
	"github.com/stretchr/testify/suite"
)

type vec2 struct {
	X, Y float32
}

type labelled struct {
	ID    uint32
	Label string
}

type VectorTestSuite struct {
	suite.Suite

	backing [4]int32
	header  abi.Vector
}

func (s *VectorTestSuite) SetupTest() {
	s.backing = [4]int32{}
	s.header = abi.Vector{Size: 3, Capacity: 4, Data: unsafe.Pointer(&s.backing[0])}
}

func (s *VectorTestSuite) TearDownTest() {
	s.Require().NoError(Configure(DefaultConfig()))
}

func (s *VectorTestSuite) TestReadAfterWrite() {
	v := NewVector[int32](&s.header)

	v.Set(0, 10)
	v.Set(1, 20)
	v.Set(2, 30)

	s.Equal(int32(20), v.At(1))
	s.Equal([4]int32{10, 20, 30, 0}, s.backing)
	s.Equal([]int32{10, 20, 30}, v.Slice())
}

func (s *VectorTestSuite) TestOutOfRange() {
	v := NewVector[int32](&s.header)

	s.PanicsWithValue("imvector: index out of range [3] with size 3", func() { v.At(3) })
	s.PanicsWithValue("imvector: index out of range [-1] with size 3", func() { v.Set(-1, 1) })
	s.Panics(func() { v.Ref(3) })

	s.backing[3] = 99
	s.Equal(int32(99), v.UnsafeAt(3))
	v.UnsafeSet(3, 7)
	s.Equal(int32(7), s.backing[3])
}

func (s *VectorTestSuite) TestBoundsCheckDisabled() {
	s.Require().NoError(Configure(Config{BoundsCheck: false}))
	s.False(CurrentConfig().BoundsCheck)

	v := NewVector[int32](&s.header)
	s.backing[3] = 5
	s.NotPanics(func() { s.Equal(int32(5), v.At(3)) })
}

func (s *VectorTestSuite) TestHeaderEquivalence() {
	v := NewVector[int32](&s.header)

	s.Equal(s.header, v.Header())
	s.Equal(s.header, HeaderOf(v))
	s.Equal(4, v.Capacity())
	s.Equal(unsafe.Pointer(&s.backing[0]), v.Data())
}

func (s *VectorTestSuite) TestNoCopy() {
	v := NewVector[int32](&s.header)
	s.Same(&s.header, v.Native())

	again := NewVector[int32](v.Native())
	s.Same(&s.header, again.Native())

	again.Set(0, 42)
	s.Equal(int32(42), v.At(0))
	s.Same(&s.backing[0], v.Ref(0))
}

func (s *VectorTestSuite) TestFieldIndependence() {
	v := NewVector[int32](&s.header)

	v.SetSize(1)
	s.Equal(4, v.Capacity())
	s.Equal(unsafe.Pointer(&s.backing[0]), v.Data())

	v.SetCapacity(2)
	s.Equal(1, v.Size())
	s.Equal(unsafe.Pointer(&s.backing[0]), v.Data())

	other := [2]int32{}
	v.SetData(unsafe.Pointer(&other[0]))
	s.Equal(1, v.Size())
	s.Equal(2, v.Capacity())

	s.Equal(abi.Vector{Size: 1, Capacity: 2, Data: unsafe.Pointer(&other[0])}, s.header)
	s.Equal([4]int32{}, s.backing)
}

func (s *VectorTestSuite) TestHeaderFieldRange() {
	v := NewVector[int32](&s.header)

	s.PanicsWithValue("imvector: size -1 out of range", func() { v.SetSize(-1) })
	s.PanicsWithValue("imvector: capacity -1 out of range", func() { v.SetCapacity(-1) })

	big := math.MaxInt32
	s.NotPanics(func() { v.SetCapacity(big) })
	s.Equal(math.MaxInt32, v.Capacity())

	big++
	s.Panics(func() { v.SetSize(big) })
	s.Panics(func() { v.SetCapacity(big) })

	s.Equal(abi.Vector{Size: 3, Capacity: math.MaxInt32, Data: unsafe.Pointer(&s.backing[0])}, s.header)
}

func (s *VectorTestSuite) TestStructElements() {
	points := [3]vec2{}
	header := abi.Vector{Size: 3, Capacity: 3, Data: unsafe.Pointer(&points[0])}
	v := NewVector[vec2](&header)

	s.Equal(uintptr(8), v.ElemSize())

	v.Set(2, vec2{X: 1.5, Y: -2})
	s.Equal(vec2{X: 1.5, Y: -2}, points[2])

	v.Ref(0).X = 3
	s.Equal(float32(3), v.At(0).X)
}

func (s *VectorTestSuite) TestAll() {
	v := NewVector[int32](&s.header)
	for i := range 3 {
		v.Set(i, int32(i*i))
	}

	var got []int32
	for i, e := range v.All() {
		s.Equal(v.At(i), e)
		got = append(got, e)
	}
	s.Equal([]int32{0, 1, 4}, got)

	got = got[:0]
	for _, e := range v.All() {
		got = append(got, e)
		break
	}
	s.Len(got, 1)
}

func (s *VectorTestSuite) TestEmpty() {
	var header abi.Vector
	v := NewVector[int32](&header)

	s.True(v.Empty())
	s.Nil(v.Slice())
	s.Panics(func() { v.At(0) })
	s.Panics(func() { NewVector[int32](nil) })
}

func (s *VectorTestSuite) TestStrictLayout() {
	var header abi.Vector

	_, err := NewVectorChecked[labelled](&header)
	s.ErrorIs(err, abi.ErrNotPointerFree)
	_, err = NewVectorChecked[vec2](nil)
	s.ErrorIs(err, ErrNilHeader)
	_, err = NewVectorChecked[vec2](&header)
	s.NoError(err)

	s.NotPanics(func() { NewVector[labelled](&header) })

	s.Require().NoError(Configure(Config{BoundsCheck: true, StrictLayout: true}))
	s.Panics(func() { NewVector[labelled](&header) })
	s.NotPanics(func() { NewVector[vec2](&header) })
}

func (s *VectorTestSuite) TestLayoutVerdictReused() {
	type rgba struct{ R, G, B, A uint8 }
	type named struct{ Name string }

	var header abi.Vector
	for range 3 {
		_, err := NewVectorChecked[rgba](&header)
		s.Require().NoError(err)
		_, err = NewVectorChecked[named](&header)
		s.Require().ErrorIs(err, abi.ErrNotPointerFree)
	}

	s.Require().NoError(Configure(Config{BoundsCheck: true, StrictLayout: true}))
	for range 3 {
		s.NotPanics(func() { NewVector[rgba](&header) })
		s.Panics(func() { NewVector[named](&header) })
	}
}

func (s *VectorTestSuite) TestNativeOwner() {
	buf, err := nativemem.New(unsafe.Sizeof(vec2{}), 2)
	s.Require().NoError(err)
	defer buf.Free()

	v := NewVector[vec2](&buf.Header)
	s.Require().NoError(buf.Resize(2))
	v.Set(0, vec2{X: 1})
	v.Set(1, vec2{X: 2})

	stale := v.Data()
	for i := 2; i < 10; i++ {
		p := vec2{X: float32(i + 1)}
		s.Require().NoError(buf.PushBack(unsafe.Pointer(&p)))
	}

	s.NotEqual(stale, v.Data(), "growth moves the storage")
	s.Equal(10, v.Size())
	s.Equal(13, v.Capacity())
	for i, p := range v.All() {
		s.Equal(float32(i+1), p.X)
	}

	// Only the mirror changes: the owner's storage stays 13 elements long.
	v.SetCapacity(100)
	s.Equal(int32(100), buf.Header.Capacity)
	s.Len(buf.Bytes(), 10*8)
}

func TestVector(t *testing.T) { suite.Run(t, new(VectorTestSuite)) }

func BenchmarkVector_At(b *testing.B) {
	backing := make([]int64, 1024)
	header := abi.Vector{Size: 1024, Capacity: 1024, Data: unsafe.Pointer(&backing[0])}
	v := NewVector[int64](&header)

	b.ReportAllocs()
	var sum int64
	for i := 0; i < b.N; i++ {
		sum += v.At(i & 1023)
	}
	_ = sum
}
