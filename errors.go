package imvector

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMissingMember is matched by every MissingMemberError.
	ErrMissingMember = errors.New("missing member")
	// ErrNilHeader is returned when a view is built over a nil header.
	ErrNilHeader = errors.New("nil vector header")
)

// MissingMemberError reports that a wrapped handle type does not follow the
// convention the reflective projection relies on.
type MissingMemberError struct {
	// Type is the fully qualified name of the wrapped type.
	Type string
	// Member describes what was looked up.
	Member string
	// Op is Wrap or Unwrap.
	Op string
}

func (e *MissingMemberError) Error() string {
	return fmt.Sprintf("imvector: WrappedPtrVector[%s].%s: no %s", e.Type, e.Op, e.Member)
}

func (e *MissingMemberError) Unwrap() error { return ErrMissingMember }

func indexPanic(i int, size int32) {
	panic(fmt.Sprintf("imvector: index out of range [%d] with size %d", i, size))
}

// toInt32 narrows a header field value, panicking when the native int can't
// hold it.
func toInt32(n int, field string) int32 {
	if n < 0 || n > math.MaxInt32 {
		panic(fmt.Sprintf("imvector: %s %d out of range", field, n))
	}

	return int32(n)
}
