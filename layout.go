package imvector

import (
	"github.com/GreyKit/imvector/abi"
	"github.com/GreyKit/imvector/sync"
)

type layoutVerdict struct {
	err error
}

var layouts = sync.NewTypeMap[*layoutVerdict]()

// checkLayout validates T as a native element type once per process.
func checkLayout[T any]() error {
	t := typeOf[T]()
	id := typeId(t)

	if v, ok := layouts.Load(id); ok {
		return v.err
	}

	v, _ := layouts.LoadOrStore(id, &layoutVerdict{err: abi.Check(t)})
	return v.err
}
