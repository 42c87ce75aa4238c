package imvector

import (
	"github.com/GreyKit/imvector/sync"
	"go.uber.org/zap"
)

const (
	sourceReflect    = "reflect"
	sourceRegistered = "registered"
)

type entry struct {
	projection any // *Projection[T]
	source     string
}

var projections = sync.NewTypeMap[*entry]()

// Register fixes the projection of T for the rest of the process. Directions
// not given as options are discovered by reflection. Register fails only when
// no Wrap is available; a missing Unwrap leaves T read-only.
func Register[T any](opts ...Option[T]) error {
	proj := new(Projection[T])
	for _, opt := range opts {
		opt(proj)
	}

	proj.fill()
	if proj.Wrap == nil {
		return proj.Missing()
	}

	t := typeOf[T]()
	if _, loaded := projections.Load(typeId(t)); loaded {
		Logger().Warn("projection replaced", zap.String("type", typeName(t)))
	}
	projections.Store(typeId(t), &entry{projection: proj, source: sourceRegistered})
	Logger().Debug("projection registered", zap.String("type", typeName(t)), zap.Bool("read_only", proj.Unwrap == nil))

	return nil
}

// Resolve returns the projection of T, discovering it by reflection on first
// use. Concurrent first uses agree on one stored projection. It fails, without
// storing anything, when T can't be wrapped; the error then lists every
// missing direction.
func Resolve[T any]() (*Projection[T], error) {
	t := typeOf[T]()

	if e, ok := projections.Load(typeId(t)); ok {
		return e.projection.(*Projection[T]), nil
	}

	proj := new(Projection[T])
	proj.fill()
	if proj.Wrap == nil {
		return nil, proj.Missing()
	}

	e, loaded := projections.LoadOrStore(typeId(t), &entry{projection: proj, source: sourceReflect})
	if !loaded {
		Logger().Debug("projection resolved",
			zap.String("type", typeName(t)),
			zap.String("source", sourceReflect),
			zap.Bool("read_only", proj.Unwrap == nil),
		)
	}

	return e.projection.(*Projection[T]), nil
}

// Registered reports whether a projection of T is stored.
func Registered[T any]() bool {
	_, ok := projections.Load(typeId(typeOf[T]()))
	return ok
}

// Unregister drops the stored projection of T.
func Unregister[T any]() {
	projections.Delete(typeId(typeOf[T]()))
}
