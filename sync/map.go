package sync

import "github.com/puzpuzpuz/xsync"

// TypeMap stores one value per type identity (the address of the type's
// runtime descriptor). V should not be an interface type: a nil interface
// value can't be loaded back out of the underlying map.
type TypeMap[V any] struct {
	m *xsync.MapOf[uintptr, V]
}

func NewTypeMap[V any]() *TypeMap[V] {
	return &TypeMap[V]{m: xsync.NewIntegerMapOf[uintptr, V]()}
}

func (m *TypeMap[V]) Load(id uintptr) (V, bool) {
	return m.m.Load(id)
}
func (m *TypeMap[V]) Store(id uintptr, value V) {
	m.m.Store(id, value)
}

// LoadOrStore returns the existing value for id if present. Otherwise, it
// stores and returns value. loaded is true if the value was already there.
func (m *TypeMap[V]) LoadOrStore(id uintptr, value V) (actual V, loaded bool) {
	return m.m.LoadOrStore(id, value)
}
func (m *TypeMap[V]) LoadAndDelete(id uintptr) (value V, loaded bool) {
	return m.m.LoadAndDelete(id)
}
func (m *TypeMap[V]) Delete(id uintptr) {
	m.m.Delete(id)
}
func (m *TypeMap[V]) Len() int {
	return m.m.Size()
}
func (m *TypeMap[V]) Range(f func(id uintptr, value V) (shouldContinue bool)) {
	m.m.Range(f)
}
