package imvector

import "unsafe"

type Option[T any] func(*Projection[T])

// WithWrap replaces the reflective wrap of T.
func WithWrap[T any](f func(unsafe.Pointer) T) Option[T] {
	return func(p *Projection[T]) { p.Wrap = f }
}

// WithUnwrap replaces the reflective unwrap of T.
func WithUnwrap[T any](f func(T) unsafe.Pointer) Option[T] {
	return func(p *Projection[T]) { p.Unwrap = f }
}

// WithProjection replaces both directions.
func WithProjection[T any](proj Projection[T]) Option[T] {
	return func(p *Projection[T]) { *p = proj }
}
