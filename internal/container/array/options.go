package array

import "github.com/dshills/actl/internal/alloc"

// Option configures an Array during creation.
type Option[T any] func(*Array[T])

// WithProvider sets the storage provider. Nil keeps the heap provider.
func WithProvider[T any](p alloc.Provider[T]) Option[T] {
	return func(a *Array[T]) {
		if p != nil {
			a.provider = p
		}
	}
}
