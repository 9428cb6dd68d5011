package alloc

import (
	"sync"
	"unsafe"
)

// Provider allocates and releases runs of element slots.
//
// Allocate returns a slice of exactly n slots. The contents are unspecified
// and must be treated as unconstructed. Release takes back a slice previously
// returned by Allocate with its original length; it must not be called with
// nil or with storage the provider did not hand out.
type Provider[T any] interface {
	Allocate(n int) []T
	Release(buf []T)
}

// ElemSize returns the size in bytes of one T.
func ElemSize[T any]() int64 {
	var zero T
	return int64(unsafe.Sizeof(zero))
}

// Heap allocates from the Go heap. Release is a no-op; the garbage collector
// reclaims storage once the container drops it.
type Heap[T any] struct{}

// Allocate returns n zeroed slots.
func (Heap[T]) Allocate(n int) []T {
	if n <= 0 {
		return nil
	}
	return make([]T, n)
}

// Release does nothing.
func (Heap[T]) Release([]T) {}

// Limited enforces a byte budget on top of another provider.
type Limited[T any] struct {
	mu    sync.Mutex
	inner Provider[T]
	limit int64
	inUse int64
}

// NewLimited wraps inner with a budget of limit bytes.
// A nil inner allocates from the heap.
func NewLimited[T any](inner Provider[T], limit int64) *Limited[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Limited[T]{inner: inner, limit: limit}
}

// Allocate returns n slots from the wrapped provider.
// It panics with *OutOfMemoryError if the request would exceed the budget.
func (l *Limited[T]) Allocate(n int) []T {
	need := int64(n) * ElemSize[T]()

	l.mu.Lock()
	if l.inUse+need > l.limit {
		inUse := l.inUse
		l.mu.Unlock()
		panic(&OutOfMemoryError{Requested: need, InUse: inUse, Limit: l.limit})
	}
	l.inUse += need
	l.mu.Unlock()

	return l.inner.Allocate(n)
}

// Release returns buf to the wrapped provider and credits the budget.
func (l *Limited[T]) Release(buf []T) {
	if buf == nil {
		return
	}
	l.mu.Lock()
	l.inUse -= int64(len(buf)) * ElemSize[T]()
	l.mu.Unlock()
	l.inner.Release(buf)
}

// InUse returns the number of budgeted bytes currently held.
func (l *Limited[T]) InUse() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inUse
}

// Limit returns the budget in bytes.
func (l *Limited[T]) Limit() int64 {
	return l.limit
}
