package alloc

import (
	"math/bits"
	"sync"
)

// maxPooledClass is the largest size class kept by a Pool (1<<maxPooledClass slots).
// Larger requests are served from the heap and dropped on release.
const maxPooledClass = 24

// Pool recycles element storage in power-of-two size classes.
// It uses sync.Pool per class, so it is safe for concurrent use and
// idle storage can be reclaimed by the garbage collector.
//
// Usage note: a Pool pays off when containers grow and shrink repeatedly,
// for example scratch arrays rebuilt on every frame. For containers that are
// built once the Heap provider is simpler.
type Pool[T any] struct {
	classes [maxPooledClass + 1]sync.Pool
}

// NewPool creates an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

// sizeClass returns the class index whose capacity is the smallest power of
// two that holds n slots.
func sizeClass(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Allocate returns n slots. The backing capacity is rounded up to the size
// class; the returned length is exactly n.
func (p *Pool[T]) Allocate(n int) []T {
	if n <= 0 {
		return nil
	}
	class := sizeClass(n)
	if class > maxPooledClass {
		return make([]T, n)
	}
	if v := p.classes[class].Get(); v != nil {
		s := v.(*[]T)
		return (*s)[:n]
	}
	return make([]T, n, 1<<class)
}

// Release returns buf to its size class.
// The slots are cleared first so pooled storage holds no references.
func (p *Pool[T]) Release(buf []T) {
	if buf == nil {
		return
	}
	full := buf[:cap(buf)]
	class := sizeClass(len(full))
	// Only exact class sizes can be reissued safely.
	if class > maxPooledClass || len(full) != 1<<class {
		return
	}
	clear(full)
	p.classes[class].Put(&full)
}
