package alloc

import "sync"

// NodeProvider allocates individual nodes for linked containers.
//
// New returns a zeroed node. Free takes a node back; the node must not be
// used afterwards.
type NodeProvider[N any] interface {
	New() *N
	Free(n *N)
}

// HeapNodes allocates nodes with new. Free only clears the node so it does
// not keep neighbours or values reachable.
type HeapNodes[N any] struct{}

// New returns a fresh node.
func (HeapNodes[N]) New() *N {
	return new(N)
}

// Free clears n.
func (HeapNodes[N]) Free(n *N) {
	if n == nil {
		return
	}
	var zero N
	*n = zero
}

// PooledNodes recycles nodes through a sync.Pool.
type PooledNodes[N any] struct {
	pool sync.Pool
}

// NewPooledNodes creates a node pool.
func NewPooledNodes[N any]() *PooledNodes[N] {
	return &PooledNodes[N]{
		pool: sync.Pool{
			New: func() any {
				return new(N)
			},
		},
	}
}

// New retrieves a zeroed node from the pool.
func (p *PooledNodes[N]) New() *N {
	return p.pool.Get().(*N)
}

// Free clears n and returns it to the pool.
func (p *PooledNodes[N]) Free(n *N) {
	if n == nil {
		return
	}
	var zero N
	*n = zero
	p.pool.Put(n)
}

// LimitedNodes enforces a byte budget on top of another node provider.
// Each live node counts ElemSize[N] bytes.
type LimitedNodes[N any] struct {
	mu    sync.Mutex
	inner NodeProvider[N]
	limit int64
	inUse int64
}

// NewLimitedNodes wraps inner with a budget of limit bytes.
// A nil inner allocates from the heap.
func NewLimitedNodes[N any](inner NodeProvider[N], limit int64) *LimitedNodes[N] {
	if inner == nil {
		inner = HeapNodes[N]{}
	}
	return &LimitedNodes[N]{inner: inner, limit: limit}
}

// New returns a node from the wrapped provider.
// It panics with *OutOfMemoryError if the node would exceed the budget.
func (l *LimitedNodes[N]) New() *N {
	need := ElemSize[N]()

	l.mu.Lock()
	if l.inUse+need > l.limit {
		inUse := l.inUse
		l.mu.Unlock()
		panic(&OutOfMemoryError{Requested: need, InUse: inUse, Limit: l.limit})
	}
	l.inUse += need
	l.mu.Unlock()

	return l.inner.New()
}

// Free returns n to the wrapped provider and credits the budget.
func (l *LimitedNodes[N]) Free(n *N) {
	if n == nil {
		return
	}
	l.mu.Lock()
	l.inUse -= ElemSize[N]()
	l.mu.Unlock()
	l.inner.Free(n)
}

// InUse returns the number of budgeted bytes currently held.
func (l *LimitedNodes[N]) InUse() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inUse
}

// TrackedNodes records every node handed out and taken back.
type TrackedNodes[N any] struct {
	inner NodeProvider[N]
	stats *Stats
}

// TrackNodes wraps inner so that its traffic is counted in stats.
// A nil inner allocates from the heap.
func TrackNodes[N any](inner NodeProvider[N], stats *Stats) *TrackedNodes[N] {
	if inner == nil {
		inner = HeapNodes[N]{}
	}
	return &TrackedNodes[N]{inner: inner, stats: stats}
}

// New returns a node from the inner provider.
func (t *TrackedNodes[N]) New() *N {
	n := t.inner.New()
	t.stats.recordAlloc(ElemSize[N]())
	return n
}

// Free hands n back to the inner provider.
func (t *TrackedNodes[N]) Free(n *N) {
	if n == nil {
		return
	}
	t.stats.recordRelease(ElemSize[N]())
	t.inner.Free(n)
}
