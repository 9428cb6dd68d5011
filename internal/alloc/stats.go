package alloc

import "sync/atomic"

// Stats accumulates allocation counters. It is safe for concurrent use and
// may be shared by several Tracked providers of different element types.
type Stats struct {
	allocations    atomic.Int64
	releases       atomic.Int64
	bytesAllocated atomic.Int64
	bytesReleased  atomic.Int64
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Allocations    int64
	Releases       int64
	BytesAllocated int64
	BytesReleased  int64
}

// Live returns the number of bytes allocated and not yet released.
func (s Snapshot) Live() int64 {
	return s.BytesAllocated - s.BytesReleased
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Allocations:    s.allocations.Load(),
		Releases:       s.releases.Load(),
		BytesAllocated: s.bytesAllocated.Load(),
		BytesReleased:  s.bytesReleased.Load(),
	}
}

func (s *Stats) recordAlloc(bytes int64) {
	s.allocations.Add(1)
	s.bytesAllocated.Add(bytes)
}

func (s *Stats) recordRelease(bytes int64) {
	s.releases.Add(1)
	s.bytesReleased.Add(bytes)
}

// Tracked records every allocation and release of an inner provider.
type Tracked[T any] struct {
	inner Provider[T]
	stats *Stats
}

// Track wraps inner so that its traffic is counted in stats.
// A nil inner allocates from the heap.
func Track[T any](inner Provider[T], stats *Stats) *Tracked[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Tracked[T]{inner: inner, stats: stats}
}

// Allocate returns n slots from the inner provider.
func (t *Tracked[T]) Allocate(n int) []T {
	buf := t.inner.Allocate(n)
	if buf != nil {
		t.stats.recordAlloc(int64(len(buf)) * ElemSize[T]())
	}
	return buf
}

// Release hands buf back to the inner provider.
func (t *Tracked[T]) Release(buf []T) {
	if buf == nil {
		return
	}
	t.stats.recordRelease(int64(len(buf)) * ElemSize[T]())
	t.inner.Release(buf)
}
