package alloc

import "fmt"

// Kind names a provider implementation in configuration.
type Kind string

const (
	// KindHeap allocates from the Go heap.
	KindHeap Kind = "heap"
	// KindPool recycles storage through size-classed pools.
	KindPool Kind = "pool"
)

// ParseKind validates a configured provider name. Empty selects KindHeap.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindHeap:
		return KindHeap, nil
	case KindPool:
		return KindPool, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// New builds an element provider of the given kind.
// A positive limit adds a byte budget; a non-nil stats adds tracking.
func New[T any](kind Kind, limit int64, stats *Stats) (Provider[T], error) {
	var p Provider[T]
	switch kind {
	case "", KindHeap:
		p = Heap[T]{}
	case KindPool:
		p = NewPool[T]()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if limit > 0 {
		p = NewLimited(p, limit)
	}
	if stats != nil {
		p = Track(p, stats)
	}
	return p, nil
}

// NewNodes builds a node provider of the given kind.
// A positive limit adds a byte budget; a non-nil stats adds tracking.
func NewNodes[N any](kind Kind, limit int64, stats *Stats) (NodeProvider[N], error) {
	var p NodeProvider[N]
	switch kind {
	case "", KindHeap:
		p = HeapNodes[N]{}
	case KindPool:
		p = NewPooledNodes[N]()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	if limit > 0 {
		p = NewLimitedNodes(p, limit)
	}
	if stats != nil {
		p = TrackNodes(p, stats)
	}
	return p, nil
}
