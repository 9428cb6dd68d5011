package list

import "github.com/dshills/actl/internal/alloc"

// Option configures a List during creation.
type Option[T any] func(*List[T])

// WithNodes sets the node provider. Nil keeps the heap provider.
func WithNodes[T any](p alloc.NodeProvider[Node[T]]) Option[T] {
	return func(l *List[T]) {
		if p != nil {
			l.nodes = p
		}
	}
}
