package list

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dshills/actl/internal/alloc"
	"github.com/dshills/actl/internal/capability"
)

// Node holds one element of a List and links to its neighbours.
// Nodes are created by the list and must not be copied.
type Node[T any] struct {
	prev, next *Node[T]

	// Value is the element owned by this node.
	Value T
}

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Prev returns the preceding node, or nil at the head.
func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}

// HasNext reports whether n is not the tail.
func (n *Node[T]) HasNext() bool {
	return n.next != nil
}

// HasPrev reports whether n is not the head.
func (n *Node[T]) HasPrev() bool {
	return n.prev != nil
}

// Advance returns the node count steps after n. Stepping past the tail
// returns nil.
func (n *Node[T]) Advance(count int) *Node[T] {
	cur := n
	for ; count > 0 && cur != nil; count-- {
		cur = cur.next
	}
	return cur
}

// Rewind returns the node count steps before n. Stepping past the head
// returns nil.
func (n *Node[T]) Rewind(count int) *Node[T] {
	cur := n
	for ; count > 0 && cur != nil; count-- {
		cur = cur.prev
	}
	return cur
}

// List is a doubly-linked sequence that owns its nodes.
// The zero value is an empty list that allocates nodes from the heap.
type List[T any] struct {
	first, last *Node[T]
	length      int
	nodes       alloc.NodeProvider[Node[T]]
}

// New creates an empty list.
func New[T any](opts ...Option[T]) *List[T] {
	l := &List[T]{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Of creates a list holding copies of values in order.
func Of[T any](values ...T) *List[T] {
	return FromSlice(values)
}

// FromSlice creates a list holding copies of s in order.
func FromSlice[T any](s []T, opts ...Option[T]) *List[T] {
	l := New(opts...)
	for i := range s {
		l.EmplaceBack(capability.Copy(&s[i]))
	}
	return l
}

func (l *List[T]) alloc() alloc.NodeProvider[Node[T]] {
	if l.nodes == nil {
		l.nodes = alloc.HeapNodes[Node[T]]{}
	}
	return l.nodes
}

func (l *List[T]) newNode(v T) *Node[T] {
	n := l.alloc().New()
	n.Value = v
	return n
}

func (l *List[T]) freeNode(n *Node[T]) {
	capability.Destroy(&n.Value)
	n.prev, n.next = nil, nil
	l.alloc().Free(n)
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.length
}

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool {
	return l.length == 0
}

// First returns the head node, or ErrEmpty.
func (l *List[T]) First() (*Node[T], error) {
	if l.length == 0 {
		return nil, ErrEmpty
	}
	return l.first, nil
}

// Last returns the tail node, or ErrEmpty.
func (l *List[T]) Last() (*Node[T], error) {
	if l.length == 0 {
		return nil, ErrEmpty
	}
	return l.last, nil
}

// At returns the node at index by walking from the head. The index is not
// checked; walking past the tail returns nil.
func (l *List[T]) At(index int) *Node[T] {
	return l.first.Advance(index)
}

// EmplaceBack appends v as the new tail.
func (l *List[T]) EmplaceBack(v T) *Node[T] {
	n := l.newNode(v)
	if l.first == nil {
		l.first = n
		l.last = n
	} else {
		l.last.next = n
		n.prev = l.last
		l.last = n
	}
	l.length++
	return n
}

// EmplaceFront prepends v as the new head.
func (l *List[T]) EmplaceFront(v T) *Node[T] {
	n := l.newNode(v)
	if l.first == nil {
		l.first = n
		l.last = n
	} else {
		l.first.prev = n
		n.next = l.first
		l.first = n
	}
	l.length++
	return n
}

// EmplaceBefore inserts v immediately before anchor, which must belong to l.
func (l *List[T]) EmplaceBefore(anchor *Node[T], v T) *Node[T] {
	n := l.newNode(v)
	n.next = anchor
	n.prev = anchor.prev
	anchor.prev = n
	if n.prev != nil {
		n.prev.next = n
	} else {
		l.first = n
	}
	l.length++
	return n
}

// EmplaceAfter inserts v immediately after anchor, which must belong to l.
func (l *List[T]) EmplaceAfter(anchor *Node[T], v T) *Node[T] {
	n := l.newNode(v)
	n.prev = anchor
	n.next = anchor.next
	anchor.next = n
	if n.next != nil {
		n.next.prev = n
	} else {
		l.last = n
	}
	l.length++
	return n
}

// EraseBack destroys the tail. The list must not be empty.
func (l *List[T]) EraseBack() {
	n := l.last
	l.last = n.prev
	if l.last != nil {
		l.last.next = nil
	} else {
		l.first = nil
	}
	l.length--
	l.freeNode(n)
}

// EraseFront destroys the head. The list must not be empty.
func (l *List[T]) EraseFront() {
	n := l.first
	l.first = n.next
	if l.first != nil {
		l.first.prev = nil
	} else {
		l.last = nil
	}
	l.length--
	l.freeNode(n)
}

// Erase unlinks and destroys target, which must belong to l.
func (l *List[T]) Erase(target *Node[T]) {
	l.length--
	switch {
	case l.length == 0:
		l.first = nil
		l.last = nil
	case target == l.first:
		l.first = target.next
		l.first.prev = nil
	case target == l.last:
		l.last = target.prev
		l.last.next = nil
	default:
		target.prev.next = target.next
		target.next.prev = target.prev
	}
	l.freeNode(target)
}

// Contains reports whether target is one of l's nodes.
func (l *List[T]) Contains(target *Node[T]) bool {
	if target == nil {
		return false
	}
	for n := l.first; n != nil; n = n.next {
		if n == target {
			return true
		}
	}
	return false
}

// Clear destroys every node from head to tail.
func (l *List[T]) Clear() {
	n := l.first
	for n != nil {
		next := n.next
		l.freeNode(n)
		n = next
	}
	l.first = nil
	l.last = nil
	l.length = 0
}

// Foreach calls fn for each node from head to tail with its zero-based
// position.
func (l *List[T]) Foreach(fn func(n *Node[T], index int)) {
	i := 0
	for n := l.first; n != nil; n = n.next {
		fn(n, i)
		i++
	}
}

// All returns an iterator over position/node pairs from head to tail.
func (l *List[T]) All() iter.Seq2[int, *Node[T]] {
	return func(yield func(int, *Node[T]) bool) {
		i := 0
		for n := l.first; n != nil; n = n.next {
			if !yield(i, n) {
				return
			}
			i++
		}
	}
}

// Values returns an iterator over the elements from head to tail.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.first; n != nil; n = n.next {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements from tail to head.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.last; n != nil; n = n.prev {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Clone returns a list with copies of l's elements in new nodes.
func (l *List[T]) Clone() *List[T] {
	c := &List[T]{nodes: l.alloc()}
	c.Assign(l)
	return c
}

// Assign replaces l's elements with copies of other's.
func (l *List[T]) Assign(other *List[T]) {
	if l == other {
		return
	}
	l.Clear()
	for n := other.first; n != nil; n = n.next {
		l.EmplaceBack(capability.Copy(&n.Value))
	}
}

// Take transfers other's nodes to l, destroying l's previous nodes.
// other is left empty.
func (l *List[T]) Take(other *List[T]) {
	if l == other {
		return
	}
	l.Clear()
	l.first, l.last, l.length, l.nodes = other.first, other.last, other.length, other.alloc()
	other.first, other.last, other.length = nil, nil, 0
}

// ToSlice returns copies of the elements in order.
func (l *List[T]) ToSlice() []T {
	s := make([]T, 0, l.length)
	for n := l.first; n != nil; n = n.next {
		s = append(s, capability.Copy(&n.Value))
	}
	return s
}

// String formats the list as "[len]{ e0, e1 }".
func (l *List[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d]{", l.length)
	l.Foreach(func(n *Node[T], i int) {
		if i != 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, " %v", n.Value)
	})
	sb.WriteString(" }")
	return sb.String()
}
