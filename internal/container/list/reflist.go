package list

import "iter"

// RefNode is a view of a List[*T] node that dereferences to the referenced
// value. It shares the node's memory; converting between the two is free.
type RefNode[T any] Node[*T]

func refNode[T any](n *Node[*T]) *RefNode[T] {
	return (*RefNode[T])(n)
}

func (n *RefNode[T]) node() *Node[*T] {
	return (*Node[*T])(n)
}

// Ref returns the referenced value.
func (n *RefNode[T]) Ref() *T {
	return n.Value
}

// Next returns the following node, or nil at the tail.
func (n *RefNode[T]) Next() *RefNode[T] {
	return refNode(n.next)
}

// Prev returns the preceding node, or nil at the head.
func (n *RefNode[T]) Prev() *RefNode[T] {
	return refNode(n.prev)
}

// HasNext reports whether n is not the tail.
func (n *RefNode[T]) HasNext() bool {
	return n.next != nil
}

// HasPrev reports whether n is not the head.
func (n *RefNode[T]) HasPrev() bool {
	return n.prev != nil
}

// Advance returns the node count steps after n, or nil past the tail.
func (n *RefNode[T]) Advance(count int) *RefNode[T] {
	return refNode(n.node().Advance(count))
}

// Rewind returns the node count steps before n, or nil past the head.
func (n *RefNode[T]) Rewind(count int) *RefNode[T] {
	return refNode(n.node().Rewind(count))
}

// RefList is a linked sequence of references to values owned elsewhere.
//
// It is a List of pointers with a node view that dereferences them. The
// list owns only its nodes: erasing a node or clearing the list never
// destroys the referenced values.
type RefList[T any] struct {
	ptrs List[*T]
}

// NewRefList creates an empty reference list.
func NewRefList[T any](opts ...Option[*T]) *RefList[T] {
	r := &RefList[T]{}
	for _, opt := range opts {
		opt(&r.ptrs)
	}
	return r
}

// Pointers returns the backing list of addresses.
func (r *RefList[T]) Pointers() *List[*T] {
	return &r.ptrs
}

// Len returns the number of references.
func (r *RefList[T]) Len() int {
	return r.ptrs.Len()
}

// IsEmpty reports whether the list holds no references.
func (r *RefList[T]) IsEmpty() bool {
	return r.ptrs.IsEmpty()
}

// First returns the head node, or ErrEmpty.
func (r *RefList[T]) First() (*RefNode[T], error) {
	n, err := r.ptrs.First()
	if err != nil {
		return nil, err
	}
	return refNode(n), nil
}

// Last returns the tail node, or ErrEmpty.
func (r *RefList[T]) Last() (*RefNode[T], error) {
	n, err := r.ptrs.Last()
	if err != nil {
		return nil, err
	}
	return refNode(n), nil
}

// At returns the node at index. The index is not checked.
func (r *RefList[T]) At(index int) *RefNode[T] {
	return refNode(r.ptrs.At(index))
}

// EmplaceBack appends a reference to ref.
func (r *RefList[T]) EmplaceBack(ref *T) *RefNode[T] {
	return refNode(r.ptrs.EmplaceBack(ref))
}

// EmplaceFront prepends a reference to ref.
func (r *RefList[T]) EmplaceFront(ref *T) *RefNode[T] {
	return refNode(r.ptrs.EmplaceFront(ref))
}

// EmplaceBefore inserts a reference to ref before anchor.
func (r *RefList[T]) EmplaceBefore(anchor *RefNode[T], ref *T) *RefNode[T] {
	return refNode(r.ptrs.EmplaceBefore(anchor.node(), ref))
}

// EmplaceAfter inserts a reference to ref after anchor.
func (r *RefList[T]) EmplaceAfter(anchor *RefNode[T], ref *T) *RefNode[T] {
	return refNode(r.ptrs.EmplaceAfter(anchor.node(), ref))
}

// EraseBack removes the tail reference. The list must not be empty.
func (r *RefList[T]) EraseBack() {
	r.ptrs.EraseBack()
}

// EraseFront removes the head reference. The list must not be empty.
func (r *RefList[T]) EraseFront() {
	r.ptrs.EraseFront()
}

// Erase removes target, which must belong to r.
func (r *RefList[T]) Erase(target *RefNode[T]) {
	r.ptrs.Erase(target.node())
}

// Contains reports whether target is one of r's nodes.
func (r *RefList[T]) Contains(target *RefNode[T]) bool {
	return r.ptrs.Contains(target.node())
}

// Clear frees every node. The referenced values are untouched.
func (r *RefList[T]) Clear() {
	r.ptrs.Clear()
}

// Foreach calls fn for each node from head to tail with its position.
func (r *RefList[T]) Foreach(fn func(n *RefNode[T], index int)) {
	r.ptrs.Foreach(func(n *Node[*T], i int) {
		fn(refNode(n), i)
	})
}

// All returns an iterator over position/node pairs from head to tail.
func (r *RefList[T]) All() iter.Seq2[int, *RefNode[T]] {
	return func(yield func(int, *RefNode[T]) bool) {
		for i, n := range r.ptrs.All() {
			if !yield(i, refNode(n)) {
				return
			}
		}
	}
}

// Refs returns an iterator over the referenced values from head to tail.
func (r *RefList[T]) Refs() iter.Seq[*T] {
	return r.ptrs.Values()
}

// Clone returns a list referencing the same values in the same order.
func (r *RefList[T]) Clone() *RefList[T] {
	c := &RefList[T]{}
	c.ptrs.nodes = r.ptrs.alloc()
	c.ptrs.Assign(&r.ptrs)
	return c
}

// Assign makes r reference the same values as other.
func (r *RefList[T]) Assign(other *RefList[T]) {
	r.ptrs.Assign(&other.ptrs)
}

// Take transfers other's nodes to r, leaving other empty.
func (r *RefList[T]) Take(other *RefList[T]) {
	r.ptrs.Take(&other.ptrs)
}
