package array

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dshills/actl/internal/alloc"
	"github.com/dshills/actl/internal/capability"
)

// NullIndex is returned by lookups that find nothing.
// It is the all-bits-set value of int.
const NullIndex = -1

// Array is a contiguous growable sequence.
//
// buf is the allocated storage, so len(buf) is the capacity. Slots in
// buf[:n] are live; slots in buf[n:] are reserved and hold zero values.
type Array[T any] struct {
	buf      []T
	n        int
	provider alloc.Provider[T]
}

func newArray[T any](opts []Option[T]) *Array[T] {
	a := &Array[T]{provider: alloc.Heap[T]{}}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// New creates an array with room for capacity elements and no live elements.
// A capacity of zero allocates nothing.
func New[T any](capacity int, opts ...Option[T]) *Array[T] {
	a := newArray(opts)
	a.SetCapacity(capacity)
	return a
}

// Copy creates an array holding copies of src, with capacity exactly len(src).
// Elements implementing capability.Cloner are deep-copied.
func Copy[T any](src []T, opts ...Option[T]) *Array[T] {
	a := newArray(opts)
	if len(src) == 0 {
		return a
	}
	a.buf = a.alloc().Allocate(len(src))
	for i := range src {
		a.buf[i] = capability.Copy(&src[i])
	}
	a.n = len(src)
	return a
}

// DeepCopy is Copy restricted to element types that implement Clone.
func DeepCopy[T capability.Cloner[T]](src []T, opts ...Option[T]) *Array[T] {
	a := newArray(opts)
	if len(src) == 0 {
		return a
	}
	a.buf = a.alloc().Allocate(len(src))
	for i := range src {
		a.buf[i] = src[i].Clone()
	}
	a.n = len(src)
	return a
}

// Move creates an array by relocating the elements of *src in order.
// The source slots are cleared and *src is truncated to length zero.
func Move[T any](src *[]T, opts ...Option[T]) *Array[T] {
	a := newArray(opts)
	s := *src
	if len(s) > 0 {
		a.buf = a.alloc().Allocate(len(s))
		for i := range s {
			capability.Relocate(&a.buf[i], &s[i])
		}
		a.n = len(s)
	}
	*src = s[:0]
	return a
}

// Sized creates an array of length elements, each a copy of v.
func Sized[T any](length int, v T, opts ...Option[T]) *Array[T] {
	a := newArray(opts)
	if length <= 0 {
		return a
	}
	a.buf = a.alloc().Allocate(length)
	for i := range a.buf {
		a.buf[i] = capability.Copy(&v)
	}
	a.n = length
	return a
}

// FromSlice creates an array holding copies of s, reserving cap(s) slots.
func FromSlice[T any](s []T, opts ...Option[T]) *Array[T] {
	a := New(cap(s), opts...)
	for i := range s {
		a.buf[i] = capability.Copy(&s[i])
	}
	a.n = len(s)
	return a
}

func (a *Array[T]) alloc() alloc.Provider[T] {
	if a.provider == nil {
		a.provider = alloc.Heap[T]{}
	}
	return a.provider
}

// Clone returns a copy of a with the same capacity and provider.
func (a *Array[T]) Clone() *Array[T] {
	c := &Array[T]{provider: a.alloc()}
	c.Assign(a)
	return c
}

// Assign replaces the contents of a with copies of other's elements.
// The capacity becomes other's capacity.
func (a *Array[T]) Assign(other *Array[T]) {
	if a == other {
		return
	}
	a.Clear()
	a.SetCapacity(other.Cap())
	for i := 0; i < other.n; i++ {
		a.buf[i] = capability.Copy(&other.buf[i])
	}
	a.n = other.n
}

// Take transfers other's buffer to a, deleting a's previous contents.
// other is left empty with no allocation.
func (a *Array[T]) Take(other *Array[T]) {
	if a == other {
		return
	}
	a.Delete()
	a.buf, a.n, a.provider = other.buf, other.n, other.alloc()
	other.buf, other.n = nil, 0
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int {
	return a.n
}

// Cap returns the number of allocated slots.
func (a *Array[T]) Cap() int {
	return len(a.buf)
}

// Size returns the size of the live elements in bytes.
func (a *Array[T]) Size() int64 {
	return int64(a.n) * alloc.ElemSize[T]()
}

// IsEmpty reports whether a has no live elements.
func (a *Array[T]) IsEmpty() bool {
	return a.n == 0
}

// ToRange wraps index into [0, Len()). Negative indices count from the end.
// It returns NullIndex if the array is empty.
func (a *Array[T]) ToRange(index int64) int {
	if a.n == 0 {
		return NullIndex
	}
	length := int64(a.n)
	index %= length
	if index < 0 {
		index += length
	}
	return int(index)
}

// At returns a pointer to the element at index. The index is not checked
// against Len.
func (a *Array[T]) At(index int) *T {
	return &a.buf[index]
}

// Get returns the element at index. The index is not checked against Len.
func (a *Array[T]) Get(index int) T {
	return a.buf[index]
}

// Set assigns v to the live element at index.
func (a *Array[T]) Set(index int, v T) {
	a.buf[index] = v
}

// Clear destroys all live elements and keeps the buffer.
func (a *Array[T]) Clear() {
	capability.DestroyAll(a.buf[:a.n])
	a.n = 0
}

// Delete destroys all live elements and releases the buffer.
func (a *Array[T]) Delete() {
	if a.buf == nil {
		return
	}
	a.Clear()
	a.alloc().Release(a.buf)
	a.buf = nil
}

// SetCapacity reallocates the buffer to hold exactly capacity slots.
//
// Existing elements are relocated into the new buffer; elements that do not
// fit are destroyed. A capacity of zero releases everything. Asking for the
// current capacity does nothing.
func (a *Array[T]) SetCapacity(capacity int) {
	if capacity <= 0 {
		a.Delete()
		return
	}
	if capacity == len(a.buf) {
		return
	}

	buf := a.alloc().Allocate(capacity)
	keep := min(a.n, capacity)
	for i := 0; i < keep; i++ {
		capability.Relocate(&buf[i], &a.buf[i])
	}
	capability.DestroyAll(a.buf[keep:a.n])

	if a.buf != nil {
		a.provider.Release(a.buf)
	}
	a.buf = buf
	a.n = keep
}

// ShrinkToFit reduces the capacity to the length.
func (a *Array[T]) ShrinkToFit() {
	a.SetCapacity(a.n)
}

// Reinit destroys the element at index and stores v in its place.
func (a *Array[T]) Reinit(index int, v T) *T {
	capability.Destroy(&a.buf[index])
	a.buf[index] = v
	return &a.buf[index]
}

// EmplaceBack appends v, doubling the capacity when the buffer is full.
// It returns a pointer to the stored element, valid until the next growth.
func (a *Array[T]) EmplaceBack(v T) *T {
	if a.n == len(a.buf) {
		if len(a.buf) == 0 {
			a.SetCapacity(1)
		} else {
			a.SetCapacity(len(a.buf) * 2)
		}
	}
	a.buf[a.n] = v
	a.n++
	return &a.buf[a.n-1]
}

// EraseBack destroys the last element.
func (a *Array[T]) EraseBack() {
	a.n--
	capability.Destroy(&a.buf[a.n])
}

// Emplace inserts v at index, shifting later elements toward the end.
// The capacity doubles (minimum 2) when fewer than two slots are free.
func (a *Array[T]) Emplace(index int, v T) *T {
	if len(a.buf)-a.n < 2 {
		if len(a.buf) == 0 {
			a.SetCapacity(2)
		} else {
			a.SetCapacity(len(a.buf) * 2)
		}
	}

	for i := a.n; i > index; i-- {
		capability.Relocate(&a.buf[i], &a.buf[i-1])
	}
	a.n++
	a.buf[index] = v
	return &a.buf[index]
}

// Erase destroys the element at index and shifts later elements toward the
// start.
func (a *Array[T]) Erase(index int) {
	capability.Destroy(&a.buf[index])
	a.n--
	for i := index; i < a.n; i++ {
		capability.Relocate(&a.buf[i], &a.buf[i+1])
	}
}

// IndexFunc returns the index of the first element satisfying match, or
// NullIndex.
func (a *Array[T]) IndexFunc(match func(T) bool) int {
	for i := 0; i < a.n; i++ {
		if match(a.buf[i]) {
			return i
		}
	}
	return NullIndex
}

// Index returns the index of the first element equal to v, or NullIndex.
func Index[T comparable](a *Array[T], v T) int {
	for i := 0; i < a.n; i++ {
		if a.buf[i] == v {
			return i
		}
	}
	return NullIndex
}

// Contains reports whether ref points at one of a's live elements.
func (a *Array[T]) Contains(ref *T) bool {
	if ref == nil {
		return false
	}
	for i := 0; i < a.n; i++ {
		if &a.buf[i] == ref {
			return true
		}
	}
	return false
}

// Slice returns the live elements. The slice aliases the buffer and is
// invalidated by any operation that changes the capacity.
func (a *Array[T]) Slice() []T {
	return a.buf[:a.n:a.n]
}

// All returns an iterator over index/element pairs from first to last.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.n; i++ {
			if !yield(i, a.buf[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements from first to last.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.n; i++ {
			if !yield(a.buf[i]) {
				return
			}
		}
	}
}

// ToSlice returns copies of the elements in a new slice with the array's
// capacity.
func (a *Array[T]) ToSlice() []T {
	s := make([]T, a.n, len(a.buf))
	for i := 0; i < a.n; i++ {
		s[i] = capability.Copy(&a.buf[i])
	}
	return s
}

// MoveToSlice relocates the elements into *dst, replacing its contents, and
// deletes the array.
func (a *Array[T]) MoveToSlice(dst *[]T) {
	s := (*dst)[:0]
	for i := 0; i < a.n; i++ {
		var v T
		capability.Relocate(&v, &a.buf[i])
		s = append(s, v)
	}
	*dst = s
	a.n = 0
	a.Delete()
}

// String formats the array as "[len]{ e0, e1 }".
func (a *Array[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d]{ ", a.n)
	for i := 0; i < a.n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, a.buf[i])
	}
	if a.n > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteByte('}')
	return sb.String()
}
