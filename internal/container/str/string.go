package str

import (
	"iter"
	"slices"
	"unsafe"

	"github.com/dshills/actl/internal/alloc"
)

// Char is the set of character element types a String can hold.
type Char interface {
	byte | uint16 | rune
}

// String is a growable null-terminated character buffer.
//
// buf is the allocated storage, so len(buf) is the capacity. buf[:n] holds
// the content followed by one zero character; n is never less than one
// once the String has been touched. The zero value is an empty String.
type String[C Char] struct {
	buf      []C
	n        int
	provider alloc.Provider[C]
}

// New creates an empty String backed by the shared empty buffer.
func New[C Char](opts ...Option[C]) *String[C] {
	s := &String[C]{}
	for _, opt := range opts {
		opt(s)
	}
	s.adopt()
	return s
}

// FromChars creates a String holding chars up to the first zero character,
// or all of chars if there is none. The capacity is the content length plus
// one.
func FromChars[C Char](chars []C, opts ...Option[C]) *String[C] {
	s := New(opts...)
	s.assign(chars[:Length(chars)])
	return s
}

// Length returns the number of characters before the first zero character,
// or len(chars) if there is none.
func Length[C Char](chars []C) int {
	for i, c := range chars {
		if c == 0 {
			return i
		}
	}
	return len(chars)
}

func (s *String[C]) adopt() {
	if s.buf == nil {
		s.buf = null[C]()
		s.n = 1
	}
}

func (s *String[C]) alloc() alloc.Provider[C] {
	if s.provider == nil {
		s.provider = alloc.Heap[C]{}
	}
	return s.provider
}

// release hands the buffer back to the provider unless it is the shared one
// and leaves s on the shared buffer.
func (s *String[C]) release() {
	if s.buf != nil && !isNull(s.buf) {
		s.alloc().Release(s.buf)
	}
	s.buf = null[C]()
	s.n = 1
}

// assign replaces the content with chars using an exact-fit buffer.
// chars must not contain a zero character or alias s.
func (s *String[C]) assign(chars []C) {
	s.release()
	if len(chars) == 0 {
		return
	}
	buf := s.alloc().Allocate(len(chars) + 1)
	copy(buf, chars)
	buf[len(chars)] = 0
	s.buf, s.n = buf, len(chars)+1
}

// Len returns the number of content characters. The terminator is not
// counted.
func (s *String[C]) Len() int {
	if s.n == 0 {
		return 0
	}
	return s.n - 1
}

// Cap returns the number of allocated character slots, terminator included.
func (s *String[C]) Cap() int {
	if s.buf == nil {
		return 1
	}
	return len(s.buf)
}

// Size returns the allocated storage in bytes.
func (s *String[C]) Size() int64 {
	return int64(s.Cap()) * alloc.ElemSize[C]()
}

// FullSize returns Size plus the size of the String header.
func (s *String[C]) FullSize() int64 {
	return s.Size() + int64(unsafe.Sizeof(*s))
}

// IsEmpty reports whether the content is empty.
func (s *String[C]) IsEmpty() bool {
	return s.Len() == 0
}

// IsShared reports whether s is on the shared empty buffer.
func (s *String[C]) IsShared() bool {
	return s.buf == nil || isNull(s.buf)
}

// ToRange wraps index into [0, Len()). Negative indices count from the end.
// An empty String maps every index to 0.
func (s *String[C]) ToRange(index int64) int {
	length := int64(s.Len())
	if length == 0 {
		return 0
	}
	index %= length
	if index < 0 {
		index += length
	}
	return int(index)
}

// At returns the character at index. Index Len() is the terminator.
func (s *String[C]) At(index int) C {
	s.adopt()
	return s.buf[index]
}

// Set stores c at index, which must be a content position.
func (s *String[C]) Set(index int, c C) {
	s.buf[index] = c
}

// Chars returns the content followed by the terminator. The slice aliases
// the buffer and must not be written through when s is shared.
func (s *String[C]) Chars() []C {
	s.adopt()
	return s.buf[:s.n:s.n]
}

// Content returns the content without the terminator, aliasing the buffer.
func (s *String[C]) Content() []C {
	s.adopt()
	return s.buf[: s.n-1 : s.n-1]
}

// All returns an iterator over index/character pairs of the content.
func (s *String[C]) All() iter.Seq2[int, C] {
	return func(yield func(int, C) bool) {
		for i, c := range s.Content() {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Clear empties the content and keeps the buffer.
func (s *String[C]) Clear() {
	if s.IsShared() {
		s.adopt()
		return
	}
	s.buf[0] = 0
	s.n = 1
}

// Delete releases the buffer and returns s to the shared empty buffer.
func (s *String[C]) Delete() {
	s.release()
}

// SetCapacity reallocates the buffer to exactly capacity slots, terminator
// included. Content that does not fit is cut and a terminator written in the
// last slot. A capacity of zero is Delete.
func (s *String[C]) SetCapacity(capacity int) {
	if capacity <= 0 {
		s.Delete()
		return
	}
	s.adopt()
	if capacity == len(s.buf) {
		return
	}

	buf := s.alloc().Allocate(capacity)
	keep := min(s.n, capacity)
	copy(buf, s.buf[:keep])
	buf[keep-1] = 0

	s.release()
	s.buf, s.n = buf, keep
}

// ShrinkToFit reduces the capacity to the content length plus one. An empty
// String returns to the shared buffer.
func (s *String[C]) ShrinkToFit() {
	if s.Len() == 0 {
		s.Delete()
		return
	}
	s.SetCapacity(s.n)
}

// insert places chars at index. If the buffer has room the tail, terminator
// included, is shifted in place. Otherwise a buffer of twice the needed size
// is built from the prefix, chars and the suffix.
func (s *String[C]) insert(index int, chars []C) {
	if len(chars) == 0 {
		return
	}
	s.adopt()

	length := s.n - 1
	need := length + len(chars) + 1

	if !isNull(s.buf) && len(s.buf) >= need {
		copy(s.buf[index+len(chars):need], s.buf[index:s.n])
		copy(s.buf[index:], chars)
		s.n = need
		return
	}

	buf := s.alloc().Allocate(need * 2)
	copy(buf, s.buf[:index])
	copy(buf[index:], chars)
	copy(buf[index+len(chars):], s.buf[index:length])
	buf[need-1] = 0

	s.release()
	s.buf, s.n = buf, need
}

// Insert places other's content at index.
func (s *String[C]) Insert(index int, other *String[C]) {
	chars := other.Content()
	if other == s {
		chars = slices.Clone(chars)
	}
	s.insert(index, chars)
}

// InsertChars places chars at index. chars must not contain a zero
// character or alias s.
func (s *String[C]) InsertChars(index int, chars []C) {
	s.insert(index, chars)
}

// Append adds other's content at the end.
func (s *String[C]) Append(other *String[C]) {
	s.Insert(s.Len(), other)
}

// AppendChars adds chars at the end. chars must not contain a zero
// character or alias s.
func (s *String[C]) AppendChars(chars []C) {
	s.insert(s.Len(), chars)
}

// AppendGo adds the characters of a Go string at the end, stopping at the
// first NUL.
func (s *String[C]) AppendGo(text string) {
	chars := encode[C](text)
	s.insert(s.Len(), chars[:Length(chars)])
}

// Erase removes count characters starting at index and shifts the tail,
// terminator included, over them.
func (s *String[C]) Erase(index, count int) {
	if count <= 0 {
		return
	}
	copy(s.buf[index:], s.buf[index+count:s.n])
	s.n -= count
}

// Concat returns a new String holding s followed by other, with an
// exact-fit buffer.
func (s *String[C]) Concat(other *String[C]) *String[C] {
	a, b := s.Content(), other.Content()
	c := &String[C]{provider: s.alloc()}
	c.adopt()
	if len(a)+len(b) == 0 {
		return c
	}

	need := len(a) + len(b) + 1
	buf := c.provider.Allocate(need)
	copy(buf, a)
	copy(buf[len(a):], b)
	buf[need-1] = 0
	c.buf, c.n = buf, need
	return c
}

// Reversed returns a new String with the content in reverse order and the
// same capacity as s.
func (s *String[C]) Reversed() *String[C] {
	content := s.Content()
	r := &String[C]{provider: s.alloc()}
	r.adopt()
	if len(content) == 0 {
		return r
	}

	buf := r.provider.Allocate(s.Cap())
	for i, c := range content {
		buf[len(content)-1-i] = c
	}
	buf[len(content)] = 0
	r.buf, r.n = buf, len(content)+1
	return r
}

// reverse reverses the content in place.
func (s *String[C]) reverse() {
	slices.Reverse(s.buf[:s.n-1])
}

// Equal reports whether s and other have the same content.
func (s *String[C]) Equal(other *String[C]) bool {
	return slices.Equal(s.Content(), other.Content())
}

// Clone returns a copy of s with an exact-fit buffer from the same provider.
func (s *String[C]) Clone() *String[C] {
	c := &String[C]{provider: s.alloc()}
	c.adopt()
	c.Assign(s)
	return c
}

// Assign replaces s's content with a copy of other's.
func (s *String[C]) Assign(other *String[C]) {
	if s == other {
		return
	}
	s.assign(other.Content())
}

// AssignGo replaces the content with a Go string, stopping at the first NUL.
func (s *String[C]) AssignGo(text string) {
	chars := encode[C](text)
	s.assign(chars[:Length(chars)])
}

// Take transfers other's buffer to s and leaves other on the shared empty
// buffer.
func (s *String[C]) Take(other *String[C]) {
	if s == other {
		return
	}
	s.release()
	other.adopt()
	s.buf, s.n, s.provider = other.buf, other.n, other.alloc()
	other.buf, other.n = null[C](), 1
}

// String returns the content as a Go string.
func (s *String[C]) String() string {
	return decode(s.Content())
}
