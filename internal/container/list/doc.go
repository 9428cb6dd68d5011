// Package list provides a doubly-linked sequence and a non-owning
// projection of it over caller-owned values.
//
// List owns a chain of individually allocated nodes. Each node holds one
// element and links to its neighbours; the list keeps the head, the tail,
// and a count. Insertion and removal at a known node are O(1):
//
//	l := list.New[string]()
//	b := l.EmplaceBack("b")
//	l.EmplaceBefore(b, "a")
//	l.EmplaceAfter(b, "c")
//	l.Erase(b)              // [a c]
//
// RefList stores addresses of values owned elsewhere. Its nodes dereference
// to the referenced value, and destroying the list only frees its own nodes:
//
//	x, y := 1, 2
//	refs := list.NewRefList[int]()
//	refs.EmplaceBack(&x)
//	refs.EmplaceBack(&y)
//	*refs.At(1).Ref() = 5   // y == 5
//
// First and Last return ErrEmpty on an empty list. The other operations do
// not validate their arguments: erasing from an empty list, or passing a
// node that belongs to another list, is undefined.
//
// Lists are not safe for concurrent use, and the list must not be modified
// structurally while Foreach or an iterator is running.
package list
