// Package capability describes what the containers may do with their
// element values.
//
// Every Go value can be relocated by assignment, so moving an element from
// one slot to another is always available and the containers always prefer
// it: the destination receives the value and the source slot is zeroed.
// Copying defaults to assignment as well. Element types that own resources
// needing an independent duplicate implement Cloner, and types that must
// release something when a container destroys them implement Destroyer.
//
// Generic code that requires deep copies constrains its type parameter on
// Cloner, so a type without Clone is rejected by the compiler.
package capability

// Cloner is implemented by element types that produce an independent deep
// copy of themselves.
type Cloner[T any] interface {
	Clone() T
}

// Destroyer is implemented by element types that release resources when a
// container destroys them. Destroy is called exactly once per live element,
// on a pointer to the slot, before the slot is cleared.
type Destroyer interface {
	Destroy()
}

// CanClone reports whether T implements Cloner[T].
func CanClone[T any]() bool {
	var zero T
	_, ok := any(zero).(Cloner[T])
	if ok {
		return true
	}
	_, ok = any(&zero).(Cloner[T])
	return ok
}

// Copy returns a copy of v suitable for storing in a second container.
// Types implementing Cloner[T] are deep-copied; others are copied by
// assignment.
func Copy[T any](v *T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return *v
}

// Relocate moves the value in src to dst and clears src.
// dst must not hold a live value.
func Relocate[T any](dst, src *T) {
	*dst = *src
	var zero T
	*src = zero
}

// Destroy ends the lifetime of the value in slot: it runs Destroy if the
// type implements Destroyer and then clears the slot.
func Destroy[T any](slot *T) {
	if d, ok := any(slot).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*slot = zero
}

// DestroyAll destroys every value in slots, last to first.
func DestroyAll[T any](slots []T) {
	for i := len(slots) - 1; i >= 0; i-- {
		Destroy(&slots[i])
	}
}
