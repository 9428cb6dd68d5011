// Package array provides Array, a contiguous growable sequence that manages
// its own element storage.
//
// An Array owns one buffer obtained from an alloc.Provider. The first Len()
// slots hold live elements; the remaining Cap()-Len() slots are reserved but
// unconstructed. Growth doubles the capacity, so EmplaceBack is amortized
// O(1). Insertion and removal in the middle shift the tail one slot,
// relocating elements rather than copying them.
//
// Basic usage:
//
//	a := array.New[int](0)
//	a.EmplaceBack(1)
//	a.EmplaceBack(3)
//	a.Emplace(1, 2)      // [1 2 3]
//	a.Erase(0)           // [2 3]
//	i := a.ToRange(-1)   // 1
//
// Indexed access is unchecked beyond what the Go runtime does for slices.
// Reading a slot in [Len(), Cap()) returns whatever the slot holds; callers
// validate indices themselves or use ToRange and Index, which report
// NullIndex instead of failing.
//
// An Array is not safe for concurrent use.
package array
