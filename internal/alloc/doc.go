// Package alloc provides the raw element storage used by the containers.
//
// A Provider hands out fixed-size runs of element slots and takes them back
// when a container shrinks, grows into a new buffer, or is deleted. The
// containers treat freshly allocated slots as unconstructed and only read
// slots they have written.
//
// Providers:
//   - Heap: plain make, Release is a no-op
//   - Pool: power-of-two size classes backed by sync.Pool
//   - Limited: enforces a byte budget and panics with *OutOfMemoryError
//   - Tracked: records allocation statistics into a shared Stats
//
// Linked nodes are allocated one at a time through a NodeProvider.
//
// Basic usage:
//
//	var stats alloc.Stats
//	p := alloc.Track[int](alloc.NewPool[int](), &stats)
//	buf := p.Allocate(16)
//	// ... construct elements in buf ...
//	p.Release(buf)
//
// Allocation failure is never reported through an error return. A provider
// that cannot satisfy a request panics, and the panic propagates through the
// container operation that asked for storage.
package alloc
