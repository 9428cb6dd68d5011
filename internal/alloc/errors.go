package alloc

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory indicates a provider could not satisfy an allocation.
var ErrOutOfMemory = errors.New("out of memory")

// ErrUnknownKind indicates an unrecognized provider kind in configuration.
var ErrUnknownKind = errors.New("unknown provider kind")

// OutOfMemoryError describes an allocation that exceeded a provider's budget.
// Limited panics with a value of this type.
type OutOfMemoryError struct {
	// Requested is the size of the failed request in bytes.
	Requested int64
	// InUse is the number of bytes held when the request was made.
	InUse int64
	// Limit is the provider's budget in bytes.
	Limit int64
}

// Error implements the error interface.
func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("out of memory: requested %d bytes with %d of %d in use", e.Requested, e.InUse, e.Limit)
}

// Unwrap returns ErrOutOfMemory.
func (e *OutOfMemoryError) Unwrap() error {
	return ErrOutOfMemory
}
