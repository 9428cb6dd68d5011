package script

import "errors"

// Errors for script runtime operations.
var (
	// ErrScript wraps every failure of a script run: Lua errors, exhausted
	// allocation budgets and timeouts.
	ErrScript = errors.New("script failed")

	// ErrRuntimeClosed is returned when operating on a closed runtime.
	ErrRuntimeClosed = errors.New("script runtime is closed")
)
