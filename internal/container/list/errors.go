package list

import "errors"

// ErrEmpty is returned when the first or last node of an empty list is
// requested.
var ErrEmpty = errors.New("container is empty")
