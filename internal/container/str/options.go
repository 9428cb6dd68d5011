package str

import "github.com/dshills/actl/internal/alloc"

// Option configures a String during creation.
type Option[C Char] func(*String[C])

// WithProvider sets the storage provider. Nil keeps the heap provider.
func WithProvider[C Char](p alloc.Provider[C]) Option[C] {
	return func(s *String[C]) {
		if p != nil {
			s.provider = p
		}
	}
}
