package str

import (
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

// FromGo creates a String from a Go string, stopping at the first NUL.
// Byte strings hold UTF-8, uint16 strings UTF-16 code units and rune
// strings code points.
func FromGo[C Char](text string, opts ...Option[C]) *String[C] {
	s := New(opts...)
	s.AssignGo(text)
	return s
}

// Graphemes returns the number of user-perceived characters in a UTF-8
// String.
func Graphemes(s *String[byte]) int {
	return uniseg.GraphemeClusterCount(string(s.Content()))
}

func encode[C Char](text string) []C {
	var zero C
	switch any(zero).(type) {
	case byte:
		return any([]byte(text)).([]C)
	case uint16:
		return any(utf16.Encode([]rune(text))).([]C)
	default:
		return any([]rune(text)).([]C)
	}
}

func decode[C Char](chars []C) string {
	switch c := any(chars).(type) {
	case []byte:
		return string(c)
	case []uint16:
		return string(utf16.Decode(c))
	case []rune:
		return string(c)
	}
	return ""
}
