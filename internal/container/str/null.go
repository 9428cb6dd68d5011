package str

import "sync"

var (
	nullByte  = sync.OnceValue(func() []byte { return make([]byte, 1) })
	nullUTF16 = sync.OnceValue(func() []uint16 { return make([]uint16, 1) })
	nullRune  = sync.OnceValue(func() []rune { return make([]rune, 1) })
)

// null returns the shared one-terminator buffer for C.
func null[C Char]() []C {
	var zero C
	switch any(zero).(type) {
	case byte:
		return any(nullByte()).([]C)
	case uint16:
		return any(nullUTF16()).([]C)
	default:
		return any(nullRune()).([]C)
	}
}

func isNull[C Char](buf []C) bool {
	return len(buf) == 1 && &buf[0] == &null[C]()[0]
}
