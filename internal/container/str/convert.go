package str

import (
	"math"
	"math/big"
	"strings"
)

// maxPrecision bounds FromFloat so the scaled fraction fits in a uint64.
const maxPrecision = 18

// FromUint returns the decimal text of number.
//
// Digits are produced least significant first into a buffer of twice the
// needed size, then reversed in place.
func FromUint[C Char](number uint64, opts ...Option[C]) *String[C] {
	digits := 1
	for v := number; v >= 10; v /= 10 {
		digits++
	}

	s := New(opts...)
	buf := s.alloc().Allocate((digits + 1) * 2)
	for i := range digits {
		buf[i] = C('0' + number%10)
		number /= 10
	}
	buf[digits] = 0

	s.buf, s.n = buf, digits+1
	s.reverse()
	return s
}

// FromInt returns the decimal text of number with a leading minus sign when
// it is negative.
func FromInt[C Char](number int64, opts ...Option[C]) *String[C] {
	if number >= 0 {
		return FromUint(uint64(number), opts...)
	}
	// Negating in uint64 keeps math.MinInt64 exact.
	s := FromUint(-uint64(number), opts...)
	s.insert(0, []C{'-'})
	return s
}

// FromFloat returns number in fixed-point notation with precision digits
// after a '.' separator.
func FromFloat[C Char](number float64, precision int, opts ...Option[C]) *String[C] {
	return FromFloatSep(number, precision, []C{'.'}, opts...)
}

// FromFloatSep is FromFloat with a custom separator.
//
// The fraction is rounded half away from zero to precision digits, carrying
// into the integer part when it rounds up to one. Precision is capped at 18.
// Negative values keep their sign even when the integer part is zero. NaN
// and the infinities are written as "nan", "inf" and "-inf". Magnitudes of
// 2^64 and above are whole numbers and are written with their exact digits.
func FromFloatSep[C Char](number float64, precision int, sep []C, opts ...Option[C]) *String[C] {
	switch {
	case math.IsNaN(number):
		return fromASCII[C]("nan", opts)
	case math.IsInf(number, 1):
		return fromASCII[C]("inf", opts)
	case math.IsInf(number, -1):
		return fromASCII[C]("-inf", opts)
	}

	neg := number < 0
	abs := math.Abs(number)
	whole := math.Trunc(abs)
	if whole >= twoTo64 {
		return fromHuge(abs, precision, sep, neg, opts)
	}
	intPart := uint64(whole)

	if precision <= 0 {
		return signed(FromUint(intPart, opts...), neg && intPart != 0)
	}
	precision = min(precision, maxPrecision)

	// Adding one before scaling keeps the fraction's leading zeros as digits
	// after a leading '1', which is dropped below.
	scale := uint64(math.Pow10(precision))
	frac := uint64(math.Round((abs - whole + 1) * float64(scale)))
	if frac >= 2*scale {
		intPart++
		frac -= scale
	}

	s := FromUint(intPart, opts...)
	s.insert(s.Len(), sep[:Length(sep)])
	digits := FromUint[C](frac)
	s.insert(s.Len(), digits.Content()[1:])
	return signed(s, neg)
}

// twoTo64 is the first float64 value that does not fit in a uint64.
const twoTo64 = 1 << 64

// fromHuge formats a magnitude too large for uint64. Such floats have no
// fractional part, so the fraction is all zeros.
func fromHuge[C Char](abs float64, precision int, sep []C, neg bool, opts []Option[C]) *String[C] {
	digits, _ := big.NewFloat(abs).Int(nil)
	s := fromASCII[C](digits.String(), opts)
	if precision > 0 {
		s.insert(s.Len(), sep[:Length(sep)])
		zeros := fromASCII[C](strings.Repeat("0", min(precision, maxPrecision)), nil)
		s.insert(s.Len(), zeros.Content())
	}
	return signed(s, neg)
}

func signed[C Char](s *String[C], neg bool) *String[C] {
	if neg {
		s.insert(0, []C{'-'})
	}
	return s
}

func fromASCII[C Char](text string, opts []Option[C]) *String[C] {
	s := New(opts...)
	s.AssignGo(text)
	return s
}
