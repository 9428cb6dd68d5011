// Package str provides String, a growable null-terminated text buffer over
// byte, UTF-16 or rune characters.
//
// A String always holds a trailing zero character after its content, so
// Chars() can be handed to code that scans for the terminator. Len reports
// the content length only.
//
// Every empty String that owns no storage shares one process-wide buffer
// holding a single terminator. A new String starts there, a String that has
// been taken from returns there, and Delete resets to it. The shared buffer
// is never released or written.
//
//	s := str.FromGo[byte]("hello")
//	s.AppendGo(", world")
//	s.Erase(0, 7)                // "world"
//	n := str.FromInt[byte](-42)  // "-42"
//	f := str.FromFloat[byte](3.14159, 2)
//	_ = f.String()               // "3.14"
//
// Indexed access is unchecked. A String is not safe for concurrent use.
package str
