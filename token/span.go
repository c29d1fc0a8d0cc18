// Package token defines the lexer's output shape: a forest of leaves and
// balanced groups, spans into the original input buffer.
package token

import "fmt"

// Span is a half-open byte range [Start, End) into the original input.
type Span struct {
	Start, End int
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start >= s.End
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Text slices buf using the span's bounds.
func (s Span) Text(buf []byte) string {
	return string(buf[s.Start:s.End])
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Adjacent reports whether s ends exactly where other begins, i.e. there
// was no whitespace (and no group boundary) between them in the source.
func (s Span) Adjacent(other Span) bool {
	return s.End == other.Start
}
