package lexer

import (
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/token"
)

// scanString consumes a single- or double-quoted string literal, assuming
// l.pos is positioned on the opening quote byte. Escapes recognized:
// \n \r \t \\ \' \" \0 and \xNM where N is 0-7 and M is a hex digit.
// An unescaped quote byte matching the opener terminates the literal.
func (l *lexer) scanString(quote byte) (token.Tree, *diag.Diagnostic) {
	start := l.pos
	l.pos++ // opening quote

	for l.pos < len(l.input) {
		b := l.input[l.pos]
		switch {
		case b == '\\':
			if d := l.scanEscape(start); d != nil {
				return nil, d
			}
		case b == quote:
			l.pos++
			return &token.Literal{
				SpanVal: token.Span{Start: start, End: l.pos},
				Kind:    token.StringLiteral,
				Value:   string(l.input[start:l.pos]),
			}, nil
		default:
			l.pos++
		}
	}

	d := diag.Errorf(token.Span{Start: start, End: l.pos}, "unterminated string literal")
	return nil, &d
}

// scanEscape consumes one backslash escape sequence starting at l.pos,
// which must be the '\\' byte. litStart is the start of the enclosing
// literal, used only for the error span.
func (l *lexer) scanEscape(litStart int) *diag.Diagnostic {
	escStart := l.pos
	l.pos++ // backslash
	if l.pos >= len(l.input) {
		d := diag.Errorf(token.Span{Start: litStart, End: l.pos}, "unterminated string literal")
		return &d
	}
	b := l.input[l.pos]
	switch b {
	case 'n', 'r', 't', '\\', '\'', '"', '0':
		l.pos++
		return nil
	case 'x':
		l.pos++
		if l.pos+1 >= len(l.input) {
			d := diag.Errorf(token.Span{Start: escStart, End: l.pos}, "invalid escape sequence: \\x requires two hex digits")
			return &d
		}
		n := l.input[l.pos]
		m := l.input[l.pos+1]
		if !(n >= '0' && n <= '7') || !isHexDigit(m) {
			d := diag.Errorf(token.Span{Start: escStart, End: l.pos + 2}, "invalid escape sequence: \\x%c%c", n, m)
			return &d
		}
		l.pos += 2
		return nil
	default:
		d := diag.Errorf(token.Span{Start: escStart, End: l.pos + 1}, "invalid escape sequence: \\%c", b)
		return &d
	}
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
