package lexer

import (
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/token"
)

// scanNumber consumes a numeric literal: a "0b"/"0o"/"0x" prefixed literal
// in the matching base (requiring at least one digit of that base), or a
// decimal literal with optional fractional part and exponent. An
// identifier-continuation byte immediately following the digits is an
// invalid suffix.
func (l *lexer) scanNumber() (token.Tree, *diag.Diagnostic) {
	start := l.pos

	if l.input[l.pos] == '0' && l.pos+1 < len(l.input) {
		switch l.input[l.pos+1] {
		case 'b':
			return l.scanBasedNumber(start, isBinDigit)
		case 'o':
			return l.scanBasedNumber(start, isOctDigit)
		case 'x':
			return l.scanBasedNumber(start, isHexDigit)
		}
	}

	l.pos++ // first digit
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
		}
		digitsStart := l.pos
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
		if l.pos == digitsStart {
			// No exponent digits: not part of the number after all.
			l.pos = save
		}
	}

	return l.finishNumber(start)
}

func (l *lexer) scanBasedNumber(start int, isDigitOfBase func(byte) bool) (token.Tree, *diag.Diagnostic) {
	l.pos += 2 // "0b"/"0o"/"0x"
	digitsStart := l.pos
	for l.pos < len(l.input) && isDigitOfBase(l.input[l.pos]) {
		l.pos++
	}
	if l.pos == digitsStart {
		d := diag.Errorf(token.Span{Start: start, End: l.pos}, "Missing digits after the integer base prefix")
		return nil, &d
	}
	return l.finishNumber(start)
}

// finishNumber checks for an invalid identifier-like suffix immediately
// following the digits and, if absent, emits the Literal.
func (l *lexer) finishNumber(start int) (token.Tree, *diag.Diagnostic) {
	if l.pos < len(l.input) && isIdentContinue(l.input[l.pos]) {
		suffixStart := l.pos
		for l.pos < len(l.input) && isIdentContinue(l.input[l.pos]) {
			l.pos++
		}
		d := diag.Errorf(token.Span{Start: start, End: l.pos}, "invalid suffix %q on numeric literal",
			string(l.input[suffixStart:l.pos]))
		return nil, &d
	}
	return &token.Literal{
		SpanVal: token.Span{Start: start, End: l.pos},
		Kind:    token.NumberLiteral,
		Value:   string(l.input[start:l.pos]),
	}, nil
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isBinDigit(b byte) bool   { return b == '0' || b == '1' }
func isOctDigit(b byte) bool   { return b >= '0' && b <= '7' }
