// Package lexer implements the byte lexer: bytes in, a balanced token tree
// out, in a single forward sweep over a stack of open-group frames.
package lexer

import (
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/token"
)

// frame is one entry in the lexer's stack of open groups.
type frame struct {
	delimiter token.Delimiter
	openSpan  token.Span
	stream    []token.Tree
}

// Lex converts a byte buffer into a balanced token tree, or reports the
// first lex error encountered as a Diagnostic.
func Lex(input []byte) ([]token.Tree, *diag.Diagnostic) {
	l := &lexer{input: input}
	return l.run()
}

type lexer struct {
	input  []byte
	pos    int
	frames []frame
}

func (l *lexer) run() ([]token.Tree, *diag.Diagnostic) {
	top := frame{}
	l.frames = append(l.frames, top)

	for l.pos < len(l.input) {
		b := l.input[l.pos]
		switch {
		case isWhitespace(b):
			l.pos++

		case b == '(' || b == '{' || b == '[':
			start := l.pos
			l.pos++
			l.frames = append(l.frames, frame{
				delimiter: delimiterFor(b),
				openSpan:  token.Span{Start: start, End: l.pos},
			})

		case b == ')' || b == '}' || b == ']':
			if d := l.closeGroup(b); d != nil {
				return nil, d
			}

		case b == '"' || b == '\'':
			t, d := l.scanString(b)
			if d != nil {
				return nil, d
			}
			l.push(t)

		case b >= '0' && b <= '9':
			t, d := l.scanNumber()
			if d != nil {
				return nil, d
			}
			l.push(t)

		case isIdentStart(b):
			l.push(l.scanIdent())

		case isPunctByte(b):
			l.push(l.scanPunct())

		default:
			d := diag.Errorf(token.Span{Start: l.pos, End: l.pos + 1}, "unknown character %q", rune(b))
			return nil, &d
		}
	}

	if len(l.frames) != 1 {
		return nil, l.unbalancedError()
	}

	return l.frames[0].stream, nil
}

func (l *lexer) push(t token.Tree) {
	top := len(l.frames) - 1
	l.frames[top].stream = append(l.frames[top].stream, t)
}

func (l *lexer) closeGroup(b byte) *diag.Diagnostic {
	if len(l.frames) == 1 {
		d := diag.Errorf(token.Span{Start: l.pos, End: l.pos + 1}, "unexpected closing delimiter %q", rune(b))
		return &d
	}
	top := l.frames[len(l.frames)-1]
	want := top.delimiter.Close()
	closeStart := l.pos
	l.pos++
	closeSpan := token.Span{Start: closeStart, End: l.pos}
	if b != want {
		d := diag.Errorf(closeSpan, "mismatched closing delimiter %q, expected %q", rune(b), rune(want))
		d = d.WithChild(diag.New(diag.Note, "opening delimiter here", top.openSpan))
		return &d
	}
	g := &token.Group{
		SpanAll:   top.openSpan.Join(closeSpan),
		SpanOpen:  top.openSpan,
		SpanClose: closeSpan,
		Delimiter: top.delimiter,
		Stream:    top.stream,
	}
	l.frames = l.frames[:len(l.frames)-1]
	l.push(g)
	return nil
}

func (l *lexer) unbalancedError() *diag.Diagnostic {
	end := token.Span{Start: len(l.input), End: len(l.input)}
	d := diag.New(diag.Error, "unbalanced delimiters: unexpected end of input", end)
	for i := 1; i < len(l.frames); i++ {
		d = d.WithChild(diag.New(diag.Note, "unclosed delimiter opened here", l.frames[i].openSpan))
	}
	return &d
}

func delimiterFor(b byte) token.Delimiter {
	switch b {
	case '(':
		return token.Paren
	case '{':
		return token.Brace
	case '[':
		return token.Bracket
	}
	panic("not an opener")
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isIdentStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_'
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// isPunctByte reports whether b falls in one of the ASCII punctuation
// ranges the grammar treats uniformly as Punct tokens: "!-& *-/ :-@ ^ | ~".
// Quote characters and group delimiters are excluded by virtue of being
// handled earlier in the classification cascade.
func isPunctByte(b byte) bool {
	switch {
	case b >= '!' && b <= '&':
		return true
	case b >= '*' && b <= '/':
		return true
	case b >= ':' && b <= '@':
		return true
	case b == '^' || b == '|' || b == '~':
		return true
	}
	return false
}

func (l *lexer) scanIdent() token.Tree {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) && isIdentContinue(l.input[l.pos]) {
		l.pos++
	}
	return &token.Ident{
		SpanVal: token.Span{Start: start, End: l.pos},
		Name:    string(l.input[start:l.pos]),
	}
}

func (l *lexer) scanPunct() token.Tree {
	start := l.pos
	ch := l.input[l.pos]
	l.pos++
	spacing := token.Alone
	if l.pos < len(l.input) && isPunctByte(l.input[l.pos]) {
		spacing = token.Joint
	}
	return &token.Punct{
		SpanVal: token.Span{Start: start, End: l.pos},
		Char:    ch,
		Spacing: spacing,
	}
}
