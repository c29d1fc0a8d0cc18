package token

import "strings"

// Print reconstructs source text from a token stream and the original
// buffer it was lexed from. This is the only consumer of span ranges
// outside diagnostics. Whitespace between tokens is not reproduced; the
// lexer's round-trip test checks the output.
func Print(buf []byte, stream []Tree) string {
	var b strings.Builder
	writeStream(&b, buf, stream)
	return b.String()
}

func writeStream(b *strings.Builder, buf []byte, stream []Tree) {
	for _, t := range stream {
		switch n := t.(type) {
		case *Group:
			b.Write(buf[n.SpanOpen.Start:n.SpanOpen.End])
			writeStream(b, buf, n.Stream)
			b.Write(buf[n.SpanClose.Start:n.SpanClose.End])
		default:
			sp := t.Span()
			b.Write(buf[sp.Start:sp.End])
		}
	}
}
