// Package cursor implements the speculative-parse primitive: an immutable
// view over a token slice with a movable position, forkable for
// lookahead and committed via AdvanceTo.
package cursor

import "github.com/vippsas/safesql/token"

// Cursor is a non-consuming view over a token slice. Its zero value is not
// usable; construct with New. A Cursor is a small value type: forking is a
// trivial copy, and only an explicit AdvanceTo commits a fork's progress
// back to its parent. This is the contract every grammar production in
// package parser relies on for backtracking.
type Cursor struct {
	tokens []token.Tree
	pos    int
}

// New returns a Cursor positioned at the start of tokens.
func New(tokens []token.Tree) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the token at the current position, or nil at end of input.
func (c *Cursor) Peek() token.Tree {
	return c.PeekNth(0)
}

// PeekNth returns the token n positions ahead of the current one (0 is
// the current token), or nil if that position is past the end.
func (c *Cursor) PeekNth(n int) token.Tree {
	i := c.pos + n
	if i < 0 || i >= len(c.tokens) {
		return nil
	}
	return c.tokens[i]
}

// Next returns the current token and advances past it, or returns nil
// without advancing at end of input.
func (c *Cursor) Next() token.Tree {
	t := c.Peek()
	if t == nil {
		return nil
	}
	c.pos++
	return t
}

// AdvanceBy consumes up to n tokens and returns the consumed slice.
func (c *Cursor) AdvanceBy(n int) []token.Tree {
	end := c.pos + n
	if end > len(c.tokens) {
		end = len(c.tokens)
	}
	result := c.tokens[c.pos:end]
	c.pos = end
	return result
}

// Fork returns an independent cursor sharing the same underlying slice.
// Mutating the fork (via Next/AdvanceBy) never observably mutates c;
// only a later c.AdvanceTo(fork) adopts the fork's position.
func (c *Cursor) Fork() *Cursor {
	return &Cursor{tokens: c.tokens, pos: c.pos}
}

// AdvanceTo adopts other's position. other must have been forked from c
// (directly or transitively) over the same underlying slice.
func (c *Cursor) AdvanceTo(other *Cursor) {
	c.pos = other.pos
}

// Len returns the number of tokens remaining.
func (c *Cursor) Len() int {
	return len(c.tokens) - c.pos
}

// IsEmpty reports whether no tokens remain.
func (c *Cursor) IsEmpty() bool {
	return c.Len() == 0
}

// EndSpan returns a zero-width span just past the last token, for
// diagnostics anchored at "unexpected end of input".
func (c *Cursor) EndSpan() token.Span {
	if len(c.tokens) == 0 {
		return token.Span{}
	}
	end := c.tokens[len(c.tokens)-1].Span().End
	return token.Span{Start: end, End: end}
}

// CurrentSpan returns the span of the current token, or EndSpan at EOF.
func (c *Cursor) CurrentSpan() token.Span {
	if t := c.Peek(); t != nil {
		return t.Span()
	}
	return c.EndSpan()
}
