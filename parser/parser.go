// Package parser implements the recursive-descent SQL grammar: it
// consumes a token.Tree stream via package cursor and produces an
// ast.Command, aborting the current statement at the first syntax error
// with a single diag.Diagnostic, optionally carrying child notes from any
// speculative attempts it rolled back.
package parser

import (
	"strings"

	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/cursor"
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/token"
)

// Parse consumes the entire token stream as a single statement.
// Trailing tokens left by a command that hands off a "rest" clause
// (SelectStmt.FromRest, UpdateStmt.Rest) are not an error here; the
// command itself records them for downstream parsing.
func Parse(tokens []token.Tree) (ast.Command, *diag.Diagnostic) {
	c := cursor.New(tokens)
	cmd, d := parseStatement(c)
	if d != nil {
		return nil, d
	}
	if !c.IsEmpty() {
		d := diag.Errorf(c.CurrentSpan(), "unexpected token after end of statement")
		return nil, &d
	}
	return cmd, nil
}

func parseStatement(c *cursor.Cursor) (ast.Command, *diag.Diagnostic) {
	start := c.CurrentSpan()
	kw, ok := peekKeyword(c)
	if !ok {
		d := diag.Errorf(start, "expected a statement keyword (SELECT, INSERT, UPDATE, DELETE)")
		return nil, &d
	}
	switch kw {
	case "select":
		return parseSelect(c)
	case "insert":
		return parseInsert(c)
	case "update":
		return parseUpdate(c)
	case "delete":
		return parseDelete(c)
	default:
		d := diag.Errorf(start, "unexpected keyword %q; expected SELECT, INSERT, UPDATE, or DELETE", kw)
		return nil, &d
	}
}

// peekKeyword returns the lower-cased text of the current token if it is
// a bare (unquoted) identifier, for keyword matching.
func peekKeyword(c *cursor.Cursor) (string, bool) {
	id, ok := c.Peek().(*token.Ident)
	if !ok {
		return "", false
	}
	return strings.ToLower(id.Name), true
}

// matchKeyword consumes the current token if it is the bare identifier
// keyword (case-insensitive), reporting whether it matched.
func matchKeyword(c *cursor.Cursor, keyword string) bool {
	kw, ok := peekKeyword(c)
	if !ok || kw != keyword {
		return false
	}
	c.Next()
	return true
}

// expectKeyword is matchKeyword with a diagnostic on mismatch.
func expectKeyword(c *cursor.Cursor, keyword string) *diag.Diagnostic {
	if matchKeyword(c, keyword) {
		return nil
	}
	d := diag.Errorf(c.CurrentSpan(), "expected %q", strings.ToUpper(keyword))
	return &d
}

// matchPunct consumes the current token if it is a Punct with the given
// character, reporting whether it matched.
func matchPunct(c *cursor.Cursor, ch byte) (token.Span, bool) {
	p, ok := c.Peek().(*token.Punct)
	if !ok || p.Char != ch {
		return token.Span{}, false
	}
	c.Next()
	return p.SpanVal, true
}

func expectPunct(c *cursor.Cursor, ch byte) (token.Span, *diag.Diagnostic) {
	if sp, ok := matchPunct(c, ch); ok {
		return sp, nil
	}
	d := diag.Errorf(c.CurrentSpan(), "expected %q", string(ch))
	return token.Span{}, &d
}

// matchJointPunct2 recognizes a two-byte operator made of two Joint-spaced
// Punct tokens, e.g. "<=" as Punct{'<', Joint} followed by Punct{'='}.
// Reports the combined span and consumes both tokens on success.
func matchJointPunct2(c *cursor.Cursor, first, second byte) (token.Span, bool) {
	p0, ok := c.Peek().(*token.Punct)
	if !ok || p0.Char != first || p0.Spacing != token.Joint {
		return token.Span{}, false
	}
	p1, ok := c.PeekNth(1).(*token.Punct)
	if !ok || p1.Char != second {
		return token.Span{}, false
	}
	c.Next()
	c.Next()
	return p0.SpanVal.Join(p1.SpanVal), true
}

// parseGroup consumes the current token if it is a Group with the given
// delimiter, returning a cursor over its inner stream.
func parseGroup(c *cursor.Cursor, delim token.Delimiter) (*cursor.Cursor, token.Span, *diag.Diagnostic) {
	g, ok := c.Peek().(*token.Group)
	if !ok || g.Delimiter != delim {
		d := diag.Errorf(c.CurrentSpan(), "expected %q", string(delim.Open()))
		return nil, token.Span{}, &d
	}
	c.Next()
	return cursor.New(g.Stream), g.SpanAll, nil
}

// parseName implements the Name grammar primitive: an unquoted Ident, a
// double-quoted Literal (case-sensitive, quoted), or a raw-quoted name
// spelled as an Ident "r" immediately adjacent to a following string
// Literal (no gap between their spans -- the lexer emits no separate
// token kind for r"...").
func parseName(c *cursor.Cursor) (ast.Name, *diag.Diagnostic) {
	if id, ok := c.Peek().(*token.Ident); ok {
		if id.Name == "r" {
			if lit, ok := c.PeekNth(1).(*token.Literal); ok &&
				lit.Kind == token.StringLiteral &&
				id.SpanVal.End == lit.SpanVal.Start &&
				strings.HasPrefix(lit.Value, `"`) {
				c.Next()
				c.Next()
				text := strings.TrimSuffix(strings.TrimPrefix(lit.Value, `"`), `"`)
				return ast.Name{SpanAll: id.SpanVal.Join(lit.SpanVal), Text: text, Quoted: true, Raw: true}, nil
			}
		}
		c.Next()
		return ast.Name{SpanAll: id.SpanVal, Text: id.Name}, nil
	}
	if lit, ok := c.Peek().(*token.Literal); ok && lit.Kind == token.StringLiteral && strings.HasPrefix(lit.Value, `"`) {
		c.Next()
		text := strings.TrimSuffix(strings.TrimPrefix(lit.Value, `"`), `"`)
		return ast.Name{SpanAll: lit.SpanVal, Text: text, Quoted: true}, nil
	}
	d := diag.Errorf(c.CurrentSpan(), "expected a name")
	return ast.Name{}, &d
}

// parseDottedNames parses a run of 1..maxParts Name productions joined by
// ".", stopping as soon as no "." follows.
func parseDottedNames(c *cursor.Cursor, maxParts int) ([]ast.Name, *diag.Diagnostic) {
	first, d := parseName(c)
	if d != nil {
		return nil, d
	}
	names := []ast.Name{first}
	for len(names) < maxParts {
		fork := c.Fork()
		if _, ok := matchPunct(fork, '.'); !ok {
			break
		}
		next, d := parseName(fork)
		if d != nil {
			break
		}
		c.AdvanceTo(fork)
		names = append(names, next)
	}
	return names, nil
}

// parseTableName parses "[schema.]name".
func parseTableName(c *cursor.Cursor) (ast.TableName, *diag.Diagnostic) {
	names, d := parseDottedNames(c, 2)
	if d != nil {
		return ast.TableName{}, d
	}
	tn := ast.TableName{}
	switch len(names) {
	case 1:
		tn.Name = names[0]
		tn.SpanAll = names[0].SpanAll
	case 2:
		tn.Schema = &names[0]
		tn.Name = names[1]
		tn.SpanAll = names[0].SpanAll.Join(names[1].SpanAll)
	}
	return tn, nil
}

// parseColumn parses "[[schema.]table.]name".
func parseColumn(c *cursor.Cursor) (ast.Column, *diag.Diagnostic) {
	names, d := parseDottedNames(c, 3)
	if d != nil {
		return ast.Column{}, d
	}
	col := ast.Column{}
	switch len(names) {
	case 1:
		col.Name = names[0]
		col.SpanAll = names[0].SpanAll
	case 2:
		col.Table = &names[0]
		col.Name = names[1]
		col.SpanAll = names[0].SpanAll.Join(names[1].SpanAll)
	case 3:
		col.Schema = &names[0]
		col.Table = &names[1]
		col.Name = names[2]
		col.SpanAll = names[0].SpanAll.Join(names[2].SpanAll)
	}
	return col, nil
}

// spanSoFar joins start with the span of the most recently consumed
// token, for nodes whose end isn't otherwise known (unlike c.EndSpan,
// which always points past the very last token of the whole input).
func spanSoFar(start token.Span, c *cursor.Cursor) token.Span {
	if last := c.PeekNth(-1); last != nil {
		return start.Join(last.Span())
	}
	return start
}

// parseCommaList parses a non-empty comma-separated list of items using
// parseItem, stopping as soon as no "," follows a successfully parsed
// item.
func parseCommaList[T any](c *cursor.Cursor, parseItem func(*cursor.Cursor) (T, *diag.Diagnostic)) ([]T, *diag.Diagnostic) {
	first, d := parseItem(c)
	if d != nil {
		return nil, d
	}
	items := []T{first}
	for {
		if _, ok := matchPunct(c, ','); !ok {
			break
		}
		item, d := parseItem(c)
		if d != nil {
			return nil, d
		}
		items = append(items, item)
	}
	return items, nil
}
