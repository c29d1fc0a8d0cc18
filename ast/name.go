// Package ast defines the parser's output shape: a strict tree of nodes,
// each recording its full span. BinaryExpr.OpSpan is set only for
// comparison operators; it is left zero for OR, AND, ||, the arithmetic
// operators and unary minus. NotExpr records its NOT span. Sub-expressions are
// heap-held pointers to keep node size bounded; there are no cycles.
package ast

import (
	"strings"

	"github.com/vippsas/safesql/token"
)

// Name is either an unquoted identifier (compared case-insensitively,
// folded to lower case to match this dialect's Postgres-like unquoted
// identifier convention) or a quoted name (compared case-sensitively,
// verbatim). Raw marks a name spelled as r"..."; name resolution treats it
// the same as any other quoted name.
type Name struct {
	SpanAll token.Span
	Text    string
	Quoted  bool
	Raw     bool
}

func (n Name) Span() token.Span { return n.SpanAll }

// Fold returns the text used for name-resolution comparisons: lower-cased
// for unquoted names, verbatim for quoted ones.
func (n Name) Fold() string {
	if n.Quoted {
		return n.Text
	}
	return strings.ToLower(n.Text)
}

func (n Name) String() string {
	if n.Quoted {
		return `"` + n.Text + `"`
	}
	return n.Text
}

// TableName is a table reference with an optional schema prefix:
// `schema.name` or bare `name`.
type TableName struct {
	SpanAll token.Span
	Schema  *Name
	Name    Name
}

func (t TableName) Span() token.Span { return t.SpanAll }

// Column is a column reference with up to two qualifying prefixes:
// `schema.table.name`, `table.name`, or bare `name`.
type Column struct {
	SpanAll token.Span
	Schema  *Name
	Table   *Name
	Name    Name
}

func (c Column) Span() token.Span { return c.SpanAll }

// WildcardRef is a `*`, optionally qualified by schema/table prefixes, as
// used in a SELECT list's wildcard item.
type WildcardRef struct {
	SpanAll token.Span
	Schema  *Name
	Table   *Name
	Star    token.Span
}

func (w WildcardRef) Span() token.Span { return w.SpanAll }
