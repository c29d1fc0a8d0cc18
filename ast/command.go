package ast

import "github.com/vippsas/safesql/token"

// Command is the sealed union of top-level statement kinds.
type Command interface {
	Span() token.Span
	commandNode()
}

// SelectItem is one entry of a SELECT list: either a wildcard reference
// or an expression, optionally aliased.
type SelectItem interface {
	Span() token.Span
	selectItemNode()
}

type WildcardItem struct {
	SpanAll token.Span
	Ref     WildcardRef
	Except  []Column // EXCEPT (a, b, ...), empty if absent
}

func (w *WildcardItem) Span() token.Span { return w.SpanAll }
func (*WildcardItem) selectItemNode()     {}

type ExprItem struct {
	SpanAll token.Span
	Value   Expr
	Alias   *Name // nil if unaliased
}

func (e *ExprItem) Span() token.Span { return e.SpanAll }
func (*ExprItem) selectItemNode()     {}

// SelectStmt models a SELECT command. The grammar for everything after the
// first FROM target is out of scope for this front end: From captures the
// best-effort simple "FROM table" target needed for name resolution, and
// FromRest preserves every token that follows it (further FROM items,
// JOINs, WHERE, GROUP BY, and so on) verbatim and unparsed, for a
// downstream stage to take over.
type SelectStmt struct {
	SpanAll  token.Span
	Distinct bool
	Items    []SelectItem
	From     *TableName
	FromRest []token.Tree
}

func (s *SelectStmt) Span() token.Span { return s.SpanAll }
func (*SelectStmt) commandNode()       {}

// InsertValue is one cell of a VALUES row: either an expression or the
// bare DEFAULT keyword.
type InsertValue struct {
	SpanAll token.Span
	Expr    Expr // nil when Default is true
	Default bool
}

// InsertRow is one parenthesized row of a VALUES clause.
type InsertRow struct {
	SpanAll token.Span
	Values  []InsertValue
}

// InsertStmt models INSERT INTO table [(cols)] VALUES (...), ... or
// INSERT INTO table DEFAULT VALUES. The two forms are mutually exclusive;
// Rows is empty when DefaultValues is set.
type InsertStmt struct {
	SpanAll       token.Span
	Table         TableName
	Columns       []Name
	Rows          []InsertRow
	DefaultValues bool
}

func (s *InsertStmt) Span() token.Span { return s.SpanAll }
func (*InsertStmt) commandNode()       {}

// UpdateStmt models UPDATE table SET col = expr, ... [WHERE ...]. As with
// SelectStmt, the WHERE clause and anything past the SET list is carried
// unparsed.
type UpdateStmt struct {
	SpanAll token.Span
	Table   TableName
	Sets    []UpdateSet
	Rest    []token.Tree
}

func (s *UpdateStmt) Span() token.Span { return s.SpanAll }
func (*UpdateStmt) commandNode()       {}

type UpdateSet struct {
	SpanAll token.Span
	Column  Name
	Value   Expr
}

// DeleteStmt models DELETE FROM table [WHERE OrExpr].
type DeleteStmt struct {
	SpanAll token.Span
	Table   TableName
	Where   Expr // nil if absent
}

func (s *DeleteStmt) Span() token.Span { return s.SpanAll }
func (*DeleteStmt) commandNode()       {}
