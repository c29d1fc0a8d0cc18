package parser

import (
	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/cursor"
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/token"
)

// parseSelect parses SELECT [DISTINCT] item, ... [FROM target ...rest].
// Everything beyond the first simple "FROM table" target -- further FROM
// items, JOINs, WHERE, GROUP BY, and so on -- is out of scope for this
// front end and is carried unparsed in FromRest for a downstream stage.
func parseSelect(c *cursor.Cursor) (ast.Command, *diag.Diagnostic) {
	start := c.CurrentSpan()
	if d := expectKeyword(c, "select"); d != nil {
		return nil, d
	}

	stmt := &ast.SelectStmt{}
	if matchKeyword(c, "distinct") {
		stmt.Distinct = true
	}

	items, d := parseCommaList(c, parseSelectItem)
	if d != nil {
		return nil, d
	}
	stmt.Items = items

	if matchKeyword(c, "from") {
		fork := c.Fork()
		if table, d := parseTableName(fork); d == nil {
			c.AdvanceTo(fork)
			stmt.From = &table
		}
		stmt.FromRest = c.AdvanceBy(c.Len())
	}

	stmt.SpanAll = spanSoFar(start, c)
	return stmt, nil
}

// parseSelectItem parses one entry of a SELECT list: a wildcard
// reference (optionally qualified, optionally with EXCEPT (...)), or an
// expression with an optional alias.
func parseSelectItem(c *cursor.Cursor) (ast.SelectItem, *diag.Diagnostic) {
	start := c.CurrentSpan()

	if wild, ok, d := tryParseWildcard(c); d != nil {
		return nil, d
	} else if ok {
		item := &ast.WildcardItem{Ref: wild}
		if matchKeyword(c, "except") {
			inner, _, d := parseGroup(c, token.Paren)
			if d != nil {
				return nil, d
			}
			cols, d := parseCommaList(inner, parseColumn)
			if d != nil {
				return nil, d
			}
			item.Except = cols
		}
		item.SpanAll = spanSoFar(start, c)
		return item, nil
	}

	expr, d := parseOrExpr(c)
	if d != nil {
		return nil, d
	}
	item := &ast.ExprItem{Value: expr}
	if matchKeyword(c, "as") {
		alias, d := parseName(c)
		if d != nil {
			return nil, d
		}
		item.Alias = &alias
	} else if kw, ok := peekKeyword(c); ok && !isReservedForAlias(kw) {
		alias, d := parseName(c)
		if d != nil {
			return nil, d
		}
		item.Alias = &alias
	}
	item.SpanAll = spanSoFar(start, c)
	return item, nil
}

func isReservedForAlias(name string) bool {
	switch name {
	case "from", "where", "group", "order", "having", "limit", "offset",
		"union", "intersect", "except", "window", "as", "distinct":
		return true
	}
	return false
}

// tryParseWildcard recognizes "*" or "schema.*" / "table.*" / "schema.table.*"
// without committing the cursor if the pattern does not match.
func tryParseWildcard(c *cursor.Cursor) (ast.WildcardRef, bool, *diag.Diagnostic) {
	fork := c.Fork()
	if sp, ok := matchPunct(fork, '*'); ok {
		c.AdvanceTo(fork)
		return ast.WildcardRef{SpanAll: sp, Star: sp}, true, nil
	}

	names, d := parseDottedNames(fork, 2)
	if d != nil {
		return ast.WildcardRef{}, false, nil
	}
	if _, ok := matchPunct(fork, '.'); !ok {
		return ast.WildcardRef{}, false, nil
	}
	star, ok := matchPunct(fork, '*')
	if !ok {
		return ast.WildcardRef{}, false, nil
	}
	c.AdvanceTo(fork)
	ref := ast.WildcardRef{Star: star}
	switch len(names) {
	case 1:
		ref.Table = &names[0]
		ref.SpanAll = names[0].SpanAll.Join(star)
	case 2:
		ref.Schema = &names[0]
		ref.Table = &names[1]
		ref.SpanAll = names[0].SpanAll.Join(star)
	}
	return ref, true, nil
}

// parseInsert parses INSERT INTO table [(cols)] VALUES (...), ... or
// INSERT INTO table DEFAULT VALUES. These two forms of supplying row
// data are mutually exclusive.
func parseInsert(c *cursor.Cursor) (ast.Command, *diag.Diagnostic) {
	start := c.CurrentSpan()
	if d := expectKeyword(c, "insert"); d != nil {
		return nil, d
	}
	if d := expectKeyword(c, "into"); d != nil {
		return nil, d
	}
	table, d := parseTableName(c)
	if d != nil {
		return nil, d
	}
	stmt := &ast.InsertStmt{Table: table}

	if g, ok := c.Peek().(*token.Group); ok && g.Delimiter == token.Paren {
		c.Next()
		inner := cursor.New(g.Stream)
		cols, d := parseCommaList(inner, parseName)
		if d != nil {
			return nil, d
		}
		if !inner.IsEmpty() {
			d := diag.Errorf(inner.CurrentSpan(), "unexpected token in column list")
			return nil, &d
		}
		stmt.Columns = cols
	}

	if matchKeyword(c, "default") {
		if d := expectKeyword(c, "values"); d != nil {
			return nil, d
		}
		stmt.DefaultValues = true
		stmt.SpanAll = spanSoFar(start, c)
		return stmt, nil
	}

	if d := expectKeyword(c, "values"); d != nil {
		return nil, d
	}
	rows, d := parseCommaList(c, parseInsertRow)
	if d != nil {
		return nil, d
	}
	stmt.Rows = rows

	if matchKeyword(c, "default") {
		d := diag.Errorf(c.CurrentSpan(), "DEFAULT VALUES cannot follow a VALUES row list")
		return nil, &d
	}

	stmt.SpanAll = spanSoFar(start, c)
	return stmt, nil
}

func parseInsertRow(c *cursor.Cursor) (ast.InsertRow, *diag.Diagnostic) {
	inner, groupSpan, d := parseGroup(c, token.Paren)
	if d != nil {
		return ast.InsertRow{}, d
	}
	values, d := parseCommaList(inner, parseInsertValue)
	if d != nil {
		return ast.InsertRow{}, d
	}
	if !inner.IsEmpty() {
		d := diag.Errorf(inner.CurrentSpan(), "unexpected token in VALUES row")
		return ast.InsertRow{}, &d
	}
	return ast.InsertRow{SpanAll: groupSpan, Values: values}, nil
}

func parseInsertValue(c *cursor.Cursor) (ast.InsertValue, *diag.Diagnostic) {
	start := c.CurrentSpan()
	if matchKeyword(c, "default") {
		return ast.InsertValue{SpanAll: spanSoFar(start, c), Default: true}, nil
	}
	expr, d := parseOrExpr(c)
	if d != nil {
		return ast.InsertValue{}, d
	}
	return ast.InsertValue{SpanAll: spanSoFar(start, c), Expr: expr}, nil
}

// parseUpdate parses UPDATE table SET col = expr, ... [...rest]. WHERE and
// anything past the SET list is carried unparsed, as with SELECT's FROM.
func parseUpdate(c *cursor.Cursor) (ast.Command, *diag.Diagnostic) {
	start := c.CurrentSpan()
	if d := expectKeyword(c, "update"); d != nil {
		return nil, d
	}
	table, d := parseTableName(c)
	if d != nil {
		return nil, d
	}
	if d := expectKeyword(c, "set"); d != nil {
		return nil, d
	}
	sets, d := parseCommaList(c, parseUpdateSet)
	if d != nil {
		return nil, d
	}
	rest := c.AdvanceBy(c.Len())
	return &ast.UpdateStmt{SpanAll: spanSoFar(start, c), Table: table, Sets: sets, Rest: rest}, nil
}

func parseUpdateSet(c *cursor.Cursor) (ast.UpdateSet, *diag.Diagnostic) {
	start := c.CurrentSpan()
	name, d := parseName(c)
	if d != nil {
		return ast.UpdateSet{}, d
	}
	if _, d := expectPunct(c, '='); d != nil {
		return ast.UpdateSet{}, d
	}
	value, d := parseOrExpr(c)
	if d != nil {
		return ast.UpdateSet{}, d
	}
	return ast.UpdateSet{SpanAll: spanSoFar(start, c), Column: name, Value: value}, nil
}

// parseDelete parses DELETE FROM table [WHERE OrExpr].
func parseDelete(c *cursor.Cursor) (ast.Command, *diag.Diagnostic) {
	start := c.CurrentSpan()
	if d := expectKeyword(c, "delete"); d != nil {
		return nil, d
	}
	if d := expectKeyword(c, "from"); d != nil {
		return nil, d
	}
	table, d := parseTableName(c)
	if d != nil {
		return nil, d
	}
	stmt := &ast.DeleteStmt{Table: table}
	if matchKeyword(c, "where") {
		where, d := parseOrExpr(c)
		if d != nil {
			return nil, d
		}
		stmt.Where = where
	}
	stmt.SpanAll = spanSoFar(start, c)
	return stmt, nil
}
