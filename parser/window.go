package parser

import (
	"strconv"

	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/cursor"
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/token"
)

// parseOverClause parses the "(" ... ")" body of "OVER (...)", assuming
// the "OVER" keyword has already been consumed.
func parseOverClause(c *cursor.Cursor) (ast.WindowSpec, token.Span, *diag.Diagnostic) {
	inner, groupSpan, d := parseGroup(c, token.Paren)
	if d != nil {
		return ast.WindowSpec{}, token.Span{}, d
	}
	spec, d := parseWindowSpecBody(inner)
	if d != nil {
		return ast.WindowSpec{}, token.Span{}, d
	}
	if !inner.IsEmpty() {
		d := diag.Errorf(inner.CurrentSpan(), "unexpected token in window specification")
		return ast.WindowSpec{}, token.Span{}, &d
	}
	spec.SpanAll = groupSpan
	return spec, groupSpan, nil
}

func parseWindowSpecBody(c *cursor.Cursor) (ast.WindowSpec, *diag.Diagnostic) {
	var spec ast.WindowSpec

	if matchKeyword(c, "partition") {
		if d := expectKeyword(c, "by"); d != nil {
			return spec, d
		}
		items, d := parseCommaList(c, parseOrExpr)
		if d != nil {
			return spec, d
		}
		spec.PartitionBy = items
	}

	if matchKeyword(c, "order") {
		if d := expectKeyword(c, "by"); d != nil {
			return spec, d
		}
		items, d := parseCommaList(c, parseSortItem)
		if d != nil {
			return spec, d
		}
		spec.OrderBy = items
	}

	if kw, ok := peekKeyword(c); ok && (kw == "rows" || kw == "range" || kw == "group") {
		frame, d := parseFrameClause(c)
		if d != nil {
			return spec, d
		}
		spec.Frame = &frame
	}

	return spec, nil
}

func parseSortItem(c *cursor.Cursor) (ast.SortItem, *diag.Diagnostic) {
	start := c.CurrentSpan()
	expr, d := parseOrExpr(c)
	if d != nil {
		return ast.SortItem{}, d
	}
	item := ast.SortItem{Expr: expr, Direction: ast.Ascending}
	if matchKeyword(c, "asc") {
		item.Direction = ast.Ascending
	} else if matchKeyword(c, "desc") {
		item.Direction = ast.Descending
	}
	if matchKeyword(c, "nulls") {
		if matchKeyword(c, "first") {
			item.Nulls = ast.NullsFirst
		} else if matchKeyword(c, "last") {
			item.Nulls = ast.NullsLast
		} else {
			d := diag.Errorf(c.CurrentSpan(), "expected FIRST or LAST after NULLS")
			return ast.SortItem{}, &d
		}
	}
	item.SpanAll = spanSoFar(start, c)
	return item, nil
}

func parseFrameClause(c *cursor.Cursor) (ast.FrameClause, *diag.Diagnostic) {
	start := c.CurrentSpan()
	var frame ast.FrameClause
	if matchKeyword(c, "rows") {
		frame.Kind = ast.FrameRows
	} else if matchKeyword(c, "range") {
		frame.Kind = ast.FrameRange
	} else if matchKeyword(c, "group") {
		frame.Kind = ast.FrameGroups
	} else {
		d := diag.Errorf(c.CurrentSpan(), "expected ROWS, RANGE, or GROUP")
		return ast.FrameClause{}, &d
	}

	if matchKeyword(c, "between") {
		startBound, d := parseFrameBound(c)
		if d != nil {
			return ast.FrameClause{}, d
		}
		if d := expectKeyword(c, "and"); d != nil {
			return ast.FrameClause{}, d
		}
		endBound, d := parseFrameBound(c)
		if d != nil {
			return ast.FrameClause{}, d
		}
		frame.Start = startBound
		frame.End = &endBound
	} else {
		startBound, d := parseFrameBound(c)
		if d != nil {
			return ast.FrameClause{}, d
		}
		frame.Start = startBound
	}

	if matchKeyword(c, "exclude") {
		switch {
		case matchKeyword(c, "current"):
			if d := expectKeyword(c, "row"); d != nil {
				return ast.FrameClause{}, d
			}
			frame.Exclude = ast.ExcludeCurrentRow
		case matchKeyword(c, "group"):
			frame.Exclude = ast.ExcludeGroup
		case matchKeyword(c, "ties"):
			frame.Exclude = ast.ExcludeTies
		case matchKeyword(c, "no"):
			if d := expectKeyword(c, "others"); d != nil {
				return ast.FrameClause{}, d
			}
			frame.Exclude = ast.ExcludeNone
		default:
			d := diag.Errorf(c.CurrentSpan(), "expected CURRENT ROW, GROUP, TIES, or NO OTHERS after EXCLUDE")
			return ast.FrameClause{}, &d
		}
	}

	frame.SpanAll = spanSoFar(start, c)
	return frame, nil
}

func parseFrameBound(c *cursor.Cursor) (ast.FrameBound, *diag.Diagnostic) {
	start := c.CurrentSpan()
	if matchKeyword(c, "unbounded") {
		if matchKeyword(c, "preceding") {
			return ast.FrameBound{SpanAll: spanSoFar(start, c), Kind: ast.BoundUnboundedPreceding}, nil
		}
		if matchKeyword(c, "following") {
			return ast.FrameBound{SpanAll: spanSoFar(start, c), Kind: ast.BoundUnboundedFollowing}, nil
		}
		d := diag.Errorf(c.CurrentSpan(), "expected PRECEDING or FOLLOWING after UNBOUNDED")
		return ast.FrameBound{}, &d
	}
	if matchKeyword(c, "current") {
		if d := expectKeyword(c, "row"); d != nil {
			return ast.FrameBound{}, d
		}
		return ast.FrameBound{SpanAll: spanSoFar(start, c), Kind: ast.BoundCurrentRow}, nil
	}
	n, numSpan, d := parseIntLiteral(c)
	if d != nil {
		return ast.FrameBound{}, d
	}
	offset := &ast.IntValue{SpanAll: numSpan, Raw: strconv.Itoa(n)}
	if matchKeyword(c, "preceding") {
		return ast.FrameBound{SpanAll: spanSoFar(start, c), Kind: ast.BoundPreceding, Offset: offset}, nil
	}
	if matchKeyword(c, "following") {
		return ast.FrameBound{SpanAll: spanSoFar(start, c), Kind: ast.BoundFollowing, Offset: offset}, nil
	}
	d2 := diag.Errorf(c.CurrentSpan(), "expected PRECEDING or FOLLOWING")
	return ast.FrameBound{}, &d2
}
