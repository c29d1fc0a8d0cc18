package parser

import (
	"strconv"
	"strings"

	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/catalog"
	"github.com/vippsas/safesql/cursor"
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/token"
)

// parseOrExpr is the top of the precedence climb: OrExpr = AndExpr
// ("OR" AndExpr)*, right-associative.
func parseOrExpr(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	return parseRightAssocKeyword(c, "or", "OR", parseAndExpr)
}

// parseAndExpr = Condition ("AND" Condition)*, right-associative.
func parseAndExpr(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	return parseRightAssocKeyword(c, "and", "AND", parseCondition)
}

// parseRightAssocKeyword collects a flat run of operands joined by the
// given bare-identifier keyword operator, then folds them right-to-left
// so that "a OR b OR c" parses as "a OR (b OR c)".
func parseRightAssocKeyword(c *cursor.Cursor, keyword, opName string, next func(*cursor.Cursor) (ast.Expr, *diag.Diagnostic)) (ast.Expr, *diag.Diagnostic) {
	first, d := next(c)
	if d != nil {
		return nil, d
	}
	operands := []ast.Expr{first}
	for {
		fork := c.Fork()
		if !matchKeyword(fork, keyword) {
			break
		}
		operand, d := next(fork)
		if d != nil {
			break
		}
		c.AdvanceTo(fork)
		operands = append(operands, operand)
	}
	return foldRightAssoc(operands, opName), nil
}

func foldRightAssoc(operands []ast.Expr, opName string) ast.Expr {
	result := operands[len(operands)-1]
	for i := len(operands) - 2; i >= 0; i-- {
		left := operands[i]
		result = &ast.BinaryExpr{
			SpanAll: left.Span().Join(result.Span()),
			Op:      opName,
			Left:    left,
			Right:   result,
		}
	}
	return result
}

// parseCondition = "NOT" Condition | Comparison.
func parseCondition(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	if opSpan, ok := matchPunctKeywordNot(c); ok {
		operand, d := parseCondition(c)
		if d != nil {
			return nil, d
		}
		return &ast.NotExpr{SpanAll: opSpan.Join(operand.Span()), OpSpan: opSpan, Operand: operand}, nil
	}
	return parseComparison(c)
}

func matchPunctKeywordNot(c *cursor.Cursor) (token.Span, bool) {
	id, ok := c.Peek().(*token.Ident)
	if !ok || strings.ToLower(id.Name) != "not" {
		return token.Span{}, false
	}
	c.Next()
	return id.SpanVal, true
}

// parseComparison = Concat [CompareOp Concat].
func parseComparison(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	left, d := parseConcat(c)
	if d != nil {
		return nil, d
	}
	op, opSpan, ok := matchCompareOp(c)
	if !ok {
		return left, nil
	}
	right, d := parseConcat(c)
	if d != nil {
		return nil, d
	}
	return &ast.BinaryExpr{SpanAll: left.Span().Join(right.Span()), OpSpan: opSpan, Op: op, Left: left, Right: right}, nil
}

// matchCompareOp recognizes one of: = != <> < <= > >=.
func matchCompareOp(c *cursor.Cursor) (op string, span token.Span, ok bool) {
	if sp, ok := matchPunct(c, '='); ok {
		return "=", sp, true
	}
	if sp, ok := matchJointPunct2(c, '!', '='); ok {
		return "!=", sp, true
	}
	if sp, ok := matchJointPunct2(c, '<', '>'); ok {
		return "<>", sp, true
	}
	if sp, ok := matchJointPunct2(c, '<', '='); ok {
		return "<=", sp, true
	}
	if sp, ok := matchJointPunct2(c, '>', '='); ok {
		return ">=", sp, true
	}
	if sp, ok := matchPunct(c, '<'); ok {
		return "<", sp, true
	}
	if sp, ok := matchPunct(c, '>'); ok {
		return ">", sp, true
	}
	return "", token.Span{}, false
}

// parseConcat = Arithmetic ("||" Arithmetic)*, right-associative.
func parseConcat(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	first, d := parseArithmetic(c)
	if d != nil {
		return nil, d
	}
	operands := []ast.Expr{first}
	for {
		fork := c.Fork()
		if _, ok := matchJointPunct2(fork, '|', '|'); !ok {
			break
		}
		operand, d := parseArithmetic(fork)
		if d != nil {
			break
		}
		c.AdvanceTo(fork)
		operands = append(operands, operand)
	}
	return foldRightAssoc(operands, "||"), nil
}

// parseArithmetic = Factor (("+"|"-") Factor)*, left-associative.
func parseArithmetic(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	first, d := parseFactor(c)
	if d != nil {
		return nil, d
	}
	operands := []ast.Expr{first}
	var ops []string
	for {
		fork := c.Fork()
		var opName string
		if _, ok := matchPunct(fork, '+'); ok {
			opName = "+"
		} else if _, ok := matchPunct(fork, '-'); ok {
			opName = "-"
		} else {
			break
		}
		operand, d := parseFactor(fork)
		if d != nil {
			break
		}
		c.AdvanceTo(fork)
		ops = append(ops, opName)
		operands = append(operands, operand)
	}
	return foldLeftAssocOps(operands, ops), nil
}

// parseFactor = Term (("*"|"/"|"%") Term)*, left-associative.
func parseFactor(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	first, d := parseTerm(c)
	if d != nil {
		return nil, d
	}
	operands := []ast.Expr{first}
	var ops []string
	for {
		fork := c.Fork()
		var opName string
		if _, ok := matchPunct(fork, '*'); ok {
			opName = "*"
		} else if _, ok := matchPunct(fork, '/'); ok {
			opName = "/"
		} else if _, ok := matchPunct(fork, '%'); ok {
			opName = "%"
		} else {
			break
		}
		operand, d := parseTerm(fork)
		if d != nil {
			break
		}
		c.AdvanceTo(fork)
		ops = append(ops, opName)
		operands = append(operands, operand)
	}
	return foldLeftAssocOps(operands, ops), nil
}

// foldLeftAssocOps folds a flat operand/operator run left-to-right, so
// "a - b - c" parses as "(a - b) - c". Arithmetic and factor levels are
// left-associative, unlike OR/AND/concat above.
func foldLeftAssocOps(operands []ast.Expr, ops []string) ast.Expr {
	result := operands[0]
	for i, op := range ops {
		right := operands[i+1]
		result = &ast.BinaryExpr{SpanAll: result.Span().Join(right.Span()), Op: op, Left: result, Right: right}
	}
	return result
}

// parseTerm is the bottom of the precedence climb: a parenthesized
// expression, a unary minus, a function call, an ARRAY literal, a column
// reference, or a literal value.
func parseTerm(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	if sp, ok := matchPunct(c, '-'); ok {
		operand, d := parseTerm(c)
		if d != nil {
			return nil, d
		}
		zero := &ast.IntValue{SpanAll: sp, Raw: "0"}
		return &ast.BinaryExpr{SpanAll: sp.Join(operand.Span()), Op: "-", Left: zero, Right: operand}, nil
	}

	if g, ok := c.Peek().(*token.Group); ok && g.Delimiter == token.Paren {
		c.Next()
		inner := cursor.New(g.Stream)
		expr, d := parseOrExpr(inner)
		if d != nil {
			return nil, d
		}
		if !inner.IsEmpty() {
			d := diag.Errorf(inner.CurrentSpan(), "unexpected token inside parentheses")
			return nil, &d
		}
		return &ast.ParenExpr{SpanAll: g.SpanAll, Inner: expr}, nil
	}

	if id, ok := c.Peek().(*token.Ident); ok {
		switch strings.ToLower(id.Name) {
		case "array":
			return parseArrayLiteral(c)
		case "true":
			c.Next()
			return &ast.BoolValue{SpanAll: id.SpanVal, Value: ast.True}, nil
		case "false":
			c.Next()
			return &ast.BoolValue{SpanAll: id.SpanVal, Value: ast.False}, nil
		case "unknown":
			c.Next()
			return &ast.BoolValue{SpanAll: id.SpanVal, Value: ast.UnknownBool}, nil
		case "null":
			c.Next()
			return &ast.NullValue{SpanAll: id.SpanVal}, nil
		}
		if g, ok := c.PeekNth(1).(*token.Group); ok && g.Delimiter == token.Paren && id.SpanVal.End == g.SpanOpen.Start {
			return parseFunctionCall(c)
		}
	}

	if lit, ok := c.Peek().(*token.Literal); ok {
		switch lit.Kind {
		case token.StringLiteral:
			if !strings.HasPrefix(lit.Value, `"`) {
				c.Next()
				return &ast.StringValue{SpanAll: lit.SpanVal, Raw: lit.Value}, nil
			}
		case token.NumberLiteral:
			c.Next()
			if strings.ContainsAny(lit.Value, ".eE") && !strings.HasPrefix(lit.Value, "0x") && !strings.HasPrefix(lit.Value, "0X") {
				return &ast.FloatValue{SpanAll: lit.SpanVal, Raw: lit.Value}, nil
			}
			return &ast.IntValue{SpanAll: lit.SpanVal, Raw: lit.Value}, nil
		}
	}

	col, d := parseColumn(c)
	if d != nil {
		return nil, d
	}
	return &ast.ColumnExpr{Column: col}, nil
}

// parseFunctionCall parses Ident immediately adjacent to a Paren group:
// looks the name up in the catalog, producing a FuncCall on a match at
// the right arity, a diagnostic for a cataloged name called with an
// argument count it has no signature for, or an UnknownFunc otherwise
// (carrying the raw argument tokens for the analyzer's diagnostic).
func parseFunctionCall(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	id := c.Next().(*token.Ident)
	g := c.Next().(*token.Group)
	argStream := cursor.New(g.Stream)

	var rawArgs []token.Tree
	var args []ast.Expr
	if !argStream.IsEmpty() {
		parsed, d := parseCommaList(argStream, parseOrExpr)
		if d == nil && argStream.IsEmpty() {
			args = parsed
		} else {
			rawArgs = g.Stream
			args = nil
		}
	}

	spanAll := id.SpanVal.Join(g.SpanAll)
	upper := strings.ToUpper(id.Name)

	var over *ast.OverClause
	if matchKeyword(c, "over") {
		spec, overSpan, d := parseOverClause(c)
		if d != nil {
			return nil, d
		}
		over = &ast.OverClause{SpanAll: overSpan, Spec: spec}
		spanAll = spanAll.Join(overSpan)
	}

	if rawArgs != nil {
		return &ast.UnknownFunc{SpanAll: spanAll, NameSpan: id.SpanVal, RawName: id.Name, RawArgs: rawArgs}, nil
	}
	spec, ok := catalog.Lookup(upper, len(args))
	if !ok {
		if catalog.Known(upper) {
			d := diag.Errorf(g.SpanAll, "wrong number of arguments to %s: found %d", upper, len(args))
			return nil, &d
		}
		return &ast.UnknownFunc{SpanAll: spanAll, NameSpan: id.SpanVal, RawName: id.Name, RawArgs: g.Stream}, nil
	}
	return &ast.FuncCall{SpanAll: spanAll, NameSpan: id.SpanVal, Name: spec.Canonical, Args: args, Over: over}, nil
}

// parseArrayLiteral parses "ARRAY" "[" [Expr ("," Expr)*] "]"; an empty
// ARRAY[] is accepted here and rejected by the analyzer.
func parseArrayLiteral(c *cursor.Cursor) (ast.Expr, *diag.Diagnostic) {
	kw := c.Next().(*token.Ident)
	g, ok := c.Peek().(*token.Group)
	if !ok || g.Delimiter != token.Bracket || kw.SpanVal.End != g.SpanOpen.Start {
		d := diag.Errorf(c.CurrentSpan(), "expected \"[\" after ARRAY")
		return nil, &d
	}
	c.Next()
	inner := cursor.New(g.Stream)
	var elems []ast.Expr
	if !inner.IsEmpty() {
		parsed, d := parseCommaList(inner, parseOrExpr)
		if d != nil {
			return nil, d
		}
		elems = parsed
	}
	return &ast.ArrayValue{SpanAll: kw.SpanVal.Join(g.SpanAll), Elements: elems}, nil
}

// parseIntLiteral is used by window-frame offsets, which require a plain
// integer rather than a full expression.
func parseIntLiteral(c *cursor.Cursor) (int, token.Span, *diag.Diagnostic) {
	lit, ok := c.Peek().(*token.Literal)
	if !ok || lit.Kind != token.NumberLiteral {
		d := diag.Errorf(c.CurrentSpan(), "expected an integer")
		return 0, token.Span{}, &d
	}
	n, err := strconv.Atoi(lit.Value)
	if err != nil {
		d := diag.Errorf(lit.SpanVal, "expected an integer")
		return 0, token.Span{}, &d
	}
	c.Next()
	return n, lit.SpanVal, nil
}
