package analyzer

import (
	"strconv"
	"strings"

	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/catalog"
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/schema"
)

// scope carries the column set an expression's ColumnExpr leaves resolve
// against -- the single table named in a statement's FROM/target clause.
// A nil cols map makes every column reference resolve to Unknown without
// reporting an additional error (the table itself already failed to
// resolve, or there is no schema loaded at all).
type scope struct {
	cols map[string]schema.Column
}

// inferType assigns a DataType to expr, bottom-up, reporting every type
// error it finds on ctx without aborting the traversal.
func inferType(ctx *Context, sc scope, expr ast.Expr) schema.DataType {
	switch e := expr.(type) {
	case *ast.StringValue:
		return schema.Text
	case *ast.IntValue:
		return inferIntType(e.Raw)
	case *ast.FloatValue:
		return schema.Numeric
	case *ast.BoolValue:
		return schema.Boolean
	case *ast.NullValue:
		return schema.Unknown
	case *ast.ArrayValue:
		return inferArrayType(ctx, sc, e)
	case *ast.ColumnExpr:
		col, ok := resolveColumn(ctx, sc.cols, e.Column)
		if !ok {
			return schema.Unknown
		}
		return col.Type
	case *ast.ParenExpr:
		return inferType(ctx, sc, e.Inner)
	case *ast.NotExpr:
		operand := inferType(ctx, sc, e.Operand)
		if operand != schema.Boolean && operand != schema.Unknown {
			ctx.report(diag.Errorf(e.Span(), "expected boolean operand, found %s", operand))
		}
		return schema.Boolean
	case *ast.BinaryExpr:
		return inferBinary(ctx, sc, e)
	case *ast.FuncCall:
		return inferFuncCall(ctx, sc, e)
	case *ast.UnknownFunc:
		suggestions := diag.Suggest(strings.ToUpper(e.RawName), catalog.Names())
		d := diag.Errorf(e.NameSpan, "unknown function: `%s`", e.RawName)
		if len(suggestions) > 0 {
			d = d.WithChild(diag.New(diag.Help, "did you mean "+diag.FormatSuggestions(suggestions)+"?"))
		}
		ctx.report(d)
		return schema.Unknown
	default:
		return schema.Unknown
	}
}

// inferIntType picks the narrowest integer kind the literal's value fits
// in, falling back to Numeric when the literal does not parse as an int64
// (a value wider than BigInt).
func inferIntType(raw string) schema.DataType {
	n, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return schema.Numeric
	}
	switch {
	case n >= -128 && n <= 127:
		return schema.TinyInt
	case n >= -32768 && n <= 32767:
		return schema.SmallInt
	case n >= -2147483648 && n <= 2147483647:
		return schema.Integer
	default:
		return schema.BigInt
	}
}

func inferArrayType(ctx *Context, sc scope, arr *ast.ArrayValue) schema.DataType {
	if len(arr.Elements) == 0 {
		ctx.report(diag.Errorf(arr.Span(), "cannot determine type of empty array"))
		return schema.Unknown
	}
	elemTypes := make([]schema.DataType, len(arr.Elements))
	for i, el := range arr.Elements {
		elemTypes[i] = inferType(ctx, sc, el)
	}
	allText, allNumeric := true, true
	for _, t := range elemTypes {
		if t != schema.Unknown {
			if t != schema.Text {
				allText = false
			}
			if !t.IsNumeric() {
				allNumeric = false
			}
		}
	}
	switch {
	case allText:
		return schema.TextArray
	case allNumeric:
		return schema.NumericArray
	default:
		ctx.report(diag.Errorf(arr.Span(), "array elements do not unify to a single type"))
		return schema.Unknown
	}
}

func inferBinary(ctx *Context, sc scope, e *ast.BinaryExpr) schema.DataType {
	left := inferType(ctx, sc, e.Left)
	right := inferType(ctx, sc, e.Right)

	switch e.Op {
	case "OR", "AND":
		if left != schema.Boolean && left != schema.Unknown {
			ctx.report(diag.Errorf(e.Left.Span(), "expected boolean operand, found %s", left))
		}
		if right != schema.Boolean && right != schema.Unknown {
			ctx.report(diag.Errorf(e.Right.Span(), "expected boolean operand, found %s", right))
		}
		return schema.Boolean

	case "=", "!=", "<>", "<", "<=", ">", ">=":
		if left == schema.Unknown || right == schema.Unknown {
			return schema.Unknown
		}
		if (left.IsNumeric() && right.IsNumeric()) || (left == schema.Text && right == schema.Text) {
			return left
		}
		ctx.report(diag.Errorf(e.SpanAll, "type mismatch in comparison: %s vs %s", left, right))
		return schema.Unknown

	case "||":
		if left == schema.Text || right == schema.Text {
			return schema.Text
		}
		// Two numeric arrays concatenate to a scalar Numeric, not to a
		// NumericArray.
		if left == schema.NumericArray && right == schema.NumericArray {
			return schema.Numeric
		}
		if left == schema.Unknown || right == schema.Unknown {
			return schema.Unknown
		}
		ctx.report(diag.Errorf(e.SpanAll, "invalid operand types for ||: %s vs %s", left, right))
		return schema.Unknown

	case "+", "-", "*", "/", "%":
		if left == schema.Unknown && right == schema.Unknown {
			ctx.report(diag.Errorf(e.SpanAll, "unknown type for arithmetic expression"))
			return schema.Unknown
		}
		if left != schema.Unknown && !left.IsNumeric() {
			ctx.report(diag.Errorf(e.Left.Span(), "expected numeric operand, found %s", left))
			return schema.Unknown
		}
		if right != schema.Unknown && !right.IsNumeric() {
			ctx.report(diag.Errorf(e.Right.Span(), "expected numeric operand, found %s", right))
			return schema.Unknown
		}
		if left != schema.Unknown {
			return left
		}
		return right

	default:
		return schema.Unknown
	}
}

func inferFuncCall(ctx *Context, sc scope, e *ast.FuncCall) schema.DataType {
	argTypes := make([]schema.DataType, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = inferType(ctx, sc, a)
	}

	requireNumeric := func(idx int) bool {
		t := argTypes[idx]
		if t == schema.Unknown {
			return true
		}
		if !t.IsNumeric() {
			ctx.report(diag.Errorf(e.Args[idx].Span(), "expected numeric argument, found %s", t))
			return false
		}
		return true
	}
	requireText := func(idx int) bool {
		t := argTypes[idx]
		if t == schema.Unknown {
			return true
		}
		if t != schema.Text {
			ctx.report(diag.Errorf(e.Args[idx].Span(), "expected text argument, found %s", t))
			return false
		}
		return true
	}
	requireIntegral := func(idx int) bool {
		t := argTypes[idx]
		if t == schema.Unknown {
			return true
		}
		if !t.IsIntegral() {
			ctx.report(diag.Errorf(e.Args[idx].Span(), "expected an integral argument, found %s", t))
			return false
		}
		return true
	}

	switch e.Name {
	case "ABS", "CEIL", "FLOOR", "ROUND":
		requireNumeric(0)
		if len(argTypes) > 0 && argTypes[0] != schema.Unknown {
			return argTypes[0]
		}
		return schema.Unknown

	case "COS", "SIN", "LN", "SQRT":
		requireNumeric(0)
		return schema.DoublePrecision

	case "LOG":
		for i := range argTypes {
			requireNumeric(i)
		}
		return schema.DoublePrecision

	case "PI", "SIGN":
		return schema.DoublePrecision

	case "ATAN2", "POWER":
		requireNumeric(0)
		requireNumeric(1)
		return schema.DoublePrecision

	case "BITAND", "BITOR", "BITXOR":
		requireIntegral(0)
		requireIntegral(1)
		if argTypes[0] != schema.Unknown && argTypes[0] != argTypes[1] && argTypes[1] != schema.Unknown {
			ctx.report(diag.Errorf(e.SpanAll, "bitwise operands must be the same type: %s vs %s", argTypes[0], argTypes[1]))
			return schema.Unknown
		}
		if argTypes[0] != schema.Unknown {
			return argTypes[0]
		}
		return argTypes[1]

	case "BITNOT":
		requireIntegral(0)
		return argTypes[0]

	case "ASCII", "CHAR_LENGTH":
		requireText(0)
		return schema.Integer

	case "CONCAT", "LOWER", "UPPER", "LEFT", "RIGHT", "REPEAT", "SPACE":
		if e.Name == "LOWER" || e.Name == "UPPER" {
			requireText(0)
		}
		if e.Name == "LEFT" || e.Name == "RIGHT" || e.Name == "REPEAT" {
			requireText(0)
			requireNumeric(1)
		}
		if e.Name == "SPACE" {
			requireNumeric(0)
		}
		return schema.Text

	default:
		return schema.Unknown
	}
}
