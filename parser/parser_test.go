package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/lexer"
)

func parse(t *testing.T, src string) ast.Command {
	t.Helper()
	tokens, lexErr := lexer.Lex([]byte(src))
	require.Nil(t, lexErr)
	cmd, parseErr := Parse(tokens)
	require.Nilf(t, parseErr, "parse error: %+v", parseErr)
	return cmd
}

func TestParse_SimpleSelect(t *testing.T) {
	cmd := parse(t, "SELECT a, b FROM t")
	sel, ok := cmd.(*ast.SelectStmt)
	require.True(t, ok)
	require.Len(t, sel.Items, 2)
	require.NotNil(t, sel.From)
	assert.Equal(t, "t", sel.From.Name.Text)
}

func TestParse_SelectWildcard(t *testing.T) {
	cmd := parse(t, "SELECT * FROM t")
	sel := cmd.(*ast.SelectStmt)
	require.Len(t, sel.Items, 1)
	_, ok := sel.Items[0].(*ast.WildcardItem)
	assert.True(t, ok)
}

func TestParse_SelectWithAlias(t *testing.T) {
	cmd := parse(t, "SELECT a AS x FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	require.NotNil(t, item.Alias)
	assert.Equal(t, "x", item.Alias.Text)
}

func TestParse_Distinct(t *testing.T) {
	cmd := parse(t, "SELECT DISTINCT a FROM t")
	sel := cmd.(*ast.SelectStmt)
	assert.True(t, sel.Distinct)
}

func TestParse_ExpressionPrecedence(t *testing.T) {
	cmd := parse(t, "SELECT a + b * c FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	bin := item.Value.(*ast.BinaryExpr)
	assert.Equal(t, "+", bin.Op)
	rightMul := bin.Right.(*ast.BinaryExpr)
	assert.Equal(t, "*", rightMul.Op)
}

func TestParse_OrAndRightAssociative(t *testing.T) {
	cmd := parse(t, "SELECT a OR b OR c FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	outer := item.Value.(*ast.BinaryExpr)
	assert.Equal(t, "OR", outer.Op)
	_, leftIsColumn := outer.Left.(*ast.ColumnExpr)
	assert.True(t, leftIsColumn)
	inner, ok := outer.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "OR", inner.Op)
}

func TestParse_NotCondition(t *testing.T) {
	cmd := parse(t, "SELECT a FROM t WHERE NOT a = 1")
	_ = cmd // SELECT's WHERE falls into FromRest, so the FROM target must still resolve
	sel := cmd.(*ast.SelectStmt)
	require.NotNil(t, sel.From)
	assert.NotEmpty(t, sel.FromRest)

	// DELETE parses its WHERE clause: "NOT a = 1" is "NOT (a = 1)".
	del := parse(t, "DELETE FROM t WHERE NOT a = 1").(*ast.DeleteStmt)
	not, ok := del.Where.(*ast.NotExpr)
	require.True(t, ok)
	cmp, ok := not.Operand.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "=", cmp.Op)
}

func TestParse_FunctionCall(t *testing.T) {
	cmd := parse(t, "SELECT ABS(a) FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	fn, ok := item.Value.(*ast.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "ABS", fn.Name)
	assert.Len(t, fn.Args, 1)
}

func TestParse_CatalogFunctionWithoutTypeRule(t *testing.T) {
	cmd := parse(t, "SELECT Soundex(a) FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	fn, ok := item.Value.(*ast.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "SOUNDEX", fn.Name)
}

func TestParse_UnknownFunctionCall(t *testing.T) {
	cmd := parse(t, "SELECT NOPE(a) FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	_, ok := item.Value.(*ast.UnknownFunc)
	assert.True(t, ok)
}

func TestParse_ArrayLiteral(t *testing.T) {
	cmd := parse(t, "SELECT ARRAY[1, 2, 3] FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	arr, ok := item.Value.(*ast.ArrayValue)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestParse_QuotedName(t *testing.T) {
	cmd := parse(t, `SELECT "MyCol" FROM t`)
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	col, ok := item.Value.(*ast.ColumnExpr)
	require.True(t, ok)
	assert.True(t, col.Column.Name.Quoted)
	assert.Equal(t, "MyCol", col.Column.Name.Text)
}

func TestParse_Insert(t *testing.T) {
	cmd := parse(t, "INSERT INTO t (a, b) VALUES (1, 'x'), (2, DEFAULT)")
	ins := cmd.(*ast.InsertStmt)
	assert.Equal(t, "t", ins.Table.Name.Text)
	require.Len(t, ins.Columns, 2)
	require.Len(t, ins.Rows, 2)
	assert.True(t, ins.Rows[1].Values[1].Default)
}

func TestParse_InsertDefaultValues(t *testing.T) {
	cmd := parse(t, "INSERT INTO t DEFAULT VALUES")
	ins := cmd.(*ast.InsertStmt)
	assert.True(t, ins.DefaultValues)
	assert.Empty(t, ins.Rows)
}

func TestParse_InsertDefaultValuesAfterRowsIsError(t *testing.T) {
	tokens, lexErr := lexer.Lex([]byte("INSERT INTO t VALUES (1) DEFAULT VALUES"))
	require.Nil(t, lexErr)
	_, parseErr := Parse(tokens)
	require.NotNil(t, parseErr)
	assert.Contains(t, parseErr.Message, "DEFAULT VALUES cannot follow a VALUES row list")
}

func TestParse_Update(t *testing.T) {
	cmd := parse(t, "UPDATE t SET a = 1, b = 'x'")
	upd := cmd.(*ast.UpdateStmt)
	assert.Equal(t, "t", upd.Table.Name.Text)
	require.Len(t, upd.Sets, 2)
}

func TestParse_Delete(t *testing.T) {
	cmd := parse(t, "DELETE FROM t")
	del := cmd.(*ast.DeleteStmt)
	assert.Equal(t, "t", del.Table.Name.Text)
	assert.Nil(t, del.Where)
}

func TestParse_DeleteWhere(t *testing.T) {
	cmd := parse(t, "DELETE FROM t WHERE true AND (id * Cos(47 + 55))")
	del := cmd.(*ast.DeleteStmt)
	assert.Equal(t, "t", del.Table.Name.Text)
	require.NotNil(t, del.Where)
	_, ok := del.Where.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestParse_QualifiedColumn(t *testing.T) {
	cmd := parse(t, "SELECT t.a FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	col := item.Value.(*ast.ColumnExpr)
	require.NotNil(t, col.Column.Table)
	assert.Equal(t, "t", col.Column.Table.Text)
	assert.Equal(t, "a", col.Column.Name.Text)
}

func TestParse_WindowFunction(t *testing.T) {
	cmd := parse(t, "SELECT ROUND(a) OVER (PARTITION BY b ORDER BY a DESC) FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	fn := item.Value.(*ast.FuncCall)
	require.NotNil(t, fn.Over)
	assert.Len(t, fn.Over.Spec.PartitionBy, 1)
	require.Len(t, fn.Over.Spec.OrderBy, 1)
	assert.Equal(t, ast.Descending, fn.Over.Spec.OrderBy[0].Direction)
}

func TestParse_WindowGroupFrame(t *testing.T) {
	cmd := parse(t, "SELECT ROUND(a) OVER (ORDER BY a GROUP BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t")
	sel := cmd.(*ast.SelectStmt)
	item := sel.Items[0].(*ast.ExprItem)
	fn := item.Value.(*ast.FuncCall)
	require.NotNil(t, fn.Over)
	require.NotNil(t, fn.Over.Spec.Frame)
	assert.Equal(t, ast.FrameGroups, fn.Over.Spec.Frame.Kind)
}
