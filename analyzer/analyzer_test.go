package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/safesql/lexer"
	"github.com/vippsas/safesql/parser"
	"github.com/vippsas/safesql/schema"
)

func testSnapshot() *schema.Snapshot {
	return &schema.Snapshot{Schemas: map[string]map[string]map[string]schema.Column{
		"public": {
			"t": {
				"a": {Name: "a", Type: schema.Integer},
				"b": {Name: "b", Type: schema.Text},
			},
		},
	}}
}

func analyzeSource(t *testing.T, src string, snap *schema.Snapshot) *Context {
	t.Helper()
	tokens, lexErr := lexer.Lex([]byte(src))
	require.Nil(t, lexErr)
	cmd, parseErr := parser.Parse(tokens)
	require.Nil(t, parseErr)
	ctx := NewContext(snap)
	Analyze(ctx, cmd)
	return ctx
}

func TestAnalyze_SelectResolvesColumn(t *testing.T) {
	ctx := analyzeSource(t, "SELECT a FROM t", testSnapshot())
	assert.Empty(t, ctx.Diags)
}

func TestAnalyze_SelectUnknownColumn(t *testing.T) {
	ctx := analyzeSource(t, "SELECT x FROM t", testSnapshot())
	require.Len(t, ctx.Diags, 1)
	assert.Contains(t, ctx.Diags[0].Message, "column does not exist: `x`")
	require.Len(t, ctx.Diags[0].Children, 1)
	assert.Contains(t, ctx.Diags[0].Children[0].Message, "`a`")
}

func TestAnalyze_SelectUnknownTable(t *testing.T) {
	ctx := analyzeSource(t, "SELECT a FROM missing", testSnapshot())
	require.Len(t, ctx.Diags, 1)
	assert.Contains(t, ctx.Diags[0].Message, "table does not exist")
}

func TestAnalyze_NilSnapshotIsNoOp(t *testing.T) {
	ctx := analyzeSource(t, "SELECT x FROM t", nil)
	assert.Empty(t, ctx.Diags)
}

func TestAnalyze_ArithmeticMismatch(t *testing.T) {
	ctx := analyzeSource(t, "SELECT a + b FROM t", testSnapshot())
	require.Len(t, ctx.Diags, 1)
	assert.Contains(t, ctx.Diags[0].Message, "expected numeric operand")
}

func TestAnalyze_UpdateSetColumnChecked(t *testing.T) {
	ctx := analyzeSource(t, "UPDATE t SET a = 1", testSnapshot())
	assert.Empty(t, ctx.Diags)

	ctx = analyzeSource(t, "UPDATE t SET z = 1", testSnapshot())
	require.Len(t, ctx.Diags, 1)
	assert.Contains(t, ctx.Diags[0].Message, "column does not exist: `z`")
}

func TestAnalyze_InsertDefaultValuesSkipsTypeCheck(t *testing.T) {
	ctx := analyzeSource(t, "INSERT INTO t DEFAULT VALUES", testSnapshot())
	assert.Empty(t, ctx.Diags)
}

func TestAnalyze_EmptyArrayIsAnError(t *testing.T) {
	ctx := analyzeSource(t, "SELECT ARRAY[] FROM t", testSnapshot())
	require.Len(t, ctx.Diags, 1)
	assert.Contains(t, ctx.Diags[0].Message, "cannot determine type of empty array")
}

func TestAnalyze_DeleteWhereTypeChecked(t *testing.T) {
	ctx := analyzeSource(t, "DELETE FROM t WHERE true AND (a * Cos(47 + 55))", testSnapshot())
	require.Len(t, ctx.Diags, 1)
	assert.Contains(t, ctx.Diags[0].Message, "expected boolean operand, found")
}
