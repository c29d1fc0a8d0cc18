package safesql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/schema"
)

func TestCompile_NoSchemaSkipsAnalysis(t *testing.T) {
	result, err := Compile([]byte("SELECT a FROM t"), nil)
	require.NoError(t, err)
	_, ok := result.Command.(*ast.SelectStmt)
	assert.True(t, ok)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.InvocationID.String())
}

func TestCompile_SyntaxError(t *testing.T) {
	_, err := Compile([]byte("SELEKT a FROM t"), nil)
	require.Error(t, err)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	require.Len(t, compileErr.Diagnostics, 1)
}

func TestCompile_SemanticError(t *testing.T) {
	snap := &schema.Snapshot{Schemas: map[string]map[string]map[string]schema.Column{
		"public": {"t": {"a": {Name: "a", Type: schema.Integer}}},
	}}
	_, err := Compile([]byte("SELECT missing FROM t"), snap)
	require.Error(t, err)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.Error(), "column does not exist")
}
