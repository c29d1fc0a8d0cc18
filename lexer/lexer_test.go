package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/safesql/token"
)

func TestLex_Empty(t *testing.T) {
	tree, d := Lex([]byte(""))
	require.Nil(t, d)
	assert.Empty(t, tree)
}

func TestLex_Ident(t *testing.T) {
	tree, d := Lex([]byte("select_1"))
	require.Nil(t, d)
	require.Len(t, tree, 1)
	id, ok := tree[0].(*token.Ident)
	require.True(t, ok)
	assert.Equal(t, "select_1", id.Name)
	assert.Equal(t, token.Span{Start: 0, End: 8}, id.Span())
}

func TestLex_Group(t *testing.T) {
	tree, d := Lex([]byte("(a, b)"))
	require.Nil(t, d)
	require.Len(t, tree, 1)
	g, ok := tree[0].(*token.Group)
	require.True(t, ok)
	assert.Equal(t, token.Paren, g.Delimiter)
	assert.Equal(t, token.Span{Start: 0, End: 1}, g.SpanOpen)
	assert.Equal(t, token.Span{Start: 5, End: 6}, g.SpanClose)
	require.Len(t, g.Stream, 3) // Ident "a", Punct ",", Ident "b"
}

func TestLex_LoneOpener(t *testing.T) {
	_, d := Lex([]byte("("))
	require.NotNil(t, d)
	assert.Equal(t, token.Span{Start: 1, End: 1}, d.PrimarySpan())
	require.Len(t, d.Children, 1)
	assert.Equal(t, token.Span{Start: 0, End: 1}, d.Children[0].Spans[0])
}

func TestLex_NestedUnclosed(t *testing.T) {
	// "((a + b)" -- outer '(' never closes.
	_, d := Lex([]byte("((a + b)"))
	require.NotNil(t, d)
	require.Len(t, d.Children, 1)
	assert.Equal(t, token.Span{Start: 0, End: 1}, d.Children[0].Spans[0])
}

func TestLex_MismatchedDelimiter(t *testing.T) {
	_, d := Lex([]byte("(a]"))
	require.NotNil(t, d)
	assert.Contains(t, d.Message, "mismatched closing delimiter")
}

func TestLex_UnexpectedCloser(t *testing.T) {
	_, d := Lex([]byte(")"))
	require.NotNil(t, d)
	assert.Contains(t, d.Message, "unexpected closing delimiter")
}

func TestLex_StringLiteral(t *testing.T) {
	tree, d := Lex([]byte(`'hello \n world'`))
	require.Nil(t, d)
	require.Len(t, tree, 1)
	lit, ok := tree[0].(*token.Literal)
	require.True(t, ok)
	assert.Equal(t, token.StringLiteral, lit.Kind)
	assert.Equal(t, `'hello \n world'`, lit.Value)
}

func TestLex_UnterminatedString(t *testing.T) {
	_, d := Lex([]byte(`'abc`))
	require.NotNil(t, d)
	assert.Contains(t, d.Message, "unterminated string literal")
}

func TestLex_InvalidEscape(t *testing.T) {
	_, d := Lex([]byte(`'a\qb'`))
	require.NotNil(t, d)
	assert.Contains(t, d.Message, "invalid escape sequence")
}

func TestLex_HexEscape(t *testing.T) {
	tree, d := Lex([]byte(`'\x1F'`))
	require.Nil(t, d)
	require.Len(t, tree, 1)
}

func TestLex_DoubleQuotedName(t *testing.T) {
	tree, d := Lex([]byte(`"MyTable"`))
	require.Nil(t, d)
	require.Len(t, tree, 1)
	lit := tree[0].(*token.Literal)
	assert.Equal(t, `"MyTable"`, lit.Value)
}

func TestLex_NumericDecimal(t *testing.T) {
	tree, d := Lex([]byte("123.45e10"))
	require.Nil(t, d)
	require.Len(t, tree, 1)
	lit := tree[0].(*token.Literal)
	assert.Equal(t, token.NumberLiteral, lit.Kind)
	assert.Equal(t, "123.45e10", lit.Value)
}

func TestLex_NumericBasePrefixes(t *testing.T) {
	for _, in := range []string{"0b1010", "0o17", "0xFF"} {
		tree, d := Lex([]byte(in))
		require.Nilf(t, d, "input %q", in)
		require.Len(t, tree, 1)
		assert.Equal(t, in, tree[0].(*token.Literal).Value)
	}
}

func TestLex_MissingDigitsAfterBasePrefix(t *testing.T) {
	_, d := Lex([]byte("0b"))
	require.NotNil(t, d)
	assert.Contains(t, d.Message, "Missing digits after the integer base prefix")
	assert.Equal(t, token.Span{Start: 0, End: 2}, d.PrimarySpan())
}

func TestLex_InvalidNumericSuffix(t *testing.T) {
	_, d := Lex([]byte("123abc"))
	require.NotNil(t, d)
	assert.Contains(t, d.Message, "invalid suffix")
}

func TestLex_PunctSpacing(t *testing.T) {
	tree, d := Lex([]byte("<="))
	require.Nil(t, d)
	require.Len(t, tree, 2)
	p0 := tree[0].(*token.Punct)
	p1 := tree[1].(*token.Punct)
	assert.Equal(t, byte('<'), p0.Char)
	assert.Equal(t, token.Joint, p0.Spacing)
	assert.Equal(t, byte('='), p1.Char)
	assert.Equal(t, token.Alone, p1.Spacing)
}

func TestLex_PunctSpacingWithSpace(t *testing.T) {
	tree, d := Lex([]byte("< ="))
	require.Nil(t, d)
	require.Len(t, tree, 2)
	p0 := tree[0].(*token.Punct)
	assert.Equal(t, token.Alone, p0.Spacing)
}

func TestLex_UnknownCharacter(t *testing.T) {
	_, d := Lex([]byte("\x01"))
	require.NotNil(t, d)
	assert.Contains(t, d.Message, "unknown character")
}

func TestLex_PrintRoundTrip(t *testing.T) {
	src := []byte("SELECT a, (b + 1) FROM t WHERE a = 'x'")
	tree, d := Lex(src)
	require.Nil(t, d)
	assert.Equal(t, "SELECTa,(b+1)FROMtWHEREa='x'", token.Print(src, tree))
}
