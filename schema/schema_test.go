package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeType_Scalars(t *testing.T) {
	dt, err := normalizeType("integer", "int4")
	require.NoError(t, err)
	assert.Equal(t, Integer, dt)

	dt, err = normalizeType("text", "text")
	require.NoError(t, err)
	assert.Equal(t, Text, dt)

	dt, err = normalizeType("boolean", "bool")
	require.NoError(t, err)
	assert.Equal(t, Boolean, dt)
}

func TestNormalizeType_Arrays(t *testing.T) {
	dt, err := normalizeType("ARRAY", "_numeric")
	require.NoError(t, err)
	assert.Equal(t, NumericArray, dt)

	dt, err = normalizeType("ARRAY", "_text")
	require.NoError(t, err)
	assert.Equal(t, TextArray, dt)
}

func TestNormalizeType_Unrecognized(t *testing.T) {
	_, err := normalizeType("jsonb", "jsonb")
	assert.Error(t, err)

	_, err = normalizeType("ARRAY", "_jsonb")
	assert.Error(t, err)
}

func TestSnapshot_Table(t *testing.T) {
	snap := &Snapshot{Schemas: map[string]map[string]map[string]Column{
		"public": {
			"accounts": {
				"id": {Name: "id", Type: Numeric},
			},
		},
	}}
	cols, ok := snap.Table("public", "accounts")
	require.True(t, ok)
	assert.Contains(t, cols, "id")

	_, ok = snap.Table("public", "missing")
	assert.False(t, ok)
}
