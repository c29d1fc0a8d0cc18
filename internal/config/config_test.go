package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("SAFESQL_LOG_PATH", "")

	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/db", cfg.DatabaseURL)
}

func TestLoad_OverlayOverridesEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/db")

	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	overlay := "databaseUrl: postgres://overlay/db\nlogPath: /tmp/overlay.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, overlayFilename), []byte(overlay), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://overlay/db", cfg.DatabaseURL)
	assert.Equal(t, "/tmp/overlay.log", cfg.LogPath)
}
