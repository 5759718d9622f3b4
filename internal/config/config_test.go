package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEURONOTES_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "neuronotes.db", cfg.ProductionFile)
	assert.Equal(t, "neuronotes_dev.db", cfg.DevFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NEURONOTES_DATA_DIR", "/tmp/notes")
	t.Setenv("NEURONOTES_DB_FILE", "main.db")
	t.Setenv("NEURONOTES_LOG_LEVEL", "debug")
	t.Setenv("NEURONOTES_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/notes", cfg.DataDir)
	assert.Equal(t, "main.db", cfg.ProductionFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
}

func TestLoadFallsBackToUserConfigDir(t *testing.T) {
	t.Setenv("NEURONOTES_DATA_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DataDir, "neuronotes")
}
