package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "cty.dat"), cfg.CtyFile)
	assert.Equal(t, filepath.Join(dir, "dxcc_entity.csv"), cfg.EntityCSV)
	assert.Empty(t, cfg.CustomAliasFile)
	assert.Equal(t, "dxentity.db", cfg.DatabaseFile)
	assert.False(t, cfg.WatchFiles)
	assert.Equal(t, "NOTICE", cfg.LogLevel)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("CTY_FILE", "/srv/dx/cty.dat")
	t.Setenv("DXCC_CSV", "entities.csv")
	t.Setenv("CUSTOM_ALIASES", "extra.txt")
	t.Setenv("CTY_WATCH", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/srv/dx/cty.dat", cfg.CtyFile, "absolute paths pass through")
	assert.Equal(t, filepath.Join(dir, "entities.csv"), cfg.EntityCSV, "relative paths anchor under DATA_DIR")
	assert.Equal(t, filepath.Join(dir, "extra.txt"), cfg.CustomAliasFile)
	assert.True(t, cfg.WatchFiles)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestLoadConfigCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "made", "by", "config")
	t.Setenv("DATA_DIR", dir)

	_, err := LoadConfig()
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
