package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDirRespectsEnvOverride(t *testing.T) {
	t.Setenv("VETLINE_CONFIG_DIR", "/custom/vetline")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/custom/vetline", dir)
}

func TestDefaultDirFallsBackToXDG(t *testing.T) {
	t.Setenv("VETLINE_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "vetline"), dir)
}

func TestDefaultConfigAndAuditPaths(t *testing.T) {
	t.Setenv("VETLINE_CONFIG_DIR", "/custom/vetline")

	cfgPath, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/vetline", "config.yaml"), cfgPath)

	dbPath, err := DefaultAuditDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/vetline", "audit.db"), dbPath)
}

func TestEnsureDirCreatesDirectory(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "nested", "vetline")
	require.NoError(t, EnsureDir(target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
