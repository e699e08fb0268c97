package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, defaultSecretMinLength, cfg.Route.SecretMinLength)
	assert.Equal(t, defaultSecretEntropyThreshold, cfg.Route.SecretEntropyThreshold)
	assert.False(t, cfg.Audit.Enabled)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.SQL.ExtraSafeStrings = []string{"approved"}
	cfg.Shell.ExtraDangerousCommands = []string{"frobnicate"}
	cfg.Audit.Enabled = true
	cfg.Audit.DBPath = "/tmp/audit.db"

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.SQL.ExtraSafeStrings, loaded.SQL.ExtraSafeStrings)
	assert.Equal(t, cfg.Shell.ExtraDangerousCommands, loaded.Shell.ExtraDangerousCommands)
	assert.True(t, loaded.Audit.Enabled)
	assert.Equal(t, "/tmp/audit.db", loaded.Audit.DBPath)
}

func TestLoadFillsZeroValueDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sql:\n  extra_safe_strings: [\"ok\"]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaultSecretMinLength, cfg.Route.SecretMinLength)
	assert.Equal(t, defaultSecretEntropyThreshold, cfg.Route.SecretEntropyThreshold)
	assert.Equal(t, []string{"ok"}, cfg.SQL.ExtraSafeStrings)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sql: [this is not a mapping\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
