package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var err error
	out := captureOutput(t, func() {
		err = (&ConfigCommand{Path: true}).executeWith(path)
	})
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestConfig_InitWritesDefaultsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out := captureOutput(t, func() {
		require.NoError(t, (&ConfigCommand{Init: true}).executeWith(path))
	})
	assert.Contains(t, out, "Config written to")
	assert.FileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte("receipt:\n  top_k: 7\n"), 0644))
	out = captureOutput(t, func() {
		require.NoError(t, (&ConfigCommand{Init: true}).executeWith(path))
	})
	assert.Contains(t, out, "Config already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "top_k: 7", "init never overwrites")
}

func TestConfig_PrintsEffectiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("receipt:\n  top_k: 7\n"), 0644))

	var err error
	out := captureOutput(t, func() {
		err = (&ConfigCommand{}).executeWith(path)
	})
	require.NoError(t, err)
	assert.Contains(t, out, "top_k: 7")
	assert.Contains(t, out, "watch: 0.08", "defaults fill unset fields")
	assert.Contains(t, out, "port: 8425")
}

func TestConfig_PrintsDefaultsWhenMissing(t *testing.T) {
	var err error
	out := captureOutput(t, func() {
		err = (&ConfigCommand{}).executeWith(filepath.Join(t.TempDir(), "none.yaml"))
	})
	require.NoError(t, err)
	assert.Contains(t, out, "top_k: 5")
}

func TestConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("receipt:\n  top_k: 0\n"), 0644))

	err := (&ConfigCommand{}).executeWith(path)
	assert.Error(t, err)
}
