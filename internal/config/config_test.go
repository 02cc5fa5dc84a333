package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.toml")
	content := `
language = "rust-core"
real_precision = 20
max_call_depth = 500
colored_output = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rust-core", cfg.Language)
	assert.Equal(t, 20, cfg.RealPrecision)
	assert.Equal(t, 500, cfg.MaxCallDepth)
	assert.False(t, cfg.ColoredOutput)
	assert.Equal(t, Default().PreludeRoots, cfg.PreludeRoots, "unspecified fields keep their defaults")
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
