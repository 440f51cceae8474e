package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arnegrim/kestrel/pkg/engine"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	assert.Equal(t, uint64(64), cfg.TranspositionTableMB)
	assert.True(t, cfg.QuiescenceEnabled)
	assert.Equal(t, 0, cfg.NoiseCentipawns)
}

func TestLoadConfigOverridesDefaultsPartially(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kestrel.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`
max_depth = 6
transposition_table_mb = 128
`), 0o644))

	cfg, err := engine.LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, 6, cfg.MaxDepth)
	assert.Equal(t, uint64(128), cfg.TranspositionTableMB)
	// Untouched fields keep their DefaultConfig value.
	assert.True(t, cfg.QuiescenceEnabled)
	assert.Equal(t, uint64(1), cfg.HintCacheMB)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := engine.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
