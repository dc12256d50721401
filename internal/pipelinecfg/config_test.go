package pipelinecfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAllowsOpenRowsUnbounded(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.AllowOpenRows)
	assert.Equal(t, 0, cfg.MaxConstraintIterations)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_constraint_iterations: 100\nallow_open_rows: false\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxConstraintIterations)
	assert.False(t, cfg.AllowOpenRows)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
