package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.Sizes)
	assert.Equal(t, DefaultIterations, cfg.Iterations)
	assert.Equal(t, DefaultWarmup, cfg.Warmup)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	content := `
sizes:
  - a_num_block: 16
    b_num_block: 48
iterations: 7
output: out.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []Size{{ANumBlock: 16, BNumBlock: 48}}, cfg.Sizes)
	assert.Equal(t, 7, cfg.Iterations)
	assert.Equal(t, "out.json", cfg.Output)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultWarmup, cfg.Warmup)
	assert.Equal(t, DefaultSegments, cfg.Segments)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sizes: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt.yaml")

	cfg := DefaultConfig()
	cfg.Iterations = 3
	cfg.Seed = 42
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
