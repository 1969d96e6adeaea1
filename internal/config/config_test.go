package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/base")

	assert.Equal(t, "GRCh38", cfg.Reference.Build)
	assert.Equal(t, "a", cfg.Chromosomes.Style)
	assert.Equal(t, filepath.Join("/base", "data", "input"), cfg.Paths.Input)
	assert.Equal(t, filepath.Join("/base", "logs"), cfg.Paths.Logs)
	assert.InDelta(t, 0.01, cfg.Validation.MaxRefMismatchRate, 1e-9)
	assert.False(t, cfg.Validation.FailOnHighMismatch)
}

func TestLoadEmptyPathKeepsDefaults(t *testing.T) {
	cfg, err := Load("", "/base")
	require.NoError(t, err)
	assert.Equal(t, Default("/base"), cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `reference:
  build: GRCh38
  chain: resources/hg19ToHg38.over.chain.gz
  fasta: resources/GRCh38.primary_assembly.genome.fa
chromosomes:
  style: s
paths:
  output: /data/out
validation:
  max_ref_mismatch_rate: 0.05
  fail_on_high_mismatch: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "GRCh38", cfg.Reference.Build)
	assert.Equal(t, "resources/hg19ToHg38.over.chain.gz", cfg.Reference.Chain)
	assert.Equal(t, "s", cfg.Chromosomes.Style)
	assert.Equal(t, "/data/out", cfg.Paths.Output)
	// Unset paths keep their defaults.
	assert.Equal(t, filepath.Join(dir, "data", "input"), cfg.Paths.Input)
	assert.InDelta(t, 0.05, cfg.Validation.MaxRefMismatchRate, 1e-9)
	assert.True(t, cfg.Validation.FailOnHighMismatch)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), ".")
	assert.Error(t, err)
}
