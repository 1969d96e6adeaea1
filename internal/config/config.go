// Package config loads the maflift run configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the explicit run configuration. It is passed by value into
// components at construction; there is no process-wide mutable state, so
// multiple runs can coexist in one process.
type Config struct {
	Reference   Reference   `mapstructure:"reference"`
	Chromosomes Chromosomes `mapstructure:"chromosomes"`
	Paths       Paths       `mapstructure:"paths"`
	Export      Export      `mapstructure:"export"`
	Validation  Validation  `mapstructure:"validation"`
}

// Reference describes the target assembly resources.
type Reference struct {
	Build string `mapstructure:"build"` // e.g. "GRCh38"
	Chain string `mapstructure:"chain"` // liftover chain file
	Fasta string `mapstructure:"fasta"` // target assembly genome FASTA
}

// Chromosomes controls the naming style passed to the liftover tool.
type Chromosomes struct {
	Style string `mapstructure:"style"` // "a" (as-is), "s" (short), "l" (long)
}

// Paths holds the working directories of a run.
type Paths struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
	Unmap  string `mapstructure:"unmap"`
	Logs   string `mapstructure:"logs"`
}

// Export configures the optional copy of normalized outputs.
type Export struct {
	Dir string `mapstructure:"dir"`
}

// Validation holds reference-validation thresholds.
type Validation struct {
	MaxRefMismatchRate float64 `mapstructure:"max_ref_mismatch_rate"`
	FailOnHighMismatch bool    `mapstructure:"fail_on_high_mismatch"`
}

// Default returns the configuration defaults, rooted at baseDir.
func Default(baseDir string) Config {
	return Config{
		Reference: Reference{
			Build: "GRCh38",
		},
		Chromosomes: Chromosomes{Style: "a"},
		Paths: Paths{
			Input:  filepath.Join(baseDir, "data", "input"),
			Output: filepath.Join(baseDir, "data", "output"),
			Unmap:  filepath.Join(baseDir, "data", "unmap"),
			Logs:   filepath.Join(baseDir, "logs"),
		},
		Validation: Validation{
			MaxRefMismatchRate: 0.01,
		},
	}
}

// Load reads a config file into the defaults. An empty path leaves the
// defaults untouched.
func Load(path, baseDir string) (Config, error) {
	cfg := Default(baseDir)
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
