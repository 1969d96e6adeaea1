// Package main provides the maflift command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/maflift/internal/config"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the resolved configuration and logger shared by subcommands.
type app struct {
	cfgFile string
	baseDir string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errMismatchAboveThreshold) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maflift",
		Short: "Liftover post-processing and reference validation for MAF files",
		Long: `maflift lifts MAF variant tables between reference assemblies using
CrossMap, repairs the translated tables into a fixed 23-column schema with a
recomputed Variant_Type, and independently validates recorded reference
alleles against the target assembly genome.`,
		Example: `  # Lift and normalize every MAF in the configured input directory
  maflift lift

  # Normalize an already-translated table in place
  maflift normalize data/output/study.GRCh38.txt

  # Validate reference alleles against the target FASTA
  maflift validate --fail-on-mismatch`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: <base-dir>/config.yaml when present)")
	cmd.PersistentFlags().StringVar(&a.baseDir, "base-dir", ".", "project base directory")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newLiftCmd(a))
	cmd.AddCommand(newNormalizeCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newDownloadCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// init builds the logger and loads configuration. Called before every
// subcommand runs.
func (a *app) init() error {
	logCfg := zap.NewDevelopmentConfig()
	if !a.verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.logger = logger

	cfg, err := config.Load(a.configPath(), a.baseDir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// configPath resolves the config file: the --config flag, or
// <base-dir>/config.yaml when it exists.
func (a *app) configPath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	candidate := filepath.Join(a.baseDir, "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
