package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/maflift/internal/liftover"
)

func newLiftCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lift [files...]",
		Short: "Run CrossMap liftover on input MAF files and normalize the results",
		Long: `Run CrossMap over each input file, then normalize the translated table
into the fixed output schema. Records CrossMap could not translate are moved
into the unmap directory unaltered. With no arguments, every *.txt in the
configured input directory is lifted.`,
		Example: `  maflift lift
  maflift lift data/input/study_mutations.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLift(cmd, args)
		},
	}
}

func (a *app) runLift(cmd *cobra.Command, args []string) error {
	runner := liftover.NewRunner(a.cfg)
	runner.SetLogger(a.logger)

	if err := runner.EnsureDirs(); err != nil {
		return err
	}

	files := args
	if len(files) == 0 {
		var err error
		files, err = filepath.Glob(filepath.Join(a.cfg.Paths.Input, "*.txt"))
		if err != nil {
			return fmt.Errorf("list input files: %w", err)
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		a.logger.Warn("no input files found", zap.String("dir", a.cfg.Paths.Input))
		return nil
	}

	// One failed file never aborts the batch.
	failed := 0
	for _, f := range files {
		if _, err := runner.Run(cmd.Context(), f); err != nil {
			failed++
			a.logger.Error("liftover failed",
				zap.String("input", filepath.Base(f)),
				zap.Error(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("liftover failed for %d of %d files", failed, len(files))
	}
	return nil
}
