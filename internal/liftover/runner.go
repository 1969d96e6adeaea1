// Package liftover orchestrates the external CrossMap liftover tool and
// the post-processing of its outputs. The coordinate translation itself
// is entirely CrossMap's job.
package liftover

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/maflift/internal/config"
	"github.com/inodb/maflift/internal/maf"
)

// Runner runs CrossMap over input MAF files and normalizes the results.
type Runner struct {
	cfg    config.Config
	logger *zap.Logger
}

// NewRunner creates a Runner for the given configuration.
func NewRunner(cfg config.Config) *Runner {
	return &Runner{cfg: cfg, logger: zap.NewNop()}
}

// SetLogger sets the logger for progress messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// OutputPath returns the lifted output path for an input file,
// "<output>/<stem>.<build>.txt".
func (r *Runner) OutputPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(r.cfg.Paths.Output, fmt.Sprintf("%s.%s.txt", stem, r.cfg.Reference.Build))
}

// LogPath returns the CrossMap log path for an input file.
func (r *Runner) LogPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(r.cfg.Paths.Logs, stem+".log")
}

// Args builds the CrossMap argv for an input file.
func (r *Runner) Args(input string) []string {
	return []string{
		"CrossMap", "maf",
		"--chromid", r.cfg.Chromosomes.Style,
		r.cfg.Reference.Chain,
		input,
		r.cfg.Reference.Fasta,
		r.cfg.Reference.Build,
		r.OutputPath(input),
	}
}

// Run lifts a single input file and post-processes the result: CrossMap is
// invoked with its output captured to a per-input log, the translated table
// is normalized in place, the untranslatable-records companion is relocated
// unaltered, and the normalized output is exported when configured.
// Returns the normalized output path.
func (r *Runner) Run(ctx context.Context, input string) (string, error) {
	output := r.OutputPath(input)

	logFile, err := os.Create(r.LogPath(input))
	if err != nil {
		return "", fmt.Errorf("create liftover log: %w", err)
	}
	defer logFile.Close()

	args := r.Args(input)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	r.logger.Info("liftover started",
		zap.String("input", filepath.Base(input)),
		zap.String("build", r.cfg.Reference.Build))

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run CrossMap for %s: %w", filepath.Base(input), err)
	}

	records, err := maf.NormalizeFile(output, "")
	if err != nil {
		return "", fmt.Errorf("normalize %s: %w", filepath.Base(output), err)
	}

	if err := r.RelocateUnmap(output); err != nil {
		return "", err
	}

	if err := r.Export(output, records); err != nil {
		return "", err
	}

	r.logger.Info("liftover completed",
		zap.String("output", filepath.Base(output)),
		zap.Int("records", len(records)))

	return output, nil
}

// RelocateUnmap moves the "<output>.unmap" companion, which lists records
// CrossMap could not translate, into the unmap directory unaltered.
func (r *Runner) RelocateUnmap(output string) error {
	unmap := output + ".unmap"
	if _, err := os.Stat(unmap); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat unmap file: %w", err)
	}
	dest := filepath.Join(r.cfg.Paths.Unmap, filepath.Base(unmap))
	if err := os.Rename(unmap, dest); err != nil {
		return fmt.Errorf("relocate unmap file: %w", err)
	}
	return nil
}

// Export copies the normalized TXT and writes a CSV rendering into the
// export directory. A run without an export dir is a no-op.
func (r *Runner) Export(output string, records []maf.Record) error {
	if r.cfg.Export.Dir == "" {
		return nil
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return fmt.Errorf("read normalized output: %w", err)
	}
	txtDest := filepath.Join(r.cfg.Export.Dir, filepath.Base(output))
	if err := os.WriteFile(txtDest, data, 0644); err != nil {
		return fmt.Errorf("export txt: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	csvDest := filepath.Join(r.cfg.Export.Dir, stem+".csv")
	if err := maf.WriteCSV(csvDest, records); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// EnsureDirs creates the output, unmap, log and export directories.
func (r *Runner) EnsureDirs() error {
	dirs := []string{
		r.cfg.Paths.Output,
		r.cfg.Paths.Unmap,
		r.cfg.Paths.Logs,
	}
	if r.cfg.Export.Dir != "" {
		dirs = append(dirs, r.cfg.Export.Dir)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return nil
}
