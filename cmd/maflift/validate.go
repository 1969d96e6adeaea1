package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/maflift/internal/duckdb"
	"github.com/inodb/maflift/internal/fasta"
	"github.com/inodb/maflift/internal/validate"
)

var errMismatchAboveThreshold = errors.New("ref mismatch rate above threshold")

func newValidateCmd(a *app) *cobra.Command {
	var (
		dbPath         string
		failOnMismatch bool
	)

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate recorded reference alleles against the target assembly FASTA",
		Long: `For every record, fetch the bases at the translated coordinate from the
target assembly genome and compare them to the recorded reference allele.
Writes one JSON report per file plus a run summary into the logs directory.
With no arguments, every *.txt in the configured output directory is
validated in name order.`,
		Example: `  maflift validate
  maflift validate --db results.duckdb
  maflift validate --fail-on-mismatch data/output/study.GRCh38.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(args, dbPath, failOnMismatch)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "append results to a DuckDB database at this path")
	cmd.Flags().BoolVar(&failOnMismatch, "fail-on-mismatch", false,
		"exit with status 2 when the overall mismatch rate exceeds the configured threshold")
	return cmd
}

func (a *app) runValidate(args []string, dbPath string, failOnMismatch bool) error {
	files := args
	if len(files) == 0 {
		var err error
		files, err = filepath.Glob(filepath.Join(a.cfg.Paths.Output, "*.txt"))
		if err != nil {
			return fmt.Errorf("list output files: %w", err)
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return fmt.Errorf("no files to validate in %s", a.cfg.Paths.Output)
	}

	// The genome is opened once and read-only for the whole run.
	store, err := fasta.Open(a.cfg.Reference.Fasta)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := os.MkdirAll(a.cfg.Paths.Logs, 0755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}

	v := validate.New(store, a.cfg.Reference.Build)
	v.SetLogger(a.logger)

	reports := make([]*validate.Report, 0, len(files))
	for _, f := range files {
		a.logger.Info("validating", zap.String("file", filepath.Base(f)))
		r := v.ValidateFile(f)
		if _, err := validate.WriteReport(a.cfg.Paths.Logs, r); err != nil {
			return err
		}
		reports = append(reports, r)
	}

	summary := validate.Aggregate(reports)
	summaryPath, err := validate.WriteSummary(a.cfg.Paths.Logs, summary)
	if err != nil {
		return err
	}

	printSummaryTable(os.Stdout, summary)

	overall := summary.OverallMismatchRate()
	a.logger.Info("validation complete",
		zap.String("summary", summaryPath),
		zap.Int("files", summary.FilesValidated),
		zap.Float64("overall_mismatch_rate", overall))

	if dbPath != "" {
		s, err := duckdb.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.WriteSummary(time.Now(), summary); err != nil {
			return fmt.Errorf("store validation run: %w", err)
		}
	}

	if failOnMismatch || a.cfg.Validation.FailOnHighMismatch {
		if overall > a.cfg.Validation.MaxRefMismatchRate {
			return fmt.Errorf("%w: %.4f > %.4f",
				errMismatchAboveThreshold, overall, a.cfg.Validation.MaxRefMismatchRate)
		}
	}
	return nil
}

func printSummaryTable(w io.Writer, s *validate.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Variants", "Ref OK", "Mismatch", "Rate", "Status"})
	table.SetBorder(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	for _, r := range s.Reports {
		status := "ok"
		if r.Failed() {
			status = r.Err
		}
		table.Append([]string{
			filepath.Base(r.File),
			strconv.Itoa(r.TotalVariants),
			strconv.Itoa(r.RefOK),
			strconv.Itoa(r.RefMismatch),
			fmt.Sprintf("%.4f", r.MismatchRate),
			status,
		})
	}
	table.Render()
}
