package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/maflift/internal/validate"
)

// WriteSummary appends every report of a validation run, and its sampled
// bad records, under a single run timestamp using the Appender API.
func (s *Store) WriteSummary(runAt time.Time, summary *validate.Summary) error {
	if len(summary.Reports) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	newAppender := func(table string) (*goduckdb.Appender, error) {
		var a *goduckdb.Appender
		err := conn.Raw(func(driverConn any) error {
			var err error
			a, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
			return err
		})
		return a, err
	}

	reports, err := newAppender("validation_reports")
	if err != nil {
		return fmt.Errorf("create reports appender: %w", err)
	}
	defer reports.Close()

	for _, r := range summary.Reports {
		if err := reports.AppendRow(
			runAt, r.File,
			int64(r.TotalVariants), int64(r.RefOK), int64(r.RefMismatch),
			int64(r.SNVRefMismatch), int64(r.IndelRefMismatch),
			int64(r.WrongBuild), int64(r.NoChromInFasta),
			r.MismatchRate, r.Err,
		); err != nil {
			return fmt.Errorf("append report: %w", err)
		}
	}
	if err := reports.Flush(); err != nil {
		return fmt.Errorf("flush reports: %w", err)
	}

	bad, err := newAppender("bad_records")
	if err != nil {
		return fmt.Errorf("create bad records appender: %w", err)
	}
	defer bad.Close()

	for _, r := range summary.Reports {
		for _, b := range r.BadRecordsSample {
			if err := bad.AppendRow(
				runAt, r.File, b.Reason, b.Chrom, b.Start,
				b.Ref, b.RefExpected, b.RefObserved, b.Alt, b.Err,
			); err != nil {
				return fmt.Errorf("append bad record: %w", err)
			}
		}
	}
	return bad.Flush()
}

// ReportCount returns the number of stored per-file reports.
func (s *Store) ReportCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM validation_reports`).Scan(&n)
	return n, err
}

// FileRate is the latest stored mismatch rate for one file.
type FileRate struct {
	File         string
	MismatchRate float64
}

// WorstFiles returns the files with the highest mismatch rate from their
// most recent run, worst first.
func (s *Store) WorstFiles(limit int) ([]FileRate, error) {
	rows, err := s.db.Query(`
		SELECT file, mismatch_rate FROM (
			SELECT file, mismatch_rate,
			       ROW_NUMBER() OVER (PARTITION BY file ORDER BY run_at DESC) AS rn
			FROM validation_reports
			WHERE error = ''
		)
		WHERE rn = 1
		ORDER BY mismatch_rate DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query worst files: %w", err)
	}
	defer rows.Close()

	var out []FileRate
	for rows.Next() {
		var fr FileRate
		if err := rows.Scan(&fr.File, &fr.MismatchRate); err != nil {
			return nil, fmt.Errorf("scan worst files: %w", err)
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}
