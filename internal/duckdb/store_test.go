package duckdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/maflift/internal/validate"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteSummaryAndQuery(t *testing.T) {
	s := openInMemory(t)

	runAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	summary := validate.Aggregate([]*validate.Report{
		{
			File:          "a.GRCh38.txt",
			TotalVariants: 100,
			RefOK:         98,
			RefMismatch:   2,
			MismatchRate:  0.02,
			BadRecordsSample: []validate.BadRecord{{
				Reason:      validate.ReasonRefMismatch,
				Chrom:       "chr1",
				Start:       100,
				RefExpected: "A",
				RefObserved: "T",
				Alt:         "G",
			}},
		},
		{
			File:          "b.GRCh38.txt",
			TotalVariants: 50,
			RefOK:         50,
			MismatchRate:  0,
		},
	})

	require.NoError(t, s.WriteSummary(runAt, summary))

	n, err := s.ReportCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	worst, err := s.WorstFiles(10)
	require.NoError(t, err)
	require.Len(t, worst, 2)
	assert.Equal(t, "a.GRCh38.txt", worst[0].File)
	assert.InDelta(t, 0.02, worst[0].MismatchRate, 1e-9)

	var badCount int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM bad_records`).Scan(&badCount))
	assert.Equal(t, 1, badCount)
}

func TestWorstFilesUsesLatestRun(t *testing.T) {
	s := openInMemory(t)

	old := validate.Aggregate([]*validate.Report{
		{File: "a.txt", TotalVariants: 10, RefMismatch: 5, MismatchRate: 0.5},
	})
	recent := validate.Aggregate([]*validate.Report{
		{File: "a.txt", TotalVariants: 10, RefMismatch: 1, MismatchRate: 0.1},
	})

	require.NoError(t, s.WriteSummary(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), old))
	require.NoError(t, s.WriteSummary(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), recent))

	worst, err := s.WorstFiles(1)
	require.NoError(t, err)
	require.Len(t, worst, 1)
	assert.InDelta(t, 0.1, worst[0].MismatchRate, 1e-9)
}

func TestWriteSummaryEmpty(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteSummary(time.Now(), validate.Aggregate(nil)))

	n, err := s.ReportCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWriteSummarySkipsNothingOnFailedReport(t *testing.T) {
	s := openInMemory(t)

	summary := validate.Aggregate([]*validate.Report{
		{File: "broken.txt", Err: "missing_columns"},
	})
	require.NoError(t, s.WriteSummary(time.Now(), summary))

	rows, err := s.DB().Query(`SELECT file, error FROM validation_reports`)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var file, errCol string
	require.NoError(t, rows.Scan(&file, &errCol))
	assert.Equal(t, "broken.txt", file)
	assert.Equal(t, "missing_columns", errCol)
}
