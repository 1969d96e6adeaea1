package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/maflift/internal/fasta"
)

// writeMAF writes a minimal lifted MAF with ok matching records and bad
// mismatching ones against a reference of all "A" bases.
func writeMAF(t *testing.T, dir, name string, ok, bad int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("#lifted\n")
	b.WriteString(validateHeader)
	for i := 0; i < ok; i++ {
		fmt.Fprintf(&b, "1\t%d\t%d\tA\tG\tGRCh38\n", i+1, i+1)
	}
	for i := 0; i < bad; i++ {
		fmt.Fprintf(&b, "1\t%d\t%d\tT\tG\tGRCh38\n", i+1, i+1)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestEndToEndOverallRateIsWorstFile(t *testing.T) {
	store, err := fasta.New(strings.NewReader(">chr1\n" + strings.Repeat("A", 200) + "\n"))
	require.NoError(t, err)

	dir := t.TempDir()
	files := []string{
		writeMAF(t, dir, "a.GRCh38.txt", 10, 0),  // rate 0.0
		writeMAF(t, dir, "b.GRCh38.txt", 49, 1),  // rate 0.02
		writeMAF(t, dir, "c.GRCh38.txt", 99, 1),  // rate 0.01
	}

	v := New(store, "GRCh38")

	reports := make([]*Report, 0, len(files))
	for _, f := range files {
		r := v.ValidateFile(f)
		require.False(t, r.Failed())
		reports = append(reports, r)
	}

	assert.InDelta(t, 0.0, reports[0].MismatchRate, 1e-9)
	assert.InDelta(t, 0.02, reports[1].MismatchRate, 1e-9)
	assert.InDelta(t, 0.01, reports[2].MismatchRate, 1e-9)

	summary := Aggregate(reports)
	assert.Equal(t, 3, summary.FilesValidated)
	assert.InDelta(t, 0.02, summary.OverallMismatchRate(), 1e-9)

	// Reports and summary persist round-trip.
	logs := t.TempDir()
	for _, r := range reports {
		_, err := WriteReport(logs, r)
		require.NoError(t, err)
	}
	path, err := WriteSummary(logs, summary)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}
