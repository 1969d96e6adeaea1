package maf

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes a normalized table to path, re-emitting the original
// comment lines verbatim before the header. The file content is rendered
// fully in memory and written through a temp-file rename, so a failure
// never leaves partial output behind.
func WriteFile(path string, comments []string, records []Record) error {
	var buf bytes.Buffer
	for _, c := range comments {
		buf.WriteString(c)
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Join(Columns, "\t"))
	buf.WriteByte('\n')
	for i := range records {
		buf.WriteString(strings.Join(records[i].Fields(), "\t"))
		buf.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write maf output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close maf output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename maf output: %w", err)
	}
	return nil
}

// WriteCSV writes the normalized records as a comma-separated file
// (no comment lines), used for the exported copy.
func WriteCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range records {
		if err := w.Write(records[i].Fields()); err != nil {
			f.Close()
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv output: %w", err)
	}
	return f.Close()
}

// NormalizeFile reads a translated MAF, normalizes it and rewrites it
// in place (or to outPath when non-empty). Returns the normalized records
// for further use (e.g. CSV export).
func NormalizeFile(path, outPath string) ([]Record, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	records, err := Normalize(t)
	if err != nil {
		return nil, err
	}
	if outPath == "" {
		outPath = path
	}
	if err := WriteFile(outPath, t.Comments, records); err != nil {
		return nil, err
	}
	return records, nil
}
