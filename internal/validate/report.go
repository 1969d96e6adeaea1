// Package validate checks lifted-over MAF tables against the target
// assembly reference genome and aggregates per-file mismatch statistics.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Mismatch reason tags recorded in the bad-record sample.
const (
	ReasonChromMissing = "chrom_missing_in_fasta"
	ReasonFetchError   = "fasta_fetch_error"
	ReasonRefMismatch  = "ref_mismatch"
	ReasonParseError   = "parse_error"
)

// SampleLimit bounds the bad-record sample kept per file (first N only).
const SampleLimit = 50

// BadRecord is one sampled validation failure.
type BadRecord struct {
	Reason      string `json:"reason"`
	Chrom       string `json:"chrom,omitempty"`
	Start       int64  `json:"start,omitempty"`
	Ref         string `json:"ref,omitempty"`
	RefExpected string `json:"ref_expected,omitempty"`
	RefObserved string `json:"ref_observed,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Line        int    `json:"line,omitempty"`
	Err         string `json:"error,omitempty"`
}

// Report is the per-file validation aggregate.
type Report struct {
	File             string      `json:"file"`
	TotalVariants    int         `json:"total_variants"`
	RefOK            int         `json:"ref_ok"`
	RefMismatch      int         `json:"ref_mismatch"`
	SNVRefMismatch   int         `json:"snv_ref_mismatch"`
	IndelRefMismatch int         `json:"indel_ref_mismatch"`
	WrongBuild       int         `json:"wrong_build"`
	NoChromInFasta   int         `json:"no_chrom_in_fasta"`
	MismatchRate     float64     `json:"mismatch_rate"`
	BadRecordsSample []BadRecord `json:"bad_records_sample"`

	// Set instead of the statistics when the file could not be validated.
	Err            string   `json:"-"`
	MissingColumns []string `json:"-"`
}

// Failed reports whether the file was rejected before per-record validation.
func (r *Report) Failed() bool {
	return r.Err != ""
}

// MarshalJSON emits either the statistics or the error form of the report.
func (r *Report) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(struct {
			File           string   `json:"file"`
			Error          string   `json:"error"`
			MissingColumns []string `json:"missing_columns,omitempty"`
		}{r.File, r.Err, r.MissingColumns})
	}
	type alias Report
	return json.Marshal((*alias)(r))
}

func (r *Report) sample(b BadRecord) {
	if len(r.BadRecordsSample) < SampleLimit {
		r.BadRecordsSample = append(r.BadRecordsSample, b)
	}
}

// Summary is the whole-run aggregate of per-file reports.
type Summary struct {
	FilesValidated int       `json:"files_validated"`
	Reports        []*Report `json:"reports"`
}

// Aggregate collects reports into a Summary, preserving order.
func Aggregate(reports []*Report) *Summary {
	return &Summary{
		FilesValidated: len(reports),
		Reports:        reports,
	}
}

// OverallMismatchRate returns the maximum per-file mismatch rate, flagging
// the worst offender rather than averaging it away.
func (s *Summary) OverallMismatchRate() float64 {
	overall := 0.0
	for _, r := range s.Reports {
		if !r.Failed() && r.MismatchRate > overall {
			overall = r.MismatchRate
		}
	}
	return overall
}

// WriteReport persists a per-file report as indented JSON next to the
// run's other logs, named "<stem>.validation.json".
func WriteReport(dir string, r *Report) (string, error) {
	stem := filepath.Base(r.File)
	stem = stem[:len(stem)-len(filepath.Ext(stem))]
	path := filepath.Join(dir, stem+".validation.json")
	if err := writeJSON(path, r); err != nil {
		return "", err
	}
	return path, nil
}

// WriteSummary persists the run summary as "validation_summary.json".
func WriteSummary(dir string, s *Summary) (string, error) {
	path := filepath.Join(dir, "validation_summary.json")
	if err := writeJSON(path, s); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
