package validate

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/maflift/internal/maf"
)

// SequenceStore provides random access to reference bases, 1-based.
type SequenceStore interface {
	Fetch(name string, start int64, length int) (string, error)
	Contains(name string) bool
}

// requiredColumns must all be present for a file to be validated.
var requiredColumns = []string{
	maf.ColChromosome,
	maf.ColStartPosition,
	maf.ColEndPosition,
	maf.ColReferenceAllele,
	maf.ColTumorSeqAllele2,
	maf.ColNCBIBuild,
}

// Validator checks recorded reference alleles against a sequence store.
type Validator struct {
	store       SequenceStore
	targetBuild string
	logger      *zap.Logger
}

// New creates a Validator. targetBuild is the marker expected inside each
// record's build label (e.g. "GRCh38").
func New(store SequenceStore, targetBuild string) *Validator {
	return &Validator{
		store:       store,
		targetBuild: targetBuild,
		logger:      zap.NewNop(),
	}
}

// SetLogger sets the logger for per-file progress messages.
func (v *Validator) SetLogger(l *zap.Logger) {
	v.logger = l
}

// ValidateFile reads and validates a single lifted-over MAF file.
// A file that cannot be read still yields a Report carrying the error,
// so it is surfaced in the aggregate output instead of silently dropped.
func (v *Validator) ValidateFile(path string) *Report {
	t, err := maf.ReadTable(path)
	if err != nil {
		v.logger.Warn("could not read file for validation",
			zap.String("file", path),
			zap.Error(err))
		return &Report{File: path, Err: err.Error()}
	}
	return v.ValidateTable(path, t)
}

// ValidateTable validates every record of a parsed table.
func (v *Validator) ValidateTable(file string, t *maf.Table) *Report {
	r := &Report{File: file}

	var missing []string
	for _, col := range requiredColumns {
		if t.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		r.Err = "missing_columns"
		r.MissingColumns = missing
		return r
	}

	for i, row := range t.Rows {
		v.validateRow(r, t, row, i)
	}

	// Rate is 0 for an empty file rather than a division error.
	r.MismatchRate = float64(r.RefMismatch) / float64(max(r.TotalVariants, 1))
	return r
}

func (v *Validator) validateRow(r *Report, t *maf.Table, row []string, idx int) {
	r.TotalVariants++

	chrom := strings.TrimSpace(t.Field(row, maf.ColChromosome))
	ref := strings.TrimSpace(t.Field(row, maf.ColReferenceAllele))
	alt := strings.TrimSpace(t.Field(row, maf.ColTumorSeqAllele2))
	build := strings.TrimSpace(t.Field(row, maf.ColNCBIBuild))

	start, err := strconv.ParseInt(strings.TrimSpace(t.Field(row, maf.ColStartPosition)), 10, 64)
	if err != nil {
		r.sample(BadRecord{
			Reason: ReasonParseError,
			Chrom:  chrom,
			Line:   idx + 1,
			Err:    err.Error(),
		})
		return
	}

	// Wrong-build counting is independent of the allele outcome below.
	if build != "" && build != maf.Sentinel && !strings.Contains(build, v.targetBuild) {
		r.WrongBuild++
	}

	seqName, found := v.resolveChrom(chrom)
	if !found {
		r.NoChromInFasta++
		r.sample(BadRecord{
			Reason: ReasonChromMissing,
			Chrom:  chrom,
			Start:  start,
			Ref:    ref,
			Alt:    alt,
		})
		return
	}

	var fetched string
	if len(ref) > 0 {
		fetched, err = v.store.Fetch(seqName, start, len(ref))
		if err != nil {
			r.sample(BadRecord{
				Reason: ReasonFetchError,
				Chrom:  seqName,
				Start:  start,
				Err:    err.Error(),
			})
			return
		}
	}

	if !strings.EqualFold(fetched, ref) {
		r.RefMismatch++
		if len(ref) == 1 && len(alt) == 1 {
			r.SNVRefMismatch++
		} else {
			r.IndelRefMismatch++
		}
		r.sample(BadRecord{
			Reason:      ReasonRefMismatch,
			Chrom:       seqName,
			Start:       start,
			RefExpected: fetched,
			RefObserved: ref,
			Alt:         alt,
		})
		return
	}

	r.RefOK++
}

// resolveChrom tries the ordered naming candidates against the store:
// the exact name first, then the name with a "chr" prefix toggled.
// Additional naming conventions slot in here without restructuring.
func (v *Validator) resolveChrom(chrom string) (string, bool) {
	for _, candidate := range chromCandidates(chrom) {
		if v.store.Contains(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func chromCandidates(chrom string) []string {
	toggled := "chr" + chrom
	if strings.HasPrefix(chrom, "chr") {
		toggled = strings.TrimPrefix(chrom, "chr")
	}
	return []string{chrom, toggled}
}
