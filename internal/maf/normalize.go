package maf

import (
	"errors"
)

// ErrEmptyInput reports a table with zero data records. A liftover run
// that produced nothing must be surfaced, not silently skipped.
var ErrEmptyInput = errors.New("no data records in maf input")

// Normalize projects every row of the table onto the fixed output schema:
// Variant_Type is recomputed from the current alleles, columns absent from
// the input are filled with the sentinel, extra columns are dropped, and
// remaining empty values are replaced by the sentinel.
func Normalize(t *Table) ([]Record, error) {
	if len(t.Rows) == 0 {
		return nil, ErrEmptyInput
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, normalizeRow(t, row))
	}
	return records, nil
}

func normalizeRow(t *Table, row []string) Record {
	var r Record
	for _, col := range Columns {
		v := t.Field(row, col)
		if v == "" {
			v = Sentinel
		}
		r.setField(col, v)
	}

	// Never trust the upstream Variant_Type.
	ref := t.Field(row, ColReferenceAllele)
	alt := t.Field(row, ColTumorSeqAllele2)
	if ref == "" {
		ref = Sentinel
	}
	if alt == "" {
		alt = Sentinel
	}
	r.VariantType = Classify(ref, alt)

	return r
}
