package maf

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMAF = `#version 2.4
#liftOver chain hg19ToHg38
Hugo_Symbol	Chromosome	Start_Position	End_Position	Reference_Allele	Tumor_Seq_Allele2	NCBI_Build
KRAS	12	25245350	25245350	C	A	GRCh38
TP53	chr17	7675088	7675088	C	T	GRCh38

BRAF	7	140753336	140753336	A	T	GRCh38
`

func TestReadTableFrom(t *testing.T) {
	table, err := ReadTableFrom(strings.NewReader(sampleMAF))
	require.NoError(t, err)

	assert.Equal(t, []string{"#version 2.4", "#liftOver chain hg19ToHg38"}, table.Comments)
	assert.Equal(t, 7, len(table.Header))
	require.Len(t, table.Rows, 3) // blank line skipped

	assert.Equal(t, "KRAS", table.Field(table.Rows[0], "Hugo_Symbol"))
	assert.Equal(t, "25245350", table.Field(table.Rows[0], ColStartPosition))
	assert.Equal(t, "chr17", table.Field(table.Rows[1], ColChromosome))
}

func TestTableColumnIndex(t *testing.T) {
	table, err := ReadTableFrom(strings.NewReader(sampleMAF))
	require.NoError(t, err)

	assert.Equal(t, 1, table.ColumnIndex(ColChromosome))
	assert.Equal(t, -1, table.ColumnIndex("No_Such_Column"))
	assert.Equal(t, "", table.Field(table.Rows[0], "No_Such_Column"))
}

func TestTableFieldShortRow(t *testing.T) {
	in := "Chromosome\tStart_Position\tReference_Allele\n12\t100\n"
	table, err := ReadTableFrom(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	assert.Equal(t, "", table.Field(table.Rows[0], ColReferenceAllele))
}

func TestReadTableGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleMAF))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)
	assert.Equal(t, "KRAS", table.Field(table.Rows[0], "Hugo_Symbol"))
}

func TestReadTableNoTrailingNewline(t *testing.T) {
	in := "Chromosome\tReference_Allele\n12\tC"
	table, err := ReadTableFrom(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "C", table.Field(table.Rows[0], ColReferenceAllele))
}

func TestParserEmptyInput(t *testing.T) {
	_, err := ReadTableFrom(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParserCommentsOnly(t *testing.T) {
	_, err := ReadTableFrom(strings.NewReader("#only comments\n#here\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
