package liftover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/maflift/internal/config"
	"github.com/inodb/maflift/internal/maf"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Reference.Build = "GRCh38"
	cfg.Reference.Chain = "resources/hg19ToHg38.over.chain.gz"
	cfg.Reference.Fasta = "resources/GRCh38.primary_assembly.genome.fa"
	cfg.Chromosomes.Style = "a"
	return cfg
}

func TestArgs(t *testing.T) {
	cfg := testConfig(t)
	r := NewRunner(cfg)

	args := r.Args(filepath.Join("data", "input", "study.txt"))
	assert.Equal(t, []string{
		"CrossMap", "maf",
		"--chromid", "a",
		"resources/hg19ToHg38.over.chain.gz",
		filepath.Join("data", "input", "study.txt"),
		"resources/GRCh38.primary_assembly.genome.fa",
		"GRCh38",
		r.OutputPath(filepath.Join("data", "input", "study.txt")),
	}, args)
}

func TestOutputAndLogPaths(t *testing.T) {
	cfg := testConfig(t)
	r := NewRunner(cfg)

	out := r.OutputPath("/anywhere/study_mutations.txt")
	assert.Equal(t, filepath.Join(cfg.Paths.Output, "study_mutations.GRCh38.txt"), out)

	log := r.LogPath("/anywhere/study_mutations.txt")
	assert.Equal(t, filepath.Join(cfg.Paths.Logs, "study_mutations.log"), log)
}

func TestEnsureDirs(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.Dir = filepath.Join(cfg.Paths.Logs, "..", "export")
	r := NewRunner(cfg)

	require.NoError(t, r.EnsureDirs())
	for _, d := range []string{cfg.Paths.Output, cfg.Paths.Unmap, cfg.Paths.Logs, cfg.Export.Dir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestRelocateUnmap(t *testing.T) {
	cfg := testConfig(t)
	r := NewRunner(cfg)
	require.NoError(t, r.EnsureDirs())

	output := filepath.Join(cfg.Paths.Output, "study.GRCh38.txt")
	unmapContent := "Hugo_Symbol\tChromosome\nTP53\t17\n"
	require.NoError(t, os.WriteFile(output+".unmap", []byte(unmapContent), 0644))

	require.NoError(t, r.RelocateUnmap(output))

	// Moved, not copied, and byte-identical.
	_, err := os.Stat(output + ".unmap")
	assert.True(t, os.IsNotExist(err))

	moved, err := os.ReadFile(filepath.Join(cfg.Paths.Unmap, "study.GRCh38.txt.unmap"))
	require.NoError(t, err)
	assert.Equal(t, unmapContent, string(moved))
}

func TestRelocateUnmapMissingIsNoop(t *testing.T) {
	cfg := testConfig(t)
	r := NewRunner(cfg)
	require.NoError(t, r.EnsureDirs())

	assert.NoError(t, r.RelocateUnmap(filepath.Join(cfg.Paths.Output, "none.GRCh38.txt")))
}

func TestExport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.Dir = filepath.Join(filepath.Dir(cfg.Paths.Output), "export")
	r := NewRunner(cfg)
	require.NoError(t, r.EnsureDirs())

	output := filepath.Join(cfg.Paths.Output, "study.GRCh38.txt")
	records := []maf.Record{{
		Chromosome:      "1",
		StartPosition:   "100",
		ReferenceAllele: "A",
		TumorSeqAllele2: "T",
		VariantType:     maf.TypeSNP,
	}}
	require.NoError(t, maf.WriteFile(output, []string{"#lifted"}, records))

	require.NoError(t, r.Export(output, records))

	txt, err := os.ReadFile(filepath.Join(cfg.Export.Dir, "study.GRCh38.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(txt), "#lifted")

	csv, err := os.ReadFile(filepath.Join(cfg.Export.Dir, "study.GRCh38.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csv), "SNP")
}

func TestExportWithoutDirIsNoop(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.Dir = ""
	r := NewRunner(cfg)

	assert.NoError(t, r.Export("does-not-matter.txt", nil))
}
