package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Reference resource URLs.
const (
	ucscChainBaseURL = "https://hgdownload.soe.ucsc.edu/goldenPath"
	gencodeBaseURL   = "https://ftp.ebi.ac.uk/pub/databases/gencode/Gencode_human/release_46"
)

// resourceURLs returns the chain and genome FASTA URLs for a liftover to
// the given target assembly.
func resourceURLs(assembly string) (chainURL, fastaURL string) {
	switch strings.ToUpper(assembly) {
	case "GRCH37":
		chainURL = fmt.Sprintf("%s/hg38/liftOver/hg38ToHg19.over.chain.gz", ucscChainBaseURL)
		fastaURL = fmt.Sprintf("%s/GRCh37_mapping/GRCh37.primary_assembly.genome.fa.gz", gencodeBaseURL)
	default: // GRCh38
		chainURL = fmt.Sprintf("%s/hg19/liftOver/hg19ToHg38.over.chain.gz", ucscChainBaseURL)
		fastaURL = fmt.Sprintf("%s/GRCh38.primary_assembly.genome.fa.gz", gencodeBaseURL)
	}
	return
}

func newDownloadCmd(a *app) *cobra.Command {
	var (
		assembly  string
		outputDir string
		chainOnly bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the liftover chain and target assembly genome",
		Long: `Download the UCSC liftover chain and the GENCODE primary assembly
genome FASTA for the target assembly into the resources directory.

The genome FASTA is downloaded gzipped and must be decompressed (gunzip)
before it can be used for validation.`,
		Example: `  maflift download
  maflift download --assembly GRCh38 --output resources`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir == "" {
				outputDir = filepath.Join(a.baseDir, "resources")
			}
			return runDownload(assembly, outputDir, chainOnly)
		},
	}

	cmd.Flags().StringVar(&assembly, "assembly", "GRCh38", "target assembly: GRCh37 or GRCh38")
	cmd.Flags().StringVar(&outputDir, "output", "", "output directory (default: <base-dir>/resources)")
	cmd.Flags().BoolVar(&chainOnly, "chain-only", false, "only download the chain file (skip the genome FASTA)")
	return cmd
}

func runDownload(assembly, destDir string, chainOnly bool) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", destDir, err)
	}

	chainURL, fastaURL := resourceURLs(assembly)

	fmt.Printf("Downloading liftover resources for %s...\n", assembly)
	fmt.Printf("Destination: %s\n\n", destDir)

	chainFile := filepath.Join(destDir, filepath.Base(chainURL))
	if err := downloadFile(chainURL, chainFile); err != nil {
		return fmt.Errorf("download chain: %w", err)
	}

	if !chainOnly {
		fastaFile := filepath.Join(destDir, filepath.Base(fastaURL))
		if err := downloadFile(fastaURL, fastaFile); err != nil {
			return fmt.Errorf("download genome FASTA: %w", err)
		}
		fmt.Printf("\nDecompress the genome before validating:\n")
		fmt.Printf("  gunzip %s\n", fastaFile)
	}

	fmt.Printf("\nDownload complete.\n")
	return nil
}

// downloadFile downloads a file from URL to the destination path with progress.
func downloadFile(url, destPath string) error {
	// Check if file already exists
	if info, err := os.Stat(destPath); err == nil {
		fmt.Printf("  %s already exists (%s), skipping\n", filepath.Base(destPath), formatSize(info.Size()))
		return nil
	}

	fmt.Printf("  Downloading %s...\n", filepath.Base(destPath))

	client := &http.Client{
		Timeout: 30 * time.Minute, // Long timeout for large files
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	var downloaded int64
	pw := &progressWriter{
		total:      resp.ContentLength,
		downloaded: &downloaded,
		lastPrint:  time.Now(),
	}

	_, err = io.Copy(f, io.TeeReader(resp.Body, pw))
	f.Close()

	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	fmt.Printf("    Done: %s\n", formatSize(downloaded))
	return nil
}

// progressWriter tracks download progress.
type progressWriter struct {
	total      int64
	downloaded *int64
	lastPrint  time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	*pw.downloaded += int64(n)

	if time.Since(pw.lastPrint) > time.Second {
		pw.lastPrint = time.Now()
		if pw.total > 0 {
			pct := float64(*pw.downloaded) / float64(pw.total) * 100
			fmt.Printf("    %s / %s (%.1f%%)\n",
				formatSize(*pw.downloaded), formatSize(pw.total), pct)
		} else {
			fmt.Printf("    %s\n", formatSize(*pw.downloaded))
		}
	}
	return n, nil
}

// formatSize formats a byte count for humans.
func formatSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	}
	return fmt.Sprintf("%d B", bytes)
}
