package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/maflift/internal/maf"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "normalize <file> [files...]",
		Short: "Normalize translated MAF tables into the fixed output schema",
		Long: `Recompute Variant_Type from the current alleles, enforce the fixed
23-column schema, replace empty values with "-", and preserve leading comment
lines verbatim. Files are rewritten in place unless -o is given.`,
		Example: `  maflift normalize data/output/study.GRCh38.txt
  maflift normalize -o normalized.txt data/output/study.GRCh38.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("-o can only be used with a single input file")
			}
			for _, f := range args {
				records, err := maf.NormalizeFile(f, output)
				if err != nil {
					return fmt.Errorf("normalize %s: %w", filepath.Base(f), err)
				}
				a.logger.Info("normalized",
					zap.String("file", filepath.Base(f)),
					zap.Int("records", len(records)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: rewrite in place)")
	return cmd
}
