package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/db"
)

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv",
	Short: "Export candidates as CSV",
	Long: `Writes search_results.csv (one row per candidate) or, with --bulk,
bulk_analysis_results.csv in the bulk-upload column layout.`,
	RunE: runExportCSV,
}

var (
	exportCSV     listFlags
	exportCSVBulk bool
)

func init() {
	exportCSVCmd.Flags().StringVarP(&exportCSV.file, "file", "f", "", "Path to candidate list JSON file (defaults to the database)")
	exportCSVCmd.Flags().StringVar(&exportCSV.category, "category", "", "Only include candidates in this category")
	exportCSVCmd.Flags().Float64Var(&exportCSV.minScore, "min-score", 0, "Only include candidates scoring at least this much")
	exportCSVCmd.Flags().IntVar(&exportCSV.limit, "limit", 0, "Maximum number of candidates")
	exportCSVCmd.Flags().BoolVar(&exportCSVBulk, "bulk", false, "Use the bulk-upload results layout")

	rootCmd.AddCommand(exportCSVCmd)
}

func runExportCSV(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	candidates, database, err := exportCSV.candidates(ctx)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	x := newExporter()
	export := x.CandidatesCSV
	if exportCSVBulk {
		export = x.BulkResultsCSV
	}
	art, err := export(candidates)
	if err != nil {
		return fmt.Errorf("failed to export CSV: %w", err)
	}
	return emit(ctx, art, db.ExportKindCSV, database, nil)
}
