package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/report"
)

var exportListCmd = &cobra.Command{
	Use:   "export-list",
	Short: "Export the candidate summary report",
	Long:  "Renders the candidate list PDF (summary statistics and candidate table) from a JSON file or the database.",
	RunE:  runExportList,
}

var (
	exportList             listFlags
	exportListRepeatHeader bool
)

func init() {
	exportListCmd.Flags().StringVarP(&exportList.file, "file", "f", "", "Path to candidate list JSON file (defaults to the database)")
	exportListCmd.Flags().StringVar(&exportList.category, "category", "", "Only include candidates in this category")
	exportListCmd.Flags().Float64Var(&exportList.minScore, "min-score", 0, "Only include candidates scoring at least this much")
	exportListCmd.Flags().IntVar(&exportList.limit, "limit", 0, "Maximum number of candidates")
	exportListCmd.Flags().BoolVar(&exportListRepeatHeader, "repeat-header", false, "Repeat the table header on every page")

	rootCmd.AddCommand(exportListCmd)
}

func runExportList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if cmd.Flags().Changed("repeat-header") {
		cfg.RepeatTableHeader = exportListRepeatHeader
	}

	candidates, database, err := exportList.candidates(ctx)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	summary, err := report.Summarize(candidates)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintSummary(summary)
	}

	art, err := newExporter().CandidateList(candidates)
	if err != nil {
		return fmt.Errorf("failed to export candidate list: %w", err)
	}
	return emit(ctx, art, db.ExportKindCandidateList, database, nil)
}
