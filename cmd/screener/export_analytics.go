package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/types"
)

var exportAnalyticsCmd = &cobra.Command{
	Use:   "export-analytics",
	Short: "Export the analytics report",
	Long:  "Renders the analytics PDF from an analytics JSON file, or from live database statistics when no file is given.",
	RunE:  runExportAnalytics,
}

var exportAnalyticsFile string

func init() {
	exportAnalyticsCmd.Flags().StringVarP(&exportAnalyticsFile, "file", "f", "", "Path to analytics JSON file (defaults to the database)")

	rootCmd.AddCommand(exportAnalyticsCmd)
}

func runExportAnalytics(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var (
		payload  *types.AnalyticsPayload
		database *db.DB
	)
	if exportAnalyticsFile != "" {
		loaded, err := loadAnalyticsFile(exportAnalyticsFile)
		if err != nil {
			return err
		}
		payload = loaded
	} else {
		d, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer d.Close()
		database = d

		stats, err := database.GetStatistics(ctx)
		if err != nil {
			return err
		}
		payload = &types.AnalyticsPayload{Statistics: stats}
	}

	art, err := newExporter().Analytics(payload)
	if err != nil {
		return fmt.Errorf("failed to export analytics: %w", err)
	}
	return emit(ctx, art, db.ExportKindAnalytics, database, nil)
}
