package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/types"
)

var exportCandidateCmd = &cobra.Command{
	Use:   "export-candidate",
	Short: "Export the analysis report for one candidate",
	Long:  "Renders the single-candidate analysis PDF from a candidate JSON file or a stored candidate ID.",
	RunE:  runExportCandidate,
}

var (
	exportCandidateFile string
	exportCandidateID   int64
)

func init() {
	exportCandidateCmd.Flags().StringVarP(&exportCandidateFile, "file", "f", "", "Path to candidate JSON file")
	exportCandidateCmd.Flags().Int64Var(&exportCandidateID, "id", 0, "Stored candidate ID (requires a database)")
	exportCandidateCmd.MarkFlagsMutuallyExclusive("file", "id")
	exportCandidateCmd.MarkFlagsOneRequired("file", "id")

	rootCmd.AddCommand(exportCandidateCmd)
}

func runExportCandidate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var (
		c           *types.Candidate
		database    *db.DB
		candidateID *int64
	)
	if exportCandidateFile != "" {
		loaded, err := loadCandidateFile(exportCandidateFile)
		if err != nil {
			return err
		}
		c = loaded
	} else {
		if exportCandidateID <= 0 {
			return fmt.Errorf("--id must be a positive integer")
		}
		d, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer d.Close()
		database = d

		c, err = database.GetCandidate(ctx, exportCandidateID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("candidate %d not found", exportCandidateID)
		}
		candidateID = &exportCandidateID
	}

	art, err := newExporter().Candidate(c)
	if err != nil {
		return fmt.Errorf("failed to export candidate: %w", err)
	}
	return emit(ctx, art, db.ExportKindCandidate, database, candidateID)
}
