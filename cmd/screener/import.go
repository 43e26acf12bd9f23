package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store screened candidates in the database",
	Long:  "Validates a candidate list JSON file and inserts every candidate, creating tables when missing.",
	RunE:  runImport,
}

var importFile string

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to candidate list JSON file (required)")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	candidates, err := loadCandidatesFile(importFile)
	if err != nil {
		return err
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	for i := range candidates {
		id, err := database.SaveCandidate(ctx, &candidates[i])
		if err != nil {
			return fmt.Errorf("imported %d of %d: %w", i, len(candidates), err)
		}
		logger.Debug("candidate imported", zap.Int64("id", id), zap.String("name", candidates[i].DisplayName()))
	}

	_, _ = fmt.Fprintf(os.Stdout, "Imported %d candidates\n", len(candidates))
	return nil
}
