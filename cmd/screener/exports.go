package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/observability"
)

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List recent exports",
	Long:  "Prints the export history recorded in the database, newest first.",
	RunE:  runExports,
}

var exportsLimit int

func init() {
	exportsCmd.Flags().IntVar(&exportsLimit, "limit", 20, "Number of exports to show")

	rootCmd.AddCommand(exportsCmd)
}

func runExports(cmd *cobra.Command, _ []string) error {
	if exportsLimit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	database, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()

	records, err := database.ListExports(cmd.Context(), exportsLimit)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintExports(records)
	return nil
}
