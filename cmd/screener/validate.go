package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate input JSON files",
	Long: `Checks each file against a built-in schema (--kind candidate, list or analytics)
or an external schema file (--schema). Candidate documents are also checked field by field.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateKind       string
	validateSchemaPath string
)

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", kindCandidate, "Built-in schema: candidate, list or analytics")
	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "Path to an external JSON schema (overrides --kind)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	if validateSchemaPath == "" {
		if _, ok := schemaForKind[validateKind]; !ok {
			return fmt.Errorf("unknown document kind %q (want candidate, list or analytics)", validateKind)
		}
	}

	printer := observability.NewPrinter(os.Stdout)
	invalid := 0
	for _, file := range args {
		err := validateFile(file)
		printer.PrintValidation(file, err)
		if err != nil {
			invalid++
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files failed validation", invalid, len(args))
	}
	return nil
}

func validateFile(path string) error {
	if validateSchemaPath != "" {
		schemaPath := validateSchemaPath
		if resolved := schemas.ResolveSchemaPath(schemaPath); resolved != "" {
			schemaPath = resolved
		}
		return schemas.ValidateJSON(schemaPath, path)
	}

	var err error
	switch validateKind {
	case kindCandidate:
		_, err = loadCandidateFile(path)
	case kindList:
		_, err = loadCandidatesFile(path)
	case kindAnalytics:
		_, err = loadAnalyticsFile(path)
	}
	return err
}
