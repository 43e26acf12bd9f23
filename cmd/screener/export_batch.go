package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/report"
	"github.com/jonathan/resume-screener/internal/types"
)

var exportBatchCmd = &cobra.Command{
	Use:   "export-batch",
	Short: "Export one analysis report per candidate",
	Long: `Renders the single-candidate report for every candidate in a list, several at a time.
Concurrency is taken from the config file (default 4) or --concurrency.`,
	RunE: runExportBatch,
}

var (
	exportBatch            listFlags
	exportBatchConcurrency int
)

func init() {
	exportBatchCmd.Flags().StringVarP(&exportBatch.file, "file", "f", "", "Path to candidate list JSON file (defaults to the database)")
	exportBatchCmd.Flags().StringVar(&exportBatch.category, "category", "", "Only include candidates in this category")
	exportBatchCmd.Flags().Float64Var(&exportBatch.minScore, "min-score", 0, "Only include candidates scoring at least this much")
	exportBatchCmd.Flags().IntVar(&exportBatch.limit, "limit", 0, "Maximum number of candidates")
	exportBatchCmd.Flags().IntVar(&exportBatchConcurrency, "concurrency", 0, "Parallel exports (overrides config)")

	rootCmd.AddCommand(exportBatchCmd)
}

func runExportBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if cmd.Flags().Changed("concurrency") {
		if exportBatchConcurrency <= 0 {
			return fmt.Errorf("--concurrency must be positive")
		}
		cfg.Concurrency = exportBatchConcurrency
	}

	candidates, database, err := exportBatch.candidates(ctx)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}
	if len(candidates) == 0 {
		return report.ErrNoCandidates
	}

	results := exportAll(ctx, newExporter(), candidates, database)
	observability.NewPrinter(os.Stdout).PrintBatch(results)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(results))
	}
	return nil
}

// exportAll renders every candidate with at most cfg.Concurrency exports in flight.
// One failed export does not cancel the others; results keep input order.
func exportAll(ctx context.Context, x *report.Exporter, candidates []types.Candidate, database *db.DB) []observability.ExportResult {
	results := make([]observability.ExportResult, len(candidates))
	names := batchFileNames(candidates)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i := range candidates {
		c := &candidates[i]
		results[i].Name = c.DisplayName()

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			art, err := x.Candidate(c)
			if err != nil {
				results[i].Err = err
				return nil
			}
			art.FileName = names[i] + filepath.Ext(art.FileName)
			results[i].Pages = art.Pages

			if rootDryRun {
				results[i].Path = art.FileName
				return nil
			}
			path, err := art.Save(cfg.OutputDir)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Path = path

			var candidateID *int64
			if c.ID > 0 && database != nil {
				candidateID = &c.ID
			}
			recordExport(gctx, database, db.ExportKindCandidate, art, candidateID)
			logger.Debug("batch export written", zap.String("path", path))
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// batchFileNames returns the report base name for each candidate, suffixing repeats
// ("Jane_analysis", "Jane_analysis_2") so concurrent writes never collide.
func batchFileNames(candidates []types.Candidate) []string {
	names := make([]string, len(candidates))
	seen := make(map[string]int, len(candidates))
	for i := range candidates {
		base := report.CandidateFileName(&candidates[i], "")
		seen[base]++
		if n := seen[base]; n > 1 {
			base = fmt.Sprintf("%s_%d", base, n)
		}
		names[i] = base
	}
	return names
}
