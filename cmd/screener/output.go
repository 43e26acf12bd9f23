package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/report"
)

// newExporter builds an Exporter from the resolved configuration. Dry runs lay out
// with the text recorder instead of producing PDF bytes.
func newExporter() *report.Exporter {
	opts := []report.Option{
		report.WithGeometry(cfg.Geometry()),
		report.WithBrand(cfg.Brand),
		report.WithRepeatTableHeader(cfg.RepeatTableHeader),
		report.WithLogger(logger),
	}
	if rootDryRun {
		opts = append(opts, report.WithSinkFactory(rendering.NewRecorderFactory()))
	}
	return report.NewExporter(opts...)
}

// emit writes art to the output directory, or prints the layout listing on a dry run.
// When database is non-nil the export is also recorded in the history.
func emit(ctx context.Context, art *rendering.Artifact, kind string, database *db.DB, candidateID *int64) error {
	printer := observability.NewPrinter(os.Stdout)
	if rootDryRun {
		printer.PrintDryRun(art)
		return nil
	}

	path, err := art.Save(cfg.OutputDir)
	if err != nil {
		return err
	}
	printer.PrintArtifact(art, path)
	recordExport(ctx, database, kind, art, candidateID)
	return nil
}

// recordExport stores export history. Failures are logged and never fail the command.
func recordExport(ctx context.Context, database *db.DB, kind string, art *rendering.Artifact, candidateID *int64) {
	if database == nil {
		return
	}
	_, err := database.RecordExport(ctx, &db.ExportInput{
		Kind:        kind,
		FileName:    art.FileName,
		ContentType: art.ContentType,
		Pages:       art.Pages,
		SizeBytes:   len(art.Data),
		CandidateID: candidateID,
	})
	if err != nil {
		logger.Warn("recording export", zap.String("kind", kind), zap.Error(err))
	}
}
