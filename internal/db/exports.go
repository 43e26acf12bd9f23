package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Export History Methods
// -----------------------------------------------------------------------------

// RecordExport stores an export in the history and returns the stored record
func (db *DB) RecordExport(ctx context.Context, input *ExportInput) (*ExportRecord, error) {
	rec := ExportRecord{
		ID:          uuid.New(),
		Kind:        input.Kind,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Pages:       input.Pages,
		SizeBytes:   input.SizeBytes,
		CandidateID: input.CandidateID,
		RequestedBy: input.RequestedBy,
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO report_exports (id, kind, file_name, content_type, pages, size_bytes, candidate_id, requested_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		rec.ID, rec.Kind, rec.FileName, rec.ContentType, rec.Pages, rec.SizeBytes, rec.CandidateID, rec.RequestedBy,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record export %s: %w", input.FileName, err)
	}
	return &rec, nil
}

// ListExports returns the most recent exports, newest first
func (db *DB) ListExports(ctx context.Context, limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, kind, file_name, content_type, pages, size_bytes, candidate_id, requested_by, created_at
		 FROM report_exports
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var records []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.FileName, &rec.ContentType, &rec.Pages,
			&rec.SizeBytes, &rec.CandidateID, &rec.RequestedBy, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}
	return records, nil
}
