package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-screener/internal/types"
)

// -----------------------------------------------------------------------------
// Candidate Methods
// -----------------------------------------------------------------------------

// SaveCandidate inserts a candidate and returns its new ID
func (db *DB) SaveCandidate(ctx context.Context, c *types.Candidate) (int64, error) {
	analysisJSON, err := json.Marshal(c.Analysis)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	var id int64
	err = db.pool.QueryRow(ctx,
		`INSERT INTO candidates (filename, analysis, upload_date)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		c.Filename, analysisJSON, c.UploadDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save candidate %s: %w", c.Filename, err)
	}
	return id, nil
}

// GetCandidate retrieves a candidate by ID. It returns nil, nil when no row exists.
func (db *DB) GetCandidate(ctx context.Context, id int64) (*types.Candidate, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, filename, upload_date, analysis FROM candidates WHERE id = $1`,
		id,
	)
	c, err := scanCandidate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate %d: %w", id, err)
	}
	return c, nil
}

// ListCandidates returns candidates newest first, optionally filtered
func (db *DB) ListCandidates(ctx context.Context, filter *CandidateFilter) ([]types.Candidate, error) {
	query, args := buildListQuery(filter)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []types.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

// DeleteCandidate removes a candidate. Deleting a missing ID is not an error.
func (db *DB) DeleteCandidate(ctx context.Context, id int64) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete candidate %d: %w", id, err)
	}
	return nil
}

// GetStatistics aggregates the candidate pool. Averages are rounded to two decimals
// and recent uploads cover the last seven days.
func (db *DB) GetStatistics(ctx context.Context) (*types.Statistics, error) {
	var s types.Statistics
	var avgOverall, avgSkills float64
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE analysis->>'category' = $1),
		        COUNT(*) FILTER (WHERE analysis->>'category' = $2),
		        COUNT(*) FILTER (WHERE analysis->>'category' = $3),
		        COALESCE(AVG((analysis->>'overall_score')::float8), 0),
		        COALESCE(AVG((analysis->>'skills_match')::float8), 0),
		        COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		 FROM candidates`,
		types.CategoryHighlyQualified, types.CategoryQualified, types.CategoryNotFit,
	).Scan(&s.TotalCandidates,
		&s.Categories.HighlyQualified, &s.Categories.Qualified, &s.Categories.NotFit,
		&avgOverall, &avgSkills, &s.RecentUploads)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	s.AverageScores.OverallScore = round2(avgOverall)
	s.AverageScores.SkillsMatch = round2(avgSkills)
	return &s, nil
}

func buildListQuery(filter *CandidateFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	limit := DefaultListLimit
	if filter != nil {
		if filter.Category != "" {
			args = append(args, filter.Category)
			where = append(where, fmt.Sprintf("analysis->>'category' = $%d", len(args)))
		}
		if filter.MinScore > 0 {
			args = append(args, filter.MinScore)
			where = append(where, fmt.Sprintf("COALESCE((analysis->>'overall_score')::float8, 0) >= $%d", len(args)))
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
	}

	var b strings.Builder
	b.WriteString(`SELECT id, filename, upload_date, analysis FROM candidates`)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))
	return b.String(), args
}

func scanCandidate(row pgx.Row) (*types.Candidate, error) {
	var c types.Candidate
	var analysisJSON []byte
	if err := row.Scan(&c.ID, &c.Filename, &c.UploadDate, &analysisJSON); err != nil {
		return nil, err
	}
	if len(analysisJSON) > 0 {
		if err := json.Unmarshal(analysisJSON, &c.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis for candidate %d: %w", c.ID, err)
		}
	}
	return &c, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
