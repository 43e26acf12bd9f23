package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
)

// Schema kinds accepted by --kind
const (
	kindCandidate = "candidate"
	kindList      = "list"
	kindAnalytics = "analytics"
)

var schemaForKind = map[string]string{
	kindCandidate: schemas.CandidateSchema,
	kindList:      schemas.CandidateListSchema,
	kindAnalytics: schemas.AnalyticsSchema,
}

// readDocument reads path and checks it against the schema for kind.
func readDocument(path, kind string) ([]byte, error) {
	schemaName, ok := schemaForKind[kind]
	if !ok {
		return nil, fmt.Errorf("unknown document kind %q (want candidate, list or analytics)", kind)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("input file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.ValidateDocument(schemaName, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func loadCandidateFile(path string) (*types.Candidate, error) {
	data, err := readDocument(path, kindCandidate)
	if err != nil {
		return nil, err
	}
	var c types.Candidate
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidate: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

func loadCandidatesFile(path string) ([]types.Candidate, error) {
	data, err := readDocument(path, kindList)
	if err != nil {
		return nil, err
	}
	var candidates []types.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidates: %w", err)
	}
	if err := types.ValidateCandidates(candidates); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return candidates, nil
}

func loadAnalyticsFile(path string) (*types.AnalyticsPayload, error) {
	data, err := readDocument(path, kindAnalytics)
	if err != nil {
		return nil, err
	}
	var payload types.AnalyticsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analytics: %w", err)
	}
	return &payload, nil
}

// openDB connects to the configured database. The caller closes it.
func openDB(ctx context.Context) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// listFlags are the filters shared by commands that read candidate lists.
type listFlags struct {
	file     string
	category string
	minScore float64
	limit    int
}

func (f *listFlags) filter() *db.CandidateFilter {
	return &db.CandidateFilter{Category: f.category, MinScore: f.minScore, Limit: f.limit}
}

// candidates loads the list from --file, or from the database when no file is given.
// The returned DB is nil in file mode.
func (f *listFlags) candidates(ctx context.Context) ([]types.Candidate, *db.DB, error) {
	if f.minScore < 0 || f.minScore > 100 {
		return nil, nil, fmt.Errorf("--min-score must be between 0 and 100")
	}
	if f.limit < 0 {
		return nil, nil, fmt.Errorf("--limit must be non-negative")
	}

	if f.file != "" {
		candidates, err := loadCandidatesFile(f.file)
		if err != nil {
			return nil, nil, err
		}
		return filterCandidates(candidates, f.filter()), nil, nil
	}

	database, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	candidates, err := database.ListCandidates(ctx, f.filter())
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return candidates, database, nil
}

// filterCandidates applies a CandidateFilter to an in-memory list, keeping input order.
func filterCandidates(candidates []types.Candidate, filter *db.CandidateFilter) []types.Candidate {
	out := make([]types.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if filter.Category != "" && c.Analysis.Category != filter.Category {
			continue
		}
		if c.Analysis.OverallScore < filter.MinScore {
			continue
		}
		out = append(out, c)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out
}
