package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_NoFilter(t *testing.T) {
	query, args := buildListQuery(nil)
	assert.Equal(t, `SELECT id, filename, upload_date, analysis FROM candidates ORDER BY created_at DESC, id DESC LIMIT $1`, query)
	assert.Equal(t, []any{DefaultListLimit}, args)
}

func TestBuildListQuery_Filters(t *testing.T) {
	query, args := buildListQuery(&CandidateFilter{Category: "Qualified", MinScore: 70, Limit: 10})
	assert.Contains(t, query, "WHERE analysis->>'category' = $1 AND COALESCE((analysis->>'overall_score')::float8, 0) >= $2")
	assert.Contains(t, query, "LIMIT $3")
	assert.Equal(t, []any{"Qualified", 70.0, 10}, args)
}

func TestBuildListQuery_MinScoreOnly(t *testing.T) {
	query, args := buildListQuery(&CandidateFilter{MinScore: 50})
	assert.Contains(t, query, ">= $1")
	assert.Contains(t, query, "LIMIT $2")
	assert.Equal(t, []any{50.0, DefaultListLimit}, args)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 71.25, round2(71.2499999))
	assert.Equal(t, 66.67, round2(200.0/3))
	assert.Equal(t, 0.0, round2(0))
}

func TestExportKindConstants(t *testing.T) {
	kinds := []string{
		ExportKindCandidate,
		ExportKindCandidateList,
		ExportKindAnalytics,
		ExportKindCSV,
		ExportKindSnapshot,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		assert.NotEmpty(t, k)
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
}
