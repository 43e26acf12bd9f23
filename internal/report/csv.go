package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// Column headers of the CSV downloads.
var (
	CandidatesHeader  = []string{"Name", "Score", "Category", "Experience", "Skills", "Location", "Education"}
	BulkResultsHeader = []string{"File Name", "Overall Score", "Category", "Key Skills", "Experience Years"}
)

// WriteCSV writes rows as RFC 4180 records. Fields containing a comma, quote or
// line break are quoted and embedded quotes are doubled. No header is added.
func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// Row converts arbitrary cell values to CSV fields. Numbers print without
// trailing zeros, string slices are joined with "; " and nil becomes empty.
func Row(values ...any) []string {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = formatCell(v)
	}
	return row
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatNumber(x)
	case float32:
		return formatNumber(float64(x))
	case []string:
		return strings.Join(x, "; ")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// CandidateRows is the search-results export: a header plus one row per candidate.
func CandidateRows(candidates []types.Candidate) [][]string {
	rows := make([][]string, 0, len(candidates)+1)
	rows = append(rows, CandidatesHeader)
	for i := range candidates {
		c := &candidates[i]
		a := c.Analysis
		rows = append(rows, Row(
			c.DisplayName(),
			a.OverallScore,
			a.Category,
			a.ExperienceYears,
			a.KeySkills,
			a.ContactInfo.Location,
			a.Education,
		))
	}
	return rows
}

// BulkResultRows is the bulk-upload export: a header plus one row per analyzed file.
func BulkResultRows(candidates []types.Candidate) [][]string {
	rows := make([][]string, 0, len(candidates)+1)
	rows = append(rows, BulkResultsHeader)
	for i := range candidates {
		c := &candidates[i]
		a := c.Analysis
		rows = append(rows, Row(c.Filename, a.OverallScore, a.Category, a.KeySkills, a.ExperienceYears))
	}
	return rows
}
