package report

import (
	"time"

	"github.com/jonathan/resume-screener/internal/types"
)

// Fixed names for the CSV downloads.
const (
	SearchResultsFileName = "search_results.csv"
	BulkResultsFileName   = "bulk_analysis_results.csv"
)

// CandidateFileName is "{name-or-filename}_analysis{ext}".
func CandidateFileName(c *types.Candidate, ext string) string {
	return sanitizeFileName(c.DisplayName()) + "_analysis" + ext
}

// CandidateListFileName is "candidates_summary_{YYYY-MM-DD}{ext}".
func CandidateListFileName(now time.Time, ext string) string {
	return "candidates_summary_" + isoDate(now) + ext
}

// AnalyticsFileName is "analytics_report_{YYYY-MM-DD}{ext}".
func AnalyticsFileName(now time.Time, ext string) string {
	return "analytics_report_" + isoDate(now) + ext
}
