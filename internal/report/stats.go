// Package report turns candidate and analytics data into laid-out PDF and CSV exports.
package report

import (
	"errors"
	"math"

	"github.com/jonathan/resume-screener/internal/types"
)

// ErrNoCandidates is returned when an aggregate is requested over an empty candidate set.
var ErrNoCandidates = errors.New("no candidates to summarize")

// Summary is the aggregate shown at the top of the candidate list report.
type Summary struct {
	Total           int
	AverageScore    int
	HighlyQualified int
	Qualified       int
	NotFit          int
}

// Summarize computes totals, category counts and the mean overall score rounded to
// the nearest integer (halves round up).
func Summarize(candidates []types.Candidate) (Summary, error) {
	if len(candidates) == 0 {
		return Summary{}, ErrNoCandidates
	}

	s := Summary{Total: len(candidates)}
	var sum float64
	for i := range candidates {
		a := &candidates[i].Analysis
		sum += a.OverallScore
		switch a.Category {
		case types.CategoryHighlyQualified:
			s.HighlyQualified++
		case types.CategoryQualified:
			s.Qualified++
		case types.CategoryNotFit:
			s.NotFit++
		}
	}
	s.AverageScore = roundHalfUp(sum / float64(len(candidates)))
	return s, nil
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
