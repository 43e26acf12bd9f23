//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// CategoryCounts counts candidates per screening category.
type CategoryCounts struct {
	HighlyQualified int `json:"highly_qualified"`
	Qualified       int `json:"qualified"`
	NotFit          int `json:"not_fit"`
}

// AverageScores holds averages over all candidates, rounded to two decimals.
type AverageScores struct {
	OverallScore float64 `json:"overall_score"`
	SkillsMatch  float64 `json:"skills_match"`
}

// Statistics summarises the candidate pool.
type Statistics struct {
	TotalCandidates int            `json:"total_candidates"`
	Categories      CategoryCounts `json:"categories"`
	AverageScores   AverageScores  `json:"average_scores"`
	RecentUploads   int            `json:"recent_uploads"`
}

// AnalyticsPayload is the data behind the analytics report. Only the optional
// statistics section has a stable shape; the raw document is kept for later use.
type AnalyticsPayload struct {
	Statistics *Statistics     `json:"statistics,omitempty"`
	Raw        json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the statistics section and retains the full document.
func (p *AnalyticsPayload) UnmarshalJSON(data []byte) error {
	var known struct {
		Statistics *Statistics `json:"statistics"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	p.Statistics = known.Statistics
	p.Raw = append(p.Raw[:0], data...)
	return nil
}
