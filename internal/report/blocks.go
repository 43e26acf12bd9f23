package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-screener/internal/layout"
	"github.com/jonathan/resume-screener/internal/types"
)

// listColumns are the x offsets of Name, Score, Category and Experience in the candidate table.
var listColumns = []float64{5, 80, 110, 150}

var panelFont = layout.Font{Size: 14, Bold: true}

const analyticsBoilerplate = "This report contains comprehensive analytics about your recruitment process, " +
	"including candidate scores, skill distributions, and hiring trends."

// CandidateBlocks builds the single-candidate analysis report. Optional fields
// that are empty are left out entirely.
func CandidateBlocks(c *types.Candidate) []layout.Block {
	a := c.Analysis
	contact := a.ContactInfo

	blocks := []layout.Block{
		layout.Banner{Title: "CANDIDATE ANALYSIS REPORT"},
		layout.Heading{Text: "CANDIDATE INFORMATION", Level: 1},
		layout.LabeledValue{Label: "Name", Value: c.DisplayName()},
	}
	for _, field := range []struct{ label, value string }{
		{"Email", contact.Email},
		{"Phone", contact.Phone},
		{"Location", contact.Location},
	} {
		if field.value != "" {
			blocks = append(blocks, layout.LabeledValue{Label: field.label, Value: field.value})
		}
	}

	blocks = append(blocks,
		layout.Spacer{Height: 10},
		layout.Heading{Text: "ANALYSIS RESULTS", Level: 1},
		layout.Panel{
			Fill: layout.PanelGray,
			Lines: []layout.PanelLine{
				{Text: fmt.Sprintf("Overall Score: %s%%", formatNumber(a.OverallScore)), Font: panelFont},
				{Text: "Category: " + categoryOrUnknown(a.Category), Font: panelFont},
			},
		},
	)

	if a.ExperienceYears > 0 {
		blocks = append(blocks, layout.LabeledValue{Label: "Experience", Value: formatNumber(a.ExperienceYears) + " years"})
	}
	if a.Education != "" {
		blocks = append(blocks, layout.LabeledValue{Label: "Education", Value: a.Education})
	}
	blocks = append(blocks, layout.Spacer{Height: 10})

	if len(a.KeySkills) > 0 {
		blocks = append(blocks,
			layout.Heading{Text: "KEY SKILLS", Level: 2},
			layout.Paragraph{Text: strings.Join(a.KeySkills, ", ")},
			layout.Spacer{Height: 5},
		)
	}
	if len(a.Strengths) > 0 {
		blocks = append(blocks,
			layout.Heading{Text: "STRENGTHS", Level: 2},
			layout.BulletList{Items: a.Strengths},
		)
	}
	if len(a.Weaknesses) > 0 {
		blocks = append(blocks,
			layout.Heading{Text: "AREAS FOR IMPROVEMENT", Level: 2},
			layout.BulletList{Items: a.Weaknesses},
		)
	}
	if a.Summary != "" {
		blocks = append(blocks,
			layout.Heading{Text: "SUMMARY", Level: 2},
			layout.Paragraph{Text: a.Summary},
		)
	}

	return blocks
}

// CandidateListBlocks builds the multi-candidate summary report. The summary must
// come from Summarize over the same candidates.
func CandidateListBlocks(candidates []types.Candidate, summary Summary) []layout.Block {
	blocks := []layout.Block{
		layout.Banner{Title: "CANDIDATES SUMMARY REPORT"},
		layout.Heading{Text: "SUMMARY STATISTICS", Level: 1},
		layout.Panel{
			Fill: layout.PanelGray,
			Lines: []layout.PanelLine{
				{Text: fmt.Sprintf("Total Candidates: %d", summary.Total)},
				{Text: fmt.Sprintf("Average Score: %d%%", summary.AverageScore)},
				{Text: fmt.Sprintf("Highly Qualified: %d", summary.HighlyQualified)},
				{Text: fmt.Sprintf("Qualified: %d", summary.Qualified)},
			},
		},
		layout.Spacer{Height: 10},
		layout.Heading{Text: "CANDIDATES LIST", Level: 1},
		layout.TableHeader{Cells: []string{"Name", "Score", "Category", "Experience"}, Columns: listColumns},
	}

	rows := make([][]string, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		rows = append(rows, []string{
			c.DisplayName(),
			formatNumber(c.Analysis.OverallScore) + "%",
			categoryOrUnknown(c.Analysis.Category),
			formatNumber(c.Analysis.ExperienceYears) + " yrs",
		})
	}
	return append(blocks, layout.StripedRows(rows, listColumns)...)
}

// AnalyticsBlocks builds the analytics report. A statistics section is added only
// when the payload carries one.
func AnalyticsBlocks(payload *types.AnalyticsPayload, now time.Time) []layout.Block {
	blocks := []layout.Block{
		layout.Banner{Title: "ANALYTICS REPORT"},
		layout.Heading{Text: "RECRUITMENT ANALYTICS OVERVIEW", Level: 1},
		layout.LabeledValue{Label: "Report generated on", Value: displayDate(now)},
		layout.Spacer{Height: 5},
		layout.Paragraph{Text: analyticsBoilerplate},
	}

	if payload == nil || payload.Statistics == nil {
		return blocks
	}

	stats := payload.Statistics
	blocks = append(blocks,
		layout.Spacer{Height: 10},
		layout.Heading{Text: "CANDIDATE STATISTICS", Level: 2},
		layout.LabeledValue{Label: "Total Candidates", Value: fmt.Sprint(stats.TotalCandidates)},
		layout.LabeledValue{Label: "Highly Qualified", Value: fmt.Sprint(stats.Categories.HighlyQualified)},
		layout.LabeledValue{Label: "Qualified", Value: fmt.Sprint(stats.Categories.Qualified)},
		layout.LabeledValue{Label: "Not a Fit", Value: fmt.Sprint(stats.Categories.NotFit)},
		layout.LabeledValue{Label: "Average Overall Score", Value: formatNumber(stats.AverageScores.OverallScore) + "%"},
		layout.LabeledValue{Label: "Average Skills Match", Value: formatNumber(stats.AverageScores.SkillsMatch) + "%"},
		layout.LabeledValue{Label: "Uploads (last 7 days)", Value: fmt.Sprint(stats.RecentUploads)},
	)
	return blocks
}
