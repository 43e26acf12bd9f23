// Package observability provides logging setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/report"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// maxListingLines caps dry-run listings
	maxListingLines = 12
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// ExportResult is the outcome of one export in a batch.
type ExportResult struct {
	Name  string
	Path  string
	Pages int
	Err   error
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintArtifact outputs where an export was written and what it contains.
func (p *Printer) PrintArtifact(art *rendering.Artifact, path string) {
	if art == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", art.FileName))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", art.ContentType))
	if art.Pages > 0 {
		sb.WriteString(fmt.Sprintf("Pages:    %d\n", art.Pages))
	}
	sb.WriteString(fmt.Sprintf("Size:     %s", humanBytes(len(art.Data))))
	if path != "" {
		sb.WriteString(fmt.Sprintf("\nSaved to: %s", path))
	}

	p.printBox("EXPORT WRITTEN", sb.String())
}

// PrintDryRun outputs the head of a Recorder listing instead of writing a file.
func (p *Printer) PrintDryRun(art *rendering.Artifact) {
	if art == nil {
		return
	}

	lines := strings.Split(strings.TrimSuffix(string(art.Data), "\n"), "\n")
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Would write %s (%d pages)\n\n", art.FileName, art.Pages))
	count := min(len(lines), maxListingLines)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i])
		sb.WriteString("\n")
	}
	if len(lines) > maxListingLines {
		sb.WriteString(fmt.Sprintf("... and %d more lines", len(lines)-maxListingLines))
	}

	p.printBox("DRY RUN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the statistics shown at the top of a candidate list report.
func (p *Printer) PrintSummary(s report.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates:        %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("Average score:     %d%%\n", s.AverageScore))
	sb.WriteString(fmt.Sprintf("Highly Qualified:  %d\n", s.HighlyQualified))
	sb.WriteString(fmt.Sprintf("Qualified:         %d\n", s.Qualified))
	sb.WriteString(fmt.Sprintf("Not a Fit:         %d", s.NotFit))

	p.printBox("CANDIDATE SUMMARY", sb.String())
}

// PrintBatch outputs per-export results, failures first.
func (p *Printer) PrintBatch(results []ExportResult) {
	if len(results) == 0 {
		return
	}

	var failed, ok []ExportResult
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		} else {
			ok = append(ok, r)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Exported %d of %d\n", len(ok), len(results)))
	for _, r := range failed {
		sb.WriteString(fmt.Sprintf("\n✗ %s\n  %s", r.Name, r.Err))
	}
	if len(failed) > 0 {
		sb.WriteString("\n")
	}

	count := min(len(ok), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("\n✓ %s (%d pages)", ok[i].Path, ok[i].Pages))
	}
	if len(ok) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(ok)-maxItemsToShow))
	}

	p.printBox("BATCH EXPORT", sb.String())
}

// PrintValidation outputs the result of checking one input file.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(file string, err error) {
	if err == nil {
		fmt.Fprintf(p.out, "✅ %s is valid\n", file)
		return
	}
	p.printBox("INVALID "+file, err.Error())
}

// PrintExports outputs recent export history.
func (p *Printer) PrintExports(records []db.ExportRecord) {
	if len(records) == 0 {
		p.printBox("EXPORT HISTORY", "No exports recorded")
		return
	}

	var sb strings.Builder
	for i, r := range records {
		sb.WriteString(fmt.Sprintf("%s  %-14s %s", r.CreatedAt.Format("2006-01-02 15:04"), r.Kind, r.FileName))
		if i < len(records)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EXPORT HISTORY", sb.String())
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
