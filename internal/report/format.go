package report

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultBrand is printed in the right-hand footer of every report.
const DefaultBrand = "Resume Screener AI"

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func categoryOrUnknown(category string) string {
	if category == "" {
		return "Unknown"
	}
	return category
}

// displayDate is the UTC date printed in reports (month/day/year), matching isoDate.
func displayDate(t time.Time) string {
	return t.UTC().Format("1/2/2006")
}

// isoDate is the UTC calendar date used in export filenames.
func isoDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// sanitizeFileName keeps a display name usable as a single path element.
func sanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "candidate"
	}
	return cleaned
}
