package db

import (
	"time"

	"github.com/google/uuid"
)

// Export kinds recorded in report_exports
const (
	ExportKindCandidate     = "candidate"
	ExportKindCandidateList = "candidate_list"
	ExportKindAnalytics     = "analytics"
	ExportKindCSV           = "csv"
	ExportKindSnapshot      = "snapshot"
)

// DefaultListLimit caps ListCandidates when no limit is given
const DefaultListLimit = 500

// CandidateFilter narrows ListCandidates. Zero values mean no filter.
type CandidateFilter struct {
	Category string
	MinScore float64
	Limit    int
}

// ExportRecord is one row of the export history
type ExportRecord struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	Pages       int        `json:"pages"`
	SizeBytes   int        `json:"size_bytes"`
	CandidateID *int64     `json:"candidate_id,omitempty"`
	RequestedBy *uuid.UUID `json:"requested_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ExportInput describes an export to record
type ExportInput struct {
	Kind        string
	FileName    string
	ContentType string
	Pages       int
	SizeBytes   int
	CandidateID *int64
	RequestedBy *uuid.UUID
}
