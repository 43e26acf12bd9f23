// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Screening categories assigned by the resume analysis.
const (
	CategoryHighlyQualified = "Highly Qualified"
	CategoryQualified       = "Qualified"
	CategoryNotFit          = "Not a Fit"
)

// ContactInfo holds the contact details extracted from a resume. All fields are optional.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Analysis is the screening result for one resume.
type Analysis struct {
	ContactInfo     ContactInfo `json:"contact_info"`
	OverallScore    float64     `json:"overall_score" validate:"gte=0,lte=100"`
	Category        string      `json:"category,omitempty"`
	ExperienceYears float64     `json:"experience_years,omitempty" validate:"gte=0"`
	Education       string      `json:"education,omitempty"`
	KeySkills       []string    `json:"key_skills,omitempty"`
	Strengths       []string    `json:"strengths,omitempty"`
	Weaknesses      []string    `json:"weaknesses,omitempty"`
	Summary         string      `json:"summary,omitempty"`
	SkillsMatch     float64     `json:"skills_match,omitempty" validate:"gte=0,lte=100"`
}

// Candidate is one uploaded resume together with its analysis.
type Candidate struct {
	ID         int64    `json:"id,omitempty"`
	Filename   string   `json:"filename" validate:"required"`
	UploadDate string   `json:"upload_date,omitempty"`
	Analysis   Analysis `json:"analysis"`
}

// DisplayName is the contact name, or the uploaded filename when no name was extracted.
func (c *Candidate) DisplayName() string {
	if c.Analysis.ContactInfo.Name != "" {
		return c.Analysis.ContactInfo.Name
	}
	return c.Filename
}

// Validate validates the Candidate using the validator.
func (c *Candidate) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// ValidateCandidates validates every candidate and reports the first failure with its index.
func ValidateCandidates(candidates []Candidate) error {
	validate := validator.New()
	for i := range candidates {
		if err := validate.Struct(&candidates[i]); err != nil {
			return fmt.Errorf("candidate %d (%s): %w", i, candidates[i].Filename, err)
		}
	}
	return nil
}
