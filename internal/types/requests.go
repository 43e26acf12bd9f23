//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// SnapshotRequest asks for a PDF snapshot of one element of a rendered page.
type SnapshotRequest struct {
	URL       string `json:"url" validate:"required,url"`
	ElementID string `json:"element_id" validate:"required"`
	FileName  string `json:"filename,omitempty"`
}

// TokenRequest asks for an API token for a subject.
type TokenRequest struct {
	Subject string `json:"subject" validate:"required,uuid"`
}

// Validate validates the SnapshotRequest using the validator.
func (r *SnapshotRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TokenRequest using the validator.
func (r *TokenRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
