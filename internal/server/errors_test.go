package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-screener/internal/layout"
	"github.com/jonathan/resume-screener/internal/report"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/snapshot"
	"github.com/jonathan/resume-screener/internal/types"
)

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "candidate", ID: "42"}
	assert.Equal(t, "candidate not found: 42", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &ErrValidation{Field: "body", Message: "invalid JSON", Cause: cause}
	assert.Equal(t, "validation error: body - invalid JSON", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrUnavailable(t *testing.T) {
	err := &ErrUnavailable{Feature: "candidate store"}
	assert.Equal(t, "candidate store is not configured", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	fieldErr := (&types.Candidate{}).Validate()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing element", &snapshot.MissingElementError{ElementID: "report"}, http.StatusNotFound},
		{"wrapped missing element", fmt.Errorf("capture: %w", &snapshot.MissingElementError{ElementID: "x"}), http.StatusNotFound},
		{"capture failure", &snapshot.Error{URL: "http://x", Message: "timeout"}, http.StatusBadGateway},
		{"schema violation", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "filename", Message: "required"}}}, http.StatusBadRequest},
		{"struct validation", fieldErr, http.StatusBadRequest},
		{"geometry", &layout.GeometryError{Field: "margin", Message: "too large"}, http.StatusBadRequest},
		{"no candidates", report.ErrNoCandidates, http.StatusUnprocessableEntity},
		{"empty document", fmt.Errorf("layout: %w", layout.ErrEmptyDocument), http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
