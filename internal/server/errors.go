package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-screener/internal/layout"
	"github.com/jonathan/resume-screener/internal/report"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/snapshot"
)

// ErrNotFound indicates a requested record does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
	Cause   error
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ErrValidation) Unwrap() error {
	return e.Cause
}

// ErrUnavailable indicates the route needs a backend the server was started without
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrNotFound
		validation  *ErrValidation
		unavailable *ErrUnavailable
		schemaErr   *schemas.ValidationError
		fieldErrs   validator.ValidationErrors
		geometry    *layout.GeometryError
		missing     *snapshot.MissingElementError
		capture     *snapshot.Error
	)

	switch {
	case errors.As(err, &notFound), errors.As(err, &missing):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &schemaErr), errors.As(err, &fieldErrs),
		errors.As(err, &geometry), errors.Is(err, layout.ErrInvalidGeometry):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrNoCandidates), errors.Is(err, layout.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &capture):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
