package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned when page dimensions cannot hold any content.
	ErrInvalidGeometry = errors.New("invalid page geometry")
	// ErrEmptyDocument is returned for a zero-block input when WithRejectEmpty is set.
	ErrEmptyDocument = errors.New("empty document")
	// ErrMeasurementUnavailable is wrapped by sinks whose text measurement fails.
	ErrMeasurementUnavailable = errors.New("text measurement unavailable")
)

// GeometryError describes which page dimension is invalid.
type GeometryError struct {
	Field   string
	Message string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("invalid page geometry: %s %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidGeometry.
func (e *GeometryError) Unwrap() error {
	return ErrInvalidGeometry
}
