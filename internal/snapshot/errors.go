// Package snapshot captures a rendered page element and paginates it into a PDF.
package snapshot

import "fmt"

// MissingElementError is returned when the requested element is not present on the page.
type MissingElementError struct {
	ElementID string
	URL       string
}

func (e *MissingElementError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("element %q not found at %s", e.ElementID, e.URL)
	}
	return fmt.Sprintf("element %q not found", e.ElementID)
}

// Error represents a failure while fetching or capturing a page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
