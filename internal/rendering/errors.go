package rendering

import "strings"

// RenderError is a failure while drawing or writing a document. Path names the
// file involved, if any.
type RenderError struct {
	Message string
	Path    string
	Cause   error
}

func (e *RenderError) Error() string {
	var sb strings.Builder
	sb.WriteString("render error: ")
	sb.WriteString(e.Message)
	if e.Path != "" {
		sb.WriteString(" " + e.Path)
	}
	if e.Cause != nil {
		sb.WriteString(": " + e.Cause.Error())
	}
	return sb.String()
}

func (e *RenderError) Unwrap() error { return e.Cause }
