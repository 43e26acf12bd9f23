// Package rendering replays layout draw commands onto concrete output sinks.
package rendering

import (
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-screener/internal/layout"
)

// Sink draws and measures content. It is the capability the layout engine's
// output is replayed onto.
type Sink interface {
	layout.Measurer

	SetFill(c layout.Color)
	SetTextColor(c layout.Color)
	DrawRect(x, y, w, h float64)
	DrawText(text string, x, y, fontSize float64, bold bool)
	NewPage()

	// Save writes the finished document to path.
	Save(path string) error
	// Output writes the finished document to w.
	Output(w io.Writer) error

	ContentType() string
	Extension() string
}

// Factory creates a fresh sink for one document.
type Factory func(geom layout.PageGeometry) Sink

// Artifact is a finished export ready to be written to disk or streamed.
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
	Pages       int
}

// Save writes the artifact into dir under its FileName and returns the full path.
func (a *Artifact) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &RenderError{Message: "failed to create output directory", Path: dir, Cause: err}
	}
	path := filepath.Join(dir, a.FileName)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", &RenderError{Message: "failed to write", Path: path, Cause: err}
	}
	return path, nil
}
