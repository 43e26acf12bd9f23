package rendering

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-screener/internal/layout"
)

// pointToMM converts a font size in points to millimetres.
const pointToMM = 0.3528

// ApproxWidth estimates Helvetica text width: half an em per rune, 5% wider when bold.
func ApproxWidth(text string, font layout.Font) (float64, error) {
	w := float64(utf8.RuneCountInString(text)) * font.Size * pointToMM * 0.5
	if font.Bold {
		w *= 1.05
	}
	return w, nil
}

// Recorder is an in-memory sink that keeps every draw call as a layout command.
// Its output is a plain-text listing, which makes it useful for dry runs.
type Recorder struct {
	Measure  layout.MeasureFunc
	Commands []layout.DrawCommand
	Pages    int
}

// NewRecorder returns a Recorder measuring with ApproxWidth.
func NewRecorder() *Recorder {
	return &Recorder{Measure: ApproxWidth}
}

// NewRecorderFactory returns a Factory producing Recorders.
func NewRecorderFactory() Factory {
	return func(layout.PageGeometry) Sink {
		return NewRecorder()
	}
}

func (r *Recorder) MeasureWidth(text string, font layout.Font) (float64, error) {
	if r.Measure == nil {
		return ApproxWidth(text, font)
	}
	return r.Measure(text, font)
}

func (r *Recorder) SetFill(c layout.Color) {
	r.Commands = append(r.Commands, layout.SetFill{Color: c})
}

func (r *Recorder) SetTextColor(c layout.Color) {
	r.Commands = append(r.Commands, layout.SetTextColor{Color: c})
}

func (r *Recorder) DrawRect(x, y, w, h float64) {
	r.Commands = append(r.Commands, layout.DrawRect{X: x, Y: y, W: w, H: h})
}

func (r *Recorder) DrawText(text string, x, y, fontSize float64, bold bool) {
	r.Commands = append(r.Commands, layout.DrawText{Text: text, X: x, Y: y, FontSize: fontSize, Bold: bold})
}

// NewPage records a page break for every page after the first.
func (r *Recorder) NewPage() {
	r.Pages++
	if r.Pages > 1 {
		r.Commands = append(r.Commands, layout.NewPage{})
	}
}

// Texts returns the text of every DrawText call in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Commands {
		if dt, ok := c.(layout.DrawText); ok {
			out = append(out, dt.Text)
		}
	}
	return out
}

func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &RenderError{Message: "failed to create", Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()
	return r.Output(f)
}

//nolint:errcheck // write errors surface through the final Fprintf check
func (r *Recorder) Output(w io.Writer) error {
	fmt.Fprintf(w, "page 1\n")
	page := 1
	for _, c := range r.Commands {
		switch c := c.(type) {
		case layout.NewPage:
			page++
			fmt.Fprintf(w, "page %d\n", page)
		case layout.SetFill:
			fmt.Fprintf(w, "  fill %s\n", c.Color)
		case layout.SetTextColor:
			fmt.Fprintf(w, "  color %s\n", c.Color)
		case layout.DrawRect:
			fmt.Fprintf(w, "  rect %.1f,%.1f %.1fx%.1f\n", c.X, c.Y, c.W, c.H)
		case layout.DrawText:
			weight := ""
			if c.Bold {
				weight = " bold"
			}
			fmt.Fprintf(w, "  text %.1f,%.1f %gpt%s %s\n", c.X, c.Y, c.FontSize, weight, strings.TrimSpace(c.Text))
		}
	}
	if _, err := fmt.Fprintf(w, "end (%d pages)\n", page); err != nil {
		return &RenderError{Message: "failed to write listing", Cause: err}
	}
	return nil
}

func (r *Recorder) ContentType() string { return "text/plain; charset=utf-8" }

func (r *Recorder) Extension() string { return ".txt" }
