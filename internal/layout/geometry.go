// Package layout computes page positions for report content and emits draw commands for a rendering sink.
package layout

import "math"

// PageGeometry is the page size and uniform margin, all in the same length unit.
type PageGeometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// A4 returns an A4 portrait page in millimetres with a 20mm margin.
func A4() PageGeometry {
	return PageGeometry{Width: 210, Height: 297, Margin: 20}
}

// Validate checks width > 2×margin and height > 2×margin.
func (g PageGeometry) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"width", g.Width},
		{"height", g.Height},
		{"margin", g.Margin},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &GeometryError{Field: f.name, Message: "must be a finite number"}
		}
	}

	if g.Margin < 0 {
		return &GeometryError{Field: "margin", Message: "must be non-negative"}
	}
	if g.Width <= 2*g.Margin {
		return &GeometryError{Field: "width", Message: "must exceed twice the margin"}
	}
	if g.Height <= 2*g.Margin {
		return &GeometryError{Field: "height", Message: "must exceed twice the margin"}
	}
	return nil
}

// ContentWidth is the horizontal space between the left and right margins.
func (g PageGeometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}
