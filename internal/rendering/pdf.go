package rendering

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/resume-screener/internal/layout"
)

const pdfFontFamily = "Helvetica"

// PDFSink draws onto an fpdf document in millimetres using the Helvetica core font.
type PDFSink struct {
	pdf *fpdf.Fpdf
	// tr converts UTF-8 into the cp1252 encoding of the core fonts so "•" survives.
	tr func(string) string
}

// NewPDFSink creates a PDF document whose page size matches geom.
func NewPDFSink(geom layout.PageGeometry) *PDFSink {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: geom.Width, Ht: geom.Height},
	})
	pdf.SetMargins(geom.Margin, geom.Margin, geom.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(pdfFontFamily, "", 12)

	return &PDFSink{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// NewPDFFactory returns a Factory producing PDF sinks.
func NewPDFFactory() Factory {
	return func(geom layout.PageGeometry) Sink {
		return NewPDFSink(geom)
	}
}

func (s *PDFSink) setFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	s.pdf.SetFont(pdfFontFamily, style, size)
}

// MeasureWidth returns the width of text in millimetres for the given font.
func (s *PDFSink) MeasureWidth(text string, font layout.Font) (float64, error) {
	if s.pdf.Err() {
		return 0, fmt.Errorf("%w: %v", layout.ErrMeasurementUnavailable, s.pdf.Error())
	}
	s.setFont(font.Size, font.Bold)
	w := s.pdf.GetStringWidth(s.tr(text))
	if s.pdf.Err() {
		return 0, fmt.Errorf("%w: %v", layout.ErrMeasurementUnavailable, s.pdf.Error())
	}
	return w, nil
}

func (s *PDFSink) SetFill(c layout.Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (s *PDFSink) SetTextColor(c layout.Color) {
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (s *PDFSink) DrawRect(x, y, w, h float64) {
	s.pdf.Rect(x, y, w, h, "F")
}

func (s *PDFSink) DrawText(text string, x, y, fontSize float64, bold bool) {
	s.setFont(fontSize, bold)
	s.pdf.Text(x, y, s.tr(text))
}

func (s *PDFSink) NewPage() {
	s.pdf.AddPage()
}

// Pages returns the number of pages added so far.
func (s *PDFSink) Pages() int {
	return s.pdf.PageNo()
}

func (s *PDFSink) Save(path string) error {
	if err := s.pdf.OutputFileAndClose(path); err != nil {
		return &RenderError{Message: "failed to write PDF", Path: path, Cause: err}
	}
	return nil
}

func (s *PDFSink) Output(w io.Writer) error {
	if err := s.pdf.Output(w); err != nil {
		return &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return nil
}

func (s *PDFSink) ContentType() string { return "application/pdf" }

func (s *PDFSink) Extension() string { return ".pdf" }
