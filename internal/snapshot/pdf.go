package snapshot

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // registers the PNG decoder for image.DecodeConfig

	"github.com/go-pdf/fpdf"
)

// Snapshot page geometry in millimetres. The image is scaled to the page width
// and sliced every SliceHeight, slightly less than the A4 page height.
const (
	PageWidth   = 210.0
	PageHeight  = 297.0
	SliceHeight = 295.0
)

// SliceOffsets returns the vertical offset of each page slice for an image of the
// given scaled height. A page is added only while image content remains, so an
// exact multiple of the slice height never produces a trailing blank page.
func SliceOffsets(imageHeight, sliceHeight float64) []float64 {
	offsets := []float64{0}
	if sliceHeight <= 0 {
		return offsets
	}
	for off := sliceHeight; imageHeight-off > 0; off += sliceHeight {
		offsets = append(offsets, off)
	}
	return offsets
}

// BuildPDF places a PNG capture onto as many A4 pages as it needs and returns the
// document together with its page count.
func BuildPDF(png []byte) ([]byte, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode capture: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, 0, fmt.Errorf("capture has no pixels")
	}
	imageHeight := float64(cfg.Height) * PageWidth / float64(cfg.Width)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	pdf.RegisterImageOptionsReader("capture", opts, bytes.NewReader(png))

	offsets := SliceOffsets(imageHeight, SliceHeight)
	for _, off := range offsets {
		pdf.AddPage()
		pdf.ImageOptions("capture", 0, -off, PageWidth, imageHeight, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("failed to write snapshot PDF: %w", err)
	}
	return buf.Bytes(), len(offsets), nil
}
