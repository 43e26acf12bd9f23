package snapshot

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapturer struct {
	png   []byte
	err   error
	calls int
}

func (f *fakeCapturer) Capture(_ context.Context, _, _ string) ([]byte, error) {
	f.calls++
	return f.png, f.err
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSliceOffsets(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		want   []float64
	}{
		{"shorter than a page", 100, []float64{0}},
		{"exactly one page", 295, []float64{0}},
		{"just over one page", 296, []float64{0, 295}},
		{"exactly two pages", 590, []float64{0, 295}},
		{"three pages", 630, []float64{0, 295, 590}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SliceOffsets(tt.height, SliceHeight))
		})
	}
}

func TestSliceOffsets_NonPositiveSlice(t *testing.T) {
	assert.Equal(t, []float64{0}, SliceOffsets(1000, 0))
}

func TestCheckElement(t *testing.T) {
	html := `<html><body><div id="report-card">x</div><div id="a&quot;b">y</div></body></html>`

	assert.NoError(t, CheckElement(html, "report-card"))
	assert.NoError(t, CheckElement(html, `a"b`))

	err := CheckElement(html, "missing")
	var missing *MissingElementError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "missing", missing.ElementID)
}

func TestBuildPDF_PaginatesTallCapture(t *testing.T) {
	// 100x300 px scales to 210x630 mm: three slices.
	data, pages, err := BuildPDF(testPNG(t, 100, 300))
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestBuildPDF_RejectsGarbage(t *testing.T) {
	_, _, err := BuildPDF([]byte("not an image"))
	assert.Error(t, err)
}

func TestSnapshotter_Snapshot(t *testing.T) {
	capturer := &fakeCapturer{png: testPNG(t, 50, 20)}
	s := New(capturer)

	artifact, err := s.Snapshot(context.Background(), &types.SnapshotRequest{
		URL:       "https://screener.example.com/candidates/1",
		ElementID: "candidate-card",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, capturer.calls)
	assert.Equal(t, "candidate-card.pdf", artifact.FileName)
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.Equal(t, 1, artifact.Pages)
}

func TestSnapshotter_InvalidRequest(t *testing.T) {
	capturer := &fakeCapturer{}
	_, err := New(capturer).Snapshot(context.Background(), &types.SnapshotRequest{URL: "not a url"})
	assert.Error(t, err)
	assert.Zero(t, capturer.calls)
}

func TestSnapshotter_MissingElementFromBrowser(t *testing.T) {
	capturer := &fakeCapturer{err: &MissingElementError{ElementID: "gone"}}
	_, err := New(capturer).Snapshot(context.Background(), &types.SnapshotRequest{
		URL:       "https://screener.example.com/",
		ElementID: "gone",
	})
	var missing *MissingElementError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "https://screener.example.com/", missing.URL)
}

func TestSnapshotter_PrecheckFailsFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="other"></div></body></html>`))
	}))
	defer server.Close()

	capturer := &fakeCapturer{png: testPNG(t, 10, 10)}
	_, err := New(capturer, WithPrecheck(nil)).Snapshot(context.Background(), &types.SnapshotRequest{
		URL:       server.URL,
		ElementID: "report",
	})
	var missing *MissingElementError
	require.ErrorAs(t, err, &missing)
	assert.Zero(t, capturer.calls)
}

func TestSnapshotter_CaptureError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(&fakeCapturer{err: boom}).Snapshot(context.Background(), &types.SnapshotRequest{
		URL:       "https://screener.example.com/",
		ElementID: "x",
	})
	assert.ErrorIs(t, err, boom)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "report.pdf", FileName(&types.SnapshotRequest{ElementID: "x", FileName: "report"}))
	assert.Equal(t, "report.PDF", FileName(&types.SnapshotRequest{ElementID: "x", FileName: "report.PDF"}))
	assert.Equal(t, "evil.pdf", FileName(&types.SnapshotRequest{ElementID: "x", FileName: "../../evil.pdf"}))
	assert.Equal(t, "x.pdf", FileName(&types.SnapshotRequest{ElementID: "x"}))
}
