package rendering

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-screener/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFSink_MeasureWidth(t *testing.T) {
	sink := NewPDFSink(layout.A4())

	short, err := sink.MeasureWidth("Go", layout.Font{Size: 12})
	require.NoError(t, err)
	long, err := sink.MeasureWidth("Go developer with ten years of experience", layout.Font{Size: 12})
	require.NoError(t, err)
	bigger, err := sink.MeasureWidth("Go", layout.Font{Size: 24})
	require.NoError(t, err)

	assert.Greater(t, short, 0.0)
	assert.Greater(t, long, short)
	assert.InDelta(t, 2*short, bigger, 1e-6)
}

func TestPDFSink_RendersMultiPageDocument(t *testing.T) {
	sink := NewPDFSink(layout.A4())
	cmds, err := layout.New(sink, layout.WithFooter(layout.Footer{Left: "Generated on 1/2/2026", Right: "Resume Screener AI"})).
		Layout(sampleBlocks(), layout.A4())
	require.NoError(t, err)
	require.NoError(t, Replay(cmds, sink))

	assert.Equal(t, layout.PageCount(cmds), sink.Pages())
	assert.Greater(t, sink.Pages(), 1)

	var buf bytes.Buffer
	require.NoError(t, sink.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, "application/pdf", sink.ContentType())
}

func TestPDFSink_Save(t *testing.T) {
	sink := NewPDFSink(layout.A4())
	require.NoError(t, Replay([]layout.DrawCommand{layout.DrawText{Text: "• bullet", X: 20, Y: 30, FontSize: 12}}, sink))

	path := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, sink.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestArtifact_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	a := &Artifact{FileName: "report.pdf", Data: []byte("%PDF-1.3")}

	path, err := a.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.Data, data)
}
