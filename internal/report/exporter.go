package report

import (
	"bytes"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/layout"
	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/types"
)

// Exporter lays out reports and renders them through a sink factory.
type Exporter struct {
	geometry     layout.PageGeometry
	style        layout.Style
	brand        string
	repeatHeader bool
	newSink      rendering.Factory
	now          func() time.Time
	logger       *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithGeometry sets the page geometry. The default is A4 with a 20mm margin.
func WithGeometry(g layout.PageGeometry) Option {
	return func(x *Exporter) { x.geometry = g }
}

// WithStyle overrides the layout style.
func WithStyle(s layout.Style) Option {
	return func(x *Exporter) { x.style = s }
}

// WithBrand sets the right-hand footer text.
func WithBrand(brand string) Option {
	return func(x *Exporter) { x.brand = brand }
}

// WithRepeatTableHeader repeats the candidate table header after page breaks.
func WithRepeatTableHeader(on bool) Option {
	return func(x *Exporter) { x.repeatHeader = on }
}

// WithSinkFactory replaces the PDF sink, e.g. with rendering.NewRecorderFactory for dry runs.
func WithSinkFactory(f rendering.Factory) Option {
	return func(x *Exporter) { x.newSink = f }
}

// WithClock sets the time source used for footers and filenames.
func WithClock(now func() time.Time) Option {
	return func(x *Exporter) { x.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(x *Exporter) { x.logger = l }
}

// NewExporter returns an Exporter rendering A4 PDFs.
func NewExporter(opts ...Option) *Exporter {
	x := &Exporter{
		geometry: layout.A4(),
		style:    layout.DefaultStyle(),
		brand:    DefaultBrand,
		newSink:  rendering.NewPDFFactory(),
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Geometry returns the page geometry reports are laid out on.
func (x *Exporter) Geometry() layout.PageGeometry {
	return x.geometry
}

// Candidate renders the analysis report for one candidate.
func (x *Exporter) Candidate(c *types.Candidate) (*rendering.Artifact, error) {
	if c == nil {
		return nil, fmt.Errorf("candidate is nil")
	}
	return x.render("candidate", CandidateBlocks(c), x.now(), func(ext string) string {
		return CandidateFileName(c, ext)
	})
}

// CandidateList renders the summary report over candidates. An empty list is rejected
// with ErrNoCandidates.
func (x *Exporter) CandidateList(candidates []types.Candidate) (*rendering.Artifact, error) {
	summary, err := Summarize(candidates)
	if err != nil {
		return nil, err
	}
	now := x.now()
	return x.render("candidate list", CandidateListBlocks(candidates, summary), now, func(ext string) string {
		return CandidateListFileName(now, ext)
	})
}

// Analytics renders the analytics report. A nil payload yields the overview only.
func (x *Exporter) Analytics(payload *types.AnalyticsPayload) (*rendering.Artifact, error) {
	now := x.now()
	return x.render("analytics", AnalyticsBlocks(payload, now), now, func(ext string) string {
		return AnalyticsFileName(now, ext)
	})
}

// CandidatesCSV renders the search-results CSV.
func (x *Exporter) CandidatesCSV(candidates []types.Candidate) (*rendering.Artifact, error) {
	return x.csv(SearchResultsFileName, CandidateRows(candidates))
}

// BulkResultsCSV renders the bulk-upload results CSV.
func (x *Exporter) BulkResultsCSV(candidates []types.Candidate) (*rendering.Artifact, error) {
	return x.csv(BulkResultsFileName, BulkResultRows(candidates))
}

func (x *Exporter) csv(fileName string, rows [][]string) (*rendering.Artifact, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	x.logger.Debug("csv rendered", zap.String("file", fileName), zap.Int("rows", len(rows)))
	return &rendering.Artifact{
		FileName:    fileName,
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func (x *Exporter) render(kind string, blocks []layout.Block, now time.Time, name func(ext string) string) (*rendering.Artifact, error) {
	sink := x.newSink(x.geometry)
	engine := layout.New(sink,
		layout.WithStyle(x.style),
		layout.WithFooter(layout.Footer{Left: "Generated on " + displayDate(now), Right: x.brand}),
		layout.WithRepeatTableHeader(x.repeatHeader),
	)

	commands, err := engine.Layout(blocks, x.geometry)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out %s report: %w", kind, err)
	}
	if err := rendering.Replay(commands, sink); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := sink.Output(&buf); err != nil {
		return nil, err
	}

	artifact := &rendering.Artifact{
		FileName:    name(sink.Extension()),
		ContentType: sink.ContentType(),
		Data:        buf.Bytes(),
		Pages:       layout.PageCount(commands),
	}
	x.logger.Debug("report rendered",
		zap.String("kind", kind),
		zap.String("file", artifact.FileName),
		zap.Int("pages", artifact.Pages),
		zap.Int("commands", len(commands)),
	)
	return artifact, nil
}
