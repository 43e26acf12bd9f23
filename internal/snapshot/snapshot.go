package snapshot

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/types"
)

// Snapshotter turns SnapshotRequests into PDF artifacts.
type Snapshotter struct {
	capturer Capturer
	precheck bool
	fetch    *FetchOptions
	logger   *zap.Logger
}

// Option configures a Snapshotter.
type Option func(*Snapshotter)

// WithPrecheck fetches the server-rendered HTML first and fails fast when the
// element is absent there. Leave it off for pages that build the element client-side.
func WithPrecheck(opts *FetchOptions) Option {
	return func(s *Snapshotter) {
		s.precheck = true
		s.fetch = opts
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Snapshotter) { s.logger = l }
}

// New returns a Snapshotter using capturer.
func New(capturer Capturer, opts ...Option) *Snapshotter {
	s := &Snapshotter{capturer: capturer, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot captures req.ElementID at req.URL and returns it as a paginated PDF.
// A missing element is logged and returned as a *MissingElementError.
func (s *Snapshotter) Snapshot(ctx context.Context, req *types.SnapshotRequest) (*rendering.Artifact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.precheck {
		html, err := FetchHTML(ctx, req.URL, s.fetch)
		if err != nil {
			return nil, err
		}
		if err := CheckElement(html, req.ElementID); err != nil {
			return nil, s.missing(err, req)
		}
	}

	png, err := s.capturer.Capture(ctx, req.URL, req.ElementID)
	if err != nil {
		return nil, s.missing(err, req)
	}

	data, pages, err := BuildPDF(png)
	if err != nil {
		return nil, err
	}

	s.logger.Info("snapshot exported",
		zap.String("url", req.URL),
		zap.String("element", req.ElementID),
		zap.Int("pages", pages),
	)
	return &rendering.Artifact{
		FileName:    FileName(req),
		ContentType: "application/pdf",
		Data:        data,
		Pages:       pages,
	}, nil
}

func (s *Snapshotter) missing(err error, req *types.SnapshotRequest) error {
	var missing *MissingElementError
	if errors.As(err, &missing) {
		if missing.URL == "" {
			missing.URL = req.URL
		}
		s.logger.Error("element not found", zap.String("element", req.ElementID), zap.String("url", req.URL))
	}
	return err
}

// FileName is the requested name with a .pdf extension, or "{element}.pdf".
func FileName(req *types.SnapshotRequest) string {
	name := strings.TrimSpace(req.FileName)
	if name == "" {
		name = req.ElementID
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		name = "snapshot"
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
