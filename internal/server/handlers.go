package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/navigation"
	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/server/middleware"
	"github.com/jonathan/resume-screener/internal/types"
)

// maxBodyBytes caps posted documents.
const maxBodyBytes = 10 << 20

// handleNavigation returns the sidebar for ?path= and ?collapsed=.
func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	collapsed := false
	if v := q.Get("collapsed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.fail(w, r, &ErrValidation{Field: "collapsed", Message: "must be a boolean", Cause: err})
			return
		}
		collapsed = b
	}
	s.jsonResponse(w, http.StatusOK, navigation.Build(q.Get("path"), collapsed))
}

// -----------------------------------------------------------------------------
// Reports from stored candidates
// -----------------------------------------------------------------------------

func (s *Server) handleCandidateReport(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		s.fail(w, r, &ErrValidation{Field: "id", Message: "must be a positive integer", Cause: err})
		return
	}
	store, err := s.requireStore()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := store.GetCandidate(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if c == nil {
		s.fail(w, r, &ErrNotFound{Resource: "candidate", ID: idStr})
		return
	}

	art, err := s.exporter.Candidate(c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindCandidate, art, &id)
}

func (s *Server) handleStoredCandidateList(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.storedCandidates(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := s.exporter.CandidateList(candidates)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindCandidateList, art, nil)
}

func (s *Server) handleStoredCandidatesCSV(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.storedCandidates(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := s.exporter.CandidatesCSV(candidates)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindCSV, art, nil)
}

func (s *Server) handleStoredAnalytics(w http.ResponseWriter, r *http.Request) {
	store, err := s.requireStore()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stats, err := store.GetStatistics(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := s.exporter.Analytics(&types.AnalyticsPayload{Statistics: stats})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindAnalytics, art, nil)
}

// storedCandidates lists candidates using the ?category=, ?min_score= and ?limit= filters.
func (s *Server) storedCandidates(r *http.Request) ([]types.Candidate, error) {
	store, err := s.requireStore()
	if err != nil {
		return nil, err
	}

	q := r.URL.Query()
	filter := &db.CandidateFilter{Category: q.Get("category")}
	if v := q.Get("min_score"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || score < 0 || score > 100 {
			return nil, &ErrValidation{Field: "min_score", Message: "must be a number between 0 and 100", Cause: err}
		}
		filter.MinScore = score
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, &ErrValidation{Field: "limit", Message: "must be a positive integer", Cause: err}
		}
		filter.Limit = limit
	}

	return store.ListCandidates(r.Context(), filter)
}

// -----------------------------------------------------------------------------
// Reports from posted documents
// -----------------------------------------------------------------------------

func (s *Server) handlePostedCandidate(w http.ResponseWriter, r *http.Request) {
	var c types.Candidate
	if err := s.decodeDocument(w, r, schemas.CandidateSchema, &c); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := c.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := s.exporter.Candidate(&c)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	// Posted candidates need not exist in the store, so no candidate link is recorded
	s.artifactResponse(w, r, db.ExportKindCandidate, art, nil)
}

func (s *Server) handlePostedCandidateList(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.postedCandidates(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := s.exporter.CandidateList(candidates)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindCandidateList, art, nil)
}

func (s *Server) handlePostedCandidatesCSV(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.postedCandidates(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := s.exporter.CandidatesCSV(candidates)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindCSV, art, nil)
}

func (s *Server) handlePostedBulkResultsCSV(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.postedCandidates(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := s.exporter.BulkResultsCSV(candidates)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindCSV, art, nil)
}

func (s *Server) handlePostedAnalytics(w http.ResponseWriter, r *http.Request) {
	var payload types.AnalyticsPayload
	if err := s.decodeDocument(w, r, schemas.AnalyticsSchema, &payload); err != nil {
		s.fail(w, r, err)
		return
	}
	art, err := s.exporter.Analytics(&payload)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindAnalytics, art, nil)
}

func (s *Server) postedCandidates(w http.ResponseWriter, r *http.Request) ([]types.Candidate, error) {
	var candidates []types.Candidate
	if err := s.decodeDocument(w, r, schemas.CandidateListSchema, &candidates); err != nil {
		return nil, err
	}
	if err := types.ValidateCandidates(candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// -----------------------------------------------------------------------------
// Snapshots and export history
// -----------------------------------------------------------------------------

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		s.fail(w, r, &ErrUnavailable{Feature: "snapshot capture"})
		return
	}

	data, err := readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req types.SnapshotRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.fail(w, r, &ErrValidation{Field: "body", Message: "invalid JSON", Cause: err})
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}

	art, err := s.snapshots.Snapshot(r.Context(), &req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.artifactResponse(w, r, db.ExportKindSnapshot, art, nil)
}

func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	store, err := s.requireStore()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.fail(w, r, &ErrValidation{Field: "limit", Message: "must be a positive integer", Cause: err})
			return
		}
		limit = n
	}

	records, err := store.ListExports(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if records == nil {
		records = []db.ExportRecord{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"exports": records})
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (s *Server) requireStore() (Store, error) {
	if s.store == nil {
		return nil, &ErrUnavailable{Feature: "candidate store"}
	}
	return s.store, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: "could not read request body", Cause: err}
	}
	return data, nil
}

// decodeDocument checks the body against a built-in schema before unmarshalling it into v.
func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request, schemaName string, v any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := schemas.ValidateDocument(schemaName, data); err != nil {
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			return err
		}
		return &ErrValidation{Field: "body", Message: err.Error(), Cause: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON", Cause: err}
	}
	return nil
}

// artifactResponse streams art as a download and records it in the export history.
func (s *Server) artifactResponse(w http.ResponseWriter, r *http.Request, kind string, art *rendering.Artifact, candidateID *int64) {
	s.recordExport(r, kind, art, candidateID)

	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	if art.Pages > 0 {
		w.Header().Set("X-Page-Count", strconv.Itoa(art.Pages))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(art.Data); err != nil {
		s.logger.Warn("writing export", zap.String("file", art.FileName), zap.Error(err))
	}
}

// recordExport stores history when a store is configured. Failures never block the download.
func (s *Server) recordExport(r *http.Request, kind string, art *rendering.Artifact, candidateID *int64) {
	if s.store == nil {
		return
	}
	input := &db.ExportInput{
		Kind:        kind,
		FileName:    art.FileName,
		ContentType: art.ContentType,
		Pages:       art.Pages,
		SizeBytes:   len(art.Data),
		CandidateID: candidateID,
	}
	if userID, err := middleware.GetUserID(r); err == nil && userID != uuid.Nil {
		input.RequestedBy = &userID
	}
	if _, err := s.store.RecordExport(r.Context(), input); err != nil {
		s.logger.Warn("recording export", zap.String("kind", kind), zap.Error(err))
	}
}
