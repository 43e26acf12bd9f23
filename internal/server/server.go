// Package server provides the HTTP REST API for report and snapshot exports.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"go.uber.org/zap"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/rendering"
	"github.com/jonathan/resume-screener/internal/report"
	"github.com/jonathan/resume-screener/internal/server/middleware"
	"github.com/jonathan/resume-screener/internal/server/ratelimit"
	"github.com/jonathan/resume-screener/internal/types"
)

// Store is the persistence the API reads candidates from and records exports to.
// *db.DB satisfies it.
type Store interface {
	Ping(ctx context.Context) error
	GetCandidate(ctx context.Context, id int64) (*types.Candidate, error)
	ListCandidates(ctx context.Context, filter *db.CandidateFilter) ([]types.Candidate, error)
	GetStatistics(ctx context.Context) (*types.Statistics, error)
	RecordExport(ctx context.Context, input *db.ExportInput) (*db.ExportRecord, error)
	ListExports(ctx context.Context, limit int) ([]db.ExportRecord, error)
}

// Snapshotter captures page elements as PDFs. *snapshot.Snapshotter satisfies it.
type Snapshotter interface {
	Snapshot(ctx context.Context, req *types.SnapshotRequest) (*rendering.Artifact, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	exporter    *report.Exporter
	snapshots   Snapshotter
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	apiKeys     *config.APIKeyConfig
	logger      *zap.Logger
}

// Config holds server configuration
type Config struct {
	Addr        string
	Exporter    *report.Exporter     // defaults to report.NewExporter()
	Store       Store                // optional; stored-candidate routes answer 503 without it
	Snapshotter Snapshotter          // optional; /v1/snapshots answers 503 without it
	JWT         *config.JWTConfig    // enables Bearer tokens
	APIKeys     *config.APIKeyConfig // enables X-API-Key when it carries a hash
	RateLimit   *ratelimit.Config    // defaults to ratelimit.LoadConfig()
	Logger      *zap.Logger
}

// New creates a new server instance. At least one authentication method must be configured.
func New(cfg Config) (*Server, error) {
	if cfg.JWT == nil && (cfg.APIKeys == nil || !cfg.APIKeys.Enabled()) {
		return nil, fmt.Errorf("no authentication configured: set JWT_SECRET or API_KEY_HASH")
	}

	s := &Server{
		store:     cfg.Store,
		exporter:  cfg.Exporter,
		snapshots: cfg.Snapshotter,
		apiKeys:   cfg.APIKeys,
		logger:    cfg.Logger,
	}
	if s.exporter == nil {
		s.exporter = report.NewExporter()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	var tokens middleware.TokenValidator
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
		tokens = s.jwtService.AsTokenValidator()
	}
	var keys middleware.KeyVerifier
	if s.apiKeys != nil && s.apiKeys.Enabled() {
		keys = s.apiKeys
	}

	// Authenticated API
	api := http.NewServeMux()
	api.HandleFunc("GET /v1/navigation", s.handleNavigation)

	// Reports from stored candidates
	api.HandleFunc("GET /v1/candidates/{id}/report.pdf", s.handleCandidateReport)
	api.HandleFunc("GET /v1/reports/candidates.pdf", s.handleStoredCandidateList)
	api.HandleFunc("GET /v1/reports/candidates.csv", s.handleStoredCandidatesCSV)
	api.HandleFunc("GET /v1/reports/analytics.pdf", s.handleStoredAnalytics)

	// Reports from posted documents
	api.HandleFunc("POST /v1/reports/candidate.pdf", s.handlePostedCandidate)
	api.HandleFunc("POST /v1/reports/candidates.pdf", s.handlePostedCandidateList)
	api.HandleFunc("POST /v1/reports/candidates.csv", s.handlePostedCandidatesCSV)
	api.HandleFunc("POST /v1/reports/bulk-results.csv", s.handlePostedBulkResultsCSV)
	api.HandleFunc("POST /v1/reports/analytics.pdf", s.handlePostedAnalytics)

	// Snapshots and export history
	api.HandleFunc("POST /v1/snapshots", s.handleSnapshot)
	api.HandleFunc("GET /v1/exports", s.handleListExports)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/v1/", middleware.AuthMiddleware(tokens, keys)(api))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Snapshots drive a headless browser
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// JWT returns the token service, or nil when Bearer tokens are disabled.
func (s *Server) JWT() *JWTService {
	return s.jwtService
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources. The store is owned by the caller.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.APIKeyHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Page-Count, X-RateLimit-Remaining")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", m.Code),
			zap.Int64("bytes", m.Written),
			zap.Duration("duration", m.Duration),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "disabled"}
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			s.logger.Warn("health check: database unreachable", zap.Error(err))
			status["status"] = "degraded"
			status["database"] = "unreachable"
			s.jsonResponse(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status code and writes it. Unexpected failures are logged
// and their details withheld from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	if status == http.StatusInternalServerError {
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		// Round up so clients never retry early
		retry := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = retry
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
