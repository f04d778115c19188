// Package server exposes the layout engine over HTTP.
//
// The API is a thin wrapper around arrange.Runner: one POST endpoint that
// accepts an item set plus arrangement options and returns the computed
// layout, plus a health check. Caching, embedding resolution, and
// summarization all happen inside the runner.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jpmoo/thoughtlands-sub000/pkg/arrange"
	"github.com/jpmoo/thoughtlands-sub000/pkg/canvas"
	"github.com/jpmoo/thoughtlands-sub000/pkg/errors"
)

// =============================================================================
// Server
// =============================================================================

// Server handles HTTP requests for the arrangement API.
type Server struct {
	runner *arrange.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around the given runner.
func New(runner *arrange.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/arrange", s.handleArrange)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server on addr and blocks until it exits.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// =============================================================================
// Request / Response Types
// =============================================================================

// arrangeRequest is the body of POST /v1/arrange. The item set fields are
// inlined so a plain items file works as a request body unchanged.
type arrangeRequest struct {
	canvas.ItemSet
	Options arrange.Options `json:"options"`
}

// arrangeResponse is the body of a successful arrangement.
type arrangeResponse struct {
	Layout    canvas.Layout `json:"layout"`
	ItemsHash string        `json:"items_hash"`
	Placed    int           `json:"placed"`
	Skipped   []string      `json:"skipped,omitempty"`
	CacheHit  bool          `json:"cache_hit"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	var req arrangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Items) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "request must contain items"))
		return
	}

	result, err := s.runner.Arrange(r.Context(), req.ItemSet, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, arrangeResponse{
		Layout:    result.Layout,
		ItemsHash: result.ItemsHash,
		Placed:    result.Stats.PlacedCount,
		Skipped:   result.Stats.SkippedIDs,
		CacheHit:  result.CacheInfo.LayoutHit,
	})
}

// =============================================================================
// Helpers
// =============================================================================

// statusFor maps engine error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidLevel:
		return http.StatusBadRequest
	case errors.ErrCodeNoPlaceableItems, errors.ErrCodeDegenerateInput:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeCollaborator:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	} else {
		s.logger.Debug("request rejected", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
