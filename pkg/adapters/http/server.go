// Package http exposes the engine over a small JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Server serves stage inspection, planning, execution and stored reports.
type Server struct {
	Engine  ports.Engine
	Store   ports.ReportStore
	Metrics http.Handler
	Logger  *slog.Logger

	// runs share one design checkpoint, so they are serialized.
	runMu sync.Mutex
}

// RunRequest is the body of POST /runs.
type RunRequest struct {
	Args []string `json:"args"`
}

// RunResponse is returned by POST /runs whatever the outcome.
type RunResponse struct {
	Report *domain.Report `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// ErrorResponse is returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates a new HTTP handler for the engine.
// store and metrics may be nil; their routes then answer 404.
func NewHandler(engine ports.Engine, store ports.ReportStore, metrics http.Handler) http.Handler {
	s := &Server{
		Engine:  engine,
		Store:   store,
		Metrics: metrics,
		Logger:  slog.Default(),
	}
	return s.Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/stages", s.Stages)
	r.Get("/plan", s.Plan)
	r.Post("/runs", s.Run)
	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{id}", s.GetRun)
	r.Delete("/runs/{id}", s.DeleteRun)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Stages handles GET /stages?arg=-flatten&arg=-nofsm.
// Every stage and step is returned, ignoring any -run range.
func (s *Server) Stages(w http.ResponseWriter, r *http.Request) {
	stages, err := s.Engine.Inspect(r.URL.Query()["arg"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stages)
}

// Plan handles GET /plan?arg=-run&arg=coarse:fine.
func (s *Server) Plan(w http.ResponseWriter, r *http.Request) {
	stages, err := s.Engine.Plan(r.URL.Query()["arg"])
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stages)
}

// Run handles POST /runs.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Run: Invalid request body", "error", err)
		return
	}

	s.runMu.Lock()
	report, err := s.Engine.Synthesize(r.Context(), body.Args)
	s.runMu.Unlock()

	if err != nil {
		s.Logger.Error("Run failed", "error", err)
		writeJSON(w, statusFor(err), RunResponse{Report: report, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, RunResponse{Report: report})
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.NotFound(w, r)
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetRun handles GET /runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.NotFound(w, r)
		return
	}
	report, err := s.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DeleteRun handles DELETE /runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.NotFound(w, r)
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPrecondition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStepFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
