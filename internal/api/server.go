package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"projectpulse/app"
	"projectpulse/internal/errors"
	"projectpulse/internal/kpi"
)

// Server is the headless JSON API for programmatic consumers of the KPI
// data. The HTML dashboard lives in the ui package; this server carries no
// templates.
type Server struct {
	router    *chi.Mux
	dashboard *app.DashboardService
}

// NewServer creates the API server around the dashboard service.
func NewServer(dashboard *app.DashboardService) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		dashboard: dashboard,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/kpi/summary", s.handleSummary)
	s.router.Get("/api/kpi/overall", s.handleOverall)
	s.router.Get("/api/kpi/insights", s.handleInsights)
	s.router.Get("/api/raw", s.handleRaw)
	s.router.Post("/api/refresh", s.handleRefresh)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	log.Printf("Starting projectpulse API on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "source": s.dashboard.Source()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	report, err := s.dashboard.Report(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"summaries":  report.Summaries,
		"fetched_at": report.FetchedAt,
	})
}

func (s *Server) handleOverall(w http.ResponseWriter, r *http.Request) {
	report, err := s.dashboard.Report(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Overall)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	report, err := s.dashboard.Report(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Insights)
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	view, err := s.dashboard.RawTable(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.dashboard.Refresh()
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError maps the recoverable KPI error taxonomy onto HTTP statuses.
// Structural data problems are the client's data being wrong, not a server
// fault, so they come back as 422 with the error code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError

	switch code {
	case errors.CodeFetchFailed:
		status = http.StatusBadGateway
	case errors.CodeHeaderNotFound:
		status = http.StatusUnprocessableEntity
	}

	body := map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	}
	if mc, ok := kpi.AsMissingColumns(err); ok {
		status = http.StatusUnprocessableEntity
		body["code"] = errors.CodeMissingColumns
		body["missing_columns"] = mc.Missing
	}

	s.writeJSON(w, status, body)
}
