package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"projectpulse/app"
	"projectpulse/internal/tracker"
)

//go:embed templates/*
var embeddedFiles embed.FS

// Server is the HTML dashboard for project KPIs plus the task tracker.
type Server struct {
	router    *gin.Engine
	dashboard *app.DashboardService
	tracker   *tracker.Service
	templates *template.Template
}

// NewServer creates the dashboard server.
func NewServer(dashboard *app.DashboardService, trackerService *tracker.Service) (*Server, error) {
	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"qty": func(v float64) string { return fmt.Sprintf("%.0f", v) },
		"barWidth": func(v float64) int {
			if v < 0 {
				return 0
			}
			if v > 100 {
				return 100
			}
			return int(v)
		},
		"lower": strings.ToLower,
		"slug": func(s string) string {
			return strings.ReplaceAll(strings.ToLower(s), " ", "-")
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		dashboard: dashboard,
		tracker:   trackerService,
		templates: templates,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleDashboard)
	s.router.POST("/refresh", s.handleRefresh)
	s.router.GET("/export/summary.xlsx", s.handleExport)

	// JSON endpoints backing the dashboard widgets
	s.router.GET("/api/kpi/summary", s.handleSummaryJSON)
	s.router.GET("/api/kpi/overall", s.handleOverallJSON)
	s.router.GET("/api/kpi/insights", s.handleInsightsJSON)
	s.router.GET("/api/raw", s.handleRawJSON)

	// Tracker pages
	s.router.GET("/tracker", s.handleTracker)
	s.router.POST("/tracker/projects", s.handleAddProject)
	s.router.POST("/tracker/projects/:name/tasks", s.handleAddTask)
	s.router.POST("/tracker/projects/:name/notes", s.handleUpdateNotes)
	s.router.POST("/tracker/tasks/:id/status", s.handleUpdateTaskStatus)
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting projectpulse dashboard on http://%s", addr)
	return s.router.Run(addr)
}

// renderTemplate executes a template into the response
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		c.String(500, "Template error")
	}
}
