package ui

import (
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"

	"projectpulse/internal/errors"
	"projectpulse/models"
)

// projectView is a project prepared for rendering: notes pre-rendered from
// markdown to HTML.
type projectView struct {
	Project   models.Project
	NotesHTML template.HTML
}

type trackerView struct {
	Projects []projectView
	Statuses []string
	Error    string
}

// renderNotes converts project notes markdown to HTML.
func renderNotes(notes string) template.HTML {
	if notes == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(notes))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.Render(doc, renderer))
}

// handleTracker renders the project tracker page
func (s *Server) handleTracker(c *gin.Context) {
	projects, err := s.tracker.ListProjects(c.Request.Context())
	if err != nil {
		log.Printf("[Tracker] failed to list projects: %v", err)
		c.String(http.StatusInternalServerError, "failed to load projects")
		return
	}

	view := trackerView{
		Statuses: []string{models.StatusNotStarted, models.StatusInProgress, models.StatusCompleted},
		Error:    c.Query("error"),
	}
	for _, p := range projects {
		view.Projects = append(view.Projects, projectView{
			Project:   p,
			NotesHTML: renderNotes(p.Notes),
		})
	}

	s.renderTemplate(c, "tracker.html", view)
}

// handleAddProject creates a project from the submitted form
func (s *Server) handleAddProject(c *gin.Context) {
	if _, err := s.tracker.AddProject(c.Request.Context(), c.PostForm("name")); err != nil {
		s.redirectTrackerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/tracker")
}

// handleAddTask appends a task to the project named in the URL
func (s *Server) handleAddTask(c *gin.Context) {
	if _, err := s.tracker.AddTask(c.Request.Context(), c.Param("name"), c.PostForm("task")); err != nil {
		s.redirectTrackerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/tracker")
}

// handleUpdateNotes replaces the markdown notes of a project
func (s *Server) handleUpdateNotes(c *gin.Context) {
	if err := s.tracker.UpdateNotes(c.Request.Context(), c.Param("name"), c.PostForm("notes")); err != nil {
		s.redirectTrackerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/tracker")
}

// handleUpdateTaskStatus sets a new status on the task named in the URL
func (s *Server) handleUpdateTaskStatus(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.redirectTrackerError(c, errors.InvalidInput("invalid task id"))
		return
	}
	if err := s.tracker.UpdateTaskStatus(c.Request.Context(), taskID, c.PostForm("status")); err != nil {
		s.redirectTrackerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/tracker")
}

// redirectTrackerError sends validation problems back to the page instead of
// failing the request; the tracker never hard-errors on bad input.
func (s *Server) redirectTrackerError(c *gin.Context, err error) {
	log.Printf("[Tracker] %v", err)
	c.Redirect(http.StatusSeeOther, "/tracker?error="+template.URLQueryEscaper(err.Error()))
}
