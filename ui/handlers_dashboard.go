package ui

import (
	"bytes"
	stderrors "errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"projectpulse/adapters/excel"
	"projectpulse/app"
	"projectpulse/internal/errors"
	"projectpulse/internal/kpi"
)

// dashboardView is everything the dashboard template renders. Warning holds
// the recoverable-condition message shown instead of KPI widgets when the
// sheet could not be aggregated; RawView stays populated when possible so
// users can still inspect the data.
type dashboardView struct {
	Report    *app.Report
	Raw       *app.RawView
	Warning   string
	Source    string
	FetchedAt string
}

// handleDashboard renders the KPI dashboard page
func (s *Server) handleDashboard(c *gin.Context) {
	view := dashboardView{Source: s.dashboard.Source()}

	report, err := s.dashboard.Report(c.Request.Context())
	switch {
	case err == nil:
		view.Report = report
		if !report.FetchedAt.IsZero() {
			view.FetchedAt = report.FetchedAt.Format(time.RFC1123)
		}
	case errors.GetCode(err) == errors.CodeFetchFailed:
		view.Warning = "Failed to load data. Please ensure the sheet is public and reachable."
		log.Printf("[Dashboard] fetch failed: %v", err)
	case stderrors.Is(err, kpi.ErrHeaderNotFound):
		view.Warning = "Could not locate the header row in the sheet. KPI computation skipped."
	default:
		if mc, ok := kpi.AsMissingColumns(err); ok {
			view.Warning = "Missing required columns for KPI calculation: " + strings.Join(mc.Missing, ", ")
		} else {
			view.Warning = "Unexpected error while computing KPIs."
			log.Printf("[Dashboard] report failed: %v", err)
		}
	}

	// Raw data is shown even when aggregation was skipped.
	if raw, rawErr := s.dashboard.RawTable(c.Request.Context()); rawErr == nil {
		view.Raw = raw
	}

	s.renderTemplate(c, "dashboard.html", view)
}

// handleRefresh invalidates the cache and sends the user back to a fresh render
func (s *Server) handleRefresh(c *gin.Context) {
	s.dashboard.Refresh()
	c.Redirect(http.StatusSeeOther, "/")
}

// handleExport streams the KPI summary as an xlsx workbook
func (s *Server) handleExport(c *gin.Context) {
	report, err := s.dashboard.Report(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteSummary(&buf, report.Summaries, report.Overall); err != nil {
		log.Printf("[Export] failed to build workbook: %v", err)
		c.String(http.StatusInternalServerError, "export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="kpi_summary.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) handleSummaryJSON(c *gin.Context) {
	report, err := s.dashboard.Report(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"summaries":  report.Summaries,
		"fetched_at": report.FetchedAt,
	})
}

func (s *Server) handleOverallJSON(c *gin.Context) {
	report, err := s.dashboard.Report(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.Overall)
}

func (s *Server) handleInsightsJSON(c *gin.Context) {
	report, err := s.dashboard.Report(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.Insights)
}

func (s *Server) handleRawJSON(c *gin.Context) {
	view, err := s.dashboard.RawTable(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// jsonError maps the recoverable error taxonomy onto JSON responses.
func (s *Server) jsonError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeFetchFailed:
		status = http.StatusBadGateway
	case errors.CodeHeaderNotFound, errors.CodeMissingColumns:
		status = http.StatusUnprocessableEntity
	}

	body := gin.H{"error": err.Error(), "code": code}
	if mc, ok := kpi.AsMissingColumns(err); ok {
		status = http.StatusUnprocessableEntity
		body["code"] = errors.CodeMissingColumns
		body["missing_columns"] = mc.Missing
	}
	c.JSON(status, body)
}
