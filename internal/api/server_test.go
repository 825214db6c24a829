package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectpulse/app"
	"projectpulse/domain/sheet"
	"projectpulse/internal/errors"
	"projectpulse/internal/kpi"
)

type stubSource struct {
	table sheet.Table
	err   error
}

func (s *stubSource) Fetch(ctx context.Context) (sheet.Table, error) { return s.table, s.err }
func (s *stubSource) Describe() string                               { return "stub" }

func tableFrom(rows ...[]string) sheet.Table {
	t := sheet.Table{}
	for _, r := range rows {
		t.Rows = append(t.Rows, sheet.NewRawRow(r))
	}
	return t
}

func newTestServer(source *stubSource) *Server {
	dashboard := app.NewDashboardService(source, time.Hour, kpi.DefaultMarker, kpi.DefaultColumns(), nil)
	return NewServer(dashboard)
}

func doGET(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&stubSource{})
	rec := doGET(t, s, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "stub", body["source"])
}

func TestSummaryEndpoint(t *testing.T) {
	s := newTestServer(&stubSource{table: tableFrom(
		[]string{"Type", "Design", "As Built"},
		[]string{"Road", "150", "50"},
		[]string{"Bridge", "0", "5"},
	)})
	rec := doGET(t, s, "/api/kpi/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Summaries []struct {
			Category   string  `json:"category"`
			Completion float64 `json:"completion_pct"`
			Remaining  float64 `json:"remaining"`
		} `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Summaries, 2)
	assert.Equal(t, "Road", body.Summaries[0].Category)
	assert.InDelta(t, 33.33, body.Summaries[0].Completion, 0.01)
	assert.Equal(t, float64(-5), body.Summaries[1].Remaining)
}

func TestOverallEndpoint(t *testing.T) {
	s := newTestServer(&stubSource{table: tableFrom(
		[]string{"Type", "Design", "As Built"},
		[]string{"Road", "100", "50"},
	)})
	rec := doGET(t, s, "/api/kpi/overall")

	require.Equal(t, http.StatusOK, rec.Code)
	var overall struct {
		Completion float64 `json:"completion_pct"`
		Categories int     `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overall))
	assert.Equal(t, float64(50), overall.Completion)
	assert.Equal(t, 1, overall.Categories)
}

func TestFetchFailureIsBadGateway(t *testing.T) {
	s := newTestServer(&stubSource{err: errors.FetchFailed("sheet", context.DeadlineExceeded)})
	rec := doGET(t, s, "/api/kpi/summary")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeFetchFailed, body["code"])
}

func TestHeaderNotFoundIsUnprocessable(t *testing.T) {
	s := newTestServer(&stubSource{table: tableFrom(
		[]string{"no", "header", "row"},
	)})
	rec := doGET(t, s, "/api/kpi/summary")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeHeaderNotFound, body["code"])
}

func TestMissingColumnsListsThem(t *testing.T) {
	s := newTestServer(&stubSource{table: tableFrom(
		[]string{"Type", "Quantity"},
		[]string{"Road", "150"},
	)})
	rec := doGET(t, s, "/api/kpi/summary")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Code           string   `json:"code"`
		MissingColumns []string `json:"missing_columns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeMissingColumns, body.Code)
	assert.Equal(t, []string{"Design", "As Built"}, body.MissingColumns)
}

func TestRefreshEndpoint(t *testing.T) {
	source := &stubSource{table: tableFrom(
		[]string{"Type", "Design", "As Built"},
	)}
	s := newTestServer(source)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRawEndpointHidesUnnamedColumns(t *testing.T) {
	s := newTestServer(&stubSource{table: tableFrom(
		[]string{"Type", "", "As Built"},
		[]string{"Road", "junk", "50"},
	)})
	rec := doGET(t, s, "/api/raw")

	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, []string{"Type", "As Built"}, view.Columns)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, []string{"Road", "50"}, view.Rows[0])
}
