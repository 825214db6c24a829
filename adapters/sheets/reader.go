package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"projectpulse/domain/sheet"
	"projectpulse/internal/errors"
)

// SheetReader fetches a public Google Sheet as CSV. The share URL is
// rewritten to the CSV export endpoint before fetching.
type SheetReader struct {
	url        string
	httpClient *http.Client
}

// NewSheetReader creates a reader for the given share or export URL.
func NewSheetReader(url string, timeout time.Duration) *SheetReader {
	return &SheetReader{
		url: ExportURL(url),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExportURL rewrites a Google Sheet share link to its CSV export endpoint.
// URLs already pointing at an export (or anywhere else) pass through.
func ExportURL(url string) string {
	return strings.Replace(url, "/edit?usp=sharing", "/export?format=csv", 1)
}

// Fetch downloads and parses the sheet into a headerless table. The sheet
// carries decoration rows above the real header, so no header is assumed;
// rows may have varying field counts.
func (r *SheetReader) Fetch(ctx context.Context) (sheet.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return sheet.Table{}, errors.FetchFailed("sheet", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return sheet.Table{}, errors.FetchFailed("sheet", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return sheet.Table{}, errors.FetchFailed("sheet",
			fmt.Errorf("unexpected status %d (is the sheet public?)", resp.StatusCode))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // decoration rows are ragged
	rows, err := reader.ReadAll()
	if err != nil {
		return sheet.Table{}, errors.FetchFailed("sheet", err)
	}

	table := sheet.Table{Rows: make([]sheet.RawRow, 0, len(rows))}
	for _, row := range rows {
		table.Rows = append(table.Rows, sheet.NewRawRow(row))
	}
	return table, nil
}

// Describe identifies the source for logging.
func (r *SheetReader) Describe() string {
	return "google-sheet:" + r.url
}
