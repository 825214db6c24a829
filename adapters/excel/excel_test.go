package excel

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"projectpulse/domain/kpi"
	"projectpulse/internal/errors"
)

func TestWriteSummaryRoundTrip(t *testing.T) {
	summaries := []kpi.Summary{
		{Category: "Road", Design: 150, Built: 50, Completion: 33.33, Remaining: 100},
		{Category: "Bridge", Design: 0, Built: 5, Completion: 0, Remaining: -5},
	}
	overall := kpi.Overall{Design: 150, Built: 55, Completion: 36.67, Remaining: 95, Categories: 2}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, summaries, overall); err != nil {
		t.Fatalf("WriteSummary returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("KPI Summary")
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}

	// Header, two categories, totals.
	if len(rows) != 4 {
		t.Fatalf("rows = %d, expected 4", len(rows))
	}
	if rows[0][0] != "Type" || rows[0][4] != "Left to be Built" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Road" || rows[1][1] != "150" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[3][0] != "Overall" {
		t.Errorf("totals row = %v, expected Overall first", rows[3])
	}

	// The default Sheet1 must be gone.
	if _, err := f.GetRows("Sheet1"); err == nil {
		t.Error("default Sheet1 should have been dropped")
	}
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, nil, kpi.Overall{}); err != nil {
		t.Fatalf("WriteSummary on empty input returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("KPI Summary")
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, expected header plus totals", len(rows))
	}
}

func TestDataReaderCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	content := "Acme Utilities\nType,Design,As Built\nRoad,150,50\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reader := NewDataReader(path)
	table, err := reader.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("rows = %d, expected 3", len(table.Rows))
	}
	if table.Rows[1].Cell(0) != "Type" {
		t.Errorf("row[1][0] = %q, expected Type", table.Rows[1].Cell(0))
	}
}

func TestDataReaderXLSXRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.xlsx")

	f := excelize.NewFile()
	f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Type", "Design", "As Built"})
	f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Road", 150, 50})
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	reader := NewDataReader(path)
	table, err := reader.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, expected 2", len(table.Rows))
	}
	if table.Rows[1].Cell(1) != "150" {
		t.Errorf("cell = %q, expected 150", table.Rows[1].Cell(1))
	}
}

func TestDataReaderMissingFile(t *testing.T) {
	reader := NewDataReader("/nonexistent/export.xlsx")
	_, err := reader.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.GetCode(err) != errors.CodeFetchFailed {
		t.Errorf("error code = %q, expected %q", errors.GetCode(err), errors.CodeFetchFailed)
	}
}
