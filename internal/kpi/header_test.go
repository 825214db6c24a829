package kpi

import (
	"errors"
	"testing"

	"projectpulse/domain/sheet"
)

func tableOf(rows ...[]string) sheet.Table {
	t := sheet.Table{}
	for _, r := range rows {
		t.Rows = append(t.Rows, sheet.NewRawRow(r))
	}
	return t
}

func TestResolveHeaderAtOffset(t *testing.T) {
	// Sheet exports carry decoration rows above the real header.
	table := tableOf(
		[]string{"Acme Utilities", "", ""},
		[]string{"Construction Progress", "", ""},
		[]string{"Type", "Design", "As Built"},
		[]string{"Road", "150", "50"},
		[]string{"Bridge", "10", "2"},
	)

	resolved, err := ResolveHeader(table, "Type")
	if err != nil {
		t.Fatalf("ResolveHeader returned error: %v", err)
	}

	expected := []string{"Type", "Design", "As Built"}
	if len(resolved.Header) != len(expected) {
		t.Fatalf("header length = %d, expected %d", len(resolved.Header), len(expected))
	}
	for i, name := range expected {
		if resolved.Header[i] != name {
			t.Errorf("header[%d] = %q, expected %q", i, resolved.Header[i], name)
		}
	}
	if len(resolved.Rows) != 2 {
		t.Errorf("data rows = %d, expected 2", len(resolved.Rows))
	}
	if resolved.Rows[0].Cell(0) != "Road" {
		t.Errorf("first data row = %q, expected Road", resolved.Rows[0].Cell(0))
	}
}

func TestResolveHeaderTrimsMarkerCell(t *testing.T) {
	table := tableOf(
		[]string{"  Type  ", "Design", "As Built"},
		[]string{"Road", "1", "1"},
	)

	resolved, err := ResolveHeader(table, "Type")
	if err != nil {
		t.Fatalf("ResolveHeader returned error: %v", err)
	}
	if len(resolved.Rows) != 1 {
		t.Errorf("data rows = %d, expected 1", len(resolved.Rows))
	}
}

func TestResolveHeaderBlankCellsGetSyntheticNames(t *testing.T) {
	table := tableOf(
		[]string{"Type", "", "As Built", " "},
		[]string{"Road", "x", "1", "y"},
	)

	resolved, err := ResolveHeader(table, "Type")
	if err != nil {
		t.Fatalf("ResolveHeader returned error: %v", err)
	}
	if resolved.Header[1] != "Unnamed: 1" {
		t.Errorf("header[1] = %q, expected Unnamed: 1", resolved.Header[1])
	}
	if resolved.Header[3] != "Unnamed: 3" {
		t.Errorf("header[3] = %q, expected Unnamed: 3", resolved.Header[3])
	}
}

func TestResolveHeaderNotFound(t *testing.T) {
	table := tableOf(
		[]string{"no", "header", "here"},
		[]string{"just", "data", "rows"},
	)

	_, err := ResolveHeader(table, "Type")
	if !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("expected ErrHeaderNotFound, got %v", err)
	}
}

func TestResolveHeaderDoesNotMutateInput(t *testing.T) {
	table := tableOf(
		[]string{"Type", "Design", "As Built"},
		[]string{"Road", "150", "50"},
	)

	resolved, err := ResolveHeader(table, "Type")
	if err != nil {
		t.Fatalf("ResolveHeader returned error: %v", err)
	}
	resolved.Rows[0][0] = "changed"

	if table.Rows[1].Cell(0) != "Road" {
		t.Errorf("input table mutated: %q", table.Rows[1].Cell(0))
	}
}

func TestResolveHeaderEmptyMarkerDefaults(t *testing.T) {
	table := tableOf(
		[]string{"Type", "Design", "As Built"},
	)

	resolved, err := ResolveHeader(table, "")
	if err != nil {
		t.Fatalf("ResolveHeader with empty marker returned error: %v", err)
	}
	if !resolved.HasHeader() {
		t.Error("expected resolved header with default marker")
	}
}
