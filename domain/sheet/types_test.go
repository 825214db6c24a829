package sheet

import (
	"testing"
)

func TestCellNumberOK(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected float64
		ok       bool
	}{
		{"plain integer", "150", 150, true},
		{"decimal", "33.5", 33.5, true},
		{"thousands separator", "1,250", 1250, true},
		{"multiple separators", "1,250,000.5", 1250000.5, true},
		{"surrounding whitespace", "  42 ", 42, true},
		{"negative", "-5", -5, true},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"non-numeric", "N/A", 0, false},
		{"dash placeholder", "-", 0, false},
		{"NaN rejected", "NaN", 0, false},
		{"infinity rejected", "Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := tt.cell.NumberOK()
			if v != tt.expected {
				t.Errorf("NumberOK() value = %v, expected %v", v, tt.expected)
			}
			if ok != tt.ok {
				t.Errorf("NumberOK() ok = %v, expected %v", ok, tt.ok)
			}
			if tt.cell.Number() != tt.expected {
				t.Errorf("Number() = %v, expected %v", tt.cell.Number(), tt.expected)
			}
		})
	}
}

func TestRawRowCellRagged(t *testing.T) {
	row := NewRawRow([]string{"Road", "150"})

	if row.Cell(0) != "Road" {
		t.Errorf("Cell(0) = %q, expected Road", row.Cell(0))
	}
	// Short rows answer with the empty cell instead of panicking.
	if row.Cell(5) != "" {
		t.Errorf("Cell(5) = %q, expected empty", row.Cell(5))
	}
	if row.Cell(-1) != "" {
		t.Errorf("Cell(-1) = %q, expected empty", row.Cell(-1))
	}
}

func TestTableColumnIndex(t *testing.T) {
	table := Table{Header: []string{"Type", "Design", "As Built"}}

	if idx := table.ColumnIndex("Design"); idx != 1 {
		t.Errorf("ColumnIndex(Design) = %d, expected 1", idx)
	}
	if idx := table.ColumnIndex("Missing"); idx != -1 {
		t.Errorf("ColumnIndex(Missing) = %d, expected -1", idx)
	}
	if (Table{}).ColumnIndex("Type") != -1 {
		t.Error("headerless table should report -1 for any column")
	}
}

func TestTableCloneIsIndependent(t *testing.T) {
	original := Table{
		Header: []string{"Type", "Design"},
		Rows:   []RawRow{NewRawRow([]string{"Road", "150"})},
	}

	clone := original.Clone()
	clone.Header[0] = "changed"
	clone.Rows[0][0] = "changed"

	if original.Header[0] != "Type" {
		t.Errorf("clone mutation leaked into original header: %q", original.Header[0])
	}
	if original.Rows[0][0] != "Road" {
		t.Errorf("clone mutation leaked into original rows: %q", original.Rows[0][0])
	}
}
