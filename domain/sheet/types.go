package sheet

import (
	"math"
	"strconv"
	"strings"
)

// Cell is a single untyped spreadsheet cell. Spreadsheet exports carry no
// type information, so all coercion is explicit and defaulted rather than
// implicit.
type Cell string

// TrimmedString returns the cell contents with surrounding whitespace removed.
func (c Cell) TrimmedString() string {
	return strings.TrimSpace(string(c))
}

// IsEmpty reports whether the cell is blank after trimming.
func (c Cell) IsEmpty() bool {
	return c.TrimmedString() == ""
}

// Number coerces the cell to a float64. Thousands separators are stripped
// before parsing. Empty or unparsable cells resolve to 0; NaN and infinities
// are rejected so downstream arithmetic never sees them.
func (c Cell) Number() float64 {
	v, _ := c.NumberOK()
	return v
}

// NumberOK is Number plus a flag reporting whether the cell actually parsed.
func (c Cell) NumberOK() (float64, bool) {
	s := c.TrimmedString()
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// RawRow is one spreadsheet row, one cell per column.
type RawRow []Cell

// NewRawRow converts a slice of raw string cells into a RawRow.
func NewRawRow(cells []string) RawRow {
	row := make(RawRow, len(cells))
	for i, c := range cells {
		row[i] = Cell(c)
	}
	return row
}

// Table is an ordered sequence of raw rows with an optional resolved header.
// A freshly fetched table has no header; the header row may sit at any offset
// and is located by content (see kpi.ResolveHeader).
type Table struct {
	Header []string
	Rows   []RawRow
}

// HasHeader reports whether a header has been resolved for the table.
func (t Table) HasHeader() bool {
	return len(t.Header) > 0
}

// ColumnIndex returns the index of the named header column, or -1 when the
// column (or the header itself) is absent.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at the given column of the row, or the empty cell
// when the row is shorter than the header. Ragged CSV exports are common.
func (r RawRow) Cell(idx int) Cell {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Clone returns a deep copy of the table. Downstream stages operate on copies
// so repeated aggregation over the same fetched table stays idempotent.
func (t Table) Clone() Table {
	out := Table{}
	if t.Header != nil {
		out.Header = make([]string, len(t.Header))
		copy(out.Header, t.Header)
	}
	if t.Rows != nil {
		out.Rows = make([]RawRow, len(t.Rows))
		for i, row := range t.Rows {
			cp := make(RawRow, len(row))
			copy(cp, row)
			out.Rows[i] = cp
		}
	}
	return out
}
