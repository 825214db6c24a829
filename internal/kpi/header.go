package kpi

import (
	"fmt"

	"projectpulse/domain/sheet"
)

// DefaultMarker is the cell value that identifies the header row in the
// sheet export. The export carries logo and title rows above the real
// header, so the header position cannot be assumed.
const DefaultMarker = "Type"

// ResolveHeader scans the raw table for the first row whose first cell
// equals the marker (after trimming) and returns a new table whose header is
// that row and whose data rows are everything below it. Blank header cells
// get synthetic "Unnamed: <n>" names so downstream code can address (and the
// raw view can hide) them. Returns ErrHeaderNotFound when no row matches.
// The input table is never mutated.
func ResolveHeader(t sheet.Table, marker string) (sheet.Table, error) {
	if marker == "" {
		marker = DefaultMarker
	}

	for i, row := range t.Rows {
		if row.Cell(0).TrimmedString() != marker {
			continue
		}

		header := make([]string, len(row))
		for j, cell := range row {
			name := cell.TrimmedString()
			if name == "" {
				name = fmt.Sprintf("Unnamed: %d", j)
			}
			header[j] = name
		}

		data := make([]sheet.RawRow, 0, len(t.Rows)-i-1)
		for _, r := range t.Rows[i+1:] {
			cp := make(sheet.RawRow, len(r))
			copy(cp, r)
			data = append(data, cp)
		}

		return sheet.Table{Header: header, Rows: data}, nil
	}

	return sheet.Table{}, ErrHeaderNotFound
}
