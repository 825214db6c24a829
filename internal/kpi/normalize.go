package kpi

import (
	"strings"
	"unicode"

	"projectpulse/domain/kpi"
	"projectpulse/domain/sheet"
)

// Columns names the sheet columns the KPI pipeline reads. The zero value is
// not usable; call DefaultColumns.
type Columns struct {
	Category string
	Design   string
	Built    string
}

// DefaultColumns matches the production sheet layout.
func DefaultColumns() Columns {
	return Columns{
		Category: "Type",
		Design:   "Design",
		Built:    "As Built",
	}
}

// nonDataMarkers are category values that identify metadata rows the export
// sometimes drags in below the data (edit stamps and the like).
var nonDataMarkers = map[string]bool{
	"Last Edited": true,
}

// Normalizer cleans a header-resolved table into Records.
type Normalizer struct {
	cols Columns

	// CoercionFailures counts numeric cells that defaulted to 0 during the
	// last Normalize call. Failures are absorbed, never surfaced per-cell;
	// the count exists so callers can log them in aggregate.
	CoercionFailures int
}

// NewNormalizer creates a normalizer for the given column layout.
func NewNormalizer(cols Columns) *Normalizer {
	return &Normalizer{cols: cols}
}

// Normalize converts the data rows of a header-resolved table into cleaned
// Records. Rows whose normalized category is empty or matches a non-data
// marker are dropped. Returns MissingColumnsError when any required column
// is absent from the header. The input table is never mutated.
func (n *Normalizer) Normalize(t sheet.Table) ([]kpi.Record, error) {
	catIdx := t.ColumnIndex(n.cols.Category)
	designIdx := t.ColumnIndex(n.cols.Design)
	builtIdx := t.ColumnIndex(n.cols.Built)

	var missing []string
	if catIdx < 0 {
		missing = append(missing, n.cols.Category)
	}
	if designIdx < 0 {
		missing = append(missing, n.cols.Design)
	}
	if builtIdx < 0 {
		missing = append(missing, n.cols.Built)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	n.CoercionFailures = 0
	records := make([]kpi.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		category := NormalizeCategory(row.Cell(catIdx).TrimmedString())
		if category == "" || nonDataMarkers[category] {
			continue
		}

		design, ok := row.Cell(designIdx).NumberOK()
		if !ok && !row.Cell(designIdx).IsEmpty() {
			n.CoercionFailures++
		}
		built, ok := row.Cell(builtIdx).NumberOK()
		if !ok && !row.Cell(builtIdx).IsEmpty() {
			n.CoercionFailures++
		}

		records = append(records, kpi.Record{
			Category: category,
			Design:   design,
			Built:    built,
		})
	}

	return records, nil
}

// NormalizeCategory canonicalizes a category label: trailing colon stripped,
// whitespace trimmed and collapsed, then title-cased. "road:", "Road " and
// "ROAD" all normalize to "Road", so they land in one group.
func NormalizeCategory(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ":")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
