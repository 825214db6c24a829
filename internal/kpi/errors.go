package kpi

import (
	stderrors "errors"
	"fmt"
	"strings"

	"projectpulse/internal/errors"
)

// ErrHeaderNotFound is returned when no row in the raw table matches the
// configured marker column. Callers skip KPI computation and surface a
// diagnostic; raw data can still be shown.
var ErrHeaderNotFound = errors.New(errors.CodeHeaderNotFound, "header row not found")

// MissingColumnsError reports that the resolved header lacks columns the KPI
// pipeline requires. Recoverable: aggregation is skipped, nothing crashes.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// AsMissingColumns unwraps err into a MissingColumnsError when possible.
func AsMissingColumns(err error) (*MissingColumnsError, bool) {
	var mc *MissingColumnsError
	if stderrors.As(err, &mc) {
		return mc, true
	}
	return nil, false
}
