package ports

import (
	"context"

	"projectpulse/domain/sheet"
)

// TableSource fetches a raw, headerless table from wherever the project
// sheet lives (Google Sheet CSV export, local xlsx/csv file).
type TableSource interface {
	// Fetch retrieves the current table. Failures wrap as FETCH_FAILED and
	// are recoverable: the caller shows a warning and skips aggregation.
	Fetch(ctx context.Context) (sheet.Table, error)

	// Describe identifies the source for logging and diagnostics.
	Describe() string
}
