package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"projectpulse/domain/kpi"
)

// summaryHeader is the column layout of the exported workbook.
var summaryHeader = []interface{}{"Type", "Design", "As Built", "Completion %", "Left to be Built"}

// WriteSummary renders the KPI summary (plus an overall totals row) as an
// xlsx workbook. Backs the dashboard's download endpoint.
func WriteSummary(w io.Writer, summaries []kpi.Summary, overall kpi.Overall) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "KPI Summary"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, s := range summaries {
		row := []interface{}{s.Category, s.Design, s.Built, s.Completion, s.Remaining}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	totals := []interface{}{"Overall", overall.Design, overall.Built, overall.Completion, overall.Remaining}
	cell := fmt.Sprintf("A%d", len(summaries)+2)
	if err := f.SetSheetRow(sheetName, cell, &totals); err != nil {
		return fmt.Errorf("failed to write totals row: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
