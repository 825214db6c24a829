package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"projectpulse/domain/sheet"
	"projectpulse/internal/errors"
)

// DataReader reads a downloaded sheet export (.xlsx or .csv) from disk.
// Useful when the dashboard runs without network access to the live sheet.
type DataReader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	sheetName string
}

// NewDataReader creates a reader for the given file. The type is picked from
// the extension; anything that is not .csv is treated as xlsx.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheetName: "Sheet1"}
}

// Fetch reads the file into a headerless table. Header resolution happens
// downstream because exports carry decoration rows above the real header.
func (r *DataReader) Fetch(ctx context.Context) (sheet.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return sheet.Table{}, errors.FetchFailed("data file",
			fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return sheet.Table{}, errors.FetchFailed("data file", err)
	}

	table := sheet.Table{Rows: make([]sheet.RawRow, 0, len(rows))}
	for _, row := range rows {
		table.Rows = append(table.Rows, sheet.NewRawRow(row))
	}
	return table, nil
}

// Describe identifies the source for logging.
func (r *DataReader) Describe() string {
	return r.fileType + ":" + r.filePath
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheetName, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}
