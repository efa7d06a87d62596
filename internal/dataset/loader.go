package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadFile reads a .xlsx or .csv file. For workbooks, sheet selects the
// sheet by name; empty means the first sheet.
func LoadFile(path, sheet string) (*Dataset, LoadStats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadXLSX(path, sheet)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("failed to open dataset: %w", err)
		}
		defer f.Close()
		return LoadCSV(f)
	default:
		return nil, LoadStats{}, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
}

// LoadCSV reads a dataset from CSV with a header row
func LoadCSV(r io.Reader) (*Dataset, LoadStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	var rows [][]any
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, stringsToCells(row))
	}

	return FromRows(headers, rows)
}

func loadXLSX(path, sheet string) (*Dataset, LoadStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	all, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(all) == 0 {
		return nil, LoadStats{}, fmt.Errorf("sheet %q is empty", sheet)
	}

	rows := make([][]any, 0, len(all)-1)
	for _, row := range all[1:] {
		rows = append(rows, stringsToCells(row))
	}

	return FromRows(all[0], rows)
}

func stringsToCells(row []string) []any {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
