package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
)

// ErrMissingColumn is returned when a required column is absent from the source
var ErrMissingColumn = errors.New("missing required column")

// LoadStats describes what happened while building a dataset
type LoadStats struct {
	Rows    int // records kept
	Skipped int // rows dropped because the year could not be parsed
}

// FromRows builds a Dataset from a header row and raw cell values. Cells
// may be strings (files) or database driver values.
func FromRows(headers []string, rows [][]any) (*Dataset, LoadStats, error) {
	var stats LoadStats

	trimmed := trimHeaders(headers)
	idx := newColumnIndex(trimmed)

	locCol, ok := idx.lookup(model.ColLocation)
	if !ok {
		return nil, stats, fmt.Errorf("%w: %q", ErrMissingColumn, model.ColLocation)
	}
	yearCol, ok := idx.lookup(model.ColYear)
	if !ok {
		return nil, stats, fmt.Errorf("%w: %q", ErrMissingColumn, model.ColYear)
	}

	measureCols := make(map[string]int, len(model.MeasureColumns))
	for _, col := range model.MeasureColumns {
		if i, ok := idx.lookup(col); ok {
			measureCols[col] = i
		}
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, len(trimmed))
		for i := range cells {
			if i < len(row) {
				cells[i] = coerceCell(row[i])
			}
		}

		year, ok := toInt(cells[yearCol])
		if !ok {
			stats.Skipped++
			continue
		}

		rec := model.Record{
			Location: strings.TrimSpace(toString(cells[locCol])),
			Year:     year,
			Measures: make(map[string]float64, len(measureCols)),
			Fields:   make(map[string]any, len(trimmed)),
		}
		for i, h := range trimmed {
			rec.Fields[h] = cells[i]
		}
		// year is always emitted as an integer
		rec.Fields[trimmed[yearCol]] = year

		for col, i := range measureCols {
			if v, ok := toFloat(cells[i]); ok {
				rec.Measures[col] = v
			}
		}

		records = append(records, rec)
	}

	stats.Rows = len(records)
	ds := New(records, trimmed)
	ds.skipped = stats.Skipped
	return ds, stats, nil
}

// coerceCell turns a raw cell into nil, int64, float64, bool, time.Time or
// string.
func coerceCell(v any) any {
	switch c := v.(type) {
	case nil:
		return nil
	case []byte:
		return coerceString(string(c))
	case string:
		return coerceString(c)
	case int:
		return int64(c)
	case int32:
		return int64(c)
	case int64:
		return c
	case float32:
		return coerceFloat(float64(c))
	case float64:
		return coerceFloat(c)
	case bool, time.Time:
		return c
	default:
		return fmt.Sprint(c)
	}
}

func coerceString(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return coerceFloat(f)
	}
	return s
}

func coerceFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch c := v.(type) {
	case int64:
		return float64(c), true
	case float64:
		return c, true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch c := v.(type) {
	case int64:
		return int(c), true
	case float64:
		if c != math.Trunc(c) {
			return 0, false
		}
		return int(c), true
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
