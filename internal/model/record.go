package model

// Canonical (normalized) column names of the transactions dataset.
const (
	ColLocation   = "final location"
	ColYear       = "year"
	ColFlatRate   = "flat - weighted average rate"
	ColShopRate   = "shop - weighted average rate"
	ColOfficeRate = "office - weighted average rate"
	ColFlatSold   = "flat_sold - igr"
	ColShopSold   = "shop_sold - igr"
	ColOfficeSold = "office_sold - igr"
)

// MeasureColumns lists the numeric columns the engine aggregates over.
var MeasureColumns = []string{
	ColFlatRate,
	ColShopRate,
	ColOfficeRate,
	ColFlatSold,
	ColShopSold,
	ColOfficeSold,
}

// Record is one dataset row
type Record struct {
	Location string
	Year     int

	// Measures holds the parsed numeric cells keyed by canonical column.
	// A column is absent when its cell was empty or not numeric.
	Measures map[string]float64

	// Fields is the raw row keyed by the whitespace-trimmed header, used
	// verbatim for table output.
	Fields map[string]any
}

// Measure returns a numeric cell and whether it was present
func (r Record) Measure(column string) (float64, bool) {
	v, ok := r.Measures[column]
	return v, ok
}
