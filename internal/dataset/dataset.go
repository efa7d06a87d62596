// Package dataset holds the transactions table the analysis engine reads.
//
// A Dataset is built once at startup and never mutated afterwards, so it
// is shared by all requests without locking.
package dataset

import (
	"sort"
	"strings"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/utils"
)

// Dataset is an immutable, in-memory table of records
type Dataset struct {
	records []model.Record
	columns []string
	areas   []string
	years   []int
	skipped int
}

// New wraps records into a Dataset. The caller must not modify records
// afterwards.
func New(records []model.Record, columns []string) *Dataset {
	d := &Dataset{
		records: records,
		columns: columns,
	}
	d.areas, d.years = distinct(records)
	return d
}

// Len returns the number of records
func (d *Dataset) Len() int { return len(d.records) }

// SourceRows counts every row read from the source, including the ones
// dropped for an unparsable year
func (d *Dataset) SourceRows() int { return len(d.records) + d.skipped }

// Columns returns the trimmed headers in source order
func (d *Dataset) Columns() []string { return append([]string(nil), d.columns...) }

// Records returns every record. The slice is shared and must be treated as
// read-only.
func (d *Dataset) Records() []model.Record { return d.records }

// Areas returns the distinct locations, sorted
func (d *Dataset) Areas() []string { return append([]string(nil), d.areas...) }

// Years returns the distinct years, ascending
func (d *Dataset) Years() []int { return append([]int(nil), d.years...) }

// FilterArea returns the records whose location matches area after trimming
// and case folding.
func (d *Dataset) FilterArea(area string) []model.Record {
	var out []model.Record
	for _, r := range d.records {
		if utils.SameArea(r.Location, area) {
			out = append(out, r)
		}
	}
	return out
}

func distinct(records []model.Record) ([]string, []int) {
	areaSeen := make(map[string]bool)
	yearSeen := make(map[int]bool)
	areas := []string{}
	years := []int{}

	for _, r := range records {
		if !areaSeen[r.Location] {
			areaSeen[r.Location] = true
			areas = append(areas, r.Location)
		}
		if !yearSeen[r.Year] {
			yearSeen[r.Year] = true
			years = append(years, r.Year)
		}
	}

	sort.Strings(areas)
	sort.Ints(years)
	return areas, years
}

// columnIndex maps normalized header names to their position
type columnIndex map[string]int

func newColumnIndex(headers []string) columnIndex {
	idx := make(columnIndex, len(headers))
	for i, h := range headers {
		key := utils.NormalizeKey(h)
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

func (c columnIndex) lookup(column string) (int, bool) {
	i, ok := c[column]
	return i, ok
}

func trimHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.TrimSpace(h)
	}
	return out
}
