package service

import (
	"sort"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
)

// yearGroup holds the records of one year
type yearGroup struct {
	Year    int
	Records []model.Record
}

// areaTotal is one area's summed measure, used for ranking
type areaTotal struct {
	Location string
	Total    float64
}

// groupByYear groups records by year, years ascending
func groupByYear(records []model.Record) []yearGroup {
	grouped := make(map[int][]model.Record)
	for _, r := range records {
		grouped[r.Year] = append(grouped[r.Year], r)
	}

	groups := make([]yearGroup, 0, len(grouped))
	for year, recs := range grouped {
		groups = append(groups, yearGroup{Year: year, Records: recs})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Year < groups[j].Year
	})
	return groups
}

// meanOf averages a column over the records that have it. No values
// yields 0.
func meanOf(records []model.Record, column string) float64 {
	var total float64
	var n int
	for _, r := range records {
		if v, ok := r.Measure(column); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// sumOf adds a column up; missing cells count as 0
func sumOf(records []model.Record, column string) float64 {
	var total float64
	for _, r := range records {
		if v, ok := r.Measure(column); ok {
			total += v
		}
	}
	return total
}

// topAreas sums column per location and returns the limit largest,
// ties ordered by location.
func topAreas(records []model.Record, column string, limit int) []areaTotal {
	totals := make(map[string]float64)
	for _, r := range records {
		v, _ := r.Measure(column)
		totals[r.Location] += v
	}

	ranked := make([]areaTotal, 0, len(totals))
	for loc, total := range totals {
		ranked = append(ranked, areaTotal{Location: loc, Total: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Location < ranked[j].Location
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// pctChange returns the period-over-period change in percent. The first
// entry, and any entry after a zero value, is 0.
func pctChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		out[i] = (values[i] - values[i-1]) / values[i-1] * 100
	}
	return out
}

func yearLabels(groups []yearGroup) []any {
	labels := make([]any, len(groups))
	for i, g := range groups {
		labels[i] = g.Year
	}
	return labels
}
