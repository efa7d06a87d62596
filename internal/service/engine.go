package service

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/dataset"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
)

// topDemandLimit is how many areas the cross-area demand ranking shows
const topDemandLimit = 5

// Engine answers each intent from the dataset and attaches an LLM summary
// where the intent asks for one.
type Engine struct {
	data       *dataset.Dataset
	summarizer Summarizer
	log        *zap.Logger
}

// NewEngine creates an engine over an immutable dataset
func NewEngine(data *dataset.Dataset, summarizer Summarizer, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		data:       data,
		summarizer: summarizer,
		log:        log,
	}
}

// Dataset returns the dataset the engine reads
func (e *Engine) Dataset() *dataset.Dataset {
	return e.data
}

// AnalyzeArea charts the mean flat price per year and returns the raw rows
func (e *Engine) AnalyzeArea(ctx context.Context, area string) model.Envelope {
	records := e.data.FilterArea(area)
	if len(records) == 0 {
		return e.noDataFor(area)
	}

	groups := groupByYear(records)
	prices := make([]float64, len(groups))
	for i, g := range groups {
		prices[i] = meanOf(g.Records, model.ColFlatRate)
	}

	table := make([]model.Row, len(records))
	for i, r := range records {
		table[i] = model.Row(maps.Clone(r.Fields))
	}

	return model.Envelope{
		Summary: e.summarizer.Summarize(ctx, fmt.Sprintf(analyzePrompt, area)),
		Chart:   model.SingleSeries{Labels: yearLabels(groups), Data: prices},
		Table:   table,
	}
}

// CompareAreas charts both areas' mean flat price over the years they
// share. The table covers every year either area has; a side without
// rows in a year contributes no keys to that row.
func (e *Engine) CompareAreas(ctx context.Context, area1, area2 string) model.Envelope {
	records1 := e.data.FilterArea(area1)
	records2 := e.data.FilterArea(area2)

	var missing []string
	if len(records1) == 0 {
		missing = append(missing, area1)
	}
	if len(records2) == 0 {
		missing = append(missing, area2)
	}
	if len(missing) > 0 {
		return e.noDataFor(strings.Join(missing, ", "))
	}

	byYear1 := indexByYear(groupByYear(records1))
	byYear2 := indexByYear(groupByYear(records2))
	years := unionYears(byYear1, byYear2)

	labels := []any{}
	data1 := []float64{}
	data2 := []float64{}
	table := make([]model.Row, 0, len(years))

	for _, year := range years {
		recs1, ok1 := byYear1[year]
		recs2, ok2 := byYear2[year]

		if ok1 && ok2 {
			labels = append(labels, year)
			data1 = append(data1, meanOf(recs1, model.ColFlatRate))
			data2 = append(data2, meanOf(recs2, model.ColFlatRate))
		}

		row := model.Row{"year": year}
		if ok1 {
			row[area1+" price"] = meanOf(recs1, model.ColFlatRate)
			row[area1+" sales"] = sumOf(recs1, model.ColFlatSold)
		}
		if ok2 {
			row[area2+" price"] = meanOf(recs2, model.ColFlatRate)
			row[area2+" sales"] = sumOf(recs2, model.ColFlatSold)
		}
		table = append(table, row)
	}

	return model.Envelope{
		Summary: e.summarizer.Summarize(ctx, fmt.Sprintf(comparePrompt, area1, area2)),
		Chart: model.MultiSeries{
			Labels: labels,
			Datasets: []model.Series{
				{Label: area1, Data: data1},
				{Label: area2, Data: data2},
			},
		},
		Table: table,
	}
}

// PriceGrowth charts the year-over-year change of the mean flat price.
// years > 0 keeps only the area's last years, counted back from the
// area's own latest year.
func (e *Engine) PriceGrowth(ctx context.Context, area string, years int) model.Envelope {
	records := e.data.FilterArea(area)
	if len(records) == 0 {
		return e.noDataFor(area)
	}

	if years > 0 {
		records = lastYears(records, years)
	}

	groups := groupByYear(records)
	if len(groups) < 2 {
		return model.NoData(fmt.Sprintf("Insufficient data to calculate price growth for %s", area))
	}

	prices := make([]float64, len(groups))
	for i, g := range groups {
		prices[i] = meanOf(g.Records, model.ColFlatRate)
	}
	growth := pctChange(prices)

	table := make([]model.Row, len(groups))
	for i, g := range groups {
		table[i] = model.Row{
			"year":              g.Year,
			"price":             prices[i],
			"growth_percentage": growth[i],
		}
	}

	first, last := prices[0], prices[len(prices)-1]
	var totalGrowth float64
	if first != 0 {
		totalGrowth = (last - first) / first * 100
	}
	avgGrowth := totalGrowth / float64(len(groups)-1)

	prompt := fmt.Sprintf(growthPrompt, area, growthPeriod(years), totalGrowth, avgGrowth)

	return model.Envelope{
		Summary: e.summarizer.Summarize(ctx, prompt),
		Chart:   model.SingleSeries{Labels: yearLabels(groups), Data: growth},
		Table:   table,
	}
}

// DemandTrend sums units sold per year for one area. An empty area ranks
// all areas by flats sold instead.
func (e *Engine) DemandTrend(ctx context.Context, area string) model.Envelope {
	if area == "" {
		return e.topDemand(ctx)
	}

	records := e.data.FilterArea(area)
	if len(records) == 0 {
		return e.noDataFor(area)
	}

	groups := groupByYear(records)
	flats := make([]float64, len(groups))
	shops := make([]float64, len(groups))
	offices := make([]float64, len(groups))
	table := make([]model.Row, len(groups))

	for i, g := range groups {
		flats[i] = sumOf(g.Records, model.ColFlatSold)
		shops[i] = sumOf(g.Records, model.ColShopSold)
		offices[i] = sumOf(g.Records, model.ColOfficeSold)
		table[i] = model.Row{
			"year":              g.Year,
			model.ColFlatSold:   flats[i],
			model.ColShopSold:   shops[i],
			model.ColOfficeSold: offices[i],
		}
	}

	return model.Envelope{
		Summary: e.summarizer.Summarize(ctx, fmt.Sprintf(areaDemandPrompt, area)),
		Chart: model.MultiSeries{
			Labels: yearLabels(groups),
			Datasets: []model.Series{
				{Label: "Flats Sold", Data: flats},
				{Label: "Shops Sold", Data: shops},
				{Label: "Offices Sold", Data: offices},
			},
		},
		Table: table,
	}
}

func (e *Engine) topDemand(ctx context.Context) model.Envelope {
	ranked := topAreas(e.data.Records(), model.ColFlatSold, topDemandLimit)

	labels := make([]any, len(ranked))
	data := make([]float64, len(ranked))
	table := make([]model.Row, len(ranked))
	for i, a := range ranked {
		labels[i] = a.Location
		data[i] = a.Total
		table[i] = model.Row{
			model.ColLocation: a.Location,
			model.ColFlatSold: a.Total,
		}
	}

	return model.Envelope{
		Summary: e.summarizer.Summarize(ctx, topDemandPrompt),
		Chart:   model.SingleSeries{Labels: labels, Data: data},
		Table:   table,
	}
}

// ListAreas returns every distinct area, sorted
func (e *Engine) ListAreas() model.Envelope {
	areas := e.data.Areas()

	table := make([]model.Row, len(areas))
	for i, a := range areas {
		table[i] = model.Row{"area": a}
	}

	return model.Envelope{
		Summary: fmt.Sprintf("There are %d areas in the dataset. The complete list is shown in the table below.", len(areas)),
		Chart:   model.EmptyChart{},
		Table:   table,
	}
}

// ListYears returns every distinct year, ascending
func (e *Engine) ListYears() model.Envelope {
	years := e.data.Years()

	table := make([]model.Row, len(years))
	labels := make([]string, len(years))
	for i, y := range years {
		table[i] = model.Row{"year": y}
		labels[i] = fmt.Sprint(y)
	}

	return model.Envelope{
		Summary: fmt.Sprintf("Data is available for the years %s.", strings.Join(labels, ", ")),
		Chart:   model.EmptyChart{},
		Table:   table,
	}
}

// DataOverview returns one row of dataset-wide figures
func (e *Engine) DataOverview(ctx context.Context) model.Envelope {
	records := e.data.Records()
	years := e.data.Years()
	areasCount := len(e.data.Areas())

	overview := model.Row{
		"total_records":      e.data.SourceRows(),
		"years_covered":      years,
		"areas_count":        areasCount,
		"total_flats_sold":   sumOf(records, model.ColFlatSold),
		"average_flat_price": meanOf(records, model.ColFlatRate),
	}

	prompt := fmt.Sprintf(overviewPrompt, e.data.SourceRows(), len(years), areasCount)

	return model.Envelope{
		Summary: e.summarizer.Summarize(ctx, prompt),
		Chart:   model.EmptyChart{},
		Table:   []model.Row{overview},
	}
}

// Fallback asks the LLM to answer the raw query or suggest better ones
func (e *Engine) Fallback(ctx context.Context, query string) model.Envelope {
	return model.Envelope{
		Summary: e.summarizer.Summarize(ctx, fmt.Sprintf(fallbackPrompt, query)),
		Chart:   model.SingleSeries{Labels: []any{}, Data: []float64{}},
		Table:   []model.Row{},
	}
}

func (e *Engine) noDataFor(area string) model.Envelope {
	e.log.Debug("no rows for area", zap.String("area", area))
	return model.NoData(fmt.Sprintf("No data for %s", area))
}

func indexByYear(groups []yearGroup) map[int][]model.Record {
	idx := make(map[int][]model.Record, len(groups))
	for _, g := range groups {
		idx[g.Year] = g.Records
	}
	return idx
}

func unionYears(a, b map[int][]model.Record) []int {
	seen := make(map[int]bool, len(a)+len(b))
	for y := range a {
		seen[y] = true
	}
	for y := range b {
		seen[y] = true
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func lastYears(records []model.Record, years int) []model.Record {
	maxYear := records[0].Year
	for _, r := range records[1:] {
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}

	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Year >= maxYear-years {
			out = append(out, r)
		}
	}
	return out
}
