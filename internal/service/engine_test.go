package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/dataset"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/testutil"
)

func newTestEngine(t *testing.T) (*Engine, *testutil.Summarizer) {
	t.Helper()
	summarizer := &testutil.Summarizer{Text: "summary"}
	return NewEngine(testutil.SampleDataset(t), summarizer, nil), summarizer
}

func assertEmpty(t *testing.T, env model.Envelope) {
	t.Helper()
	assert.Equal(t, model.EmptyChart{}, env.Chart)
	assert.NotNil(t, env.Table)
	assert.Empty(t, env.Table)
}

func TestEngine_AnalyzeArea(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.AnalyzeArea(context.Background(), "Wakad")

	assert.Equal(t, "summary", env.Summary)
	assert.Equal(t, model.SingleSeries{
		Labels: []any{2020, 2021, 2022},
		Data:   []float64{100, 110, 121},
	}, env.Chart)
	require.Len(t, env.Table, 3)
	assert.Equal(t, "Wakad", env.Table[0][model.ColLocation])
	assert.Equal(t, 2020, env.Table[0][model.ColYear])
	assert.Equal(t,
		"Give a short 2-3 line summary of real estate trends for Wakad based on flat price and demand over the years. Mention key trends.",
		summarizer.LastPrompt())
}

func TestEngine_AnalyzeArea_AveragesPerYear(t *testing.T) {
	engine, _ := newTestEngine(t)

	env := engine.AnalyzeArea(context.Background(), "baner")

	chart, ok := env.Chart.(model.SingleSeries)
	require.True(t, ok)
	assert.Equal(t, []any{2021, 2023}, chart.Labels)
	assert.InDeltaSlice(t, []float64{210, 240}, chart.Data, 1e-9)
	assert.Len(t, env.Table, 3)
}

func TestEngine_AnalyzeArea_TableRowsAreCopies(t *testing.T) {
	engine, _ := newTestEngine(t)

	env := engine.AnalyzeArea(context.Background(), "Wakad")
	env.Table[0][model.ColLocation] = "Changed"

	again := engine.AnalyzeArea(context.Background(), "Wakad")
	assert.Equal(t, "Wakad", again.Table[0][model.ColLocation])
}

func TestEngine_NoData(t *testing.T) {
	engine, summarizer := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name string
		env  model.Envelope
		want string
	}{
		{"analyze", engine.AnalyzeArea(ctx, "Kothrud"), "No data for Kothrud"},
		{"growth", engine.PriceGrowth(ctx, "Kothrud", 0), "No data for Kothrud"},
		{"demand", engine.DemandTrend(ctx, "Kothrud"), "No data for Kothrud"},
		{"compare first missing", engine.CompareAreas(ctx, "Kothrud", "Wakad"), "No data for Kothrud"},
		{"compare second missing", engine.CompareAreas(ctx, "Wakad", "Pashan"), "No data for Pashan"},
		{"compare both missing", engine.CompareAreas(ctx, "Kothrud", "Pashan"), "No data for Kothrud, Pashan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.env.Summary)
			assertEmpty(t, tt.env)
		})
	}

	// no-data paths never reach the summarizer
	assert.Empty(t, summarizer.Prompts())
}

func TestEngine_CompareAreas(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.CompareAreas(context.Background(), "Wakad", "Baner")

	chart, ok := env.Chart.(model.MultiSeries)
	require.True(t, ok)

	// chart labels: years both areas have
	assert.Equal(t, []any{2021}, chart.Labels)
	require.Len(t, chart.Datasets, 2)
	assert.Equal(t, "Wakad", chart.Datasets[0].Label)
	assert.InDeltaSlice(t, []float64{110}, chart.Datasets[0].Data, 1e-9)
	assert.Equal(t, "Baner", chart.Datasets[1].Label)
	assert.InDeltaSlice(t, []float64{210}, chart.Datasets[1].Data, 1e-9)

	// table rows: years either area has
	require.Len(t, env.Table, 4)
	years := make([]any, len(env.Table))
	for i, row := range env.Table {
		years[i] = row["year"]
	}
	assert.Equal(t, []any{2020, 2021, 2022, 2023}, years)

	assert.Equal(t, model.Row{"year": 2020, "Wakad price": 100.0, "Wakad sales": 10.0}, env.Table[0])
	assert.Equal(t, model.Row{
		"year":        2021,
		"Wakad price": 110.0,
		"Wakad sales": 20.0,
		"Baner price": 210.0,
		"Baner sales": 20.0,
	}, env.Table[1])
	assert.Equal(t, model.Row{"year": 2023, "Baner price": 240.0, "Baner sales": 9.0}, env.Table[3])

	assert.Equal(t,
		"Compare real estate trends between Wakad and Baner in a 2-3 line summary. Focus on price differences and growth patterns.",
		summarizer.LastPrompt())
}

func TestEngine_CompareAreas_NoSharedYears(t *testing.T) {
	engine, _ := newTestEngine(t)

	env := engine.CompareAreas(context.Background(), "Aundh", "Kharadi")

	chart, ok := env.Chart.(model.MultiSeries)
	require.True(t, ok)
	assert.Empty(t, chart.Labels)
	assert.Len(t, env.Table, 2)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"labels":[]`)
}

func TestEngine_PriceGrowth(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.PriceGrowth(context.Background(), "Wakad", 0)

	chart, ok := env.Chart.(model.SingleSeries)
	require.True(t, ok)
	assert.Equal(t, []any{2020, 2021, 2022}, chart.Labels)
	assert.InDeltaSlice(t, []float64{0, 10, 10}, chart.Data, 1e-9)
	assert.Equal(t, 0.0, chart.Data[0])

	require.Len(t, env.Table, 3)
	assert.Equal(t, 2020, env.Table[0]["year"])
	assert.Equal(t, 100.0, env.Table[0]["price"])
	assert.Equal(t, 0.0, env.Table[0]["growth_percentage"])

	assert.Equal(t,
		"Summarize price growth for Wakad over the available period. Total growth is 21.00% with average annual growth of 10.50%.",
		summarizer.LastPrompt())
}

func TestEngine_PriceGrowth_Window(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.PriceGrowth(context.Background(), "Wakad", 1)

	chart, ok := env.Chart.(model.SingleSeries)
	require.True(t, ok)
	assert.Equal(t, []any{2021, 2022}, chart.Labels)
	assert.InDeltaSlice(t, []float64{0, 10}, chart.Data, 1e-9)
	assert.Equal(t,
		"Summarize price growth for Wakad over the last 1 years. Total growth is 10.00% with average annual growth of 10.00%.",
		summarizer.LastPrompt())
}

func TestEngine_PriceGrowth_Insufficient(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	env := engine.PriceGrowth(ctx, "Aundh", 0)
	assert.Equal(t, "Insufficient data to calculate price growth for Aundh", env.Summary)
	assertEmpty(t, env)

	// Baner has 2021 and 2023; one year back from 2023 leaves only 2023
	env = engine.PriceGrowth(ctx, "Baner", 1)
	assert.Equal(t, "Insufficient data to calculate price growth for Baner", env.Summary)
	assertEmpty(t, env)
}

func TestEngine_PriceGrowth_ZeroPrice(t *testing.T) {
	ds := testutil.NewDataset(t, []testutil.Row{
		{Location: "Ravet", Year: 2020, FlatRate: 0},
		{Location: "Ravet", Year: 2021, FlatRate: 50},
	})
	engine := NewEngine(ds, &testutil.Summarizer{}, nil)

	env := engine.PriceGrowth(context.Background(), "Ravet", 0)

	chart, ok := env.Chart.(model.SingleSeries)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0}, chart.Data)
}

func TestEngine_DemandTrend_Area(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.DemandTrend(context.Background(), "Wakad")

	assert.Equal(t, model.MultiSeries{
		Labels: []any{2020, 2021, 2022},
		Datasets: []model.Series{
			{Label: "Flats Sold", Data: []float64{10, 20, 30}},
			{Label: "Shops Sold", Data: []float64{1, 2, 3}},
			{Label: "Offices Sold", Data: []float64{0, 1, 1}},
		},
	}, env.Chart)

	require.Len(t, env.Table, 3)
	assert.Equal(t, model.Row{
		"year":              2021,
		"flat_sold - igr":   20.0,
		"shop_sold - igr":   2.0,
		"office_sold - igr": 1.0,
	}, env.Table[1])

	assert.Equal(t,
		"Analyze the demand trends for Wakad based on sales data over time. How have flat, shop, and office sales changed?",
		summarizer.LastPrompt())
}

func TestEngine_DemandTrend_TopAreas(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.DemandTrend(context.Background(), "")

	assert.Equal(t, model.SingleSeries{
		Labels: []any{"Hinjewadi", "Wakad", "Aundh", "Baner", "Hadapsar"},
		Data:   []float64{60, 60, 40, 29, 25},
	}, env.Chart)

	require.Len(t, env.Table, 5)
	for i := 1; i < len(env.Table); i++ {
		prev := env.Table[i-1][model.ColFlatSold].(float64)
		cur := env.Table[i][model.ColFlatSold].(float64)
		assert.GreaterOrEqual(t, prev, cur)
	}
	assert.Equal(t, model.Row{"final location": "Hinjewadi", "flat_sold - igr": 60.0}, env.Table[0])

	assert.Equal(t,
		"Summarize the demand trends across different areas, highlighting the top areas by sales volume.",
		summarizer.LastPrompt())
}

func TestEngine_DemandTrend_FewerThanFiveAreas(t *testing.T) {
	ds := testutil.NewDataset(t, []testutil.Row{
		{Location: "Ravet", Year: 2020, FlatSold: 3},
		{Location: "Tathawade", Year: 2020, FlatSold: 7},
	})
	engine := NewEngine(ds, &testutil.Summarizer{}, nil)

	env := engine.DemandTrend(context.Background(), "")

	require.Len(t, env.Table, 2)
	assert.Equal(t, "Tathawade", env.Table[0][model.ColLocation])
}

func TestEngine_ListAreas(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.ListAreas()

	assert.Equal(t, "There are 6 areas in the dataset. The complete list is shown in the table below.", env.Summary)
	assert.Equal(t, model.EmptyChart{}, env.Chart)
	assert.Equal(t, []model.Row{
		{"area": "Aundh"},
		{"area": "Baner"},
		{"area": "Hadapsar"},
		{"area": "Hinjewadi"},
		{"area": "Kharadi"},
		{"area": "Wakad"},
	}, env.Table)
	assert.Empty(t, summarizer.Prompts())
}

func TestEngine_ListYears(t *testing.T) {
	ds := testutil.NewDataset(t, []testutil.Row{
		{Location: "Wakad", Year: 2019},
		{Location: "Wakad", Year: 2021},
		{Location: "Baner", Year: 2020},
		{Location: "Baner", Year: 2021},
	})
	engine := NewEngine(ds, &testutil.Summarizer{}, nil)

	env := engine.ListYears()

	assert.Equal(t, "Data is available for the years 2019, 2020, 2021.", env.Summary)
	assert.Equal(t, model.EmptyChart{}, env.Chart)
	assert.Equal(t, []model.Row{{"year": 2019}, {"year": 2020}, {"year": 2021}}, env.Table)
}

func TestEngine_DataOverview(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.DataOverview(context.Background())

	assert.Equal(t, model.EmptyChart{}, env.Chart)
	require.Len(t, env.Table, 1)

	row := env.Table[0]
	assert.Equal(t, 10, row["total_records"])
	assert.Equal(t, []int{2019, 2020, 2021, 2022, 2023}, row["years_covered"])
	assert.Equal(t, 6, row["areas_count"])
	assert.InDelta(t, 239.0, row["total_flats_sold"], 1e-9)
	assert.InDelta(t, 171.1, row["average_flat_price"], 1e-9)

	assert.Equal(t,
		"Give an overview of the real estate dataset which has 10 records covering 5 years and 6 areas.",
		summarizer.LastPrompt())
}

func TestEngine_DataOverviewCountsSkippedRows(t *testing.T) {
	raw := [][]any{
		{"Wakad", int64(2020), 100.0, int64(10), nil, nil},
		{"Baner", "n/a", 200.0, int64(5), nil, nil},
	}
	ds, stats, err := dataset.FromRows(testutil.Headers, raw)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Skipped)

	summarizer := &testutil.Summarizer{Text: "summary"}
	env := NewEngine(ds, summarizer, nil).DataOverview(context.Background())

	require.Len(t, env.Table, 1)
	assert.Equal(t, 2, env.Table[0]["total_records"])
	assert.Equal(t, 1, env.Table[0]["areas_count"])
	assert.InDelta(t, 10.0, env.Table[0]["total_flats_sold"], 1e-9)
	assert.Contains(t, summarizer.LastPrompt(), "has 2 records")
}

func TestEngine_Fallback(t *testing.T) {
	engine, summarizer := newTestEngine(t)

	env := engine.Fallback(context.Background(), "what is the weather?")

	assert.Equal(t, "summary", env.Summary)
	assert.Equal(t, model.SingleSeries{Labels: []any{}, Data: []float64{}}, env.Chart)
	assert.Empty(t, env.Table)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"summary","chart":{"labels":[],"data":[]},"table":[]}`, string(raw))

	assert.Equal(t,
		"Answer this real estate data question: 'what is the weather?'. If you can't answer it specifically, suggest what kinds of queries would be better.",
		summarizer.LastPrompt())
}
