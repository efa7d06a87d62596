package model

import "encoding/json"

// Row is one table row, serialized as a JSON object
type Row map[string]any

// Envelope is the uniform response of every query.
type Envelope struct {
	Summary string `json:"summary"`
	Chart   Chart  `json:"chart"`
	Table   []Row  `json:"table"`
}

// MarshalJSON keeps all three keys present: a nil chart becomes {} and a
// nil table becomes [].
func (e Envelope) MarshalJSON() ([]byte, error) {
	chart := e.Chart
	if chart == nil {
		chart = EmptyChart{}
	}
	table := e.Table
	if table == nil {
		table = []Row{}
	}

	return json.Marshal(struct {
		Summary string `json:"summary"`
		Chart   Chart  `json:"chart"`
		Table   []Row  `json:"table"`
	}{e.Summary, chart, table})
}

// NoData is the envelope returned when a filter or aggregation has nothing
// to show.
func NoData(summary string) Envelope {
	return Envelope{Summary: summary, Chart: EmptyChart{}, Table: []Row{}}
}

// ChartKind distinguishes the chart variants
type ChartKind string

const (
	ChartEmpty  ChartKind = "empty"
	ChartSingle ChartKind = "single"
	ChartMulti  ChartKind = "multi"
)

// Chart is one of EmptyChart, SingleSeries or MultiSeries.
type Chart interface {
	Kind() ChartKind
}

// EmptyChart serializes as {}.
type EmptyChart struct{}

func (EmptyChart) Kind() ChartKind { return ChartEmpty }

// SingleSeries serializes as {"labels": [...], "data": [...]}.
type SingleSeries struct {
	Labels []any     `json:"labels"`
	Data   []float64 `json:"data"`
}

func (SingleSeries) Kind() ChartKind { return ChartSingle }

// MultiSeries serializes as {"labels": [...], "datasets": [{"label", "data"}]}.
type MultiSeries struct {
	Labels   []any    `json:"labels"`
	Datasets []Series `json:"datasets"`
}

func (MultiSeries) Kind() ChartKind { return ChartMulti }

// Series is one named dataset of a MultiSeries chart
type Series struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}
