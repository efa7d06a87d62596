package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Summary outcomes
const (
	SummaryOK       = "ok"
	SummaryFallback = "fallback"
	SummaryDisabled = "disabled"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realestate_queries_total",
			Help: "Total number of analyzed queries by resolved intent",
		},
		[]string{"intent"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "realestate_query_duration_seconds",
			Help:    "Time spent answering a query, including the LLM summary",
			Buckets: []float64{0.005, 0.05, 0.25, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"intent"},
	)

	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realestate_summaries_total",
			Help: "LLM summary attempts by outcome",
		},
		[]string{"outcome"},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "realestate_dataset_records",
			Help: "Number of records loaded into the dataset",
		},
	)
)
