package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/testutil"
)

type recordingQueryLog struct {
	mu      sync.Mutex
	entries []*model.QueryLog
	err     error
}

func (r *recordingQueryLog) LogQuery(ctx context.Context, entry *model.QueryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("query log called without deadline")
	}
	r.entries = append(r.entries, entry)
	return r.err
}

func newTestService(t *testing.T, summarizer Summarizer, queryLog QueryLogger) *AnalysisService {
	t.Helper()
	engine := NewEngine(testutil.SampleDataset(t), summarizer, nil)
	return NewAnalysisService(NewRouter(), engine, queryLog, time.Second, nil)
}

func TestAnalysisService_Dispatch(t *testing.T) {
	svc := newTestService(t, &testutil.Summarizer{Text: "llm"}, nil)
	ctx := context.Background()

	tests := []struct {
		query   string
		kind    model.IntentKind
		summary string
		chart   model.ChartKind
	}{
		{"analyze wakad", model.IntentAnalyzeArea, "llm", model.ChartSingle},
		{"analyze kothrud", model.IntentAnalyzeArea, "No data for Kothrud", model.ChartEmpty},
		{"compare wakad and baner", model.IntentCompareAreas, "llm", model.ChartMulti},
		{"price growth for wakad over last 2 years", model.IntentPriceGrowth, "llm", model.ChartSingle},
		{"demand for wakad", model.IntentDemandTrend, "llm", model.ChartMulti},
		{"show demand", model.IntentDemandTrend, "llm", model.ChartSingle},
		{"list areas", model.IntentListAreas, "There are 6 areas in the dataset. The complete list is shown in the table below.", model.ChartEmpty},
		{"list years", model.IntentListYears, "Data is available for the years 2019, 2020, 2021, 2022, 2023.", model.ChartEmpty},
		{"show all data", model.IntentDataOverview, "llm", model.ChartEmpty},
		{"hello there", model.IntentFallback, "llm", model.ChartSingle},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			result := svc.Analyze(ctx, tt.query)

			assert.Equal(t, tt.kind, result.Intent.Kind)
			assert.Equal(t, tt.summary, result.Envelope.Summary)
			require.NotNil(t, result.Envelope.Chart)
			assert.Equal(t, tt.chart, result.Envelope.Chart.Kind())
			assert.NotNil(t, result.Envelope.Table)
		})
	}
}

func TestAnalysisService_SummarizerTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	summarizer := NewLLMSummarizer(newTestClient(server.URL), 50*time.Millisecond, false, nil)
	queryLog := &recordingQueryLog{}
	svc := newTestService(t, summarizer, queryLog)

	result := svc.Analyze(context.Background(), "analyze wakad")

	assert.Equal(t, FallbackSummary, result.Envelope.Summary)
	assert.Equal(t, model.ChartSingle, result.Envelope.Chart.Kind())
	assert.Len(t, result.Envelope.Table, 3)

	require.Len(t, queryLog.entries, 1)
	assert.True(t, queryLog.entries[0].SummaryFailed)
}

func TestAnalysisService_QueryLog(t *testing.T) {
	queryLog := &recordingQueryLog{}
	svc := newTestService(t, &testutil.Summarizer{Text: "ok"}, queryLog)

	svc.Analyze(context.Background(), "Compare Wakad and Baner")

	require.Len(t, queryLog.entries, 1)
	entry := queryLog.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Compare Wakad and Baner", entry.Query)
	assert.Equal(t, model.IntentCompareAreas, entry.Intent)
	assert.Equal(t, "Wakad", entry.Area)
	assert.Equal(t, "Baner", entry.OtherArea)
	assert.Equal(t, 4, entry.RowCount)
	assert.False(t, entry.SummaryFailed)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestAnalysisService_QueryLogErrorIsIgnored(t *testing.T) {
	queryLog := &recordingQueryLog{err: errors.New("db down")}
	svc := newTestService(t, &testutil.Summarizer{Text: "ok"}, queryLog)

	result := svc.Analyze(context.Background(), "list areas")

	assert.Equal(t, model.IntentListAreas, result.Intent.Kind)
	assert.Len(t, result.Envelope.Table, 6)
}

func TestAnalysisService_QueryLogSurvivesCanceledRequest(t *testing.T) {
	queryLog := &recordingQueryLog{}
	svc := newTestService(t, &testutil.Summarizer{Text: "ok"}, queryLog)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Analyze(ctx, "list years")

	require.Len(t, queryLog.entries, 1)
}
