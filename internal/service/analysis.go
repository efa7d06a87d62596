package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/metrics"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
)

// QueryLogger persists analyzed queries
type QueryLogger interface {
	LogQuery(ctx context.Context, entry *model.QueryLog) error
}

type intentHandler func(ctx context.Context, intent model.Intent) model.Envelope

// AnalysisResult is the routed intent together with its answer
type AnalysisResult struct {
	Intent   model.Intent
	Envelope model.Envelope
	Took     time.Duration
}

// AnalysisService routes a query and runs the matching engine operation
type AnalysisService struct {
	router     *Router
	engine     *Engine
	queryLog   QueryLogger
	logTimeout time.Duration
	log        *zap.Logger
	handlers   map[model.IntentKind]intentHandler
}

// NewAnalysisService creates the service. queryLog may be nil.
func NewAnalysisService(router *Router, engine *Engine, queryLog QueryLogger, logTimeout time.Duration, log *zap.Logger) *AnalysisService {
	if log == nil {
		log = zap.NewNop()
	}

	s := &AnalysisService{
		router:     router,
		engine:     engine,
		queryLog:   queryLog,
		logTimeout: logTimeout,
		log:        log,
	}

	s.handlers = map[model.IntentKind]intentHandler{
		model.IntentAnalyzeArea: func(ctx context.Context, in model.Intent) model.Envelope {
			return engine.AnalyzeArea(ctx, in.Area)
		},
		model.IntentCompareAreas: func(ctx context.Context, in model.Intent) model.Envelope {
			return engine.CompareAreas(ctx, in.Area, in.OtherArea)
		},
		model.IntentPriceGrowth: func(ctx context.Context, in model.Intent) model.Envelope {
			return engine.PriceGrowth(ctx, in.Area, in.Years)
		},
		model.IntentDemandTrend: func(ctx context.Context, in model.Intent) model.Envelope {
			return engine.DemandTrend(ctx, in.Area)
		},
		model.IntentListAreas: func(context.Context, model.Intent) model.Envelope {
			return engine.ListAreas()
		},
		model.IntentListYears: func(context.Context, model.Intent) model.Envelope {
			return engine.ListYears()
		},
		model.IntentDataOverview: func(ctx context.Context, _ model.Intent) model.Envelope {
			return engine.DataOverview(ctx)
		},
		model.IntentFallback: func(ctx context.Context, in model.Intent) model.Envelope {
			return engine.Fallback(ctx, in.Query)
		},
	}

	return s
}

// Analyze answers a free-text query. It never fails: missing data and
// summarizer errors are reported in the envelope's summary.
func (s *AnalysisService) Analyze(ctx context.Context, query string) *AnalysisResult {
	startTime := time.Now()

	intent := s.router.Route(query)
	handle, ok := s.handlers[intent.Kind]
	if !ok {
		intent = model.Intent{Kind: model.IntentFallback, Query: intent.Query}
		handle = s.handlers[model.IntentFallback]
	}

	envelope := handle(ctx, intent)
	took := time.Since(startTime)

	metrics.QueriesTotal.WithLabelValues(string(intent.Kind)).Inc()
	metrics.QueryDuration.WithLabelValues(string(intent.Kind)).Observe(took.Seconds())

	s.log.Info("query analyzed",
		zap.String("intent", string(intent.Kind)),
		zap.String("area", intent.Area),
		zap.String("other_area", intent.OtherArea),
		zap.Int("rows", len(envelope.Table)),
		zap.Duration("took", took),
	)

	s.logQuery(ctx, query, intent, envelope, took)

	return &AnalysisResult{
		Intent:   intent,
		Envelope: envelope,
		Took:     took,
	}
}

// logQuery writes the query log inline, bounded by logTimeout, so nothing
// outlives the request. Failures are only logged.
func (s *AnalysisService) logQuery(ctx context.Context, query string, intent model.Intent, envelope model.Envelope, took time.Duration) {
	if s.queryLog == nil {
		return
	}

	if s.logTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.WithoutCancel(ctx), s.logTimeout)
		defer cancel()
	}

	entry := &model.QueryLog{
		ID:             uuid.NewString(),
		Query:          query,
		Intent:         intent.Kind,
		Area:           intent.Area,
		OtherArea:      intent.OtherArea,
		RowCount:       len(envelope.Table),
		SummaryFailed:  strings.HasPrefix(envelope.Summary, FallbackSummary),
		ResponseTimeMs: took.Milliseconds(),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.queryLog.LogQuery(ctx, entry); err != nil {
		s.log.Warn("failed to log query", zap.Error(err), zap.String("intent", string(intent.Kind)))
	}
}
