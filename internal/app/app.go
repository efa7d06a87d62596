// Package app wires configuration, the dataset, the LLM summarizer and the
// analysis service together for the server and CLI entry points.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/config"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/dataset"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/metrics"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/repository"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/service"
)

// App holds the wired components
type App struct {
	Config   *config.Config
	Log      *zap.Logger
	Dataset  *dataset.Dataset
	Repo     *repository.PostgresRepository // nil without PostgreSQL
	Analysis *service.AnalysisService
}

// Option customizes New
type Option func(*options)

type options struct {
	summarizer service.Summarizer
	noDatabase bool
}

// WithSummarizer replaces the LLM summarizer
func WithSummarizer(s service.Summarizer) Option {
	return func(o *options) { o.summarizer = s }
}

// WithoutDatabase skips PostgreSQL unless the dataset itself lives there
func WithoutDatabase() Option {
	return func(o *options) { o.noDatabase = true }
}

// New loads the dataset once and builds the analysis service over it
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Log: log}

	fromPostgres := cfg.Dataset.Source == config.DatasetSourcePostgres
	if cfg.PostgreSQL.Enabled && (fromPostgres || !o.noDatabase) {
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		switch {
		case err == nil:
			a.Repo = repo
			log.Info("connected to PostgreSQL")
		case fromPostgres:
			return nil, err
		default:
			log.Warn("PostgreSQL unavailable, query logging disabled", zap.Error(err))
		}
	}

	if err := a.loadDataset(ctx); err != nil {
		a.Close()
		return nil, err
	}

	summarizer := o.summarizer
	if summarizer == nil {
		client := service.NewOpenAIClient(&cfg.LLM)
		if !client.IsEnabled() {
			log.Warn("LLM summarizer disabled, set LLM_API_KEY to enable summaries")
		} else {
			log.Info("LLM summarizer initialized",
				zap.String("api_base", cfg.LLM.APIBase),
				zap.String("model", cfg.LLM.Model),
				zap.Duration("timeout", cfg.LLMTimeout()),
			)
		}
		summarizer = service.NewLLMSummarizer(client, cfg.LLMTimeout(), cfg.LLM.IncludeError, log.Named("summarizer"))
	}

	var queryLog service.QueryLogger
	if a.Repo != nil && cfg.QueryLog.Enabled {
		queryLog = a.Repo
	}

	engine := service.NewEngine(a.Dataset, summarizer, log.Named("engine"))
	a.Analysis = service.NewAnalysisService(service.NewRouter(), engine, queryLog, cfg.QueryLog.Timeout, log.Named("analysis"))

	return a, nil
}

func (a *App) loadDataset(ctx context.Context) error {
	var (
		ds    *dataset.Dataset
		stats dataset.LoadStats
		err   error
	)

	switch a.Config.Dataset.Source {
	case config.DatasetSourcePostgres:
		if a.Repo == nil {
			return fmt.Errorf("dataset source %q needs a PostgreSQL connection", config.DatasetSourcePostgres)
		}
		ds, stats, err = a.Repo.LoadDataset(ctx, a.Config.Dataset.Table)
	default:
		ds, stats, err = dataset.LoadFile(a.Config.Dataset.Path, a.Config.Dataset.Sheet)
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	if stats.Skipped > 0 {
		a.Log.Warn("skipped dataset rows without a valid year", zap.Int("skipped", stats.Skipped))
	}
	a.Log.Info("dataset loaded",
		zap.String("source", a.Config.Dataset.Source),
		zap.Int("records", ds.Len()),
		zap.Int("areas", len(ds.Areas())),
		zap.Ints("years", ds.Years()),
	)
	metrics.DatasetRecords.Set(float64(ds.Len()))

	a.Dataset = ds
	return nil
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.Repo == nil {
		return nil
	}
	return a.Repo.Close()
}
