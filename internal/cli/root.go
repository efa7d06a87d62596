package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/app"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/config"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/logger"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/service"
)

// offlineSummary is the summary text printed with --no-llm
const offlineSummary = "LLM summary disabled."

// Options are the flags of the query command
type Options struct {
	DataPath   string
	Sheet      string
	NoLLM      bool
	IntentOnly bool
	Compact    bool
	LogLevel   string
}

// LoadConfig reads the environment configuration; it is replaced in tests
type LoadConfig func() (*config.Config, error)

// NewRootCmd creates the "realestate-query" command
func NewRootCmd(load LoadConfig) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "realestate-query [query...]",
		Short: "Answer a real-estate question against the transactions dataset",
		Long: `Routes a free-text query ("analyze wakad", "compare wakad and aundh",
"price growth for akurdi over last 3 years", "demand trends", "list areas")
and prints the JSON response the HTTP API would return.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd.OutOrStdout(), load, opts, strings.Join(args, " "))
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.DataPath, "data", "", "dataset file (.xlsx or .csv); overrides DATASET_PATH")
	flags.StringVar(&opts.Sheet, "sheet", "", "workbook sheet name (default: first sheet)")
	flags.BoolVar(&opts.NoLLM, "no-llm", false, "skip the LLM call and use a fixed summary")
	flags.BoolVar(&opts.IntentOnly, "intent", false, "print only the routed intent")
	flags.BoolVar(&opts.Compact, "compact", false, "print compact JSON")
	flags.StringVar(&opts.LogLevel, "log-level", "error", "log level (debug, info, warn, error)")

	return root
}

func runQuery(ctx context.Context, out io.Writer, load LoadConfig, opts *Options, query string) error {
	if opts.IntentOnly {
		return writeJSON(out, service.NewRouter().Route(query), opts.Compact)
	}

	cfg, err := load()
	if err != nil && opts.DataPath == "" {
		return err
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	if opts.DataPath != "" {
		cfg.Dataset.Source = config.DatasetSourceFile
		cfg.Dataset.Path = opts.DataPath
		cfg.Dataset.Sheet = opts.Sheet
	}
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = 15
	}

	log := logger.New(opts.LogLevel, "console")
	defer log.Sync()

	appOpts := []app.Option{app.WithoutDatabase()}
	if opts.NoLLM {
		appOpts = append(appOpts, app.WithSummarizer(service.StaticSummarizer(offlineSummary)))
	}

	a, err := app.New(ctx, cfg, log, appOpts...)
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.Analysis.Analyze(ctx, query)
	log.Debug("query answered", zap.String("intent", string(result.Intent.Kind)), zap.Duration("took", result.Took))

	return writeJSON(out, result.Envelope, opts.Compact)
}

func writeJSON(out io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(out)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
