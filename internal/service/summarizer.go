package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/metrics"
)

// FallbackSummary replaces the LLM text whenever the call fails
const FallbackSummary = "LLM summary could not be generated."

// Summarizer turns a prompt into prose. Implementations never fail: on
// error they return a fallback text.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) string
}

// ChatCompleter is the part of OpenAIClient the summarizer needs
type ChatCompleter interface {
	IsEnabled() bool
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// LLMSummarizer summarizes through a chat-completion API, bounded by a
// timeout and without retries.
type LLMSummarizer struct {
	client       ChatCompleter
	timeout      time.Duration
	includeError bool
	log          *zap.Logger
}

// NewLLMSummarizer creates a summarizer. includeError appends the failure
// detail to FallbackSummary.
func NewLLMSummarizer(client ChatCompleter, timeout time.Duration, includeError bool, log *zap.Logger) *LLMSummarizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMSummarizer{
		client:       client,
		timeout:      timeout,
		includeError: includeError,
		log:          log,
	}
}

// Summarize sends prompt as a single user message and returns the reply
func (s *LLMSummarizer) Summarize(ctx context.Context, prompt string) string {
	if s.client == nil || !s.client.IsEnabled() {
		metrics.SummariesTotal.WithLabelValues(metrics.SummaryDisabled).Inc()
		return s.fallback(ErrSummarizerDisabled)
	}

	start := time.Now()
	text, err := s.complete(ctx, prompt)
	if err != nil {
		metrics.SummariesTotal.WithLabelValues(metrics.SummaryFallback).Inc()
		s.log.Warn("LLM summary failed",
			zap.Error(err),
			zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
			zap.Duration("elapsed", time.Since(start)),
		)
		return s.fallback(err)
	}

	metrics.SummariesTotal.WithLabelValues(metrics.SummaryOK).Inc()
	s.log.Debug("LLM summary generated", zap.Duration("elapsed", time.Since(start)))
	return text
}

func (s *LLMSummarizer) complete(ctx context.Context, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return resp.Content()
}

func (s *LLMSummarizer) fallback(err error) string {
	if s.includeError && err != nil {
		return fmt.Sprintf("%s Error: %v", FallbackSummary, err)
	}
	return FallbackSummary
}

// StaticSummarizer returns the same text for every prompt. It backs the
// CLI's --no-llm mode.
type StaticSummarizer string

// Summarize implements Summarizer
func (s StaticSummarizer) Summarize(context.Context, string) string {
	return string(s)
}
