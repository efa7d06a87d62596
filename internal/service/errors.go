package service

import "errors"

var (
	// ErrSummarizerDisabled is returned when no LLM credential is configured
	ErrSummarizerDisabled = errors.New("LLM summarizer is not enabled (missing API key)")

	// ErrEmptyCompletion is returned when the API answers without content
	ErrEmptyCompletion = errors.New("LLM response has no content")
)
