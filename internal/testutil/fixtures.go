package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/dataset"
	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/model"
)

// Headers is the column order of fixture rows
var Headers = []string{
	model.ColLocation,
	model.ColYear,
	model.ColFlatRate,
	model.ColFlatSold,
	model.ColShopSold,
	model.ColOfficeSold,
}

// Row is one fixture transaction row
type Row struct {
	Location   string
	Year       int
	FlatRate   float64
	FlatSold   float64
	ShopSold   float64
	OfficeSold float64
}

// SampleRows covers six areas over 2019-2023. Wakad's flat price grows
// 100 -> 110 -> 121; Baner has two 2021 rows and a gap in 2022.
func SampleRows() []Row {
	return []Row{
		{"Wakad", 2020, 100, 10, 1, 0},
		{"Wakad", 2021, 110, 20, 2, 1},
		{"Wakad", 2022, 121, 30, 3, 1},
		{"Baner", 2021, 200, 5, 0, 0},
		{"Baner", 2021, 220, 15, 1, 0},
		{"Baner", 2023, 240, 9, 1, 1},
		{"Aundh", 2019, 300, 40, 0, 0},
		{"Hinjewadi", 2020, 150, 60, 0, 0},
		{"Kharadi", 2020, 180, 25, 0, 0},
		{"Hadapsar", 2020, 90, 25, 0, 0},
	}
}

// NewDataset builds a dataset from fixture rows
func NewDataset(t testing.TB, rows []Row) *dataset.Dataset {
	t.Helper()

	raw := make([][]any, len(rows))
	for i, r := range rows {
		raw[i] = []any{r.Location, int64(r.Year), r.FlatRate, r.FlatSold, r.ShopSold, r.OfficeSold}
	}

	ds, _, err := dataset.FromRows(Headers, raw)
	require.NoError(t, err)
	return ds
}

// SampleDataset is NewDataset(t, SampleRows())
func SampleDataset(t testing.TB) *dataset.Dataset {
	t.Helper()
	return NewDataset(t, SampleRows())
}

// Summarizer returns Text for every prompt and records the prompts
type Summarizer struct {
	Text string

	mu      sync.Mutex
	prompts []string
}

// Summarize implements service.Summarizer
func (s *Summarizer) Summarize(_ context.Context, prompt string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.Text
}

// Prompts returns every prompt seen so far
func (s *Summarizer) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// LastPrompt returns the most recent prompt, or "" if none
func (s *Summarizer) LastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}
