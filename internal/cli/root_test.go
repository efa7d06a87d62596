package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisheksol/Real-Estate-Analysis-Chatbot/internal/config"
)

const csvData = `final location,year,flat - weighted average rate,flat_sold - igr
Wakad,2020,100,10
Wakad,2021,110,20
Wakad,2022,121,30
`

func noEnvConfig() (*config.Config, error) {
	return nil, errors.New("DATASET_PATH is required")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(noEnvConfig)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))
	return path
}

func TestQuery_PriceGrowth(t *testing.T) {
	out, err := execute(t, "--data", writeCSV(t), "--no-llm", "price", "growth", "for", "wakad")
	require.NoError(t, err)

	var body struct {
		Summary string `json:"summary"`
		Chart   struct {
			Labels []int     `json:"labels"`
			Data   []float64 `json:"data"`
		} `json:"chart"`
		Table []map[string]any `json:"table"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))

	assert.Equal(t, offlineSummary, body.Summary)
	assert.Equal(t, []int{2020, 2021, 2022}, body.Chart.Labels)
	assert.InDeltaSlice(t, []float64{0, 10, 10}, body.Chart.Data, 1e-9)
	assert.Len(t, body.Table, 3)
}

func TestQuery_IntentOnly(t *testing.T) {
	out, err := execute(t, "--intent", "--compact", "compare wakad and baner")
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"compare_areas","area":"Wakad","other_area":"Baner","query":"compare wakad and baner"}`, out)
}

func TestQuery_Errors(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)

	_, err = execute(t, "list areas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_PATH")
}
