package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmckay/datakit/internal/stats"
)

func TestWriteSummary(t *testing.T) {
	s, err := stats.Describe([]float64{10, 20, 20, 30, 40}, true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "reports", "out.json")
	require.NoError(t, WriteSummary(path, "latency.csv", 2, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "latency.csv", decoded["source"])
	assert.Equal(t, float64(2), decoded["dropped"])

	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), summary["count"])
	assert.Equal(t, float64(24), summary["mean"])

	detailed, ok := summary["detailed"].(map[string]any)
	require.True(t, ok, "detailed fields should be a nested object")
	assert.Contains(t, detailed, "skewness")
}

func TestWriteSummaryZeroVarianceSerializesNull(t *testing.T) {
	s, err := stats.Describe([]float64{5, 5, 5}, true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteSummary(path, "inline", 0, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Summary struct {
			Detailed map[string]any `json:"detailed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded.Summary.Detailed["skewness"])
	assert.Nil(t, decoded.Summary.Detailed["kurtosis"])
}

func TestWriteSummaryUnwritablePath(t *testing.T) {
	s, err := stats.Describe([]float64{1}, false)
	require.NoError(t, err)

	dir := t.TempDir()
	// A file where a directory is expected makes MkdirAll fail.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err = WriteSummary(filepath.Join(blocker, "sub", "out.json"), "x", 0, s)
	assert.Error(t, err)
}
