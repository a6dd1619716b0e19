package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmckay/datakit/internal/job"
)

func buildJob(t *testing.T, specs []job.SourceSpec) *job.Job {
	t.Helper()
	return &job.Job{
		Name:    "test",
		BaseDir: t.TempDir(),
		Sources: specs,
	}
}

func TestRunMixedOutcomes(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "latency.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("host,ms\na,10\nb,20\nc,30\n"), 0o644))

	j := &job.Job{
		Name:    "mixed",
		BaseDir: dir,
		Workers: 2,
		Sources: []job.SourceSpec{
			{Name: "latencies", Type: "csv", Params: map[string]any{"path": "latency.csv", "column": "ms"}},
			{Name: "junk", Type: "inline", Params: map[string]any{"values": []any{"abc", "def"}}},
			{Name: "missing", Type: "lines", Params: map[string]any{"path": "nope.txt"}},
		},
	}

	outcome, err := Run(context.Background(), j)
	require.NoError(t, err)

	assert.Equal(t, "mixed", outcome.JobName)
	assert.Equal(t, 1, outcome.Succeeded)
	assert.Equal(t, 1, outcome.NoData)
	assert.Equal(t, 1, outcome.Errors)
	require.Len(t, outcome.Sources, 3)

	byName := map[string]SourceOutcome{}
	for _, so := range outcome.Sources {
		byName[so.Name] = so
	}

	ok := byName["latencies"]
	assert.Equal(t, StatusOK, ok.Status)
	require.NotNil(t, ok.Summary)
	assert.Equal(t, 3, ok.Summary.Count)
	assert.InDelta(t, 20.0, ok.Summary.Mean, 1e-9)

	noData := byName["junk"]
	assert.Equal(t, StatusNoData, noData.Status)
	assert.Nil(t, noData.Summary)
	assert.Equal(t, 2, noData.Dropped)

	failed := byName["missing"]
	assert.Equal(t, StatusError, failed.Status)
	assert.NotEmpty(t, failed.Error)

	assert.Error(t, outcome.Failed())
}

func TestRunPreservesSourceOrder(t *testing.T) {
	specs := make([]job.SourceSpec, 0, 8)
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, n := range names {
		specs = append(specs, job.SourceSpec{
			Name: n, Type: "inline", Params: map[string]any{"values": []any{1, 2, 3}},
		})
	}

	outcome, err := Run(context.Background(), buildJob(t, specs))
	require.NoError(t, err)
	require.Len(t, outcome.Sources, len(names))
	for i, so := range outcome.Sources {
		assert.Equal(t, names[i], so.Name)
	}
	assert.NoError(t, outcome.Failed())
}

func TestRunDetailed(t *testing.T) {
	j := buildJob(t, []job.SourceSpec{
		{Name: "vals", Type: "inline", Params: map[string]any{"values": []any{1, 2, 3, 4, 5, 6, 7, 8}}},
	})
	j.Detailed = true

	outcome, err := Run(context.Background(), j)
	require.NoError(t, err)
	require.NotNil(t, outcome.Sources[0].Summary)
	require.NotNil(t, outcome.Sources[0].Summary.Detailed)
	assert.InDelta(t, 4.0, outcome.Sources[0].Summary.Detailed.IQR, 1e-9)
}

func TestRunBadSourceDeclaration(t *testing.T) {
	j := buildJob(t, []job.SourceSpec{
		{Name: "bad", Type: "csv", Params: map[string]any{}},
	})

	_, err := Run(context.Background(), j)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv requires a path")
}
