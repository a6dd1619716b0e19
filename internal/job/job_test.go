package job

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmckay/datakit/internal/source"
)

const validJob = `name: nightly
detailed: true
workers: 2
sources:
  - name: latencies
    type: csv
    params:
      path: data/latency.csv
      column: ms
  - name: inline
    type: inline
    params:
      values: [1, 2, 3]
`

func writeJob(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	path := writeJob(t, validJob)

	j, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nightly", j.Name)
	assert.True(t, j.Detailed)
	assert.Equal(t, 2, j.Workers)
	require.Len(t, j.Sources, 2)
	assert.Equal(t, "latencies", j.Sources[0].Name)
	assert.Equal(t, filepath.Dir(path), j.BaseDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read")
}

func TestValidateBytes(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: validJob,
		},
		{
			name:    "missing sources",
			yaml:    "name: x\n",
			wantErr: "sources",
		},
		{
			name:    "empty sources",
			yaml:    "name: x\nsources: []\n",
			wantErr: "/sources",
		},
		{
			name:    "bad source type",
			yaml:    "name: x\nsources:\n  - name: a\n    type: xml\n",
			wantErr: "/sources/0/type",
		},
		{
			name:    "unknown top-level key",
			yaml:    "name: x\nretries: 3\nsources:\n  - name: a\n    type: lines\n",
			wantErr: "retries",
		},
		{
			name:    "not yaml",
			yaml:    "{{{{",
			wantErr: "YAML parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateBytes([]byte(tt.yaml))
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "no validation error mentions %q in %v", tt.wantErr, errs)
		})
	}
}

func TestLoadRejectsInvalidJob(t *testing.T) {
	path := writeJob(t, "name: x\nsources: []\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid job file")
}

func TestBuildSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v.txt"), []byte("1\n2\n"), 0o644))
	jobPath := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(jobPath, []byte(`name: x
sources:
  - name: vals
    type: lines
    params:
      path: v.txt
`), 0o644))

	j, err := Load(jobPath)
	require.NoError(t, err)

	sources, err := j.BuildSources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, source.TypeLines, sources[0].Kind())
}

func TestBuildSourcesBadDeclaration(t *testing.T) {
	j := &Job{
		Name:    "x",
		BaseDir: t.TempDir(),
		Sources: []SourceSpec{{Name: "a", Type: "csv", Params: map[string]any{}}},
	}

	_, err := j.BuildSources()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv requires a path")
}
