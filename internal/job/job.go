// Package job loads and validates batch job files. A job names a set
// of data sources, each summarized independently by the runner.
package job

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rmckay/datakit/internal/source"
)

// SourceSpec is one source declaration in a job file.
type SourceSpec struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// Job is a parsed and schema-valid job file.
type Job struct {
	Name     string       `yaml:"name"`
	Detailed bool         `yaml:"detailed"`
	Workers  int          `yaml:"workers"`
	Output   string       `yaml:"output"`
	Sources  []SourceSpec `yaml:"sources"`

	// BaseDir is the job file's directory; relative source paths
	// resolve against it.
	BaseDir string `yaml:"-"`
}

// Load reads a job file, validates it against the embedded schema, and
// parses it. Schema violations are returned as one error listing every
// violation, so a bad file is fixed in one pass.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("job: read %s: %w", path, err)
	}

	if errs := ValidateBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("job: %s is not a valid job file:\n  %s", path, strings.Join(errs, "\n  "))
	}

	var j Job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("job: parse %s: %w", path, err)
	}
	j.BaseDir = filepath.Dir(path)

	return &j, nil
}

// BuildSources resolves the job's source declarations into loadable
// sources, with relative file paths anchored at the job directory.
func (j *Job) BuildSources() ([]source.Source, error) {
	sources := make([]source.Source, 0, len(j.Sources))
	for _, spec := range j.Sources {
		params := spec.Params
		if p, ok := params["path"].(string); ok && !filepath.IsAbs(p) {
			params = make(map[string]any, len(spec.Params))
			for k, v := range spec.Params {
				params[k] = v
			}
			params["path"] = filepath.Join(j.BaseDir, p)
		}

		s, err := source.Create(source.Type(spec.Type), spec.Name, params)
		if err != nil {
			return nil, fmt.Errorf("job: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, nil
}
