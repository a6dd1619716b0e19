// Package source turns job-file source declarations into loadable data
// sources. Each source produces the raw value sequence that the stats
// engine coerces and summarizes.
package source

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/rmckay/datakit/internal/dataset"
)

type Type string

const (
	// TypeCSV selects one column of a header-mapped CSV file.
	TypeCSV Type = "csv"

	// TypeJSON takes the top-level array of a JSON document.
	TypeJSON Type = "json"

	// TypeLines reads a text file one value per line.
	TypeLines Type = "lines"

	// TypeInline carries its values directly in the job file.
	TypeInline Type = "inline"
)

// Source is the interface for all data sources.
type Source interface {
	// Name returns the source name from the job file.
	Name() string

	// Kind returns the source type.
	Kind() Type

	// Load produces the raw value sequence.
	Load(ctx context.Context) ([]any, error)
}

// Create creates a source from a job-file declaration. params carries
// the type-specific settings as decoded from YAML.
func Create(sourceType Type, name string, params map[string]any) (Source, error) {
	switch sourceType {
	case TypeCSV:
		var v *struct {
			Path   string `mapstructure:"path"`
			Column string `mapstructure:"column"`
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}
		if v == nil || v.Path == "" {
			return nil, fmt.Errorf("source %q: csv requires a path", name)
		}

		return &fileSource{name: name, kind: TypeCSV, path: v.Path, column: v.Column}, nil
	case TypeJSON:
		var v *struct {
			Path string `mapstructure:"path"`
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}
		if v == nil || v.Path == "" {
			return nil, fmt.Errorf("source %q: json requires a path", name)
		}

		return &fileSource{name: name, kind: TypeJSON, path: v.Path}, nil
	case TypeLines:
		var v *struct {
			Path string `mapstructure:"path"`
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}
		if v == nil || v.Path == "" {
			return nil, fmt.Errorf("source %q: lines requires a path", name)
		}

		return &fileSource{name: name, kind: TypeLines, path: v.Path}, nil
	case TypeInline:
		var v *struct {
			Values []any `mapstructure:"values"`
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}
		if v == nil || len(v.Values) == 0 {
			return nil, fmt.Errorf("source %q: inline requires values", name)
		}

		return &inlineSource{name: name, values: v.Values}, nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid source type", sourceType)
	}
}

type fileSource struct {
	name   string
	kind   Type
	path   string
	column string
}

func (s *fileSource) Name() string { return s.name }
func (s *fileSource) Kind() Type   { return s.kind }

func (s *fileSource) Load(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch s.kind {
	case TypeCSV:
		return dataset.FromCSV(s.path, s.column)
	case TypeJSON:
		return dataset.FromJSON(s.path)
	default:
		return dataset.FromLines(s.path)
	}
}

type inlineSource struct {
	name   string
	values []any
}

func (s *inlineSource) Name() string { return s.name }
func (s *inlineSource) Kind() Type   { return TypeInline }

func (s *inlineSource) Load(_ context.Context) ([]any, error) {
	return s.values, nil
}
