// Package runner executes a batch job: each source is loaded, coerced
// and summarized independently, with a bounded number of workers. The
// stats engine itself stays single-threaded; only whole sources run in
// parallel.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rmckay/datakit/internal/job"
	"github.com/rmckay/datakit/internal/source"
	"github.com/rmckay/datakit/internal/stats"
)

// DefaultWorkers bounds source-level parallelism when the job file
// does not set one.
const DefaultWorkers = 4

// Status classifies a per-source outcome.
type Status string

const (
	StatusOK     Status = "ok"
	StatusNoData Status = "no_data"
	StatusError  Status = "error"
)

// SourceOutcome is the result of summarizing one source.
type SourceOutcome struct {
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Status  Status         `json:"status"`
	Dropped int            `json:"dropped,omitempty"`
	Summary *stats.Summary `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// JobOutcome is the aggregate result of one job run.
type JobOutcome struct {
	JobName    string          `json:"job_name"`
	Timestamp  time.Time       `json:"timestamp"`
	DurationMs int64           `json:"duration_ms"`
	Sources    []SourceOutcome `json:"sources"`
	Succeeded  int             `json:"succeeded"`
	NoData     int             `json:"no_data"`
	Errors     int             `json:"errors"`
}

// Run summarizes every source in the job. Source load failures are
// recorded per source rather than aborting the whole job; the caller
// decides how hard to fail on outcome.Errors.
func Run(ctx context.Context, j *job.Job) (*JobOutcome, error) {
	sources, err := j.BuildSources()
	if err != nil {
		return nil, err
	}

	workers := j.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	start := time.Now()
	outcomes := make([]SourceOutcome, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range sources {
		g.Go(func() error {
			outcomes[i] = runSource(gctx, s, j.Detailed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome := &JobOutcome{
		JobName:    j.Name,
		Timestamp:  start.UTC(),
		DurationMs: time.Since(start).Milliseconds(),
		Sources:    outcomes,
	}
	for _, so := range outcomes {
		switch so.Status {
		case StatusOK:
			outcome.Succeeded++
		case StatusNoData:
			outcome.NoData++
		case StatusError:
			outcome.Errors++
		}
	}
	return outcome, nil
}

func runSource(ctx context.Context, s source.Source, detailed bool) SourceOutcome {
	out := SourceOutcome{Name: s.Name(), Type: string(s.Kind())}

	raw, err := s.Load(ctx)
	if err != nil {
		slog.Debug("source load failed", "source", s.Name(), "error", err)
		out.Status = StatusError
		out.Error = err.Error()
		return out
	}

	values, dropped := stats.Coerce(raw)
	out.Dropped = dropped

	summary, err := stats.Describe(values, detailed)
	if errors.Is(err, stats.ErrNoNumericData) {
		slog.Warn("source has no numeric data", "source", s.Name(), "raw_values", len(raw))
		out.Status = StatusNoData
		return out
	}
	if err != nil {
		out.Status = StatusError
		out.Error = err.Error()
		return out
	}

	out.Status = StatusOK
	out.Summary = summary
	return out
}

// Failed returns an error describing the failed sources, or nil when
// none failed. No-data sources are not failures.
func (o *JobOutcome) Failed() error {
	if o.Errors == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d sources failed", o.Errors, len(o.Sources))
}
