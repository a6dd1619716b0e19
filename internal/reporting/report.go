// Package reporting writes analysis results to disk as indented JSON.
// These files are convenience dumps for humans and scripts, not a
// versioned interchange format.
package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rmckay/datakit/internal/runner"
	"github.com/rmckay/datakit/internal/stats"
)

// SummaryReport is the export envelope for a single analyze call.
type SummaryReport struct {
	Source      string         `json:"source"`
	GeneratedAt time.Time      `json:"generated_at"`
	Dropped     int            `json:"dropped,omitempty"`
	Summary     *stats.Summary `json:"summary"`
}

// WriteSummary serializes a summary to path, creating parent
// directories as needed.
func WriteSummary(path string, source string, dropped int, s *stats.Summary) error {
	report := SummaryReport{
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Dropped:     dropped,
		Summary:     s,
	}
	return writeJSON(path, report)
}

// WriteJobOutcome serializes a whole job outcome to path.
func WriteJobOutcome(path string, outcome *runner.JobOutcome) error {
	return writeJSON(path, outcome)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
