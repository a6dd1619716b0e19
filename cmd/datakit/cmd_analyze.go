package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmckay/datakit/internal/config"
	"github.com/rmckay/datakit/internal/dataset"
	"github.com/rmckay/datakit/internal/reporting"
	"github.com/rmckay/datakit/internal/stats"
)

var (
	analyzeColumn   string
	analyzeValues   []string
	analyzeDetailed bool
	analyzeFormat   string
	analyzeOut      string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Summarize one sequence of numeric values",
		Long: `Analyze computes descriptive statistics over a single data source:
a CSV column, a JSON array, a line-per-value text file, or values
passed inline with --values.

Values that do not look numeric (optional sign, digits, optional
single decimal point) are dropped silently; a source with no numeric
values at all is reported as a no-data outcome, not an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: analyzeCommandE,
	}

	cmd.Flags().StringVarP(&analyzeColumn, "column", "c", "", "CSV column to analyze (default: first column)")
	cmd.Flags().StringSliceVar(&analyzeValues, "values", nil, "Inline values instead of a file")
	cmd.Flags().BoolVarP(&analyzeDetailed, "detailed", "d", false, "Include quartiles, IQR, skewness and kurtosis")
	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "Output format: table or json")
	cmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write a JSON report to this path")

	return cmd
}

func analyzeCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	format := analyzeFormat
	if format == "" {
		format = cfg.Analyze.Format
	}
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", format)
	}

	detailed := analyzeDetailed
	if !cmd.Flags().Changed("detailed") {
		detailed = *cfg.Analyze.Detailed
	}

	// Exactly one data source: a file argument or inline values.
	if len(args) == 0 && len(analyzeValues) == 0 {
		return fmt.Errorf("no data source: pass a file argument or --values")
	}
	if len(args) == 1 && len(analyzeValues) > 0 {
		return fmt.Errorf("ambiguous data source: pass a file argument or --values, not both")
	}

	var (
		sourceName string
		raw        []any
	)
	if len(args) == 1 {
		sourceName = args[0]
		raw, err = dataset.Load(args[0], analyzeColumn)
		if err != nil {
			return err
		}
	} else {
		sourceName = "inline"
		raw = make([]any, 0, len(analyzeValues))
		for _, v := range analyzeValues {
			raw = append(raw, v)
		}
	}

	values, dropped := stats.Coerce(raw)
	if dropped > 0 {
		slog.Debug("non-numeric values dropped", "source", sourceName, "dropped", dropped)
	}

	summary, err := stats.Describe(values, detailed)
	if err != nil {
		return &NoResultError{
			Message: fmt.Sprintf("%s: no numeric data to analyze (%d values inspected)", sourceName, len(raw)),
		}
	}

	if format == "json" {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(formatSummaryTable(sourceName, dropped, summary))
	}

	// Export failure keeps the computed result and the success exit.
	if analyzeOut != "" {
		if err := reporting.WriteSummary(analyzeOut, sourceName, dropped, summary); err != nil {
			slog.Warn("report export failed", "path", analyzeOut, "error", err)
			fmt.Fprintf(os.Stderr, "[WARN] could not write report to %s: %v\n", analyzeOut, err)
		}
	}

	return nil
}
