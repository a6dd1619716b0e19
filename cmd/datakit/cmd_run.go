package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmckay/datakit/internal/config"
	"github.com/rmckay/datakit/internal/job"
	"github.com/rmckay/datakit/internal/reporting"
	"github.com/rmckay/datakit/internal/runner"
)

var runOutputFormat string

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <job.yaml>",
		Short: "Summarize every source in a batch job file",
		Long: `Run loads a YAML job file, validates it against the job schema, and
summarizes each declared source with a bounded worker pool.

Sources with no numeric data are reported but do not fail the job;
sources that cannot be loaded do.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVarP(&runOutputFormat, "format", "f", "table", "Output format: table or json")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	if runOutputFormat != "table" && runOutputFormat != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", runOutputFormat)
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	j, err := job.Load(args[0])
	if err != nil {
		return err
	}
	if j.Workers <= 0 {
		j.Workers = cfg.Run.Workers
	}

	outcome, err := runner.Run(cmd.Context(), j)
	if err != nil {
		return err
	}

	if runOutputFormat == "json" {
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding outcome: %w", err)
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(formatJobTable(outcome))
	}

	if j.Output != "" {
		if err := reporting.WriteJobOutcome(j.Output, outcome); err != nil {
			slog.Warn("report export failed", "path", j.Output, "error", err)
			fmt.Fprintf(os.Stderr, "[WARN] could not write report to %s: %v\n", j.Output, err)
		}
	}

	if err := outcome.Failed(); err != nil {
		return &NoResultError{Message: err.Error()}
	}
	return nil
}
