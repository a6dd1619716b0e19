package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datakit",
		Short: "Datakit - descriptive statistics and data chores",
		Long: `Datakit summarizes numeric data from CSV columns, JSON arrays, and
plain text files: count, sum, mean, median, mode, extrema, population
variance and standard deviation, plus quartiles and higher moments in
detailed mode.

It also carries the surrounding chores: batch jobs over many sources,
tabular format conversion, and timestamped compressed backups.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newConvertCommand())
	cmd.AddCommand(newBackupCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
