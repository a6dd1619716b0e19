package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmckay/datakit/internal/convert"
)

func newConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert tabular data between csv, json and yaml",
		Long: `Convert reads a table from the input file and rewrites it in the
output file's format. Both formats are inferred from the file
extensions; csv, json and yaml/yml are supported.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := convert.Convert(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Converted %s -> %s\n", args[0], args[1])
			return nil
		},
	}
}
