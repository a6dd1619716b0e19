package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmckay/datakit/internal/backup"
	"github.com/rmckay/datakit/internal/config"
)

var (
	backupKeep     int
	backupCompress bool
)

func newBackupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup <file> <destdir>",
		Short: "Copy a file into a backup directory with a timestamped name",
		Long: `Backup copies the file into the destination directory under a
timestamp-suffixed name, optionally gzip-compressed, then prunes old
copies of the same file down to the retention count.`,
		Args: cobra.ExactArgs(2),
		RunE: backupCommandE,
	}

	cmd.Flags().IntVarP(&backupKeep, "keep", "k", 0, "Copies to retain (default from config)")
	cmd.Flags().BoolVarP(&backupCompress, "compress", "z", false, "Gzip the copy")

	return cmd
}

func backupCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	keep := backupKeep
	if keep <= 0 {
		keep = cfg.Backup.Keep
	}
	compress := backupCompress
	if !cmd.Flags().Changed("compress") {
		compress = *cfg.Backup.Compress
	}

	dest, err := backup.Create(args[0], args[1], backup.Options{
		Compress: compress,
		Keep:     keep,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Backed up %s -> %s (keeping %d)\n", args[0], dest, keep)
	return nil
}
