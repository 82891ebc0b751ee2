package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the data files now",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	org := backup.New(t.Store().Paths())
	if err := org.Force(cfg.Backup.OverrideExistingBackup); err != nil {
		return err
	}

	fmt.Printf("Backed up data files to %s\n", cfg.FilePaths.BackupDirectory)
	return nil
}
