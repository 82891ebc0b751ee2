package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show a short summary of the internal storage",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	if t.FirstRun() {
		fmt.Println("No data stored yet.")
	}
	fmt.Printf("Stored projects: %d\n", t.NumProjects())
	fmt.Printf("Stored weeks:    %d\n", t.NumWeeks())
	fmt.Printf("Project data:    %s\n", cfg.FilePaths.ProjectDataPath)
	fmt.Printf("Week data:       %s\n", cfg.FilePaths.WeekDataPath)
	fmt.Printf("Reports:         %s\n", cfg.FilePaths.ReportDirectory)
	fmt.Printf("Backups:         %s\n", cfg.FilePaths.BackupDirectory)
	return nil
}
