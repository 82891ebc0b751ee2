package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/backup"
	"github.com/lindqvst/hourglass/internal/config"
	"github.com/lindqvst/hourglass/internal/tracker"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hourglass",
	Short: "hourglass – a personal project time tracker",
	Long: `hourglass is a single-binary command-line time tracker. Work days and
project time entries are stored as binary collection files under
~/.hourglass/ and can be listed or exported as JSON/CSV/YAML/HTML
reports.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default ~/.hourglass/config.json)")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(targetCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(outlookCmd)
}

// openTracker loads the configuration, takes the storage lock and loads
// both collections. The returned release function must run on every
// exit path.
func openTracker() (config.Config, *tracker.Tracker, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	t, release, err := tracker.Open(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, t, release, nil
}

// maybePeriodicBackup runs the configured periodic backup after a
// successful mutation. Backup trouble must not fail the command that
// already persisted its data, so it is reported as a warning only.
func maybePeriodicBackup(cfg config.Config, t *tracker.Tracker) {
	org := backup.New(t.Store().Paths())
	taken, err := org.Run(
		cfg.Backup.EnablePeriodicBackup,
		cfg.Backup.OverrideExistingBackup,
		cfg.Backup.PeriodicBackupIntervalDays,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: periodic backup failed: %v\n", err)
		return
	}
	if taken {
		fmt.Println("Periodic backup taken.")
	}
}
