package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/msgraph"
	"github.com/lindqvst/hourglass/internal/timecalc"
)

var (
	outlookFrom     string
	outlookTo       string
	outlookProject  string
	outlookTimezone string
	outlookDryRun   bool
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as project entries",
	Long: `Import Outlook calendar events via the Microsoft Graph API. Each
event becomes a time entry on the configured project; events already
imported are skipped, so the command can be re-run safely.`,
	Args: cobra.NoArgs,
	RunE: runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookFrom, "from", "", "Start date (YYYY-MM-DD, default today)")
	outlookSyncCmd.Flags().StringVar(&outlookTo, "to", "", "End date, exclusive (YYYY-MM-DD, default the day after --from)")
	outlookSyncCmd.Flags().StringVar(&outlookProject, "project", "", "Project to book entries on (default from config)")
	outlookSyncCmd.Flags().StringVar(&outlookTimezone, "timezone", "", "IANA timezone for event times (default from config)")
	outlookSyncCmd.Flags().BoolVar(&outlookDryRun, "dry-run", false, "Fetch and list events without storing anything")
	outlookCmd.AddCommand(outlookSyncCmd)
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	from := time.Now().Truncate(24 * time.Hour)
	if outlookFrom != "" {
		var err error
		from, err = timecalc.ParseDate(outlookFrom)
		if err != nil {
			return fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
		}
	}
	to := from.AddDate(0, 0, 1)
	if outlookTo != "" {
		var err error
		to, err = timecalc.ParseDate(outlookTo)
		if err != nil {
			return fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
		}
	}
	if !to.After(from) {
		return fmt.Errorf("--to must be after --from: %w", model.ErrInvalidInput)
	}

	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	project := outlookProject
	if project == "" {
		project = cfg.Outlook.DefaultProject
	}
	timezone := outlookTimezone
	if timezone == "" {
		timezone = cfg.Outlook.Timezone
	}

	ctx := cmd.Context()
	tok, oauthCfg, err := msgraph.Authenticate(ctx, cfg.Outlook.TenantID, cfg.Outlook.ClientID)
	if err != nil {
		return err
	}

	client := msgraph.NewClient(ctx, tok, oauthCfg)
	events, err := client.CalendarView(ctx, from, to, timezone)
	if err != nil {
		return err
	}

	entries, problems := msgraph.EntriesFromEvents(events, timezone)
	for _, p := range problems {
		fmt.Printf("Warning: skipping event %s\n", p)
	}
	if len(entries) == 0 {
		fmt.Println("No importable events found in the given range.")
		return nil
	}

	if outlookDryRun {
		fmt.Printf("Would import %d entries into project %q:\n", len(entries), project)
		printEntriesTable(entries)
		return nil
	}

	if _, err := t.ProjectByName(project); errors.Is(err, model.ErrNotFound) {
		if _, err := t.AddProject(project, "Imported Outlook calendar events"); err != nil {
			return err
		}
		fmt.Printf("Created project %q\n", project)
	} else if err != nil {
		return err
	}

	added, skipped, err := t.ImportEntries(project, entries)
	if err != nil {
		return err
	}
	if added == 0 {
		fmt.Printf("All %d events were imported before; nothing to do.\n", skipped)
		return nil
	}
	if err := t.SaveProjects(); err != nil {
		return err
	}

	fmt.Printf("Imported %d entries into project %q (%d already imported).\n", added, project, skipped)
	maybePeriodicBackup(cfg, t)
	return nil
}

func printEntriesTable(entries []model.Entry) {
	var rows [][]string
	for _, e := range entries {
		rows = append(rows, []string{timecalc.FormatHours(e.Hours), e.Description})
	}
	fmt.Print(renderTable([]string{"hours", "description"}, rows))
}
