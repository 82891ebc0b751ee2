package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/timecalc"
)

var (
	addProjectName        string
	addProjectDescription string

	addEntryProject     string
	addEntryHours       float64
	addEntryDescription string

	addDayDate      string
	addDayStart     string
	addDayEnd       string
	addDayExtraInfo string
	addDayPaused    float64
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a project, entry or day",
}

var addProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Add a new project",
	Args:  cobra.NoArgs,
	RunE:  runAddProject,
}

var addEntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Add a time entry to an existing project",
	Args:  cobra.NoArgs,
	RunE:  runAddEntry,
}

var addDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Record a work day (check in, check out, or both)",
	Long: `Record a work day. A day can be built up over multiple calls: check in
with --start in the morning and check out with --end in the evening;
the two submissions are merged into a single day. Values already
recorded for a day are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runAddDay,
}

func init() {
	addProjectCmd.Flags().StringVar(&addProjectName, "name", "", "Project name (required)")
	addProjectCmd.Flags().StringVar(&addProjectDescription, "description", "", "Project description")
	_ = addProjectCmd.MarkFlagRequired("name")

	addEntryCmd.Flags().StringVar(&addEntryProject, "project", "", "Project name (required)")
	addEntryCmd.Flags().Float64Var(&addEntryHours, "hours", 0, "Hours worked (required)")
	addEntryCmd.Flags().StringVar(&addEntryDescription, "description", "", "Description of the work done (required)")
	_ = addEntryCmd.MarkFlagRequired("project")
	_ = addEntryCmd.MarkFlagRequired("hours")
	_ = addEntryCmd.MarkFlagRequired("description")

	addDayCmd.Flags().StringVar(&addDayDate, "date", "", "Day date (YYYY-MM-DD, default today)")
	addDayCmd.Flags().StringVar(&addDayStart, "start", "", "Starting time (HH:MM); bare --start uses the current time")
	addDayCmd.Flags().Lookup("start").NoOptDefVal = "now"
	addDayCmd.Flags().StringVar(&addDayEnd, "end", "", "Ending time (HH:MM); bare --end uses the current time")
	addDayCmd.Flags().Lookup("end").NoOptDefVal = "now"
	addDayCmd.Flags().StringVar(&addDayExtraInfo, "extra-info", "", "Extra info for the day")
	addDayCmd.Flags().Float64Var(&addDayPaused, "paused", 0, "Paused hours, subtracted from worked time")

	addCmd.AddCommand(addProjectCmd)
	addCmd.AddCommand(addEntryCmd)
	addCmd.AddCommand(addDayCmd)
}

func runAddProject(cmd *cobra.Command, args []string) error {
	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	p, err := t.AddProject(addProjectName, addProjectDescription)
	if err != nil {
		return err
	}
	if err := t.SaveProjects(); err != nil {
		return err
	}

	fmt.Printf("Added project %q (id %s)\n", p.Name, p.ID)
	maybePeriodicBackup(cfg, t)
	return nil
}

func runAddEntry(cmd *cobra.Command, args []string) error {
	if addEntryHours < 0 {
		return fmt.Errorf("hours must not be negative: %w", model.ErrInvalidInput)
	}

	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	e, err := t.AddEntry(addEntryProject, model.NewEntry(addEntryHours, addEntryDescription))
	if err != nil {
		return err
	}
	if err := t.SaveProjects(); err != nil {
		return err
	}

	fmt.Printf("Added entry to project %q:\n", addEntryProject)
	fmt.Print(renderTable(
		[]string{"hours", "description", "created", "id"},
		[][]string{{
			timecalc.FormatHours(e.Hours), e.Description,
			e.Created.Format("2006-01-02 15:04"), e.ID,
		}},
	))
	maybePeriodicBackup(cfg, t)
	return nil
}

func runAddDay(cmd *cobra.Command, args []string) error {
	now := time.Now()

	date := now
	if addDayDate != "" {
		var err error
		date, err = timecalc.ParseDate(addDayDate)
		if err != nil {
			return fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
		}
	}

	start, err := clockFlag(addDayStart, date, now)
	if err != nil {
		return err
	}
	end, err := clockFlag(addDayEnd, date, now)
	if err != nil {
		return err
	}
	var extraInfo *string
	if addDayExtraInfo != "" {
		extraInfo = &addDayExtraInfo
	}

	day, err := model.NewDay(date, start, end, extraInfo, addDayPaused)
	if err != nil {
		return err
	}

	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	stored, changed, err := t.AddDay(day)
	if err != nil {
		return err
	}
	if !changed {
		// All submitted fields were already recorded: harmless no-op.
		fmt.Println("Nothing new to record for this day; existing values are kept.")
		return nil
	}
	if err := t.SaveWeeks(); err != nil {
		return err
	}

	year, week := timecalc.WeekOf(stored.Date)
	fmt.Printf("Recorded day in week %s:\n", timecalc.WeekLabel(year, week))
	printDayTable(stored)
	maybePeriodicBackup(cfg, t)
	return nil
}

// clockFlag resolves a --start/--end style flag value: empty means
// unset, "now" means the current time, anything else is HH:MM on the
// given date.
func clockFlag(value string, date, now time.Time) (*time.Time, error) {
	switch value {
	case "":
		return nil, nil
	case "now":
		t := now
		return &t, nil
	default:
		t, err := timecalc.ParseClock(value, date)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
		}
		return &t, nil
	}
}

func printDayTable(d model.Day) {
	extra := ""
	if d.ExtraInfo != nil {
		extra = *d.ExtraInfo
	}
	fmt.Print(renderTable(
		[]string{"date", "start", "end", "hours", "closed", "extra info"},
		[][]string{{
			d.Date.Format("2006-01-02"),
			timecalc.FormatClock(d.StartingTime),
			timecalc.FormatClock(d.EndingTime),
			timecalc.FormatHours(d.Hours),
			fmt.Sprintf("%t", d.Closed),
			extra,
		}},
	))
}
