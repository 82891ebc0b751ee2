package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/timecalc"
)

var (
	listAllProjects bool
	listAllWeeks    bool
	listProject     string
	listWeek        int
	listMonth       int
	listYear        int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects, weeks or days",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listAllProjects, "all-projects", false, "List all projects")
	listCmd.Flags().BoolVar(&listAllWeeks, "all-weeks", false, "List all weeks")
	listCmd.Flags().StringVar(&listProject, "project", "", "List entries of the named project")
	listCmd.Flags().IntVar(&listWeek, "week", 0, "List days of the given week number")
	listCmd.Flags().IntVar(&listMonth, "month", 0, "List days of the given month number")
	listCmd.Flags().IntVar(&listYear, "year", 0, "Year for --week/--month (default current year)")
}

func runList(cmd *cobra.Command, args []string) error {
	_, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	year := listYear
	if year == 0 {
		year = time.Now().Year()
	}

	switch {
	case listProject != "":
		p, err := t.ProjectByName(listProject)
		if err != nil {
			return err
		}
		printProjectEntries(p)
	case listWeek != 0:
		w, err := t.WeekAt(year, listWeek)
		if err != nil {
			return err
		}
		printWeekDays(w)
	case listMonth != 0:
		days := t.DaysInMonth(year, time.Month(listMonth))
		if len(days) == 0 {
			return fmt.Errorf("month %d-%02d: %w", year, listMonth, model.ErrNotFound)
		}
		printMonthDays(year, listMonth, days)
	case listAllWeeks:
		printWeeks(t.Weeks())
	default:
		// Covers --all-projects and the bare command.
		printProjects(t.Projects())
	}
	return nil
}

func printProjects(projects []model.Project) {
	if len(projects) == 0 {
		fmt.Println("No projects stored.")
		return
	}
	var rows [][]string
	for _, p := range projects {
		rows = append(rows, []string{
			p.Name, p.Description, strconv.Itoa(len(p.Entries)),
			timecalc.FormatHours(p.TotalHours()),
		})
	}
	fmt.Print(renderTable([]string{"project", "description", "entries", "hours"}, rows))
}

func printProjectEntries(p model.Project) {
	fmt.Printf("Project %q – %s\n", p.Name, p.Description)
	if len(p.Entries) == 0 {
		fmt.Println("No entries stored.")
		return
	}
	var rows [][]string
	for _, e := range p.Entries {
		rows = append(rows, []string{
			timecalc.FormatHours(e.Hours), e.Description,
			e.Created.Format("2006-01-02 15:04"), e.ID,
		})
	}
	fmt.Print(renderTable([]string{"hours", "description", "created", "id"}, rows))
	fmt.Printf("Total: %s\n", timecalc.FormatHours(p.TotalHours()))
}

func printWeeks(weeks []model.Week) {
	if len(weeks) == 0 {
		fmt.Println("No weeks stored.")
		return
	}
	var rows [][]string
	for _, w := range weeks {
		rows = append(rows, []string{
			strconv.Itoa(w.Year), strconv.Itoa(w.Number),
			strconv.Itoa(len(w.Days)), timecalc.FormatHours(w.TotalHours()),
		})
	}
	fmt.Print(renderTable([]string{"year", "week", "days", "hours"}, rows))
}

func dayRows(days []model.Day) [][]string {
	var rows [][]string
	for _, d := range days {
		extra := ""
		if d.ExtraInfo != nil {
			extra = *d.ExtraInfo
		}
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			timecalc.FormatClock(d.StartingTime),
			timecalc.FormatClock(d.EndingTime),
			timecalc.FormatHours(d.Hours),
			strconv.FormatBool(d.Closed),
			extra,
		})
	}
	return rows
}

func printWeekDays(w model.Week) {
	fmt.Printf("Week %s\n", timecalc.WeekLabel(w.Year, w.Number))
	fmt.Print(renderTable(
		[]string{"date", "start", "end", "hours", "closed", "extra info"},
		dayRows(w.Days),
	))
	fmt.Printf("Total: %s\n", timecalc.FormatHours(w.TotalHours()))
}

func printMonthDays(year, month int, days []model.Day) {
	fmt.Printf("Month %d-%02d\n", year, month)
	fmt.Print(renderTable(
		[]string{"date", "start", "end", "hours", "closed", "extra info"},
		dayRows(days),
	))
	var total float64
	for _, d := range days {
		total += d.Hours
	}
	fmt.Printf("Total: %s\n", timecalc.FormatHours(total))
}
