package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/timecalc"
	"github.com/lindqvst/hourglass/internal/tracker"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i"},
	Short:   "Record time through a guided form",
	Args:    cobra.NoArgs,
	RunE:    runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	var action string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to record?").
				Options(
					huh.NewOption("Work day (check in / check out)", "day"),
					huh.NewOption("Project time entry", "entry"),
					huh.NewOption("New project", "project"),
				).
				Value(&action),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	switch action {
	case "day":
		err = interactiveDay(t)
	case "entry":
		err = interactiveEntry(t)
	case "project":
		err = interactiveProject(t)
	}
	if err != nil {
		return err
	}
	maybePeriodicBackup(cfg, t)
	return nil
}

func interactiveProject(t *tracker.Tracker) error {
	var name, description string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&description),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	p, err := t.AddProject(name, description)
	if err != nil {
		return err
	}
	if err := t.SaveProjects(); err != nil {
		return err
	}
	fmt.Printf("Added project %q (id %s)\n", p.Name, p.ID)
	return nil
}

func interactiveEntry(t *tracker.Tracker) error {
	projects := t.Projects()
	if len(projects) == 0 {
		return fmt.Errorf("no projects stored; add a project first: %w", model.ErrNotFound)
	}
	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		options = append(options, huh.NewOption(p.Name, p.Name))
	}

	var project, hours, description string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Options(options...).
				Value(&project),
			huh.NewInput().
				Title("Hours").
				Placeholder("1.5").
				Value(&hours).
				Validate(validateHours),
			huh.NewInput().
				Title("Description").
				Value(&description).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	h, _ := strconv.ParseFloat(hours, 64)
	e, err := t.AddEntry(project, model.NewEntry(h, description))
	if err != nil {
		return err
	}
	if err := t.SaveProjects(); err != nil {
		return err
	}
	fmt.Printf("Added entry %s (%s) to project %q\n", e.ID, timecalc.FormatHours(e.Hours), project)
	return nil
}

func interactiveDay(t *tracker.Tracker) error {
	now := time.Now()
	date := now.Format("2006-01-02")
	var start, end, extraInfo, paused string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&date).
				Validate(func(s string) error {
					_, err := timecalc.ParseDate(s)
					return err
				}),
			huh.NewInput().
				Title("Starting time (HH:MM, blank to leave unset)").
				Placeholder(now.Format("15:04")).
				Value(&start).
				Validate(validateOptionalClock),
			huh.NewInput().
				Title("Ending time (HH:MM, blank to leave unset)").
				Value(&end).
				Validate(validateOptionalClock),
			huh.NewInput().
				Title("Paused hours").
				Placeholder("0").
				Value(&paused).
				Validate(validateOptionalHours),
			huh.NewInput().
				Title("Extra info").
				Placeholder("optional").
				Value(&extraInfo),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	d, _ := timecalc.ParseDate(date)
	startTime, err := clockFlag(start, d, now)
	if err != nil {
		return err
	}
	endTime, err := clockFlag(end, d, now)
	if err != nil {
		return err
	}
	var extra *string
	if extraInfo != "" {
		extra = &extraInfo
	}
	var pausedHours float64
	if paused != "" {
		pausedHours, _ = strconv.ParseFloat(paused, 64)
	}

	day, err := model.NewDay(d, startTime, endTime, extra, pausedHours)
	if err != nil {
		return err
	}
	stored, changed, err := t.AddDay(day)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("Nothing new to record for this day; existing values are kept.")
		return nil
	}
	if err := t.SaveWeeks(); err != nil {
		return err
	}

	year, week := timecalc.WeekOf(stored.Date)
	fmt.Printf("Recorded day in week %s:\n", timecalc.WeekLabel(year, week))
	printDayTable(stored)
	return nil
}

func validateHours(s string) error {
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("enter hours as a number")
	}
	if h < 0 {
		return fmt.Errorf("hours must not be negative")
	}
	return nil
}

func validateOptionalHours(s string) error {
	if s == "" {
		return nil
	}
	return validateHours(s)
}

func validateOptionalClock(s string) error {
	if s == "" {
		return nil
	}
	_, err := timecalc.ParseClock(s, time.Now())
	return err
}
