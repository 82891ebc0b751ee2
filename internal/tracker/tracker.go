// Package tracker owns the in-memory project and week collections and
// applies every mutation and query on top of them. A command opens the
// tracker (which takes the storage lock and loads both collections),
// mutates in memory, saves the touched collection and releases the lock.
package tracker

import (
	"fmt"
	"sort"
	"time"

	"github.com/lindqvst/hourglass/internal/config"
	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/storage"
	"github.com/lindqvst/hourglass/internal/timecalc"
)

// Tracker holds the loaded collections for the duration of one command.
type Tracker struct {
	cfg      config.Config
	store    *storage.Store
	projects []model.Project
	weeks    []model.Week
	firstRun bool
}

// Open takes the storage lock, loads both collections and returns the
// tracker plus a release function. The release function must be called
// on every exit path.
func Open(cfg config.Config) (*Tracker, func(), error) {
	store := storage.New(storage.Paths{
		StorageDir:  cfg.FilePaths.StorageDirectory,
		ProjectFile: cfg.FilePaths.ProjectDataPath,
		WeekFile:    cfg.FilePaths.WeekDataPath,
		ReportDir:   cfg.FilePaths.ReportDirectory,
		BackupDir:   cfg.FilePaths.BackupDirectory,
	})

	release, err := store.Lock()
	if err != nil {
		return nil, nil, err
	}

	t := &Tracker{cfg: cfg, store: store}
	if err := t.load(); err != nil {
		release()
		return nil, nil, err
	}
	return t, release, nil
}

func (t *Tracker) load() error {
	projects, firstProjects, err := t.store.LoadProjects()
	if err != nil {
		return err
	}
	weeks, firstWeeks, err := t.store.LoadWeeks()
	if err != nil {
		return err
	}
	t.projects = projects
	t.weeks = weeks
	t.firstRun = firstProjects && firstWeeks
	return nil
}

// Store exposes the underlying store for collaborators that need the
// resolved paths (report writer, backup organizer).
func (t *Tracker) Store() *storage.Store {
	return t.store
}

// FirstRun reports whether neither collection file existed on load.
func (t *Tracker) FirstRun() bool {
	return t.firstRun
}

// SaveProjects persists the project collection.
func (t *Tracker) SaveProjects() error {
	return t.store.SaveProjects(t.projects)
}

// SaveWeeks persists the week collection.
func (t *Tracker) SaveWeeks() error {
	return t.store.SaveWeeks(t.weeks)
}

// NumProjects returns the number of stored projects.
func (t *Tracker) NumProjects() int {
	return len(t.projects)
}

// NumWeeks returns the number of stored week buckets.
func (t *Tracker) NumWeeks() int {
	return len(t.weeks)
}

// AddProject creates a new project. The name must be unique.
func (t *Tracker) AddProject(name, description string) (model.Project, error) {
	if name == "" {
		return model.Project{}, fmt.Errorf("project name is required: %w", model.ErrInvalidInput)
	}
	for _, p := range t.projects {
		if p.Name == name {
			return model.Project{}, fmt.Errorf("project %q: %w", name, model.ErrDuplicate)
		}
	}
	p := model.NewProject(name, description)
	t.projects = append(t.projects, p)
	return p, nil
}

// RemoveProject deletes a project by name, cascading to all its entries.
func (t *Tracker) RemoveProject(name string) error {
	for i, p := range t.projects {
		if p.Name == name {
			t.projects = append(t.projects[:i], t.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("project %q: %w", name, model.ErrNotFound)
}

// AddEntry books an entry on the named project.
func (t *Tracker) AddEntry(project string, e model.Entry) (model.Entry, error) {
	p, err := t.findProject(project)
	if err != nil {
		return model.Entry{}, err
	}
	p.AddEntry(e)
	return e, nil
}

// RemoveEntry deletes the entry with the given ID from the named project.
func (t *Tracker) RemoveEntry(project, id string) error {
	p, err := t.findProject(project)
	if err != nil {
		return err
	}
	return p.RemoveEntry(id)
}

// ImportEntries folds externally sourced entries into the named project,
// skipping entries whose external ID was imported before. It returns
// the number of added and skipped entries.
func (t *Tracker) ImportEntries(project string, entries []model.Entry) (added, skipped int, err error) {
	p, err := t.findProject(project)
	if err != nil {
		return 0, 0, err
	}
	for _, e := range entries {
		if e.ExternalID != nil && p.HasExternalID(*e.ExternalID) {
			skipped++
			continue
		}
		p.AddEntry(e)
		added++
	}
	return added, skipped, nil
}

// AddDay stores a day submission into its (year, week) bucket, creating
// the bucket on first use. When a day with the same date already exists
// the submission is merged field-monotonically; merged=false means the
// submission changed nothing and was discarded as a harmless no-op.
func (t *Tracker) AddDay(d model.Day) (stored model.Day, changed bool, err error) {
	year, number := timecalc.WeekOf(d.Date)
	w := t.findOrCreateWeek(year, number)

	if existing, ok := w.DayAt(d.Date); ok {
		merged, changed := existing.Merge(d)
		if !changed {
			return merged, false, nil
		}
		w.SetDay(merged)
		return merged, true, nil
	}
	w.AddDay(d)
	return d, true, nil
}

// RemoveDay deletes the day with the given date from the given week.
func (t *Tracker) RemoveDay(year, number int, date time.Time) error {
	w, err := t.findWeek(year, number)
	if err != nil {
		return err
	}
	return w.RemoveDay(date)
}

// Projects returns all projects in insertion order.
func (t *Tracker) Projects() []model.Project {
	return t.projects
}

// ProjectByName returns the named project.
func (t *Tracker) ProjectByName(name string) (model.Project, error) {
	p, err := t.findProject(name)
	if err != nil {
		return model.Project{}, err
	}
	return *p, nil
}

// Weeks returns all week buckets sorted by (year, number).
func (t *Tracker) Weeks() []model.Week {
	weeks := make([]model.Week, len(t.weeks))
	copy(weeks, t.weeks)
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Year != weeks[j].Year {
			return weeks[i].Year < weeks[j].Year
		}
		return weeks[i].Number < weeks[j].Number
	})
	return weeks
}

// WeekAt returns the week bucket for the (year, number) pair. Looking
// up a pair that was never created fails with ErrNotFound; a bucket
// emptied by RemoveDay still resolves and lists no days.
func (t *Tracker) WeekAt(year, number int) (model.Week, error) {
	w, err := t.findWeek(year, number)
	if err != nil {
		return model.Week{}, err
	}
	return *w, nil
}

// DaysInMonth returns all days of the given calendar month across all
// week buckets, sorted by date. Weeks spanning a month boundary
// contribute only the days inside the month.
func (t *Tracker) DaysInMonth(year int, month time.Month) []model.Day {
	var days []model.Day
	for _, w := range t.weeks {
		for _, d := range w.Days {
			if d.Date.Year() == year && d.Date.Month() == month {
				days = append(days, d)
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// WeekTargetStatus compares a stored week against the weekly target.
func (t *Tracker) WeekTargetStatus(year, number int) (model.TargetReport, error) {
	w, err := t.findWeek(year, number)
	if err != nil {
		return model.TargetReport{}, err
	}
	return model.WeeklyTarget(*w, t.cfg.Targets.WeekTargetHours), nil
}

// MonthTargetStatus compares a calendar month against the monthly
// target. A month without stored days simply reports zero logged hours.
func (t *Tracker) MonthTargetStatus(year int, month time.Month) model.TargetReport {
	return model.MonthlyTarget(t.DaysInMonth(year, month), t.cfg.Targets.MonthTargetHours)
}

func (t *Tracker) findProject(name string) (*model.Project, error) {
	for i := range t.projects {
		if t.projects[i].Name == name {
			return &t.projects[i], nil
		}
	}
	return nil, fmt.Errorf("project %q: %w", name, model.ErrNotFound)
}

func (t *Tracker) findWeek(year, number int) (*model.Week, error) {
	for i := range t.weeks {
		if t.weeks[i].Year == year && t.weeks[i].Number == number {
			return &t.weeks[i], nil
		}
	}
	return nil, fmt.Errorf("week %s: %w", timecalc.WeekLabel(year, number), model.ErrNotFound)
}

// findOrCreateWeek locates the (year, number) bucket, lazily creating
// it with the configured weekly target.
func (t *Tracker) findOrCreateWeek(year, number int) *model.Week {
	for i := range t.weeks {
		if t.weeks[i].Year == year && t.weeks[i].Number == number {
			return &t.weeks[i]
		}
	}
	target := t.cfg.Targets.WeekTargetHours
	if target == 0 {
		target = model.DefaultWeekTargetHours
	}
	t.weeks = append(t.weeks, model.NewWeek(year, number, target))
	return &t.weeks[len(t.weeks)-1]
}
