package tracker_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lindqvst/hourglass/internal/config"
	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/tracker"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	base := t.TempDir()
	return config.Config{
		FilePaths: config.FilePathsConfig{
			StorageDirectory: base,
			ProjectDataPath:  filepath.Join(base, "prj_data.bin"),
			WeekDataPath:     filepath.Join(base, "week_data.bin"),
			ReportDirectory:  filepath.Join(base, "reports"),
			BackupDirectory:  filepath.Join(base, "backups"),
		},
		Targets: config.TargetsConfig{
			WeekTargetHours:  40,
			MonthTargetHours: 160,
		},
	}
}

func openTest(t *testing.T, cfg config.Config) *tracker.Tracker {
	t.Helper()
	tr, release, err := tracker.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(release)
	return tr
}

func submission(t *testing.T, date string, startHour, endHour int) model.Day {
	t.Helper()
	day, err := parseDate(date)
	if err != nil {
		t.Fatal(err)
	}
	var start, end *time.Time
	if startHour >= 0 {
		s := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
		start = &s
	}
	if endHour >= 0 {
		e := time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, time.UTC)
		end = &e
	}
	d, err := model.NewDay(day, start, end, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func TestOpenFirstRun(t *testing.T) {
	tr := openTest(t, testConfig(t))
	if !tr.FirstRun() {
		t.Error("FirstRun = false on an empty storage directory")
	}
	if tr.NumProjects() != 0 || tr.NumWeeks() != 0 {
		t.Errorf("counts = (%d, %d), want (0, 0)", tr.NumProjects(), tr.NumWeeks())
	}
}

func TestAddProjectDuplicate(t *testing.T) {
	tr := openTest(t, testConfig(t))

	if _, err := tr.AddProject("ECM", "client work"); err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	_, err := tr.AddProject("ECM", "again")
	if !errors.Is(err, model.ErrDuplicate) {
		t.Errorf("duplicate AddProject: err = %v, want ErrDuplicate", err)
	}

	_, err = tr.AddProject("", "")
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("AddProject with empty name: err = %v, want ErrInvalidInput", err)
	}
}

func TestRemoveProjectCascades(t *testing.T) {
	cfg := testConfig(t)
	tr := openTest(t, cfg)

	if _, err := tr.AddProject("ECM", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddEntry("ECM", model.NewEntry(2, "design")); err != nil {
		t.Fatal(err)
	}
	if err := tr.RemoveProject("ECM"); err != nil {
		t.Fatalf("RemoveProject: %v", err)
	}

	_, err := tr.ProjectByName("ECM")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("ProjectByName after removal: err = %v, want ErrNotFound", err)
	}

	err = tr.RemoveProject("ECM")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("RemoveProject on missing project: err = %v, want ErrNotFound", err)
	}
}

func TestAddAndRemoveEntry(t *testing.T) {
	tr := openTest(t, testConfig(t))

	if _, err := tr.AddProject("ECM", ""); err != nil {
		t.Fatal(err)
	}
	e, err := tr.AddEntry("ECM", model.NewEntry(1.5, "review"))
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	_, err = tr.AddEntry("no-such-project", model.NewEntry(1, "x"))
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("AddEntry on missing project: err = %v, want ErrNotFound", err)
	}

	if err := tr.RemoveEntry("ECM", e.ID); err != nil {
		t.Fatalf("RemoveEntry: %v", err)
	}
	err = tr.RemoveEntry("ECM", e.ID)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("RemoveEntry twice: err = %v, want ErrNotFound", err)
	}
}

func TestImportEntriesDeduplicates(t *testing.T) {
	tr := openTest(t, testConfig(t))
	if _, err := tr.AddProject("Meetings", ""); err != nil {
		t.Fatal(err)
	}

	ext := "outlook-1"
	imported := model.NewEntry(0.5, "standup")
	imported.Source = model.SourceOutlook
	imported.ExternalID = &ext

	added, skipped, err := tr.ImportEntries("Meetings", []model.Entry{imported})
	if err != nil {
		t.Fatalf("ImportEntries: %v", err)
	}
	if added != 1 || skipped != 0 {
		t.Errorf("first import = (%d added, %d skipped), want (1, 0)", added, skipped)
	}

	again := model.NewEntry(0.5, "standup")
	again.Source = model.SourceOutlook
	again.ExternalID = &ext
	added, skipped, err = tr.ImportEntries("Meetings", []model.Entry{again})
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 || skipped != 1 {
		t.Errorf("second import = (%d added, %d skipped), want (0, 1)", added, skipped)
	}
}

func TestAddDayCreatesWeekLazily(t *testing.T) {
	tr := openTest(t, testConfig(t))

	stored, changed, err := tr.AddDay(submission(t, "2026-02-27", 9, 17))
	if err != nil {
		t.Fatalf("AddDay: %v", err)
	}
	if !changed {
		t.Error("first AddDay should report a change")
	}
	if stored.Hours != 8 {
		t.Errorf("hours = %v, want 8", stored.Hours)
	}

	w, err := tr.WeekAt(2026, 9)
	if err != nil {
		t.Fatalf("WeekAt: %v", err)
	}
	if w.TargetHours != 40 {
		t.Errorf("lazily created week target = %v, want 40", w.TargetHours)
	}
	if len(w.Days) != 1 {
		t.Errorf("week days = %d, want 1", len(w.Days))
	}
}

func TestAddDayMergesSubmissions(t *testing.T) {
	tr := openTest(t, testConfig(t))

	if _, _, err := tr.AddDay(submission(t, "2026-02-27", 9, -1)); err != nil {
		t.Fatal(err)
	}
	stored, changed, err := tr.AddDay(submission(t, "2026-02-27", -1, 17))
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("check-out merge should report a change")
	}
	if !stored.Closed || stored.Hours != 8 {
		t.Errorf("merged day = closed %t / %vh, want closed / 8h", stored.Closed, stored.Hours)
	}

	// Replaying the check-out is a no-op, not an error.
	_, changed, err = tr.AddDay(submission(t, "2026-02-27", -1, 17))
	if err != nil {
		t.Fatalf("replayed AddDay: %v", err)
	}
	if changed {
		t.Error("replayed submission should not report a change")
	}

	w, err := tr.WeekAt(2026, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Days) != 1 {
		t.Errorf("week days = %d, want 1 (merge must not duplicate)", len(w.Days))
	}
}

func TestAddDayYearBoundaryBucketing(t *testing.T) {
	tr := openTest(t, testConfig(t))

	// 2024-12-30 is a Monday belonging to ISO week 2025-W01.
	if _, _, err := tr.AddDay(submission(t, "2024-12-30", 9, 17)); err != nil {
		t.Fatal(err)
	}

	if _, err := tr.WeekAt(2024, 53); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("WeekAt(2024, 53): err = %v, want ErrNotFound", err)
	}
	w, err := tr.WeekAt(2025, 1)
	if err != nil {
		t.Fatalf("WeekAt(2025, 1): %v", err)
	}
	if len(w.Days) != 1 {
		t.Errorf("week days = %d, want 1", len(w.Days))
	}
}

func TestWeekAtUnknownWeek(t *testing.T) {
	tr := openTest(t, testConfig(t))
	_, err := tr.WeekAt(2026, 51)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("WeekAt on empty storage: err = %v, want ErrNotFound", err)
	}
}

func TestRemoveDay(t *testing.T) {
	tr := openTest(t, testConfig(t))

	if _, _, err := tr.AddDay(submission(t, "2026-02-27", 9, 17)); err != nil {
		t.Fatal(err)
	}
	date, _ := parseDate("2026-02-27")
	if err := tr.RemoveDay(2026, 9, date); err != nil {
		t.Fatalf("RemoveDay: %v", err)
	}
	err := tr.RemoveDay(2026, 9, date)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("RemoveDay twice: err = %v, want ErrNotFound", err)
	}
}

func TestWeekAtAfterRemovingLastDay(t *testing.T) {
	tr := openTest(t, testConfig(t))

	if _, _, err := tr.AddDay(submission(t, "2026-02-27", 9, 17)); err != nil {
		t.Fatal(err)
	}
	date, _ := parseDate("2026-02-27")
	if err := tr.RemoveDay(2026, 9, date); err != nil {
		t.Fatal(err)
	}

	// The emptied bucket still resolves; only never-created pairs are
	// ErrNotFound.
	w, err := tr.WeekAt(2026, 9)
	if err != nil {
		t.Fatalf("WeekAt on emptied bucket: %v", err)
	}
	if len(w.Days) != 0 {
		t.Errorf("days = %d, want 0", len(w.Days))
	}
}

func TestDaysInMonthSpansWeekBuckets(t *testing.T) {
	tr := openTest(t, testConfig(t))

	// 2026-03-01 (Sunday) lives in week 2026-W09 together with February
	// days; 2026-03-02 starts week 10.
	for _, date := range []string{"2026-02-27", "2026-03-01", "2026-03-02"} {
		if _, _, err := tr.AddDay(submission(t, date, 9, 17)); err != nil {
			t.Fatal(err)
		}
	}

	days := tr.DaysInMonth(2026, time.March)
	if len(days) != 2 {
		t.Fatalf("DaysInMonth = %d days, want 2", len(days))
	}
	if days[0].Date.Day() != 1 || days[1].Date.Day() != 2 {
		t.Errorf("days not sorted by date: %v, %v", days[0].Date, days[1].Date)
	}
}

func TestWeekTargetStatus(t *testing.T) {
	tr := openTest(t, testConfig(t))

	// Four 8h days: 32h against the 40h target.
	for _, date := range []string{"2026-02-23", "2026-02-24", "2026-02-25", "2026-02-26"} {
		if _, _, err := tr.AddDay(submission(t, date, 9, 17)); err != nil {
			t.Fatal(err)
		}
	}

	r, err := tr.WeekTargetStatus(2026, 9)
	if err != nil {
		t.Fatalf("WeekTargetStatus: %v", err)
	}
	if r.Delta != -8 {
		t.Errorf("delta = %v, want -8", r.Delta)
	}
	if r.Status != model.TargetNotReached {
		t.Errorf("status = %q, want NotReached", r.Status)
	}

	if _, err := tr.WeekTargetStatus(2026, 51); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("WeekTargetStatus on unknown week: err = %v, want ErrNotFound", err)
	}
}

func TestMonthTargetStatusUnderTarget(t *testing.T) {
	tr := openTest(t, testConfig(t))

	// 15 working days of 10h each: 150h against the 160h target.
	date, _ := parseDate("2026-03-02")
	for i := 0; i < 15; i++ {
		d := date.AddDate(0, 0, i)
		if _, _, err := tr.AddDay(submission(t, d.Format("2006-01-02"), 8, 18)); err != nil {
			t.Fatal(err)
		}
	}

	r := tr.MonthTargetStatus(2026, time.March)
	if r.LoggedHours != 150 {
		t.Fatalf("logged = %v, want 150", r.LoggedHours)
	}
	if r.Delta != -10 {
		t.Errorf("delta = %v, want -10", r.Delta)
	}

	// A month without days reports zero logged hours, no error.
	empty := tr.MonthTargetStatus(2026, time.July)
	if empty.LoggedHours != 0 {
		t.Errorf("empty month logged = %v, want 0", empty.LoggedHours)
	}
}

func TestPersistenceAcrossOpens(t *testing.T) {
	cfg := testConfig(t)

	tr, release, err := tracker.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.AddProject("ECM", ""); err != nil {
		t.Fatal(err)
	}
	if _, _, err := tr.AddDay(submission(t, "2026-02-27", 9, 17)); err != nil {
		t.Fatal(err)
	}
	if err := tr.SaveProjects(); err != nil {
		t.Fatal(err)
	}
	if err := tr.SaveWeeks(); err != nil {
		t.Fatal(err)
	}
	release()

	tr2 := openTest(t, cfg)
	if tr2.FirstRun() {
		t.Error("FirstRun = true after data was saved")
	}
	if tr2.NumProjects() != 1 || tr2.NumWeeks() != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", tr2.NumProjects(), tr2.NumWeeks())
	}
}

func TestWeeksSorted(t *testing.T) {
	tr := openTest(t, testConfig(t))

	for _, date := range []string{"2026-03-02", "2026-01-05", "2025-12-22"} {
		if _, _, err := tr.AddDay(submission(t, date, 9, 17)); err != nil {
			t.Fatal(err)
		}
	}

	weeks := tr.Weeks()
	if len(weeks) != 3 {
		t.Fatalf("weeks = %d, want 3", len(weeks))
	}
	for i := 1; i < len(weeks); i++ {
		prev, cur := weeks[i-1], weeks[i]
		if cur.Year < prev.Year || (cur.Year == prev.Year && cur.Number < prev.Number) {
			t.Errorf("weeks not sorted: %d-W%02d before %d-W%02d",
				prev.Year, prev.Number, cur.Year, cur.Number)
		}
	}
}
