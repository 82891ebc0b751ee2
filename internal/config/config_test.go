package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lindqvst/hourglass/internal/config"
	"github.com/lindqvst/hourglass/internal/model"
)

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}

	// The annotated template must now exist on disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(string(data), "//") {
		t.Error("template is missing its comment annotations")
	}

	// Paths must be fully resolved; targets stay zero so the model can
	// tell "never configured" from an explicit value.
	if cfg.Targets.WeekTargetHours != 0 {
		t.Errorf("week target = %v, want 0 (unconfigured)", cfg.Targets.WeekTargetHours)
	}
	if cfg.Targets.MonthTargetHours != 0 {
		t.Errorf("month target = %v, want 0 (unconfigured)", cfg.Targets.MonthTargetHours)
	}
	if cfg.FilePaths.ProjectDataPath == "" || cfg.FilePaths.WeekDataPath == "" {
		t.Error("data paths not resolved to defaults")
	}
	if cfg.Outlook.TenantID != config.DefaultTenantID {
		t.Errorf("tenant = %q, want %q", cfg.Outlook.TenantID, config.DefaultTenantID)
	}
}

func TestLoadParsesCommentedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `// hourglass settings
{
  // weekly hours
  "targets": {
    "total-week-target": 37.5
  }
}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Targets.WeekTargetHours != 37.5 {
		t.Errorf("week target = %v, want 37.5", cfg.Targets.WeekTargetHours)
	}
	// The unset month target stays zero for the model's fallback.
	if cfg.Targets.MonthTargetHours != 0 {
		t.Errorf("month target = %v, want 0 (unconfigured)", cfg.Targets.MonthTargetHours)
	}
	if cfg.Backup.PeriodicBackupIntervalDays != 14 {
		t.Errorf("backup interval = %d, want 14", cfg.Backup.PeriodicBackupIntervalDays)
	}
}

func TestLoadWeeklyTargetForMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "targets": {
    "total-week-target": 37.5,
    "use-total-week-target-for-month": true
  }
}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Targets.MonthTargetHours != 150 {
		t.Errorf("month target = %v, want 150 (4x weekly)", cfg.Targets.MonthTargetHours)
	}
}

func TestUnconfiguredTargetReportsDefaultSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "targets": {
    "total-week-target": 0
  }
}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r := model.WeeklyTarget(model.NewWeek(2026, 9, 40), cfg.Targets.WeekTargetHours)
	if r.Source != model.TargetFromDefault {
		t.Errorf("source = %q, want default for an unconfigured target", r.Source)
	}
	if r.TargetHours != model.DefaultWeekTargetHours {
		t.Errorf("target = %v, want %v", r.TargetHours, model.DefaultWeekTargetHours)
	}
}

func TestConfiguredTargetReportsConfigSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "targets": {
    "total-week-target": 37.5
  }
}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r := model.WeeklyTarget(model.NewWeek(2026, 9, 37.5), cfg.Targets.WeekTargetHours)
	if r.Source != model.TargetFromConfig {
		t.Errorf("source = %q, want config", r.Source)
	}
	if r.TargetHours != 37.5 {
		t.Errorf("target = %v, want 37.5", r.TargetHours)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load on invalid JSON succeeded, want error")
	}
}

func TestTemplateMatchesDefaults(t *testing.T) {
	// Loading the freshly written template must yield the same values as
	// the built-in defaults.
	path := filepath.Join(t.TempDir(), "config.json")
	first, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of written template: %v", err)
	}
	if first.Targets != second.Targets {
		t.Errorf("targets differ: %+v vs %+v", first.Targets, second.Targets)
	}
	if first.Backup != second.Backup {
		t.Errorf("backup differs: %+v vs %+v", first.Backup, second.Backup)
	}
	if first.Outlook != second.Outlook {
		t.Errorf("outlook differs: %+v vs %+v", first.Outlook, second.Outlook)
	}
}
