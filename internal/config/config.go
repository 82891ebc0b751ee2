package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for hourglass, stored in
// ~/.hourglass/config.json. The file supports single-line // comments
// for documentation purposes.
type Config struct {
	FilePaths FilePathsConfig `json:"file-paths"`
	Targets   TargetsConfig   `json:"targets"`
	Backup    BackupConfig    `json:"backup"`
	Outlook   OutlookConfig   `json:"outlook"`
}

// FilePathsConfig holds the resolved filesystem locations. The core
// packages receive these paths; they never resolve locations themselves.
type FilePathsConfig struct {
	StorageDirectory string `json:"storage-directory"`
	ProjectDataPath  string `json:"project-data-path"`
	WeekDataPath     string `json:"week-data-path"`
	ReportDirectory  string `json:"report-directory"`
	BackupDirectory  string `json:"backup-directory"`
}

// TargetsConfig holds the week/month target hours. A zero value means
// "use the built-in default".
type TargetsConfig struct {
	WeekTargetHours  float64 `json:"total-week-target"`
	MonthTargetHours float64 `json:"total-month-target"`
	// WeeklyTargetForMonth uses 4x the weekly target as monthly target.
	WeeklyTargetForMonth bool `json:"use-total-week-target-for-month"`
}

// BackupConfig controls periodic backups of the data files.
type BackupConfig struct {
	EnablePeriodicBackup       bool `json:"enable-periodic-backup"`
	PeriodicBackupIntervalDays int  `json:"periodic-backup-days-interval"`
	OverrideExistingBackup     bool `json:"periodic-backup-override"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. "common" works for personal and
	// multi-tenant accounts.
	TenantID string `json:"tenant-id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code
	// flow.
	ClientID string `json:"client-id"`
	// DefaultProject is the project imported events are booked on.
	DefaultProject string `json:"default-project"`
	// Timezone is the IANA timezone for event times. Empty = UTC.
	Timezone string `json:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID. It
	// supports device code flow without a client secret or an app
	// registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultOutlookProject is the project used for imported events
	// when none is configured.
	DefaultOutlookProject = "Meetings"

	defaultBackupIntervalDays = 14
)

// baseDir returns the root data directory (~/.hourglass).
func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".hourglass"), nil
}

// DefaultPath returns the path to ~/.hourglass/config.json.
func DefaultPath() (string, error) {
	base, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// Default returns a Config pre-filled with built-in defaults rooted in
// the user's home directory.
func Default() (Config, error) {
	base, err := baseDir()
	if err != nil {
		return Config{}, err
	}
	return defaultConfig(base), nil
}

func defaultConfig(base string) Config {
	return Config{
		FilePaths: FilePathsConfig{
			StorageDirectory: filepath.Join(base, "storage"),
			ProjectDataPath:  filepath.Join(base, "storage", "prj_data.bin"),
			WeekDataPath:     filepath.Join(base, "storage", "week_data.bin"),
			ReportDirectory:  filepath.Join(base, "reports"),
			BackupDirectory:  filepath.Join(base, "backups"),
		},
		Backup: BackupConfig{
			PeriodicBackupIntervalDays: defaultBackupIntervalDays,
			OverrideExistingBackup:     true,
		},
		Outlook: OutlookConfig{
			TenantID:       DefaultTenantID,
			ClientID:       DefaultClientID,
			DefaultProject: DefaultOutlookProject,
		},
	}
}

// configTemplate is the annotated config written on first run. Lines
// whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// hourglass configuration – ~/.hourglass/config.json
//
// All settings are optional; empty or zero values fall back to the
// built-in defaults. Edit this file to customise hourglass behaviour.
{
  // ── Data locations ───────────────────────────────────────────────────────
  // Paths default to subdirectories of ~/.hourglass when left empty.
  "file-paths": {
    "storage-directory": "",
    "project-data-path": "",
    "week-data-path": "",
    "report-directory": "",
    "backup-directory": ""
  },

  // ── Target hours ─────────────────────────────────────────────────────────
  "targets": {
    // Target hours per week (0 = built-in default of 40).
    "total-week-target": 0,
    // Target hours per month (0 = built-in default of 160).
    "total-month-target": 0,
    // Use 4x the weekly target as the monthly target.
    "use-total-week-target-for-month": false
  },

  // ── Periodic backups ─────────────────────────────────────────────────────
  "backup": {
    // Back up the data files automatically every N days.
    "enable-periodic-backup": false,
    "periodic-backup-days-interval": 14,
    // Remove older backup generations when creating a new one.
    "periodic-backup-override": true
  },

  // ── Microsoft Graph / Outlook calendar import ────────────────────────────
  "outlook": {
    // Azure AD tenant ID. "common" covers personal accounts and any
    // organisation.
    "tenant-id": "common",
    // Azure application (client) ID for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app.
    "client-id": "04b07795-8542-4c4a-95af-30b2c573d5ab",
    // Project imported calendar events are booked on.
    "default-project": "Meetings",
    // IANA timezone for event times, e.g. "Europe/Stockholm". Empty = UTC.
    "timezone": ""
  }
}
`

// stripLineComments removes lines whose leading non-whitespace content
// starts with //. Only full-line comments are handled.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config file at path (or the default location when path
// is empty), creating it with annotated defaults on first run. Missing
// or zero-valued fields are filled from the built-in defaults so
// callers always get a usable Config.
func Load(path string) (Config, error) {
	var err error
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	def, err := Default()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover
		// the options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return def, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := def
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.applyDefaults(def)
	return cfg, nil
}

// applyDefaults fills zero-value fields from the built-in defaults.
func (c *Config) applyDefaults(def Config) {
	if c.FilePaths.StorageDirectory == "" {
		c.FilePaths.StorageDirectory = def.FilePaths.StorageDirectory
	}
	if c.FilePaths.ProjectDataPath == "" {
		c.FilePaths.ProjectDataPath = def.FilePaths.ProjectDataPath
	}
	if c.FilePaths.WeekDataPath == "" {
		c.FilePaths.WeekDataPath = def.FilePaths.WeekDataPath
	}
	if c.FilePaths.ReportDirectory == "" {
		c.FilePaths.ReportDirectory = def.FilePaths.ReportDirectory
	}
	if c.FilePaths.BackupDirectory == "" {
		c.FilePaths.BackupDirectory = def.FilePaths.BackupDirectory
	}
	// Target hours are NOT backfilled here: zero means "not configured"
	// and the model falls back to its built-in defaults, so target
	// reports can tell a configured value from the default.
	if c.Targets.WeeklyTargetForMonth && c.Targets.WeekTargetHours != 0 {
		c.Targets.MonthTargetHours = 4 * c.Targets.WeekTargetHours
	}
	if c.Backup.PeriodicBackupIntervalDays == 0 {
		c.Backup.PeriodicBackupIntervalDays = def.Backup.PeriodicBackupIntervalDays
	}
	if c.Outlook.TenantID == "" {
		c.Outlook.TenantID = DefaultTenantID
	}
	if c.Outlook.ClientID == "" {
		c.Outlook.ClientID = DefaultClientID
	}
	if c.Outlook.DefaultProject == "" {
		c.Outlook.DefaultProject = DefaultOutlookProject
	}
}

// writeDefault creates the config directory and writes the annotated
// default config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
