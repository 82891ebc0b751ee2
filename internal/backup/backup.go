// Package backup copies the binary data files into the backup directory
// on a configurable day interval, tracking the last run in a state file.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lindqvst/hourglass/internal/storage"
)

const stateFile = "backup_state.bin"

// state records when the last backup was taken.
type state struct {
	LastBackup time.Time `msgpack:"last_backup"`
}

// Organizer performs backups of the two collection files.
type Organizer struct {
	paths storage.Paths
}

// New creates an organizer for the given storage paths.
func New(paths storage.Paths) *Organizer {
	return &Organizer{paths: paths}
}

// Run performs a periodic backup when enabled and the interval since
// the last backup has passed. It returns whether a backup was taken.
func (o *Organizer) Run(enabled, overrideExisting bool, intervalDays int) (bool, error) {
	if !enabled {
		return false, nil
	}
	due, err := o.due(intervalDays)
	if err != nil {
		return false, err
	}
	if !due {
		return false, nil
	}
	if err := o.Force(overrideExisting); err != nil {
		return false, err
	}
	return true, nil
}

// Force takes a backup now, regardless of interval and state, and
// records the new state.
func (o *Organizer) Force(overrideExisting bool) error {
	if err := os.MkdirAll(o.paths.BackupDir, 0o700); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	suffix := time.Now().Format("20060102")
	for _, f := range []struct{ src, prefix string }{
		{o.paths.ProjectFile, "prj_data"},
		{o.paths.WeekFile, "week_data"},
	} {
		if _, err := os.Stat(f.src); os.IsNotExist(err) {
			// Nothing stored yet for this collection.
			continue
		}
		if overrideExisting {
			if err := o.removeGenerations(f.prefix); err != nil {
				return err
			}
		}
		dst := filepath.Join(o.paths.BackupDir, fmt.Sprintf("%s_%s.bin", f.prefix, suffix))
		if err := copyFile(f.src, dst); err != nil {
			return fmt.Errorf("backing up %s: %w", f.src, err)
		}
	}

	return o.saveState()
}

// due reports whether the interval since the last recorded backup has
// passed. A missing state file means no backup was ever taken.
func (o *Organizer) due(intervalDays int) (bool, error) {
	data, err := os.ReadFile(o.statePath())
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading backup state: %w", err)
	}
	var st state
	if err := msgpack.Unmarshal(data, &st); err != nil {
		return false, fmt.Errorf("decoding backup state: %w", err)
	}
	return time.Since(st.LastBackup) >= time.Duration(intervalDays)*24*time.Hour, nil
}

func (o *Organizer) saveState() error {
	data, err := msgpack.Marshal(state{LastBackup: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encoding backup state: %w", err)
	}
	path := o.statePath()
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing backup state: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving backup state: %w", err)
	}
	return nil
}

func (o *Organizer) statePath() string {
	return filepath.Join(o.paths.StorageDir, stateFile)
}

// removeGenerations deletes earlier backups of the given collection.
func (o *Organizer) removeGenerations(prefix string) error {
	entries, err := os.ReadDir(o.paths.BackupDir)
	if err != nil {
		return fmt.Errorf("listing backup directory: %w", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix+"_") && strings.HasSuffix(e.Name(), ".bin") {
			if err := os.Remove(filepath.Join(o.paths.BackupDir, e.Name())); err != nil {
				return fmt.Errorf("removing old backup %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
