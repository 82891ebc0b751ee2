package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lindqvst/hourglass/internal/model"
)

// Storage errors.
var (
	// ErrCorrupt means a collection file exists but cannot be decoded.
	// Fatal: the file is never repaired or moved aside automatically.
	ErrCorrupt = errors.New("storage corrupt")
	// ErrUnavailable means a collection file cannot be read or written
	// (missing directory, permissions).
	ErrUnavailable = errors.New("storage unavailable")
)

// lockFile is the sidecar advisory lock guarding both collection files
// for the duration of a command's read-modify-write cycle.
const lockFile = ".hourglass.lock"

// Paths holds the resolved filesystem locations the store works with.
// They come from the configuration; the store never resolves paths on
// its own.
type Paths struct {
	StorageDir  string
	ProjectFile string
	WeekFile    string
	ReportDir   string
	BackupDir   string
}

// Store persists the project and week collections as two independent
// binary files. Every save serializes the full collection and replaces
// the file atomically; there are no partial updates.
type Store struct {
	paths Paths
}

// New creates a store for the given paths.
func New(paths Paths) *Store {
	return &Store{paths: paths}
}

// Paths returns the resolved paths the store was built with.
func (s *Store) Paths() Paths {
	return s.paths
}

// Lock takes the exclusive cross-process lock for the storage
// directory and returns a release function. Two overlapping
// invocations would otherwise race on the whole-file overwrite and the
// last writer would silently win.
func (s *Store) Lock() (release func(), err error) {
	if err := s.ensureStorageDir(); err != nil {
		return nil, err
	}
	fl := flock.New(filepath.Join(s.paths.StorageDir, lockFile))
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("locking %s: %v: %w", fl.Path(), err, ErrUnavailable)
	}
	return func() { _ = fl.Unlock() }, nil
}

// LoadProjects reads the project collection. A missing file yields an
// empty collection and firstRun=true, signalling that a default file
// should be materialized on the next save.
func (s *Store) LoadProjects() (projects []model.Project, firstRun bool, err error) {
	firstRun, err = loadCollection(s.paths.ProjectFile, &projects)
	return projects, firstRun, err
}

// SaveProjects overwrites the project collection file.
func (s *Store) SaveProjects(projects []model.Project) error {
	return s.saveCollection(s.paths.ProjectFile, projects)
}

// LoadWeeks reads the week collection; missing-file semantics as in
// LoadProjects.
func (s *Store) LoadWeeks() (weeks []model.Week, firstRun bool, err error) {
	firstRun, err = loadCollection(s.paths.WeekFile, &weeks)
	return weeks, firstRun, err
}

// SaveWeeks overwrites the week collection file.
func (s *Store) SaveWeeks(weeks []model.Week) error {
	return s.saveCollection(s.paths.WeekFile, weeks)
}

// EnsureReportDir creates the report output directory if needed.
func (s *Store) EnsureReportDir() error {
	if err := os.MkdirAll(s.paths.ReportDir, 0o700); err != nil {
		return fmt.Errorf("creating report directory: %v: %w", err, ErrUnavailable)
	}
	return nil
}

func (s *Store) ensureStorageDir() error {
	if err := os.MkdirAll(s.paths.StorageDir, 0o700); err != nil {
		return fmt.Errorf("creating storage directory: %v: %w", err, ErrUnavailable)
	}
	return nil
}

// loadCollection decodes a whole collection file into out. The on-disk
// format carries no schema version; a field type change requires a
// manual migration of old files.
func loadCollection(path string, out any) (firstRun bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %v: %w", path, err, ErrUnavailable)
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decoding %s: %v: %w", path, err, ErrCorrupt)
	}
	return false, nil
}

// saveCollection encodes the full collection and atomically replaces
// the destination file, so a failed write never leaves a half-written
// collection behind.
func (s *Store) saveCollection(path string, in any) error {
	if err := s.ensureStorageDir(); err != nil {
		return err
	}
	data, err := msgpack.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %v: %w", tmpPath, err, ErrUnavailable)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %v: %w", path, err, ErrUnavailable)
	}
	return nil
}
