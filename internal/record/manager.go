// ABOUTME: Decision record manager that keeps growing markdown logs readable
// ABOUTME: Owns the record path, its archive directory and tracked writes
package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pipekit/pipekit/internal/backup"
	"github.com/pipekit/pipekit/internal/events"
)

// ErrNoBackups is returned by Restore when no backup file exists
var ErrNoBackups = errors.New("no backup files found")

// Manager rewrites one decision record file
type Manager struct {
	path       string
	archiveDir string
	tracker    *events.Tracker
	now        func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithTracker records every file write on tracker
func WithTracker(tracker *events.Tracker) Option {
	return func(m *Manager) {
		m.tracker = tracker
	}
}

// WithClock overrides the time source used for backup names and footers
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a manager for the decision record at path.
// The archive directory sits next to it as "<stem>-archive" and is only
// created when something is written there.
func NewManager(path string, opts ...Option) *Manager {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := &Manager{
		path:       path,
		archiveDir: filepath.Join(filepath.Dir(path), stem+"-archive"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Path returns the decision record location
func (m *Manager) Path() string {
	return m.path
}

// ArchiveDir returns where backups and archived phase details go
func (m *Manager) ArchiveDir() string {
	return m.archiveDir
}

// Backups lists existing backups, newest first
func (m *Manager) Backups() ([]backup.Entry, error) {
	return backup.List(m.archiveDir)
}

// RestoreResult describes a completed restore
type RestoreResult struct {
	FromBackup string `json:"from_backup"`
}

// Restore overwrites the decision record with backupFile, or with the most
// recently modified backup when backupFile is empty.
func (m *Manager) Restore(backupFile string) (*RestoreResult, error) {
	if backupFile == "" {
		latest, ok, err := backup.Latest(m.archiveDir)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w in %s", ErrNoBackups, m.archiveDir)
		}
		backupFile = latest.Path
	}

	if _, err := os.Stat(backupFile); err != nil {
		return nil, fmt.Errorf("backup file not available: %w", err)
	}

	err := m.tracker.RecordFileWrite("record restore", m.path, map[string]interface{}{"from": backupFile}, func() error {
		return backup.Copy(backupFile, m.path)
	})
	if err != nil {
		return nil, err
	}
	return &RestoreResult{FromBackup: backupFile}, nil
}

// load reads the record, returning its content and permission bits
func (m *Manager) load() (string, os.FileMode, error) {
	info, err := os.Stat(m.path)
	if err != nil {
		return "", 0, fmt.Errorf("cannot read decision record: %w", err)
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		return "", 0, fmt.Errorf("cannot read decision record: %w", err)
	}
	return string(data), info.Mode().Perm(), nil
}

// backup copies the record into the archive directory before a rewrite
func (m *Manager) backup() (string, error) {
	path, err := backup.Save(m.path, m.archiveDir, m.now())
	if err != nil {
		return "", fmt.Errorf("failed to back up decision record: %w", err)
	}
	return path, nil
}

// write replaces path with content through the tracker
func (m *Manager) write(operation, path, content string, perm os.FileMode, context map[string]interface{}) error {
	return m.tracker.RecordFileWrite(operation, path, context, func() error {
		return os.WriteFile(path, []byte(content), perm)
	})
}

// lineCount counts newline-separated segments; a trailing newline adds one
func lineCount(content string) int {
	return len(strings.Split(content, "\n"))
}
