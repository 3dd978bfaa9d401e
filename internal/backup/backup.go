// ABOUTME: Timestamped backups for decision records
// ABOUTME: Copies a file into an archive directory before it is rewritten
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// Prefix starts every backup file name
	Prefix = "decision-record-backup-"

	// TimestampLayout formats the backup time into the file name
	TimestampLayout = "20060102-150405"

	suffix = ".md"
)

// EnsureDir creates the backup directory if it doesn't exist
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	return nil
}

// FileName returns the backup file name for a backup taken at now
func FileName(now time.Time) string {
	return Prefix + now.Format(TimestampLayout) + suffix
}

// Save copies src into dir under a timestamped name. A name already taken
// within the same second gets a "-1", "-2", ... suffix, so an earlier
// backup is never overwritten.
// Returns the path to the backup file.
func Save(src, dir string, now time.Time) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	backupPath, err := reserve(dir, now)
	if err != nil {
		return "", err
	}
	if err := Copy(src, backupPath); err != nil {
		os.Remove(backupPath)
		return "", err
	}
	return backupPath, nil
}

// reserve creates an empty file under the first free backup name for now
func reserve(dir string, now time.Time) (string, error) {
	base := strings.TrimSuffix(FileName(now), suffix)
	for n := 0; ; n++ {
		name := base + suffix
		if n > 0 {
			name = fmt.Sprintf("%s-%d%s", base, n, suffix)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}
		return path, nil
	}
}

// Copy copies src to dst, keeping the permission bits and modification time
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	// OpenFile only applies the mode on creation
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set times on %s: %w", dst, err)
	}
	return nil
}

// Entry describes one backup file
type Entry struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// List returns the backups in dir, newest first.
// A missing directory has no backups.
func List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasPrefix(name, Prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(dir, name),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ModTime.Equal(entries[j].ModTime) {
			return newerName(filepath.Base(entries[i].Path), filepath.Base(entries[j].Path))
		}
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}

// newerName orders backup names by timestamp, then by same-second
// sequence number
func newerName(a, b string) bool {
	stampA, seqA := splitName(a)
	stampB, seqB := splitName(b)
	if stampA != stampB {
		return stampA > stampB
	}
	return seqA > seqB
}

// splitName returns the timestamp and sequence number of a backup name
func splitName(name string) (string, int) {
	stem := strings.TrimSuffix(strings.TrimPrefix(name, Prefix), suffix)
	if len(stem) <= len(TimestampLayout) {
		return stem, 0
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(stem[len(TimestampLayout):], "-"))
	if err != nil {
		return stem, 0
	}
	return stem[:len(TimestampLayout)], seq
}

// Latest returns the most recently modified backup in dir.
// ok is false when there are none.
func Latest(dir string) (entry Entry, ok bool, err error) {
	entries, err := List(dir)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[0], true, nil
}
