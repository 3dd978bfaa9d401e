// ABOUTME: Event tracking system that records file writes made by pipekit
// ABOUTME: commands, giving decision-record rewrites an audit trail.
package events

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"time"
)

// Change types inferred from before/after snapshots
const (
	ChangeTypeCreate   = "create"
	ChangeTypeUpdate   = "update"
	ChangeTypeDelete   = "delete"
	ChangeTypeNoChange = "no-change"
	ChangeTypeUnknown  = "unknown"
)

// FileOperation represents a single file modification event
type FileOperation struct {
	Timestamp  time.Time              `json:"timestamp"`
	Operation  string                 `json:"operation"`  // "record compress", "record restore", etc.
	File       string                 `json:"file"`       // Absolute path
	ChangeType string                 `json:"changeType"` // create/update/delete
	Before     *Snapshot              `json:"before,omitempty"`
	After      *Snapshot              `json:"after,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// Snapshot represents the state of a file at a point in time
type Snapshot struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// EventWriter writes and queries file operation events
type EventWriter interface {
	Write(event *FileOperation) error
	Query(filters EventFilters) ([]*FileOperation, error)
}

// EventFilters for querying events
type EventFilters struct {
	File      string
	Operation string
	Since     time.Time
	Limit     int
}

// Tracker records file operations
type Tracker struct {
	enabled bool
	writer  EventWriter
	now     func() time.Time
}

// SetEnabled enables or disables the tracker
func (t *Tracker) SetEnabled(enabled bool) {
	t.enabled = enabled
}

// IsEnabled returns whether the tracker is enabled
func (t *Tracker) IsEnabled() bool {
	return t.enabled
}

// Writer returns the underlying event writer, which may be nil
func (t *Tracker) Writer() EventWriter {
	return t.writer
}

// NewTracker creates a new event tracker. A nil writer forces it disabled.
func NewTracker(writer EventWriter, enabled bool) *Tracker {
	return &Tracker{
		enabled: enabled && writer != nil,
		writer:  writer,
		now:     time.Now,
	}
}

// RecordFileWrite wraps a file write operation with event tracking.
// context is stored verbatim on the event and may be nil.
func (t *Tracker) RecordFileWrite(operation, file string, context map[string]interface{}, fn func() error) error {
	if t == nil || !t.enabled {
		return fn()
	}

	before := snapshot(file)
	err := fn()
	after := snapshot(file)

	event := &FileOperation{
		Timestamp:  t.now(),
		Operation:  operation,
		File:       file,
		ChangeType: inferChangeType(before, after),
		Before:     before,
		After:      after,
		Context:    context,
	}
	if err != nil {
		event.Error = err.Error()
	}

	// Don't fail the operation if event writing fails
	_ = t.writer.Write(event)

	return err
}

// snapshot creates a snapshot of a file's current state
func snapshot(path string) *Snapshot {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	hash, err := hashFile(path)
	if err != nil {
		return &Snapshot{Size: info.Size()}
	}

	return &Snapshot{
		Hash: hash,
		Size: info.Size(),
	}
}

// hashFile computes SHA-256 hash of a file
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// inferChangeType determines the type of change based on before/after snapshots
func inferChangeType(before, after *Snapshot) string {
	switch {
	case before == nil && after != nil:
		return ChangeTypeCreate
	case before != nil && after == nil:
		return ChangeTypeDelete
	case before != nil && after != nil:
		if before.Hash != after.Hash {
			return ChangeTypeUpdate
		}
		return ChangeTypeNoChange
	}
	return ChangeTypeUnknown
}
