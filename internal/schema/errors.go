// ABOUTME: Error taxonomy for schema loading
// ABOUTME: Separates unreadable or malformed files from structurally wrong schemas

package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is()
var (
	// ErrParse matches any *ParseError
	ErrParse = errors.New("schema parse error")

	// ErrShape matches any *ShapeError
	ErrShape = errors.New("schema shape error")
)

// ParseError means the schema resource is absent, unreadable, or not
// well-formed YAML. A missing file wraps fs.ErrNotExist.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	msg := "cannot parse schema"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ShapeError means the schema parsed but does not have the expected
// structure (missing top-level keys, bad field definitions)
type ShapeError struct {
	Path   string
	Key    string // dotted location of the problem, e.g. "field_definitions.team.type"
	Reason string
}

func (e *ShapeError) Error() string {
	msg := "malformed schema"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Key != "" {
		msg += fmt.Sprintf(": %s", e.Key)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }
