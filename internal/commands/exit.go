// ABOUTME: Exit status errors for commands whose output already explains failure
// ABOUTME: main maps them to process exit codes without printing anything extra
package commands

import "fmt"

// ExitError ends the process with Code after the command has printed its
// own result
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Silent marks the error as already reported
func (e *ExitError) Silent() bool {
	return true
}

func exitWith(code int) error {
	return &ExitError{Code: code}
}
