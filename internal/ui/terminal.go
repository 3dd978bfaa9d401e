// ABOUTME: Terminal detection for choosing interactive vs piped behavior
// ABOUTME: Used to skip prompts and markdown styling when not attached to a TTY
package ui

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// StdoutIsTerminal reports whether standard output is a terminal
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout)
}
