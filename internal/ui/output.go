// ABOUTME: Print helper functions for consistent CLI output
// ABOUTME: Provides success, error, warning, info, and muted output styles
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

var out io.Writer = os.Stdout

// SetOutput redirects the Print* helpers. Passing nil restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Output returns the writer used by the Print* helpers
func Output() io.Writer {
	return out
}

// PrintSuccess prints a success message with checkmark symbol
func PrintSuccess(msg string) {
	fmt.Fprintln(out, successStyle.Render(SymbolSuccess+" "+msg))
}

// PrintError prints an error message with X symbol
func PrintError(msg string) {
	fmt.Fprintln(out, errorStyle.Render(SymbolError+" "+msg))
}

// PrintWarning prints a warning message with warning symbol
func PrintWarning(msg string) {
	fmt.Fprintln(out, warningStyle.Render(SymbolWarning+" "+msg))
}

// PrintInfo prints an info message with info symbol
func PrintInfo(msg string) {
	fmt.Fprintln(out, infoStyle.Render(SymbolInfo+" "+msg))
}

// PrintMuted prints a muted/secondary message
func PrintMuted(msg string) {
	fmt.Fprintln(out, mutedStyle.Render(msg))
}

// FormatError renders an error for stderr. Errors that carry their own
// exit status but no message (see SilentError) render as "".
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var silent SilentError
	if errors.As(err, &silent) && silent.Silent() {
		return ""
	}
	return errorStyle.Render(SymbolError + " Error: " + err.Error())
}

// SilentError is implemented by errors whose message was already shown
type SilentError interface {
	error
	Silent() bool
}

// Muted returns a string styled as muted (for inline use)
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Bold returns a string styled as bold (for inline use)
func Bold(s string) string {
	return boldStyle.Render(s)
}

// Success returns a string styled as success (for inline use)
func Success(s string) string {
	return successStyle.Render(s)
}

// Error returns a string styled as error (for inline use)
func Error(s string) string {
	return errorStyle.Render(s)
}

// Warning returns a string styled as warning (for inline use)
func Warning(s string) string {
	return warningStyle.Render(s)
}

// Info returns a string styled as info (for inline use)
func Info(s string) string {
	return infoStyle.Render(s)
}
