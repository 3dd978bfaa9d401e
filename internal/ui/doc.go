// ABOUTME: Package documentation for the ui package
// ABOUTME: Describes the purpose and usage patterns for terminal styling

// Package ui provides consistent terminal styling and output formatting
// for pipekit commands using lipgloss.
//
// Usage:
//   - Use Print* functions for standalone messages: ui.PrintSuccess("Done!")
//   - Use inline helpers for composing output: fmt.Fprintln(w, ui.Bold("Title:"), ui.Muted(detail))
//   - Redirect output with SetOutput (commands pass cmd.OutOrStdout())
//   - Respects NO_COLOR and TERM=dumb for accessibility
package ui
