// ABOUTME: Defines color palette, symbols, and NO_COLOR initialization
// ABOUTME: Centralizes all UI styling constants for consistent appearance
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic color definitions
var (
	ColorSuccess = lipgloss.Color("#22c55e") // Green
	ColorError   = lipgloss.Color("#ef4444") // Red
	ColorWarning = lipgloss.Color("#eab308") // Yellow
	ColorInfo    = lipgloss.Color("#06b6d4") // Cyan
	ColorMuted   = lipgloss.Color("#6b7280") // Gray
	ColorAccent  = lipgloss.Color("#8b5cf6") // Purple
)

// Symbol definitions
var (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
	SymbolBullet  = "•"
)

// Change symbols for tracked file writes
var (
	SymbolCreated  = "+"
	SymbolModified = "~"
	SymbolDeleted  = "-"
)

func init() {
	initColorProfile()
}

func initColorProfile() {
	if colorDisabledByEnv() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// colorDisabledByEnv honors NO_COLOR (https://no-color.org/) and dumb
// terminals
func colorDisabledByEnv() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb"
}

// DisableColor forces plain output, e.g. for --output json
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
