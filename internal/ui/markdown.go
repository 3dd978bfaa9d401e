// ABOUTME: Markdown rendering for decision records and audit reports
// ABOUTME: Styles markdown with glamour on a terminal and passes it through when piped
package ui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
)

const (
	defaultMarkdownWidth = 80

	// MaxMarkdownWidth caps word wrapping on wide terminals so long record
	// lines stay readable
	MaxMarkdownWidth = 120
)

// RenderMarkdown renders markdown content for terminal display.
// When raw is true, returns content unchanged (for piping).
// Falls back to raw content on rendering errors.
func RenderMarkdown(content string, raw bool) string {
	if raw {
		return content
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth(terminalWidth())),
		// Decision records put one fact per line; keep them apart
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}

// wrapWidth clamps a terminal width to the range used for wrapping
func wrapWidth(width int) int {
	switch {
	case width <= 0:
		return defaultMarkdownWidth
	case width > MaxMarkdownWidth:
		return MaxMarkdownWidth
	default:
		return width
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return 0
	}
	return width
}
