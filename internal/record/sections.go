// ABOUTME: Splits decision record markdown into level-two sections
// ABOUTME: Joining the split sections reproduces the original content exactly
package record

import (
	"regexp"
	"strings"
)

// section is a "## " header line and everything up to the next one.
// The preamble before the first header has an empty header.
type section struct {
	header string
	body   []string
}

const completeMarker = "(Complete ✅)"

var phaseNamePattern = regexp.MustCompile(`^## (\w+ Phase)`)

func splitSections(content string) []section {
	var sections []section
	current := section{}
	started := false

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			if started {
				sections = append(sections, current)
			}
			current = section{header: line}
			started = true
			continue
		}
		current.body = append(current.body, line)
		started = true
	}
	if started {
		sections = append(sections, current)
	}
	return sections
}

// text renders the section back to markdown
func (s section) text() string {
	if s.header == "" {
		return strings.Join(s.body, "\n")
	}
	return strings.Join(append([]string{s.header}, s.body...), "\n")
}

func joinSections(sections []section) string {
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = s.text()
	}
	return strings.Join(parts, "\n")
}

// isPhase reports whether the header names a "<Word> Phase" section
func (s section) isPhase() bool {
	return phaseNamePattern.MatchString(s.header)
}

// isCompletedPhase reports whether the header marks a finished phase
func (s section) isCompletedPhase() bool {
	return s.isPhase() && strings.Contains(s.header, completeMarker)
}

// phaseSlug turns "## Research Phase (Complete ✅)" into "research-phase"
func (s section) phaseSlug() string {
	m := phaseNamePattern.FindStringSubmatch(s.header)
	if m == nil {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(m[1], " ", "-"))
}
