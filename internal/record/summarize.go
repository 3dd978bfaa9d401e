// ABOUTME: Produces a short summary version of a decision record
// ABOUTME: Moves completed phase details into per-phase archive files
package record

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// maxEssentialLines is how many status lines a summarized phase keeps
const maxEssentialLines = 2

const archivedHeader = "## Archived Sections"

var (
	keepKeywords     = []string{"Issue Context", "Current Status", "Pipeline Progress", "Decision"}
	essentialMarkers = []string{"**Status**:", "**Validated**:", "**Document**:"}
	archiveLink      = regexp.MustCompile(`^- \[[^\]]+\]\([^)]+\)$`)
)

// SummarizeResult describes a completed summarization
type SummarizeResult struct {
	BackupFile    string   `json:"backup_file"`
	ArchivedFiles []string `json:"archived_files"`
	OriginalLines int      `json:"original_lines"`
	SummaryLines  int      `json:"summary_lines"`
}

// Summarize backs the record up, archives the full text of each completed
// phase and rewrites the record keeping only key sections and status lines.
func (m *Manager) Summarize() (*SummarizeResult, error) {
	content, perm, err := m.load()
	if err != nil {
		return nil, err
	}
	backupFile, err := m.backup()
	if err != nil {
		return nil, err
	}

	plan := planSummary(content)

	archived := []string{}
	for _, a := range plan.archives {
		path := filepath.Join(m.archiveDir, a.slug+"-details.md")
		err := m.write("record summarize", path, a.content, 0644, map[string]interface{}{
			"record": m.path,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to archive %s: %w", a.slug, err)
		}
		archived = append(archived, path)
	}

	links := plan.previousLinks
	for _, path := range archived {
		links = appendUnique(links, m.link(path))
	}

	summary := plan.body
	if len(links) > 0 {
		summary += "\n\n" + m.footer(links, backupFile)
	}
	summary += "\n"

	err = m.write("record summarize", m.path, summary, perm, map[string]interface{}{
		"backup":   backupFile,
		"archived": len(archived),
	})
	if err != nil {
		return nil, err
	}

	return &SummarizeResult{
		BackupFile:    backupFile,
		ArchivedFiles: archived,
		OriginalLines: lineCount(content),
		SummaryLines:  lineCount(summary),
	}, nil
}

type archive struct {
	slug    string
	content string
}

type summaryPlan struct {
	body          string
	archives      []archive
	previousLinks []string
}

// planSummary decides what stays in the record and what gets archived,
// without touching the filesystem
func planSummary(content string) summaryPlan {
	var plan summaryPlan
	var kept []string

	for _, s := range splitSections(content) {
		text := strings.TrimRight(s.text(), "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}

		switch {
		case s.header == archivedHeader:
			// Regenerated below with links from this and earlier runs
			for _, line := range s.body {
				if line = strings.TrimSpace(line); archiveLink.MatchString(line) {
					plan.previousLinks = appendUnique(plan.previousLinks, line)
				}
			}
		case containsAny(s.header, keepKeywords):
			kept = append(kept, text)
		case s.isCompletedPhase():
			short := shortPhase(s)
			kept = append(kept, short)
			// Already summarized by an earlier run; its archive is intact
			if short == text {
				continue
			}
			if slug := s.phaseSlug(); slug != "" {
				plan.archives = append(plan.archives, archive{slug: slug, content: text + "\n"})
			}
		default:
			kept = append(kept, text)
		}
	}

	plan.body = strings.Join(kept, "\n\n")
	return plan
}

// shortPhase keeps the header and the first essential status lines
func shortPhase(s section) string {
	lines := []string{s.header}
	for _, line := range s.body {
		if len(lines) > maxEssentialLines {
			break
		}
		if containsAny(line, essentialMarkers) {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// target returns path relative to the record so links survive moving the repo
func (m *Manager) target(path string) string {
	if rel, err := filepath.Rel(filepath.Dir(m.path), path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

func (m *Manager) link(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fmt.Sprintf("- [%s](%s)", stem, m.target(path))
}

func (m *Manager) footer(links []string, backupFile string) string {
	var b strings.Builder
	b.WriteString(archivedHeader + "\n")
	b.WriteString("Detailed phase information has been archived for space efficiency:\n")
	for _, l := range links {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "*Summary generated on %s*\n", m.now().Format(time.DateTime))
	fmt.Fprintf(&b, "*Full backup: [%s](%s)*", filepath.Base(backupFile), m.target(backupFile))
	return b.String()
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
