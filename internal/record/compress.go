// ABOUTME: Collapses completed phases of a decision record into details blocks
// ABOUTME: Keeps a short fact summary visible and the full text one click away
package record

import (
	"strings"
)

// maxKeyFacts is how many summary bullets a compressed phase keeps
const maxKeyFacts = 4

var keyFactLabels = []string{"Status", "Validated", "Document", "Completed", "Next Phase"}

const (
	summaryOpen = "<details>\n<summary>📋 Phase Summary (click to expand)</summary>"
	detailsOpen = "<details>\n<summary>📝 Complete Phase Details</summary>"
)

// CompressResult describes a completed compression
type CompressResult struct {
	BackupFile      string `json:"backup_file"`
	OriginalLines   int    `json:"original_lines"`
	CompressedLines int    `json:"compressed_lines"`
	Sections        int    `json:"compressed_sections"`
}

// Compress backs the record up, then wraps every completed phase in
// collapsible blocks. Phases compressed by an earlier run are left as is.
func (m *Manager) Compress() (*CompressResult, error) {
	content, perm, err := m.load()
	if err != nil {
		return nil, err
	}
	backupFile, err := m.backup()
	if err != nil {
		return nil, err
	}

	compressed, count := CompressContent(content)

	err = m.write("record compress", m.path, compressed, perm, map[string]interface{}{
		"backup":   backupFile,
		"sections": count,
	})
	if err != nil {
		return nil, err
	}

	return &CompressResult{
		BackupFile:      backupFile,
		OriginalLines:   lineCount(content),
		CompressedLines: lineCount(compressed),
		Sections:        count,
	}, nil
}

// CompressContent returns content with completed phases collapsed and the
// number of sections it changed
func CompressContent(content string) (string, int) {
	sections := splitSections(content)
	count := 0
	for i, s := range sections {
		if !s.isCompletedPhase() || isCompressed(s) {
			continue
		}
		sections[i] = compressSection(s)
		count++
	}
	return joinSections(sections), count
}

func isCompressed(s section) bool {
	for _, line := range s.body {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return strings.HasPrefix(line, "<details>")
	}
	return false
}

func compressSection(s section) section {
	body := strings.Join(s.body, "\n")
	wrapped := summaryOpen + "\n\n" +
		strings.Join(keyFacts(s.body), "\n") + "\n\n" +
		detailsOpen + "\n\n" +
		body + "\n" +
		"</details>\n</details>\n"
	return section{header: s.header, body: strings.Split(wrapped, "\n")}
}

// keyFacts picks up to maxKeyFacts "- **" bullets that mention a key label
func keyFacts(body []string) []string {
	var facts []string
	for _, line := range body {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- **") {
			continue
		}
		for _, label := range keyFactLabels {
			if strings.Contains(line, label) {
				facts = append(facts, line)
				break
			}
		}
		if len(facts) == maxKeyFacts {
			break
		}
	}
	return facts
}
