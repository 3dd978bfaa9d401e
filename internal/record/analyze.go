// ABOUTME: Size and structure analysis for decision records
// ABOUTME: Decides whether a record should be compressed or summarized
package record

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

var (
	completedPhasePattern = regexp.MustCompile(`## \w+ Phase.*?Complete ✅`)
	phasePattern          = regexp.MustCompile(`## \w+ Phase`)
	sectionPattern        = regexp.MustCompile(`(?m)^## `)
	subsectionPattern     = regexp.MustCompile(`(?m)^### `)
)

// Analysis describes the size and shape of a decision record
type Analysis struct {
	Exists          bool  `json:"exists"`
	Lines           int   `json:"lines"`
	Words           int   `json:"words"`
	CompletedPhases int   `json:"completed_phases"`
	TotalPhases     int   `json:"total_phases"`
	Sections        int   `json:"sections"`
	Subsections     int   `json:"subsections"`
	FileSize        int64 `json:"file_size"`
}

// Analyze inspects the decision record. A missing file is not an error;
// the returned Analysis has Exists set to false.
func (m *Manager) Analyze() (*Analysis, error) {
	info, err := os.Stat(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Analysis{}, nil
	}
	if err != nil {
		return nil, err
	}

	content, _, err := m.load()
	if err != nil {
		return nil, err
	}

	a := AnalyzeContent(content)
	a.FileSize = info.Size()
	return &a, nil
}

// AnalyzeContent computes every Analysis field except FileSize
func AnalyzeContent(content string) Analysis {
	return Analysis{
		Exists:          true,
		Lines:           lineCount(content),
		Words:           len(strings.Fields(content)),
		CompletedPhases: len(completedPhasePattern.FindAllStringIndex(content, -1)),
		TotalPhases:     len(phasePattern.FindAllStringIndex(content, -1)),
		Sections:        len(sectionPattern.FindAllStringIndex(content, -1)),
		Subsections:     len(subsectionPattern.FindAllStringIndex(content, -1)),
		FileSize:        int64(len(content)),
	}
}

// Action is the maintenance step chosen for a record
type Action string

const (
	ActionNone      Action = "none"
	ActionCompress  Action = "compress"
	ActionSummarize Action = "summarize"
)

// Thresholds are line counts above which an action applies
type Thresholds struct {
	Compress  int
	Summarize int
}

// Plan picks the action for an analysis. Summarization wins when both
// thresholds are exceeded.
func Plan(a *Analysis, t Thresholds) Action {
	switch {
	case a == nil || !a.Exists:
		return ActionNone
	case a.Lines > t.Summarize:
		return ActionSummarize
	case a.Lines > t.Compress:
		return ActionCompress
	default:
		return ActionNone
	}
}
