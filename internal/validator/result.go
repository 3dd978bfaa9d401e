// ABOUTME: Result types returned by configuration validation
// ABOUTME: Retrieval failures carry a single error; schema violations carry lists

package validator

import (
	"encoding/json"

	"github.com/pipekit/pipekit/internal/value"
)

// Result is the outcome of validating one configuration document.
//
// A retrieval or parse failure sets Error (and usually Detail) and leaves
// Errors nil: there was nothing to validate. Schema violations are listed
// in Errors. EnhancedConfig is only set when Valid is true.
type Result struct {
	Valid          bool
	Error          string
	Detail         string
	Errors         []string
	Warnings       []string
	EnhancedConfig *value.Object
}

// Failed reports whether the configuration could not be retrieved or parsed
func (r *Result) Failed() bool {
	return r.Error != ""
}

type failureJSON struct {
	Valid  bool   `json:"valid"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type resultJSON struct {
	Valid          bool          `json:"valid"`
	Errors         []string      `json:"errors"`
	Warnings       []string      `json:"warnings"`
	EnhancedConfig *value.Object `json:"enhanced_config,omitempty"`
}

// MarshalJSON emits the retrieval-failure shape or the validation shape,
// never a mix of both
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(failureJSON{Valid: false, Error: r.Error, Detail: r.Detail})
	}
	out := resultJSON{
		Valid:          r.Valid,
		Errors:         nonNil(r.Errors),
		Warnings:       nonNil(r.Warnings),
		EnhancedConfig: r.EnhancedConfig,
	}
	if !r.Valid {
		out.EnhancedConfig = nil
	}
	return json.Marshal(out)
}

// Recommendation is an advisory note produced from a valid configuration
type Recommendation struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Summary is the display view of a valid configuration
type Summary struct {
	BaseBranch        value.Value `json:"base_branch"`
	ThoughtsDirectory value.Value `json:"thoughts_directory"`
	ResearchMinRefs   value.Value `json:"research_min_refs"`
	TeamSize          int         `json:"team_size"`
	HasNotifications  bool        `json:"has_notifications"`
	ParallelPipelines value.Value `json:"parallel_pipelines"`
}

// Report extends a valid Result with recommendations and a summary.
// For invalid configurations only the embedded Result is populated.
type Report struct {
	*Result
	ConfigFile      string
	RepoName        value.Value
	Recommendations []Recommendation
	Summary         *Summary
}

type reportJSON struct {
	Valid           bool             `json:"valid"`
	ConfigFile      string           `json:"config_file"`
	RepoName        value.Value      `json:"repo_name"`
	EnhancedConfig  *value.Object    `json:"enhanced_config"`
	Recommendations []Recommendation `json:"recommendations"`
	Warnings        []string         `json:"warnings"`
	Summary         *Summary         `json:"summary"`
}

// MarshalJSON degrades to the plain Result when validation failed
func (r *Report) MarshalJSON() ([]byte, error) {
	if !r.Valid || r.Summary == nil {
		return r.Result.MarshalJSON()
	}
	recs := r.Recommendations
	if recs == nil {
		recs = []Recommendation{}
	}
	return json.Marshal(reportJSON{
		Valid:           true,
		ConfigFile:      r.ConfigFile,
		RepoName:        r.RepoName,
		EnhancedConfig:  r.EnhancedConfig,
		Recommendations: recs,
		Warnings:        nonNil(r.Warnings),
		Summary:         r.Summary,
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
