// ABOUTME: Builds the full advisory report for a configuration file
// ABOUTME: Combines validation, recommendations and a display summary
package validator

import "github.com/pipekit/pipekit/internal/value"

// defaultParallelPipelines is reported when workflow_customization does
// not set parallel_pipelines
const defaultParallelPipelines = 3

// Report validates path and, when valid, adds recommendations and a
// summary. An invalid configuration yields a Report holding only the
// validation Result.
func (v *Validator) Report(path string) *Report {
	result := v.Validate(path)
	if !result.Valid {
		return &Report{Result: result}
	}

	cfg := result.EnhancedConfig
	repoName, _ := cfg.Get("repo_name")

	return &Report{
		Result:          result,
		ConfigFile:      path,
		RepoName:        repoName,
		Recommendations: v.Recommendations(cfg),
		Summary:         summarize(cfg),
	}
}

func summarize(cfg *value.Object) *Summary {
	lookup := func(path ...string) value.Value {
		v, _ := cfg.Lookup(path...)
		return v
	}

	parallel, ok := cfg.Lookup("workflow_customization", "parallel_pipelines")
	if !ok {
		parallel = value.Int(defaultParallelPipelines)
	}

	return &Summary{
		BaseBranch:        lookup("base_branch"),
		ThoughtsDirectory: lookup("thoughts_directory"),
		ResearchMinRefs:   lookup("validation", "research_min_refs"),
		TeamSize:          lookup("team", "default_reviewers").Len(),
		HasNotifications:  lookup("notifications").Truthy(),
		ParallelPipelines: parallel,
	}
}
