// ABOUTME: Advisory recommendation rules evaluated over enhanced configurations
// ABOUTME: Each rule is an independent predicate; adding one never touches validation
package validator

import (
	"strings"

	"github.com/pipekit/pipekit/internal/value"
)

// Rule pairs a predicate with the recommendation it produces
type Rule struct {
	Type    string
	Message string
	Applies func(cfg *value.Object) bool
}

// minResearchRefs is the research reference count below which a
// validation recommendation fires. Absent settings count as this value.
const minResearchRefs = 3

// DefaultRules returns the built-in rules in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{
			Type:    "repository_type",
			Message: "Detected API/service repository. Consider increasing research_min_refs to 5 and adding security validation commands.",
			Applies: repoNameContains("api", "service"),
		},
		{
			Type:    "repository_type",
			Message: "Detected infrastructure repository. Consider stricter validation, longer timeouts, and limiting parallel pipelines.",
			Applies: repoNameContains("platform", "infrastructure"),
		},
		{
			Type:    "validation",
			Message: "Consider increasing research_min_refs to at least 3 for better documentation quality.",
			Applies: func(cfg *value.Object) bool {
				refs, ok := cfg.Lookup("validation", "research_min_refs")
				if !ok {
					return false
				}
				n, ok := refs.Number()
				return ok && n < minResearchRefs
			},
		},
		{
			Type:    "team",
			Message: "Consider adding default_reviewers to ensure all PRs have reviewers assigned.",
			Applies: func(cfg *value.Object) bool {
				reviewers, ok := cfg.Lookup("team", "default_reviewers")
				return !ok || !reviewers.Truthy()
			},
		},
	}
}

func repoNameContains(keywords ...string) func(*value.Object) bool {
	return func(cfg *value.Object) bool {
		raw, _ := cfg.Get("repo_name")
		name, ok := raw.AsString()
		if !ok {
			return false
		}
		name = strings.ToLower(name)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				return true
			}
		}
		return false
	}
}

// Recommendations evaluates the rules in order. It never fails and never
// affects validity; the result may be empty.
func (v *Validator) Recommendations(cfg *value.Object) []Recommendation {
	recs := []Recommendation{}
	for _, rule := range v.rules {
		if rule.Applies != nil && rule.Applies(cfg) {
			recs = append(recs, Recommendation{Type: rule.Type, Message: rule.Message})
		}
	}
	return recs
}
