// ABOUTME: Renders validation results and reports to terminal output
// ABOUTME: Supports styled text and indented JSON formats

package validator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pipekit/pipekit/internal/ui"
	"github.com/pipekit/pipekit/internal/value"
)

// Output formats accepted by Formatter
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formatter renders validation output to an io.Writer
type Formatter struct {
	w io.Writer
}

// NewFormatter creates a new Formatter that writes to w
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// RenderResult outputs a plain validation result
func (f *Formatter) RenderResult(r *Result, format string) error {
	if format == FormatJSON {
		return f.renderJSON(r)
	}
	if !r.Valid {
		f.renderFailure(r)
		return nil
	}
	fmt.Fprintln(f.w, ui.Success(ui.SymbolSuccess+" Configuration validation PASSED"))
	f.renderWarnings(r.Warnings)
	return nil
}

// RenderReport outputs a full report, or the failure view when the
// configuration was invalid
func (f *Formatter) RenderReport(r *Report, format string) error {
	if format == FormatJSON {
		return f.renderJSON(r)
	}
	if !r.Valid || r.Summary == nil {
		f.renderFailure(r.Result)
		return nil
	}

	fmt.Fprintln(f.w, ui.Success(ui.SymbolSuccess+" Configuration validation PASSED"))
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, ui.RenderHeader("Configuration Report for "+display(r.RepoName)))

	s := r.Summary
	notifications := ui.SymbolError
	if s.HasNotifications {
		notifications = ui.SymbolSuccess
	}
	details := [][2]string{
		{"Base branch", display(s.BaseBranch)},
		{"Thoughts directory", display(s.ThoughtsDirectory)},
		{"Research min refs", display(s.ResearchMinRefs)},
		{"Team reviewers", fmt.Sprintf("%d", s.TeamSize)},
		{"Notifications", notifications},
		{"Parallel pipelines", display(s.ParallelPipelines)},
	}
	for _, d := range details {
		fmt.Fprintln(f.w, ui.Indent(ui.RenderDetail(d[0], d[1]), 1))
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, ui.RenderSection("Recommendations", len(r.Recommendations)))
		items := make([]string, len(r.Recommendations))
		for i, rec := range r.Recommendations {
			items[i] = ui.Muted("["+rec.Type+"]") + " " + rec.Message
		}
		fmt.Fprintln(f.w, ui.RenderBullets(items, 1))
	}

	f.renderWarnings(r.Warnings)
	return nil
}

func (f *Formatter) renderFailure(r *Result) {
	fmt.Fprintln(f.w, ui.Error(ui.SymbolError+" Configuration validation FAILED"))

	if r.Failed() {
		fmt.Fprintln(f.w, ui.RenderDetail("Error", r.Error))
		if r.Detail != "" {
			fmt.Fprintln(f.w, ui.Indent(ui.Muted(r.Detail), 1))
		}
		return
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, ui.RenderSection("Errors", len(r.Errors)))
		fmt.Fprintln(f.w, ui.RenderBullets(r.Errors, 1))
	}
	f.renderWarnings(r.Warnings)
}

func (f *Formatter) renderWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, ui.Warning(ui.SymbolWarning+" Warnings:"))
	fmt.Fprintln(f.w, ui.RenderBullets(warnings, 1))
}

func (f *Formatter) renderJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(f.w, string(data))
	return err
}

// display renders a summary value, showing unset values explicitly
func display(v value.Value) string {
	if v.IsNull() {
		return "(not set)"
	}
	return v.String()
}
