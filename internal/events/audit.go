// ABOUTME: Audit report generation for file operation history
// ABOUTME: Summarizes recorded events and renders them as text or markdown
package events

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AuditReport represents an audit trail of file operations.
type AuditReport struct {
	GeneratedAt time.Time
	Operation   string // operation filter or empty for all
	Period      string // human-readable time range description
	Events      []*FileOperation
	Summary     AuditSummary
}

// AuditSummary provides aggregate statistics about events in the report.
type AuditSummary struct {
	TotalEvents   int
	FilesAffected []string       // unique file paths, sorted
	Operations    map[string]int // operation name -> count
	ChangeTypes   map[string]int // create/update/delete -> count
	Errors        int
	SizeChanges   int64 // total bytes added/removed
}

// AuditOptions configures how the audit report is generated.
type AuditOptions struct {
	Operation string
	Since     time.Time
	Now       time.Time // defaults to time.Now()
}

// GenerateAuditReport creates an audit report from a list of events.
// Events should already be filtered and sorted newest first (writer.Query).
func GenerateAuditReport(events []*FileOperation, opts AuditOptions) *AuditReport {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return &AuditReport{
		GeneratedAt: now,
		Operation:   opts.Operation,
		Period:      formatPeriod(opts.Since, now),
		Events:      events,
		Summary:     calculateSummary(events),
	}
}

func calculateSummary(events []*FileOperation) AuditSummary {
	summary := AuditSummary{
		TotalEvents:   len(events),
		FilesAffected: []string{},
		Operations:    make(map[string]int),
		ChangeTypes:   make(map[string]int),
	}

	seen := make(map[string]bool)
	for _, event := range events {
		if !seen[event.File] {
			seen[event.File] = true
			summary.FilesAffected = append(summary.FilesAffected, event.File)
		}
		summary.Operations[event.Operation]++
		summary.ChangeTypes[event.ChangeType]++
		if event.Error != "" {
			summary.Errors++
		}
		if event.Before != nil && event.After != nil {
			summary.SizeChanges += event.After.Size - event.Before.Size
		}
	}
	sort.Strings(summary.FilesAffected)

	return summary
}

// formatPeriod converts a Since time into a human-readable period description.
func formatPeriod(since, now time.Time) string {
	if since.IsZero() {
		return "All time"
	}

	days := int(now.Sub(since).Hours() / 24)

	switch {
	case days == 0:
		return "Last 24 hours"
	case days == 1:
		return "Last day"
	case days < 7:
		return fmt.Sprintf("Last %d days", days)
	case days < 30:
		if weeks := days / 7; weeks > 1 {
			return fmt.Sprintf("Last %d weeks", weeks)
		}
		return "Last week"
	case days < 365:
		if months := days / 30; months > 1 {
			return fmt.Sprintf("Last %d months", months)
		}
		return "Last month"
	default:
		return fmt.Sprintf("Since %s", since.Format("2006-01-02"))
	}
}

type opCount struct {
	name  string
	count int
}

// sortedOperations orders operations by count, then name
func (s AuditSummary) sortedOperations() []opCount {
	ops := make([]opCount, 0, len(s.Operations))
	for name, count := range s.Operations {
		ops = append(ops, opCount{name, count})
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].count != ops[j].count {
			return ops[i].count > ops[j].count
		}
		return ops[i].name < ops[j].name
	})
	return ops
}

// FormatAsText renders the audit report as plain text.
func (r *AuditReport) FormatAsText() string {
	var b strings.Builder

	b.WriteString("Audit Report: pipekit\n")
	b.WriteString("=====================\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	if r.Operation != "" {
		fmt.Fprintf(&b, "Operation: %s\n", r.Operation)
	}
	fmt.Fprintf(&b, "Period: %s\n", r.Period)
	fmt.Fprintf(&b, "Total Events: %d\n\n", r.Summary.TotalEvents)

	b.WriteString("Summary\n")
	b.WriteString("-------\n")
	fmt.Fprintf(&b, "Files Modified: %d\n", len(r.Summary.FilesAffected))
	if ops := r.Summary.sortedOperations(); len(ops) > 0 {
		b.WriteString("Operations:\n")
		for _, op := range ops {
			fmt.Fprintf(&b, "  - %s: %d events\n", op.name, op.count)
		}
	}
	if len(r.Summary.ChangeTypes) > 0 {
		fmt.Fprintf(&b, "Changes: %s\n", formatCounts(r.Summary.ChangeTypes))
	}
	if r.Summary.Errors > 0 {
		fmt.Fprintf(&b, "Errors: %d\n", r.Summary.Errors)
	}
	if r.Summary.SizeChanges != 0 {
		fmt.Fprintf(&b, "Total Size Change: %+d bytes\n", r.Summary.SizeChanges)
	}
	b.WriteString("\n")

	b.WriteString("Timeline\n")
	b.WriteString("--------\n\n")
	if len(r.Events) == 0 {
		b.WriteString("No events to display.\n")
		return b.String()
	}

	byDate, dates := groupEventsByDate(r.Events)
	for _, date := range dates {
		fmt.Fprintf(&b, "%s\n----------\n", date)
		for _, event := range byDate[date] {
			fmt.Fprintf(&b, "[%s] %s %s\n", event.Timestamp.Format("15:04:05"), statusIcon(event), strings.ToUpper(event.Operation))
			fmt.Fprintf(&b, "  File: %s\n", event.File)
			fmt.Fprintf(&b, "  Change: %s\n", changeInfo(event))
			if event.Error != "" {
				fmt.Fprintf(&b, "  Error: %s\n", event.Error)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// FormatAsMarkdown renders the audit report as GitHub-flavored markdown.
func (r *AuditReport) FormatAsMarkdown() string {
	var b strings.Builder

	b.WriteString("# Audit Report: pipekit\n\n")
	fmt.Fprintf(&b, "**Generated:** %s  \n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	if r.Operation != "" {
		fmt.Fprintf(&b, "**Operation:** %s  \n", r.Operation)
	}
	fmt.Fprintf(&b, "**Period:** %s  \n", r.Period)
	fmt.Fprintf(&b, "**Total Events:** %d\n\n", r.Summary.TotalEvents)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Files Modified:** %d\n", len(r.Summary.FilesAffected))
	if ops := r.Summary.sortedOperations(); len(ops) > 0 {
		b.WriteString("- **Operations:**\n")
		for _, op := range ops {
			fmt.Fprintf(&b, "  - %s: %d events\n", op.name, op.count)
		}
	}
	if r.Summary.Errors > 0 {
		fmt.Fprintf(&b, "- **Errors:** %d\n", r.Summary.Errors)
	}
	if r.Summary.SizeChanges != 0 {
		fmt.Fprintf(&b, "- **Total Size Change:** %+d bytes\n", r.Summary.SizeChanges)
	}
	b.WriteString("\n## Timeline\n\n")

	if len(r.Events) == 0 {
		b.WriteString("No events to display.\n")
		return b.String()
	}

	byDate, dates := groupEventsByDate(r.Events)
	for _, date := range dates {
		fmt.Fprintf(&b, "### %s\n\n", date)
		for _, event := range byDate[date] {
			fmt.Fprintf(&b, "#### %s %s %s\n\n", event.Timestamp.Format("15:04:05"), statusIcon(event), strings.ToUpper(event.Operation))
			fmt.Fprintf(&b, "- **File:** `%s`\n", event.File)
			fmt.Fprintf(&b, "- **Change:** %s\n", changeInfo(event))
			if event.Error != "" {
				fmt.Fprintf(&b, "- **Error:** %s\n", event.Error)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// groupEventsByDate groups events by YYYY-MM-DD and returns the dates
// newest first. Order within a date is preserved.
func groupEventsByDate(events []*FileOperation) (map[string][]*FileOperation, []string) {
	groups := make(map[string][]*FileOperation)
	var dates []string
	for _, event := range events {
		key := event.Timestamp.Format("2006-01-02")
		if _, ok := groups[key]; !ok {
			dates = append(dates, key)
		}
		groups[key] = append(groups[key], event)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return groups, dates
}

func statusIcon(event *FileOperation) string {
	if event.Error != "" {
		return "✗"
	}
	return "✓"
}

func changeInfo(event *FileOperation) string {
	if event.Before != nil && event.After != nil {
		if diff := event.After.Size - event.Before.Size; diff != 0 {
			return fmt.Sprintf("%s (%+d bytes)", event.ChangeType, diff)
		}
	}
	return event.ChangeType
}

func formatCounts(counts map[string]int) string {
	parts := make([]string, 0, len(counts))
	for name, count := range counts {
		parts = append(parts, fmt.Sprintf("%s (%d)", name, count))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
