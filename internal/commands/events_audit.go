// ABOUTME: Events audit command implementation for audit trails
// ABOUTME: Generates timeline reports with summary statistics in text or markdown
package commands

import (
	"fmt"
	"time"

	"github.com/pipekit/pipekit/internal/events"
	"github.com/pipekit/pipekit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	auditOperation string
	auditSince     string
	auditFormat    string
)

var eventsAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Generate an audit trail of file operations",
	Long: `Generate an audit report showing a timeline of file operations,
summary statistics, and change history.

By default, shows all events from the last 7 days in text format.
Markdown is styled when printed to a terminal and raw when piped.`,
	Example: `  pipekit events audit                     # Last 7 days
  pipekit events audit --since 30d
  pipekit events audit --operation "record summarize"
  pipekit events audit --format markdown > audit.md`,
	Args: cobra.NoArgs,
	RunE: runEventsAudit,
}

func init() {
	eventsCmd.AddCommand(eventsAuditCmd)

	eventsAuditCmd.Flags().StringVar(&auditOperation, "operation", "", "Filter by operation name")
	eventsAuditCmd.Flags().StringVar(&auditSince, "since", "7d", "Show events since duration (e.g., 24h, 7d, 30d) or date (YYYY-MM-DD)")
	eventsAuditCmd.Flags().StringVar(&auditFormat, "format", "text", "Output format: text or markdown")
}

func runEventsAudit(cmd *cobra.Command, args []string) error {
	if auditFormat != "text" && auditFormat != "markdown" {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'markdown')", auditFormat)
	}

	writer, err := openEventLog()
	if err != nil {
		return err
	}
	if writer == nil {
		ui.PrintInfo("No events recorded yet.")
		return nil
	}

	now := time.Now()
	since, err := parseSince(auditSince, now)
	if err != nil {
		return err
	}

	eventList, err := writer.Query(events.EventFilters{
		Operation: auditOperation,
		Since:     since,
	})
	if err != nil {
		return fmt.Errorf("failed to query events: %w", err)
	}

	if len(eventList) == 0 {
		ui.PrintInfo("No events found matching the filters.")
		return nil
	}

	report := events.GenerateAuditReport(eventList, events.AuditOptions{
		Operation: auditOperation,
		Since:     since,
		Now:       now,
	})

	var output string
	switch auditFormat {
	case "markdown":
		output = ui.RenderMarkdown(report.FormatAsMarkdown(), !ui.StdoutIsTerminal())
	default:
		output = report.FormatAsText()
	}

	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}
