// ABOUTME: Events command implementation for viewing file operation history
// ABOUTME: Displays tracked file changes with filtering options
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pipekit/pipekit/internal/config"
	"github.com/pipekit/pipekit/internal/events"
	"github.com/pipekit/pipekit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	eventsFile      string
	eventsOperation string
	eventsSince     string
	eventsLimit     int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "View file operation history",
	Long: `Display file writes made by pipekit, newest first.

Events are stored as JSON lines in <home>/events/operations.log.
Set the disableEvents preference to stop recording.`,
	Example: `  pipekit events                          # Show recent events
  pipekit events --limit 50
  pipekit events --file thoughts/decisions.md
  pipekit events --operation "record compress"
  pipekit events --since 24h`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().StringVar(&eventsFile, "file", "", "Filter by file path")
	eventsCmd.Flags().StringVar(&eventsOperation, "operation", "", "Filter by operation name")
	eventsCmd.Flags().StringVar(&eventsSince, "since", "", "Show events since duration (e.g., 24h, 7d)")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 20, "Maximum number of events to show")
}

// openEventLog returns a writer for querying, or nil when nothing was
// recorded yet
func openEventLog() (*events.JSONLWriter, error) {
	logPath := config.EventsLogPath()
	if _, err := os.Stat(logPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	writer, err := events.NewJSONLWriter(logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open events log: %w", err)
	}
	return writer, nil
}

func runEvents(cmd *cobra.Command, args []string) error {
	writer, err := openEventLog()
	if err != nil {
		return err
	}
	if writer == nil {
		ui.PrintInfo("No events recorded yet.")
		ui.PrintMuted("Decision record rewrites are tracked automatically.")
		return nil
	}

	since, err := parseSince(eventsSince, time.Now())
	if err != nil {
		return err
	}

	file := eventsFile
	if file != "" {
		if abs, err := filepath.Abs(file); err == nil {
			file = abs
		}
	}

	eventList, err := writer.Query(events.EventFilters{
		File:      file,
		Operation: eventsOperation,
		Since:     since,
		Limit:     eventsLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to query events: %w", err)
	}

	if len(eventList) == 0 {
		ui.PrintInfo("No events found matching the filters.")
		return nil
	}

	ui.PrintSuccess(fmt.Sprintf("Found %d event(s):", len(eventList)))
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	for _, event := range eventList {
		displayEvent(event)
		fmt.Fprintln(out)
	}
	return nil
}

func displayEvent(event *events.FileOperation) {
	out := ui.Output()

	statusIcon := ui.SymbolSuccess
	if event.Error != "" {
		statusIcon = ui.SymbolError
	}
	fmt.Fprintf(out, "%s  %s  %s\n",
		statusIcon,
		event.Timestamp.Local().Format("2006-01-02 15:04:05"),
		ui.Bold(strings.ToUpper(event.Operation)),
	)

	fmt.Fprintf(out, "  File: %s\n", event.File)
	fmt.Fprintf(out, "  Change: %s\n", ui.Info(changeSymbol(event.ChangeType)+" "+event.ChangeType))

	if event.Before != nil && event.After != nil {
		sizeDiff := event.After.Size - event.Before.Size
		sizeDiffStr := fmt.Sprintf("%+d bytes", sizeDiff)
		if sizeDiff == 0 {
			sizeDiffStr = "no size change"
		}
		fmt.Fprintf(out, "  Size: %s\n", sizeDiffStr)
	}

	if backup, ok := event.Context["backup"].(string); ok {
		fmt.Fprintf(out, "  Backup: %s\n", ui.Muted(backup))
	}

	if event.Error != "" {
		fmt.Fprintf(out, "  %s\n", ui.Error("Error: "+event.Error))
	}
}

func changeSymbol(changeType string) string {
	switch changeType {
	case events.ChangeTypeCreate:
		return ui.SymbolCreated
	case events.ChangeTypeUpdate:
		return ui.SymbolModified
	case events.ChangeTypeDelete:
		return ui.SymbolDeleted
	default:
		return ui.SymbolArrow
	}
}

// parseSince accepts a duration ("24h", "7d") or a date ("2025-01-31").
// An empty value means no lower bound.
func parseSince(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if date, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return date, nil
	}
	d, err := parseDuration(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since value %q: use a duration like 24h or 7d, or a date like 2025-01-31", value)
	}
	return now.Add(-d), nil
}

// parseDuration parses duration strings like "24h", "7d", "30m"
func parseDuration(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid day count: %s", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration: %s", s)
	}
	return d, nil
}
