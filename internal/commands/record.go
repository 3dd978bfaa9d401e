// ABOUTME: Record command implementation for decision record maintenance
// ABOUTME: Analyzes, compresses, summarizes, restores and displays records
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pipekit/pipekit/internal/events"
	"github.com/pipekit/pipekit/internal/record"
	"github.com/pipekit/pipekit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	recordAuto       bool
	recordBackupFile string
	recordRaw        bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Maintain pipeline decision records",
	Long: `Keep growing decision records readable.

Every rewrite first copies the record to <name>-archive/ next to it as
decision-record-backup-YYYYMMDD-HHMMSS.md, so any change can be undone
with 'pipekit record restore'.`,
}

var recordAnalyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Show size and structure of a decision record",
	Long: `Show line, word, phase and section counts for a decision record.

With --auto, summarize records above the summarize threshold (200 lines)
or compress records above the compress threshold (150 lines). Thresholds
come from the compressThreshold and summarizeThreshold preferences.`,
	Example: `  pipekit record analyze thoughts/decisions.md
  pipekit record analyze thoughts/decisions.md --auto`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordAnalyze,
}

var recordCompressCmd = &cobra.Command{
	Use:   "compress <file>",
	Short: "Collapse completed phases into expandable blocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordCompress,
}

var recordSummarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Archive completed phase details and keep a summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordSummarize,
}

var recordRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore a decision record from a backup",
	Long: `Overwrite a decision record with a backup.

Uses the most recently modified backup unless --backup-file is given.
Asks for confirmation unless --yes is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordRestore,
}

var recordShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Render a decision record as markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordShow,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.AddCommand(recordAnalyzeCmd, recordCompressCmd, recordSummarizeCmd, recordRestoreCmd, recordShowCmd)

	recordAnalyzeCmd.Flags().BoolVar(&recordAuto, "auto", false, "Compress or summarize based on size")
	recordRestoreCmd.Flags().StringVar(&recordBackupFile, "backup-file", "", "Specific backup file to restore from")
	recordShowCmd.Flags().BoolVar(&recordRaw, "raw", false, "Print markdown without styling")
}

func newRecordManager(path string) (*record.Manager, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid record path: %w", err)
	}
	return record.NewManager(abs, record.WithTracker(events.GlobalTracker())), nil
}

func runRecordAnalyze(cmd *cobra.Command, args []string) error {
	manager, err := newRecordManager(args[0])
	if err != nil {
		return err
	}

	analysis, err := manager.Analyze()
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", args[0], err)
	}
	if !analysis.Exists {
		ui.PrintError("Decision record file does not exist")
		return exitWith(1)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.RenderSection("Decision Record Analysis", -1))
	for _, d := range [][2]string{
		{"Lines", fmt.Sprintf("%d", analysis.Lines)},
		{"Words", fmt.Sprintf("%d", analysis.Words)},
		{"File Size", fmt.Sprintf("%d bytes", analysis.FileSize)},
		{"Completed Phases", fmt.Sprintf("%d/%d", analysis.CompletedPhases, analysis.TotalPhases)},
		{"Sections", fmt.Sprintf("%d", analysis.Sections)},
		{"Subsections", fmt.Sprintf("%d", analysis.Subsections)},
	} {
		fmt.Fprintln(out, ui.Indent(ui.RenderDetail(d[0], d[1]), 1))
	}

	if !recordAuto {
		return nil
	}

	prefs, err := loadPreferences()
	if err != nil {
		return err
	}
	thresholds := record.Thresholds{
		Compress:  prefs.CompressThreshold,
		Summarize: prefs.SummarizeThreshold,
	}

	fmt.Fprintln(out)
	switch record.Plan(analysis, thresholds) {
	case record.ActionSummarize:
		ui.PrintInfo("File is large, applying summarization...")
		result, err := manager.Summarize()
		if err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Summarized: %d %s %d lines", result.OriginalLines, ui.SymbolArrow, result.SummaryLines))
	case record.ActionCompress:
		ui.PrintInfo("File is getting large, applying compression...")
		result, err := manager.Compress()
		if err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Compressed: %d %s %d lines", result.OriginalLines, ui.SymbolArrow, result.CompressedLines))
	default:
		ui.PrintSuccess("File size is manageable, no action needed")
	}
	return nil
}

func runRecordCompress(cmd *cobra.Command, args []string) error {
	manager, err := newRecordManager(args[0])
	if err != nil {
		return err
	}

	result, err := manager.Compress()
	if err != nil {
		return err
	}

	if result.Sections == 0 {
		ui.PrintWarning("No uncompressed completed phases found")
	} else {
		ui.PrintSuccess("Compressed completed phases")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Indent(ui.RenderDetail("Lines", fmt.Sprintf("%d %s %d", result.OriginalLines, ui.SymbolArrow, result.CompressedLines)), 1))
	fmt.Fprintln(out, ui.Indent(ui.RenderDetail("Sections", fmt.Sprintf("%d", result.Sections)), 1))
	fmt.Fprintln(out, ui.Indent(ui.RenderDetail("Backup", result.BackupFile), 1))
	return nil
}

func runRecordSummarize(cmd *cobra.Command, args []string) error {
	manager, err := newRecordManager(args[0])
	if err != nil {
		return err
	}

	result, err := manager.Summarize()
	if err != nil {
		return err
	}

	if len(result.ArchivedFiles) == 0 {
		ui.PrintWarning("No new completed phases to archive")
	} else {
		ui.PrintSuccess("Created summary version")
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Indent(ui.RenderDetail("Lines", fmt.Sprintf("%d %s %d", result.OriginalLines, ui.SymbolArrow, result.SummaryLines)), 1))
	fmt.Fprintln(out, ui.Indent(ui.RenderDetail("Backup", result.BackupFile), 1))
	fmt.Fprintln(out, ui.Indent(ui.RenderDetail("Archived", fmt.Sprintf("%d sections", len(result.ArchivedFiles))), 1))
	return nil
}

func runRecordRestore(cmd *cobra.Command, args []string) error {
	manager, err := newRecordManager(args[0])
	if err != nil {
		return err
	}

	backupFile := recordBackupFile
	if backupFile == "" {
		backups, err := manager.Backups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("%w in %s", record.ErrNoBackups, manager.ArchiveDir())
		}
		backupFile = backups[0].Path
	}

	ok, err := ui.ConfirmYesNo(fmt.Sprintf("Overwrite %s with %s?", manager.Path(), filepath.Base(backupFile)))
	if err != nil {
		return err
	}
	if !ok {
		ui.PrintMuted("Restore cancelled.")
		return nil
	}

	result, err := manager.Restore(backupFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("backup file not found: %s", backupFile)
		}
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Restored from: %s", result.FromBackup))
	return nil
}

func runRecordShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read decision record: %w", err)
	}

	raw := recordRaw || !ui.StdoutIsTerminal()
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderMarkdown(string(data), raw))
	return nil
}
