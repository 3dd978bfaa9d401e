// ABOUTME: Root command and CLI initialization for pipekit
// ABOUTME: Sets up cobra command structure and global flags
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pipekit/pipekit/internal/config"
	"github.com/pipekit/pipekit/internal/ui"
	"github.com/spf13/cobra"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "pipekit",
	Short: "Validate pipeline configuration and maintain decision records",
	Long: `pipekit supports a documentation-driven pipeline workflow.

It provides:
  - Configuration validation against a declarative schema
  - Defaults, recommendations and summary reports for valid configurations
  - Decision record compression, summarization and restore
  - An audit trail of every file pipekit rewrites`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version for the root command
func SetVersion(version string) {
	rootCmd.Version = version
}

func init() {
	ui.SetupHelpTemplate(rootCmd)

	rootCmd.PersistentFlags().StringVar(&config.HomeOverride, "home", "", "pipekit home directory (default $"+config.HomeEnv+" or ~/.pipekit)")
	rootCmd.PersistentFlags().BoolVarP(&config.YesFlag, "yes", "y", false, "Skip all prompts, use defaults")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func setupGlobals(cmd *cobra.Command, args []string) error {
	ui.SetOutput(cmd.OutOrStdout())
	ui.SetInput(cmd.InOrStdin())

	if noColor {
		ui.DisableColor()
	}

	if config.HomeOverride != "" {
		abs, err := filepath.Abs(config.HomeOverride)
		if err != nil {
			return fmt.Errorf("invalid --home: %w", err)
		}
		config.HomeOverride = abs
	}
	return nil
}

// loadPreferences reads the preferences file, falling back to defaults
func loadPreferences() (config.Preferences, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Preferences{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.Preferences, nil
}
