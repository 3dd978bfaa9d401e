// ABOUTME: Validate command implementation for pipeline configuration files
// ABOUTME: Checks a YAML config against the schema and optionally prints a report
package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pipekit/pipekit/internal/schema"
	"github.com/pipekit/pipekit/internal/ui"
	"github.com/pipekit/pipekit/internal/validator"
	"github.com/spf13/cobra"
)

var (
	validateSchema string
	validateOutput string
	validateReport bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a pipeline configuration file",
	Long: `Validate a YAML configuration file against the configuration schema.

Every violation is reported, not just the first. Unknown fields produce
warnings but never make a configuration invalid. Valid configurations are
shown with schema defaults applied.

The schema defaults to the schemaPath preference (configs/schema.yml).
Exits with status 1 when the configuration is invalid.`,
	Example: `  pipekit validate pipeline.yml
  pipekit validate pipeline.yml --report
  pipekit validate pipeline.yml --schema configs/schema.yml --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema file (default from preferences)")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", validator.FormatText, "Output format: text or json")
	validateCmd.Flags().BoolVar(&validateReport, "report", false, "Include recommendations and a configuration summary")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateOutput != validator.FormatText && validateOutput != validator.FormatJSON {
		return fmt.Errorf("invalid output format: %s (must be 'text' or 'json')", validateOutput)
	}
	if validateOutput == validator.FormatJSON {
		ui.DisableColor()
	}

	schemaPath := validateSchema
	if schemaPath == "" {
		prefs, err := loadPreferences()
		if err != nil {
			return err
		}
		schemaPath = prefs.SchemaPath
	}

	formatter := validator.NewFormatter(cmd.OutOrStdout())

	doc, err := schema.Load(schemaPath)
	if err != nil {
		if renderErr := formatter.RenderResult(schemaFailure(schemaPath, err), validateOutput); renderErr != nil {
			return renderErr
		}
		return exitWith(1)
	}

	v := validator.New(doc)

	var valid bool
	if validateReport {
		report := v.Report(args[0])
		err = formatter.RenderReport(report, validateOutput)
		valid = report.Valid
	} else {
		result := v.Validate(args[0])
		err = formatter.RenderResult(result, validateOutput)
		valid = result.Valid
	}
	if err != nil {
		return err
	}

	if !valid {
		return exitWith(1)
	}
	return nil
}

// schemaFailure turns a schema load error into a retrieval failure result
func schemaFailure(path string, err error) *validator.Result {
	if errors.Is(err, fs.ErrNotExist) {
		return &validator.Result{Error: fmt.Sprintf("Schema file not found: %s", path)}
	}
	return &validator.Result{
		Error:  fmt.Sprintf("Invalid schema file: %s", path),
		Detail: err.Error(),
	}
}
