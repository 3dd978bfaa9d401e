// ABOUTME: Acceptance tests for 'pipekit validate'
// ABOUTME: Covers exit codes, text and JSON output, and reports with the shipped schema
package acceptance

import (
	"encoding/json"

	"github.com/pipekit/pipekit/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("validate", func() {
	var (
		env    *helpers.TestEnv
		schema string
	)

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
		schema = helpers.SchemaPath()
	})

	It("accepts a minimal configuration", func() {
		cfg := env.WriteFile("pipeline.yml", "repo_name: docs-site\n")

		result := env.Run("validate", cfg, "--schema", schema)

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Configuration validation PASSED"))
		Expect(result.Stderr).To(BeEmpty())
	})

	It("exits 1 and lists every error", func() {
		cfg := env.WriteFile("pipeline.yml", `repo_name: Docs Site
validation:
  research_min_refs: 50
  strict_mode: "yes"
notifications:
  on: sometimes
`)

		result := env.Run("validate", cfg, "--schema", schema)

		Expect(result.ExitCode).To(Equal(1))
		Expect(result.Stdout).To(ContainSubstring("Configuration validation FAILED"))
		Expect(result.Stdout).To(ContainSubstring("repo_name: Value 'Docs Site' doesn't match pattern"))
		Expect(result.Stdout).To(ContainSubstring("validation.research_min_refs: Value 50 above maximum 10"))
		Expect(result.Stdout).To(ContainSubstring("validation.strict_mode: Expected boolean, got string"))
		Expect(result.Stdout).To(ContainSubstring("notifications.on: Value 'sometimes' not in allowed values"))
		Expect(result.Stderr).To(BeEmpty())
	})

	It("reports a missing required field", func() {
		cfg := env.WriteFile("pipeline.yml", "base_branch: develop\n")

		result := env.Run("validate", cfg, "--schema", schema)

		Expect(result.ExitCode).To(Equal(1))
		Expect(result.Stdout).To(ContainSubstring("missing required field: repo_name"))
	})

	It("warns about unknown fields without failing", func() {
		cfg := env.WriteFile("pipeline.yml", "repo_name: docs-site\nlegacy_mode: true\n")

		result := env.Run("validate", cfg, "--schema", schema)

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("unknown field (will be ignored): legacy_mode"))
	})

	It("prints defaults in JSON output", func() {
		cfg := env.WriteFile("pipeline.yml", "repo_name: docs-site\n")

		result := env.Run("validate", cfg, "--schema", schema, "--output", "json")
		Expect(result.ExitCode).To(Equal(0))

		var out map[string]interface{}
		Expect(json.Unmarshal([]byte(result.Stdout), &out)).To(Succeed())
		Expect(out["valid"]).To(BeTrue())
		enhanced := out["enhanced_config"].(map[string]interface{})
		Expect(enhanced).To(HaveKeyWithValue("base_branch", "main"))
		Expect(enhanced).To(HaveKeyWithValue("thoughts_directory", "thoughts"))
		Expect(enhanced["validation"]).To(HaveKeyWithValue("research_min_refs", BeNumerically("==", 3)))
	})

	It("reports a missing configuration file", func() {
		result := env.Run("validate", "missing.yml", "--schema", schema, "-o", "json")

		Expect(result.ExitCode).To(Equal(1))
		Expect(result.Stdout).To(MatchJSON(`{"valid": false, "error": "Configuration file not found: missing.yml"}`))
	})

	It("reports malformed YAML", func() {
		cfg := env.WriteFile("pipeline.yml", "repo_name: [unclosed\n")

		result := env.Run("validate", cfg, "--schema", schema)

		Expect(result.ExitCode).To(Equal(1))
		Expect(result.Stdout).To(ContainSubstring("Invalid YAML syntax in " + cfg))
	})

	It("prints a report for an API repository", func() {
		cfg := env.WriteFile("payments.yml", `repo_name: payments-api
validation:
  research_min_refs: 2
`)

		result := env.Run("validate", cfg, "--schema", schema, "--report")

		Expect(result.ExitCode).To(Equal(0))
		Expect(result.Stdout).To(ContainSubstring("Configuration Report for payments-api"))
		Expect(result.Stdout).To(ContainSubstring("Detected API/service repository"))
		Expect(result.Stdout).To(ContainSubstring("Consider increasing research_min_refs to at least 3"))
		Expect(result.Stdout).To(ContainSubstring("Consider adding default_reviewers"))
	})

	It("reads the schema path from preferences", func() {
		env.WritePreferences(`{"preferences": {"schemaPath": "` + schema + `"}}`)
		cfg := env.WriteFile("pipeline.yml", "repo_name: docs-site\n")

		result := env.Run("validate", cfg)

		Expect(result.ExitCode).To(Equal(0))
	})

	It("fails on a missing schema", func() {
		cfg := env.WriteFile("pipeline.yml", "repo_name: docs-site\n")

		result := env.Run("validate", cfg, "--schema", "nope.yml")

		Expect(result.ExitCode).To(Equal(1))
		Expect(result.Stdout).To(ContainSubstring("Schema file not found: nope.yml"))
	})
})
