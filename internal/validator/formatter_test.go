// ABOUTME: Tests for text and JSON rendering of validation output
// ABOUTME: Renders into buffers and checks the visible content
package validator_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pipekit/pipekit/internal/validator"
	"github.com/pipekit/pipekit/internal/value"
)

var _ = Describe("Formatter", func() {
	var (
		buf *bytes.Buffer
		f   *validator.Formatter
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		f = validator.NewFormatter(buf)
	})

	It("renders a passing result with warnings", func() {
		Expect(f.RenderResult(&validator.Result{
			Valid:    true,
			Warnings: []string{"unknown field (will be ignored): legacy"},
		}, validator.FormatText)).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("Configuration validation PASSED"))
		Expect(buf.String()).To(ContainSubstring("unknown field (will be ignored): legacy"))
	})

	It("renders every error of a failing result", func() {
		Expect(f.RenderResult(&validator.Result{
			Errors: []string{"missing required field: repo_name", "team: Expected object, got array"},
		}, validator.FormatText)).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("Configuration validation FAILED"))
		Expect(out).To(ContainSubstring("missing required field: repo_name"))
		Expect(out).To(ContainSubstring("team: Expected object, got array"))
	})

	It("renders retrieval failures with their detail", func() {
		Expect(f.RenderResult(&validator.Result{
			Error:  "Invalid YAML syntax in bad.yml",
			Detail: "yaml: line 1: did not find expected node content",
		}, validator.FormatText)).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("Invalid YAML syntax in bad.yml"))
		Expect(buf.String()).To(ContainSubstring("did not find expected node content"))
	})

	It("renders results as JSON", func() {
		Expect(f.RenderResult(&validator.Result{
			Errors: []string{"missing required field: repo_name"},
		}, validator.FormatJSON)).To(Succeed())

		Expect(buf.String()).To(MatchJSON(`{
			"valid": false,
			"errors": ["missing required field: repo_name"],
			"warnings": []
		}`))
	})

	It("renders a report summary and recommendations", func() {
		report := &validator.Report{
			Result:     &validator.Result{Valid: true, EnhancedConfig: value.NewObject()},
			ConfigFile: "payments.yml",
			RepoName:   value.String("payments-api"),
			Recommendations: []validator.Recommendation{
				{Type: "repository_type", Message: "Detected API/service repository."},
			},
			Summary: &validator.Summary{
				BaseBranch:        value.String("main"),
				ThoughtsDirectory: value.String("thoughts"),
				TeamSize:          2,
				ParallelPipelines: value.Int(3),
			},
		}
		Expect(f.RenderReport(report, validator.FormatText)).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("Configuration Report for payments-api"))
		Expect(out).To(ContainSubstring("main"))
		Expect(out).To(ContainSubstring("(not set)"))
		Expect(out).To(ContainSubstring("[repository_type]"))
		Expect(out).To(ContainSubstring("Detected API/service repository."))
	})

	It("renders an invalid report as a failure", func() {
		report := &validator.Report{Result: &validator.Result{Error: "Configuration file not found: x.yml"}}
		Expect(f.RenderReport(report, validator.FormatText)).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("Configuration validation FAILED"))
		Expect(buf.String()).To(ContainSubstring("Configuration file not found: x.yml"))
	})
})
