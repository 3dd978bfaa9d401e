// ABOUTME: Acceptance tests for 'pipekit record' subcommands
// ABOUTME: Exercises compress, summarize and restore on real files with backups
package acceptance

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pipekit/pipekit/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const decisionRecord = `# Pipeline Decision Record: add-rate-limits

## Issue Context
Issue #42 asks for rate limits on the public API.

## Research Phase (Complete ✅)
- **Status**: Complete
- **Document**: thoughts/research/rate-limits.md
- **Validated**: yes
Surveyed token bucket and sliding window options.
Picked token bucket.

## Planning Phase (Complete ✅)
- **Status**: Complete
- **Document**: thoughts/plans/rate-limits.md
Three implementation steps.

## Implementation Phase
- **Status**: In progress

## Current Status
Implementation underway.
`

var _ = Describe("record", func() {
	var (
		env  *helpers.TestEnv
		path string
	)

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
		path = env.WriteFile("decisions.md", decisionRecord)
	})

	archiveDir := func() string {
		return filepath.Join(filepath.Dir(path), "decisions-archive")
	}

	backups := func() []string {
		matches, err := filepath.Glob(filepath.Join(archiveDir(), "decision-record-backup-*.md"))
		Expect(err).NotTo(HaveOccurred())
		return matches
	}

	Describe("analyze", func() {
		It("prints counts", func() {
			result := env.Run("record", "analyze", path)

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Completed Phases: 2/3"))
			Expect(result.Stdout).To(ContainSubstring("Sections: 5"))
		})

		It("exits 1 for a missing record", func() {
			result := env.Run("record", "analyze", "nope.md")

			Expect(result.ExitCode).To(Equal(1))
			Expect(result.Stdout).To(ContainSubstring("Decision record file does not exist"))
		})
	})

	Describe("compress", func() {
		It("collapses completed phases and keeps a backup", func() {
			result := env.Run("record", "compress", path)
			Expect(result.ExitCode).To(Equal(0))

			content := env.ReadFile("decisions.md")
			Expect(strings.Count(content, "<details>")).To(Equal(4))
			Expect(content).To(ContainSubstring("## Implementation Phase\n- **Status**: In progress"))

			Expect(backups()).To(HaveLen(1))
			backup, err := os.ReadFile(backups()[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(string(backup)).To(Equal(decisionRecord))
		})

		It("records the rewrite in the event log", func() {
			env.Run("record", "compress", path)

			result := env.Run("events", "--operation", "record compress")
			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Found 1 event(s):"))
			Expect(result.Stdout).To(ContainSubstring(path))
		})

		It("does not record events when disabled", func() {
			env.WritePreferences(`{"preferences": {"disableEvents": true}}`)

			env.Run("record", "compress", path)

			_, err := os.Stat(env.EventsLog())
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	Describe("summarize", func() {
		It("archives phase details and links them", func() {
			result := env.Run("record", "summarize", path)
			Expect(result.ExitCode).To(Equal(0))

			content := env.ReadFile("decisions.md")
			Expect(content).To(ContainSubstring("## Archived Sections"))
			Expect(content).To(ContainSubstring("decisions-archive/research-phase-details.md"))
			Expect(content).NotTo(ContainSubstring("Picked token bucket."))

			details, err := os.ReadFile(filepath.Join(archiveDir(), "research-phase-details.md"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(details)).To(ContainSubstring("Picked token bucket."))
		})
	})

	Describe("restore", func() {
		It("undoes a compress with --yes", func() {
			env.Run("record", "compress", path)

			result := env.Run("--yes", "record", "restore", path)

			Expect(result.ExitCode).To(Equal(0))
			Expect(env.ReadFile("decisions.md")).To(Equal(decisionRecord))
		})

		It("asks before overwriting", func() {
			env.Run("record", "compress", path)
			compressed := env.ReadFile("decisions.md")

			result := env.RunWithInput("n\n", "record", "restore", path)

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Restore cancelled."))
			Expect(env.ReadFile("decisions.md")).To(Equal(compressed))
		})

		It("fails without backups", func() {
			result := env.Run("--yes", "record", "restore", path)

			Expect(result.ExitCode).To(Equal(1))
			Expect(result.Stderr).To(ContainSubstring("no backup files found"))
		})

		It("fails for an unknown backup file", func() {
			result := env.Run("--yes", "record", "restore", path, "--backup-file", "missing.md")

			Expect(result.ExitCode).To(Equal(1))
			Expect(result.Stderr).To(ContainSubstring("missing.md"))
		})
	})
})
