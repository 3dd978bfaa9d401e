// ABOUTME: Acceptance tests for 'pipekit events' and 'pipekit events audit'
// ABOUTME: Reads a prepared event log through the built binary
package acceptance

import (
	"path/filepath"
	"time"

	"github.com/pipekit/pipekit/internal/events"
	"github.com/pipekit/pipekit/test/helpers"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("events", func() {
	var env *helpers.TestEnv

	BeforeEach(func() {
		env = helpers.NewTestEnv(binaryPath)
	})

	Context("with no events", func() {
		It("shows informational message", func() {
			result := env.Run("events")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("No events recorded yet"))
		})

		It("shows informational message for audit", func() {
			result := env.Run("events", "audit")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("No events recorded yet"))
		})
	})

	Context("with event log", func() {
		var record string

		BeforeEach(func() {
			record = filepath.Join(env.WorkDir, "decisions.md")
			writer, err := events.NewJSONLWriter(env.EventsLog())
			Expect(err).NotTo(HaveOccurred())

			now := time.Now()
			for _, e := range []*events.FileOperation{
				{
					Timestamp:  now.Add(-2 * time.Hour),
					Operation:  "record compress",
					File:       record,
					ChangeType: events.ChangeTypeUpdate,
					Before:     &events.Snapshot{Hash: "aaa", Size: 4000},
					After:      &events.Snapshot{Hash: "bbb", Size: 2500},
				},
				{
					Timestamp:  now.Add(-1 * time.Hour),
					Operation:  "record summarize",
					File:       record,
					ChangeType: events.ChangeTypeUpdate,
					Before:     &events.Snapshot{Hash: "bbb", Size: 2500},
					After:      &events.Snapshot{Hash: "ccc", Size: 1200},
				},
				{
					Timestamp:  now.Add(-10 * 24 * time.Hour),
					Operation:  "record restore",
					File:       record,
					ChangeType: events.ChangeTypeUpdate,
					Error:      "permission denied",
				},
			} {
				Expect(writer.Write(e)).To(Succeed())
			}
		})

		It("lists events newest first", func() {
			result := env.Run("events")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Found 3 event(s):"))
			Expect(result.Stdout).To(MatchRegexp(`(?s)RECORD SUMMARIZE.*RECORD COMPRESS.*RECORD RESTORE`))
			Expect(result.Stdout).To(ContainSubstring("Error: permission denied"))
		})

		It("filters by time window", func() {
			result := env.Run("events", "--since", "24h")

			Expect(result.Stdout).To(ContainSubstring("Found 2 event(s):"))
			Expect(result.Stdout).NotTo(ContainSubstring("RECORD RESTORE"))
		})

		It("limits the number of events", func() {
			result := env.Run("events", "--limit", "1")

			Expect(result.Stdout).To(ContainSubstring("Found 1 event(s):"))
			Expect(result.Stdout).To(ContainSubstring("RECORD SUMMARIZE"))
		})

		It("filters by file relative to the working directory", func() {
			result := env.Run("events", "--file", "decisions.md")

			Expect(result.Stdout).To(ContainSubstring("Found 3 event(s):"))
		})

		It("generates a text audit report for the last week", func() {
			result := env.Run("events", "audit")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("Audit Report: pipekit"))
			Expect(result.Stdout).To(ContainSubstring("Total Events: 2"))
		})

		It("generates a markdown audit report", func() {
			result := env.Run("events", "audit", "--format", "markdown", "--since", "30d")

			Expect(result.ExitCode).To(Equal(0))
			Expect(result.Stdout).To(ContainSubstring("# Audit Report: pipekit"))
			Expect(result.Stdout).To(ContainSubstring("- **Files Modified:** 1"))
		})

		It("rejects unknown formats", func() {
			result := env.Run("events", "audit", "--format", "html")

			Expect(result.ExitCode).To(Equal(1))
			Expect(result.Stderr).To(ContainSubstring("invalid format"))
		})
	})
})
