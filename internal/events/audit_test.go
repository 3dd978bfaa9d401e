package events

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Audit Report Generation", func() {
	var (
		testEvents []*FileOperation
		baseTime   time.Time
	)

	BeforeEach(func() {
		baseTime = time.Date(2025, 12, 26, 14, 0, 0, 0, time.UTC)

		testEvents = []*FileOperation{
			{
				Timestamp:  baseTime,
				Operation:  "record compress",
				File:       "/repo/thoughts/decisions.md",
				ChangeType: ChangeTypeUpdate,
				Before:     &Snapshot{Hash: "abc123", Size: 5000},
				After:      &Snapshot{Hash: "def456", Size: 4200},
			},
			{
				Timestamp:  baseTime.Add(-1 * time.Hour),
				Operation:  "record summarize",
				File:       "/repo/thoughts/decisions-archive/implementation-phase-details.md",
				ChangeType: ChangeTypeCreate,
				After:      &Snapshot{Hash: "new456", Size: 950},
			},
			{
				Timestamp:  baseTime.Add(-25 * time.Hour),
				Operation:  "record compress",
				File:       "/repo/thoughts/decisions.md",
				ChangeType: ChangeTypeUpdate,
				Before:     &Snapshot{Hash: "prev123", Size: 5000},
				After:      &Snapshot{Hash: "abc123", Size: 5000},
				Error:      "disk full",
			},
		}
	})

	Describe("GenerateAuditReport", func() {
		It("captures metadata and events", func() {
			report := GenerateAuditReport(testEvents, AuditOptions{
				Operation: "record",
				Since:     baseTime.Add(-48 * time.Hour),
				Now:       baseTime,
			})

			Expect(report.GeneratedAt).To(Equal(baseTime))
			Expect(report.Operation).To(Equal("record"))
			Expect(report.Period).To(Equal("Last 2 days"))
			Expect(report.Events).To(HaveLen(3))
		})

		It("calculates summary statistics", func() {
			s := GenerateAuditReport(testEvents, AuditOptions{Now: baseTime}).Summary

			Expect(s.TotalEvents).To(Equal(3))
			Expect(s.FilesAffected).To(Equal([]string{
				"/repo/thoughts/decisions-archive/implementation-phase-details.md",
				"/repo/thoughts/decisions.md",
			}))
			Expect(s.Operations).To(Equal(map[string]int{"record compress": 2, "record summarize": 1}))
			Expect(s.ChangeTypes).To(Equal(map[string]int{ChangeTypeUpdate: 2, ChangeTypeCreate: 1}))
			Expect(s.Errors).To(Equal(1))
			Expect(s.SizeChanges).To(Equal(int64(-800)))
		})

		It("handles an empty event list", func() {
			s := calculateSummary(nil)
			Expect(s.TotalEvents).To(BeZero())
			Expect(s.FilesAffected).To(BeEmpty())
		})
	})

	DescribeTable("formatPeriod",
		func(ago time.Duration, want string) {
			now := time.Date(2025, 12, 26, 14, 0, 0, 0, time.UTC)
			since := time.Time{}
			if ago > 0 {
				since = now.Add(-ago)
			}
			Expect(formatPeriod(since, now)).To(Equal(want))
		},
		Entry("zero time", time.Duration(0), "All time"),
		Entry("hours", 5*time.Hour, "Last 24 hours"),
		Entry("one day", 30*time.Hour, "Last day"),
		Entry("days", 3*24*time.Hour, "Last 3 days"),
		Entry("one week", 8*24*time.Hour, "Last week"),
		Entry("weeks", 15*24*time.Hour, "Last 2 weeks"),
		Entry("one month", 35*24*time.Hour, "Last month"),
		Entry("months", 100*24*time.Hour, "Last 3 months"),
		Entry("over a year", 400*24*time.Hour, "Since 2024-11-21"),
	)

	Describe("groupEventsByDate", func() {
		It("returns dates newest first and keeps order within a date", func() {
			groups, dates := groupEventsByDate(testEvents)

			Expect(dates).To(Equal([]string{"2025-12-26", "2025-12-25"}))
			Expect(groups["2025-12-26"]).To(HaveLen(2))
			Expect(groups["2025-12-26"][0].Operation).To(Equal("record compress"))
			Expect(groups["2025-12-25"]).To(HaveLen(1))
		})
	})

	Describe("FormatAsText", func() {
		It("renders header, summary and timeline", func() {
			text := GenerateAuditReport(testEvents, AuditOptions{Now: baseTime}).FormatAsText()

			Expect(text).To(ContainSubstring("Audit Report: pipekit"))
			Expect(text).To(ContainSubstring("Generated: 2025-12-26 14:00:00"))
			Expect(text).To(ContainSubstring("Period: All time"))
			Expect(text).To(ContainSubstring("Files Modified: 2"))
			Expect(text).To(ContainSubstring("  - record compress: 2 events"))
			Expect(text).To(ContainSubstring("Changes: create (1), update (2)"))
			Expect(text).To(ContainSubstring("Errors: 1"))
			Expect(text).To(ContainSubstring("Total Size Change: -800 bytes"))
			Expect(text).To(ContainSubstring("[14:00:00] ✓ RECORD COMPRESS"))
			Expect(text).To(ContainSubstring("Change: update (-800 bytes)"))
			Expect(text).To(ContainSubstring("✗ RECORD COMPRESS"))
			Expect(text).To(ContainSubstring("Error: disk full"))
		})

		It("says so when there are no events", func() {
			text := GenerateAuditReport(nil, AuditOptions{Now: baseTime}).FormatAsText()
			Expect(text).To(ContainSubstring("No events to display."))
		})
	})

	Describe("FormatAsMarkdown", func() {
		It("renders markdown headings and code-formatted paths", func() {
			md := GenerateAuditReport(testEvents, AuditOptions{Now: baseTime}).FormatAsMarkdown()

			Expect(md).To(HavePrefix("# Audit Report: pipekit"))
			Expect(md).To(ContainSubstring("## Summary"))
			Expect(md).To(ContainSubstring("### 2025-12-26"))
			Expect(md).To(ContainSubstring("- **File:** `/repo/thoughts/decisions.md`"))
			Expect(md).To(ContainSubstring("- **Error:** disk full"))
		})
	})
})
