// ABOUTME: Tests for JSONL event writer that persists file operation events
// ABOUTME: to disk in a queryable format.
package events_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pipekit/pipekit/internal/events"
)

var _ = Describe("JSONLWriter", func() {
	var (
		writer  *events.JSONLWriter
		tempDir string
		logPath string
	)

	BeforeEach(func() {
		var err error
		tempDir = GinkgoT().TempDir()
		logPath = filepath.Join(tempDir, "events", "operations.log")
		writer, err = events.NewJSONLWriter(logPath)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Write", func() {
		It("creates the log and its parent directory", func() {
			Expect(writer.Write(&events.FileOperation{
				Timestamp:  time.Now(),
				Operation:  "record compress",
				File:       "/repo/thoughts/decisions.md",
				ChangeType: events.ChangeTypeUpdate,
			})).To(Succeed())

			info, err := os.Stat(logPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0600)))
			Expect(writer.Path()).To(Equal(logPath))
		})

		It("appends one line per event", func() {
			for _, op := range []string{"record compress", "record summarize"} {
				Expect(writer.Write(&events.FileOperation{Timestamp: time.Now(), Operation: op})).To(Succeed())
			}

			data, err := os.ReadFile(logPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(HaveSuffix("\n"))
			Expect(len(splitLines(string(data)))).To(Equal(2))
		})
	})

	Describe("Query", func() {
		var timestamp1, timestamp2 time.Time

		BeforeEach(func() {
			timestamp1 = time.Now().Add(-2 * time.Hour)
			timestamp2 = time.Now().Add(-1 * time.Hour)

			for _, e := range []*events.FileOperation{
				{Timestamp: timestamp1, Operation: "record compress", File: "/a/decisions.md", ChangeType: "update"},
				{Timestamp: timestamp2, Operation: "record restore", File: "/b/decisions.md", ChangeType: "update"},
				{Timestamp: time.Now(), Operation: "record compress", File: "/a/decisions.md", ChangeType: "update"},
			} {
				Expect(writer.Write(e)).To(Succeed())
			}
		})

		It("returns all events newest first when no filters", func() {
			evts, err := writer.Query(events.EventFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(evts).To(HaveLen(3))
			Expect(evts[0].Timestamp.After(evts[1].Timestamp)).To(BeTrue())
			Expect(evts[1].Timestamp.After(evts[2].Timestamp)).To(BeTrue())
		})

		It("filters by file path", func() {
			evts, err := writer.Query(events.EventFilters{File: "/a/decisions.md"})
			Expect(err).NotTo(HaveOccurred())
			Expect(evts).To(HaveLen(2))
		})

		It("filters by operation substring", func() {
			evts, err := writer.Query(events.EventFilters{Operation: "restore"})
			Expect(err).NotTo(HaveOccurred())
			Expect(evts).To(HaveLen(1))
			Expect(evts[0].File).To(Equal("/b/decisions.md"))
		})

		It("filters by time", func() {
			evts, err := writer.Query(events.EventFilters{Since: timestamp2})
			Expect(err).NotTo(HaveOccurred())
			Expect(evts).To(HaveLen(2))
		})

		It("keeps the most recent events when limiting", func() {
			evts, err := writer.Query(events.EventFilters{Limit: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(evts).To(HaveLen(1))
			Expect(evts[0].Operation).To(Equal("record compress"))
			Expect(evts[0].Timestamp.After(timestamp2)).To(BeTrue())
		})

		It("skips malformed lines", func() {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0600)
			Expect(err).NotTo(HaveOccurred())
			_, _ = f.WriteString("{invalid json}\nnot json at all\n")
			Expect(f.Close()).To(Succeed())

			evts, err := writer.Query(events.EventFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(evts).To(HaveLen(3))
		})
	})

	It("returns an empty slice for a missing log", func() {
		empty, err := events.NewJSONLWriter(filepath.Join(tempDir, "none.log"))
		Expect(err).NotTo(HaveOccurred())

		evts, err := empty.Query(events.EventFilters{})
		Expect(err).NotTo(HaveOccurred())
		Expect(evts).NotTo(BeNil())
		Expect(evts).To(BeEmpty())
	})
})

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	return lines
}
