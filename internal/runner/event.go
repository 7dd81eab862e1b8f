package runner

import "github.com/vburojevic/convlog/internal/domain"

// EventType identifies a progress notification
type EventType string

const (
	EventFilesFound    EventType = "files_found"
	EventFileStarted   EventType = "file_started"
	EventProgress      EventType = "progress"
	EventFileDone      EventType = "file_done"
	EventFileFailed    EventType = "file_failed"
	EventReportWritten EventType = "report_written"
	EventReportFailed  EventType = "report_failed"
	EventCompleted     EventType = "completed"
)

// Event is a progress notification emitted during a run. Fields not relevant
// to Type are left zero.
type Event struct {
	Type      EventType
	RunID     string
	Path      string // file or report path
	Files     []string
	FileIndex int // 1-based index of the current file
	FileCount int
	Lines     int
	Entries   int // records aggregated so far
	Counts    map[domain.Level]int
	Format    string
	Kind      string
	Err       error
	Summary   *domain.Summary
}
