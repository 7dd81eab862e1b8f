package output

import (
	"io"

	"github.com/vburojevic/convlog/internal/domain"
)

// Emitter wraps NDJSONWriter and stamps every event with one run ID.
type Emitter struct {
	w     *NDJSONWriter
	runID string
}

func NewEmitter(w io.Writer, runID string) *Emitter {
	return &Emitter{w: NewNDJSONWriter(w), runID: runID}
}

func (e *Emitter) RunID() string { return e.runID }

func (e *Emitter) FilesFound(input string, files []string) error {
	return e.w.WriteFilesFound(e.runID, input, files)
}
func (e *Emitter) FileError(fe *domain.FileError) error { return e.w.WriteFileError(e.runID, fe) }
func (e *Emitter) Report(format, kind, path string) error {
	return e.w.WriteReport(e.runID, format, kind, path)
}
func (e *Emitter) Summary(s *SummaryOutput) error {
	s.RunID = e.runID
	return e.w.WriteSummary(s)
}
func (e *Emitter) Error(code, msg string, hint ...string) error {
	return e.w.WriteError(code, msg, hint...)
}
