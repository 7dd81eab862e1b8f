package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/convlog/internal/domain"
)

// NDJSONWriter writes run events as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // log messages are emitted as-is
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// FilesFoundOutput lists the files a run will scan
type FilesFoundOutput struct {
	Type          string   `json:"type"` // Always "files_found"
	SchemaVersion int      `json:"schemaVersion"`
	RunID         string   `json:"run_id"`
	Input         string   `json:"input"`
	Count         int      `json:"count"`
	Files         []string `json:"files"`
}

// FileErrorOutput reports a file that could not be scanned
type FileErrorOutput struct {
	Type          string `json:"type"` // Always "file_error"
	SchemaVersion int    `json:"schemaVersion"`
	RunID         string `json:"run_id"`
	Path          string `json:"path"`
	Error         string `json:"error"`
}

// ReportOutput reports a written report file
type ReportOutput struct {
	Type          string `json:"type"` // Always "report"
	SchemaVersion int    `json:"schemaVersion"`
	RunID         string `json:"run_id"`
	Format        string `json:"format"`
	Kind          string `json:"kind"`
	Path          string `json:"path"`
}

// SummaryOutput carries the final counts of a run
type SummaryOutput struct {
	Type          string                    `json:"type"` // Always "summary"
	SchemaVersion int                       `json:"schemaVersion"`
	RunID         string                    `json:"run_id"`
	TotalEntries  int                       `json:"total_entries"`
	LevelCounts   map[string]int            `json:"level_counts"`
	StepCounts    map[string]map[string]int `json:"step_counts"`
	Steps         []string                  `json:"steps"`
	FilesScanned  int                       `json:"files_scanned"`
	FileErrors    int                       `json:"file_errors"`
	Filtered      int                       `json:"filtered,omitempty"`
	DurationMS    int64                     `json:"duration_ms"`
	Patterns      []PatternMatch            `json:"patterns,omitempty"`
}

// VersionOutput describes the build
type VersionOutput struct {
	Type          string `json:"type"` // Always "version"
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
}

// ConfigOutput shows the effective configuration
type ConfigOutput struct {
	Type          string `json:"type"` // Always "config"
	SchemaVersion int    `json:"schemaVersion"`
	ConfigFile    string `json:"config_file,omitempty"`
	Config        any    `json:"config,omitempty"`
}

// NewSummaryOutput converts a summary into its NDJSON form. Every level is
// present in level_counts, zero or not.
func NewSummaryOutput(runID string, s domain.Summary) *SummaryOutput {
	levels := make(map[string]int, len(domain.Levels))
	for _, level := range domain.Levels {
		levels[string(level)] = s.Count(level)
	}

	steps := s.SortedSteps()
	stepCounts := make(map[string]map[string]int, len(steps))
	for _, step := range steps {
		counts := make(map[string]int)
		for _, level := range domain.Levels {
			if n := s.StepCount(step, level); n > 0 {
				counts[string(level)] = n
			}
		}
		stepCounts[step] = counts
	}

	return &SummaryOutput{
		Type:          "summary",
		SchemaVersion: SchemaVersion,
		RunID:         runID,
		TotalEntries:  s.TotalEntries,
		LevelCounts:   levels,
		StepCounts:    stepCounts,
		Steps:         steps,
	}
}

// WriteFilesFound outputs the discovered files
func (w *NDJSONWriter) WriteFilesFound(runID, input string, files []string) error {
	if files == nil {
		files = []string{}
	}
	return w.encoder.Encode(&FilesFoundOutput{
		Type:          "files_found",
		SchemaVersion: SchemaVersion,
		RunID:         runID,
		Input:         input,
		Count:         len(files),
		Files:         files,
	})
}

// WriteFileError outputs a per-file failure
func (w *NDJSONWriter) WriteFileError(runID string, fe *domain.FileError) error {
	msg := ""
	if fe.Err != nil {
		msg = fe.Err.Error()
	}
	return w.encoder.Encode(&FileErrorOutput{
		Type:          "file_error",
		SchemaVersion: SchemaVersion,
		RunID:         runID,
		Path:          fe.Path,
		Error:         msg,
	})
}

// WriteReport outputs a written report
func (w *NDJSONWriter) WriteReport(runID, format, kind, path string) error {
	return w.encoder.Encode(&ReportOutput{
		Type:          "report",
		SchemaVersion: SchemaVersion,
		RunID:         runID,
		Format:        format,
		Kind:          kind,
		Path:          path,
	})
}

// WriteSummary outputs the final summary
func (w *NDJSONWriter) WriteSummary(summary *SummaryOutput) error {
	summary.Type = "summary"
	summary.SchemaVersion = SchemaVersion
	return w.encoder.Encode(summary)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteVersion outputs build information
func (w *NDJSONWriter) WriteVersion(version, commit string) error {
	return w.encoder.Encode(&VersionOutput{
		Type:          "version",
		SchemaVersion: SchemaVersion,
		Version:       version,
		Commit:        commit,
	})
}

// WriteConfig outputs the effective configuration
func (w *NDJSONWriter) WriteConfig(configFile string, cfg any) error {
	return w.encoder.Encode(&ConfigOutput{
		Type:          "config",
		SchemaVersion: SchemaVersion,
		ConfigFile:    configFile,
		Config:        cfg,
	})
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v any) error {
	return w.encoder.Encode(v)
}
