// Package runner executes one analysis run: discover input files, scan them in
// order into an aggregator and write the requested reports.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/vburojevic/convlog/internal/analyzer"
	"github.com/vburojevic/convlog/internal/discovery"
	"github.com/vburojevic/convlog/internal/domain"
	"github.com/vburojevic/convlog/internal/filter"
	"github.com/vburojevic/convlog/internal/report"
	"github.com/vburojevic/convlog/internal/scanner"
)

var (
	// ErrInvalidInput is returned when the input path is neither a file nor a directory
	ErrInvalidInput = discovery.ErrInvalidInput
	// ErrNoInputFiles is returned when the input yields nothing to scan
	ErrNoInputFiles = errors.New("no log files found")
	// ErrInvalidFormat is returned for a report format other than csv, markdown or both
	ErrInvalidFormat = errors.New("invalid report format")
	// ErrInvalidEncoding is returned for an unknown text encoding
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrReportFailed is returned when at least one report could not be written
	ErrReportFailed = errors.New("report generation failed")
)

// progressEvery controls how often EventProgress is emitted while scanning
const progressEvery = 5000

// Options configures a run
type Options struct {
	RunID      string // generated when empty
	Input      string // file or directory
	OutputDir  string
	Format     string // csv, markdown or both
	Detailed   bool
	Encoding   string
	ChunkSize  int
	MaxEntries int // cap per level for Markdown detailed reports

	// Filter drops records before aggregation; nil keeps every record
	Filter filter.Filter

	Clock clock.Clock
}

// ReportFile is a report written by a run
type ReportFile struct {
	Format string `json:"format"`
	Kind   string `json:"kind"` // summary or detailed
	Path   string `json:"path"`
}

// ReportError is a report that could not be written
type ReportError struct {
	Format string
	Kind   string
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("%s %s report: %v", e.Format, e.Kind, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

// Result describes a finished run
type Result struct {
	RunID        string
	Files        []string
	FileErrors   []*domain.FileError
	Filtered     int // records dropped by Options.Filter
	Summary      domain.Summary
	Reports      []ReportFile
	ReportErrors []*ReportError
	Duration     time.Duration
}

// ParseFormats expands csv, markdown or both into the list of report formats
func ParseFormats(s string) ([]string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return []string{report.FormatCSV, report.FormatMarkdown}, nil
	case "csv":
		return []string{report.FormatCSV}, nil
	case "markdown", "md":
		return []string{report.FormatMarkdown}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want csv, markdown or both)", ErrInvalidFormat, s)
	}
}

// Run performs one analysis into agg, calling emit (which may be nil) with
// progress events. Per-file failures are collected in the result and do not
// stop the run. Cancelling ctx stops scanning and skips report generation.
// A non-nil Result is returned whenever scanning took place.
func Run(ctx context.Context, opts Options, agg *analyzer.Aggregator, emit func(Event)) (*Result, error) {
	if emit == nil {
		emit = func(Event) {}
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	formats, err := ParseFormats(opts.Format)
	if err != nil {
		return nil, err
	}
	if _, err := scanner.ResolveEncoding(opts.Encoding); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	files, err := discovery.Find(opts.Input)
	if err != nil {
		return nil, err
	}
	emit(Event{Type: EventFilesFound, RunID: runID, Files: files, FileCount: len(files)})
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputFiles, opts.Input)
	}

	start := clk.Now()
	result := &Result{RunID: runID, Files: files}

	fileIndex := 0
	hooks := scanner.Hooks{
		FileStarted: func(path string) {
			fileIndex++
			emit(Event{Type: EventFileStarted, RunID: runID, Path: path, FileIndex: fileIndex, FileCount: len(files), Entries: agg.Total()})
		},
		FileDone: func(path string, lines int) {
			emit(Event{Type: EventFileDone, RunID: runID, Path: path, FileIndex: fileIndex, FileCount: len(files), Lines: lines, Entries: agg.Total(), Counts: agg.LevelFrequency()})
		},
		FileFailed: func(path string, err error) {
			result.FileErrors = append(result.FileErrors, &domain.FileError{Path: path, Err: err})
			emit(Event{Type: EventFileFailed, RunID: runID, Path: path, FileIndex: fileIndex, FileCount: len(files), Err: err, Entries: agg.Total()})
		},
	}
	scanOpts := scanner.Options{Encoding: opts.Encoding, ChunkSize: opts.ChunkSize}

	added := 0
	for path, rec := range scanner.ScanFiles(ctx, files, scanOpts, hooks) {
		if opts.Filter != nil && !opts.Filter.Match(&rec) {
			result.Filtered++
			continue
		}
		agg.Add(rec, filepath.Base(path))
		added++
		if added%progressEvery == 0 {
			emit(Event{Type: EventProgress, RunID: runID, Path: path, FileIndex: fileIndex, FileCount: len(files), Entries: agg.Total(), Counts: agg.LevelFrequency()})
		}
	}

	result.Summary = agg.Summary()
	result.Duration = clk.Since(start)
	if err := ctx.Err(); err != nil {
		return result, err
	}

	writeReports(opts, clk, formats, agg, result, runID, emit)
	result.Duration = clk.Since(start)

	summary := result.Summary
	emit(Event{Type: EventCompleted, RunID: runID, FileCount: len(files), Entries: summary.TotalEntries, Summary: &summary})

	if len(result.ReportErrors) > 0 {
		errs := make([]error, 0, len(result.ReportErrors))
		for _, re := range result.ReportErrors {
			errs = append(errs, re)
		}
		return result, fmt.Errorf("%w: %w", ErrReportFailed, errors.Join(errs...))
	}
	return result, nil
}

// writeReports writes every requested report; a failure is recorded and the
// remaining reports are still attempted
func writeReports(opts Options, clk clock.Clock, formats []string, agg *analyzer.Aggregator, result *Result, runID string, emit func(Event)) {
	writerOpts := []report.Option{report.WithClock(clk), report.WithMaxEntries(opts.MaxEntries)}

	for _, format := range formats {
		w, err := report.New(format, opts.OutputDir, writerOpts...)
		if err != nil {
			result.ReportErrors = append(result.ReportErrors, &ReportError{Format: format, Kind: "summary", Err: err})
			continue
		}

		record := func(kind, path string, err error) {
			if err != nil {
				re := &ReportError{Format: format, Kind: kind, Err: err}
				result.ReportErrors = append(result.ReportErrors, re)
				emit(Event{Type: EventReportFailed, RunID: runID, Format: format, Kind: kind, Err: re})
				return
			}
			result.Reports = append(result.Reports, ReportFile{Format: format, Kind: kind, Path: path})
			emit(Event{Type: EventReportWritten, RunID: runID, Format: format, Kind: kind, Path: path})
		}

		path, err := w.WriteSummary(result.Summary, "")
		record("summary", path, err)

		if opts.Detailed {
			path, err := w.WriteDetailed(agg, "")
			record("detailed", path, err)
		}
	}
}
