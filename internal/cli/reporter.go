package cli

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/vburojevic/convlog/internal/analyzer"
	"github.com/vburojevic/convlog/internal/domain"
	"github.com/vburojevic/convlog/internal/output"
	"github.com/vburojevic/convlog/internal/runner"
)

// maxPatterns caps the recurring message groups shown after a run
const maxPatterns = 5

// runReporter turns runner events and results into command output
type runReporter struct {
	globals *Globals
	input   string
	emitter *output.Emitter
	text    *output.TextWriter
	errText *output.TextWriter
}

func newRunReporter(globals *Globals, runID, input string) *runReporter {
	return &runReporter{
		globals: globals,
		input:   input,
		emitter: output.NewEmitter(globals.Stdout, runID),
		text:    output.NewTextWriter(globals.Stdout, useColor(globals.Stdout)),
		errText: output.NewTextWriter(globals.Stderr, useColor(globals.Stderr)),
	}
}

func (r *runReporter) ndjson() bool { return r.globals.Format == "ndjson" }

// handle writes progress for a live run
func (r *runReporter) handle(ev runner.Event) {
	g := r.globals
	switch ev.Type {
	case runner.EventFilesFound:
		for _, f := range ev.Files {
			g.Debug("found log file", zap.String("path", f))
		}
		r.filesFound(ev.Files)
	case runner.EventFileStarted:
		g.Debug("processing", zap.String("path", ev.Path), zap.Int("file", ev.FileIndex), zap.Int("of", ev.FileCount))
	case runner.EventFileDone:
		g.Debug("file done", zap.String("path", ev.Path), zap.Int("lines", ev.Lines), zap.Int("entries", ev.Entries))
	case runner.EventFileFailed:
		g.logger().Warn("skipping file", zap.String("path", ev.Path), zap.Error(ev.Err))
		r.fileError(&domain.FileError{Path: ev.Path, Err: ev.Err})
	case runner.EventReportWritten:
		r.report(ev.Format, ev.Kind, ev.Path)
	case runner.EventReportFailed:
		g.logger().Warn("report failed", zap.String("format", ev.Format), zap.String("kind", ev.Kind), zap.Error(ev.Err))
	}
}

// replay writes the progress of a run that was followed elsewhere
func (r *runReporter) replay(result *runner.Result) {
	if result == nil {
		return
	}
	r.filesFound(result.Files)
	for _, fe := range result.FileErrors {
		r.fileError(fe)
	}
	for _, rf := range result.Reports {
		r.report(rf.Format, rf.Kind, rf.Path)
	}
}

func (r *runReporter) filesFound(files []string) {
	if r.globals.Quiet {
		return
	}
	if r.ndjson() {
		_ = r.emitter.FilesFound(r.input, files)
		return
	}
	_ = r.text.WriteFilesFound(r.input, files)
}

func (r *runReporter) fileError(fe *domain.FileError) {
	if r.ndjson() {
		_ = r.emitter.FileError(fe)
		return
	}
	_ = r.errText.WriteFileError(fe)
}

func (r *runReporter) report(format, kind, path string) {
	if r.ndjson() {
		_ = r.emitter.Report(format, kind, path)
		return
	}
	if !r.globals.Quiet {
		_ = r.text.WriteReport(format, kind, path)
	}
}

// finish writes the summary of a completed run and converts a run error into
// the command error
func (r *runReporter) finish(result *runner.Result, agg *analyzer.Aggregator, runErr error) error {
	if result != nil && (runErr == nil || errors.Is(runErr, runner.ErrReportFailed)) {
		patterns := output.DetectPatterns(agg, maxPatterns)
		if r.ndjson() {
			out := output.NewSummaryOutput(r.emitter.RunID(), result.Summary)
			out.FilesScanned = len(result.Files) - len(result.FileErrors)
			out.FileErrors = len(result.FileErrors)
			out.Filtered = result.Filtered
			out.DurationMS = result.Duration.Milliseconds()
			out.Patterns = patterns
			_ = r.emitter.Summary(out)
		} else if !r.globals.Quiet {
			_ = r.text.WriteSummary(result.Summary, patterns)
		}
	}

	if result != nil && result.Filtered > 0 {
		r.globals.Debug("records filtered out", zap.Int("filtered", result.Filtered))
	}
	if runErr == nil {
		return nil
	}
	ce := classifyRunError(runErr)
	r.globals.Debug("run failed", zap.String("code", ce.Code), zap.Error(runErr))
	return outputErrorCommon(r.globals, ce)
}

// useColor reports whether w is a terminal
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
