package cli

import (
	"context"
	"errors"

	"github.com/vburojevic/convlog/internal/filter"
	"github.com/vburojevic/convlog/internal/runner"
)

// classifyRunError maps a run failure onto an error code and a hint
func classifyRunError(err error) *CLIError {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	ce := &CLIError{Code: CodeAnalyzeFailed, Message: err.Error(), Err: err}
	switch {
	case errors.Is(err, runner.ErrInvalidInput):
		ce.Code = CodeInvalidInput
		ce.Hint = "Pass an existing log file or directory with --input"
	case errors.Is(err, runner.ErrNoInputFiles):
		ce.Code = CodeNoInputFiles
		ce.Hint = "Directories are searched for *.log and *.txt files, without recursing"
	case errors.Is(err, runner.ErrInvalidEncoding):
		ce.Code = CodeInvalidEncoding
		ce.Hint = "Use a WHATWG or IANA name such as utf-8, latin-1, windows-1252 or utf-16"
	case errors.Is(err, runner.ErrInvalidFormat):
		ce.Code = CodeInvalidFormat
		ce.Hint = "Valid report formats are csv, markdown and both"
	case errors.Is(err, filter.ErrInvalidFilter):
		ce.Code = CodeInvalidFilter
		ce.Hint = "--min-level takes critical, error or warning; --pattern and --exclude take Go regular expressions"
	case errors.Is(err, runner.ErrReportFailed):
		ce.Code = CodeReportFailed
		ce.Hint = "Check that the output directory is writable"
	case errors.Is(err, context.Canceled):
		ce.Code = CodeCancelled
		ce.Message = "analysis cancelled; no reports were written"
	}
	return ce
}
