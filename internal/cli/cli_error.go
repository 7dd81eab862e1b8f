package cli

// CLIError is a structured error used for consistent NDJSON/text emission.
type CLIError struct {
	Code    string
	Message string
	Hint    string
	Err     error
}

func (e *CLIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Error codes
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeNoInputFiles    = "NO_INPUT_FILES"
	CodeInvalidEncoding = "INVALID_ENCODING"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeInvalidFilter   = "INVALID_FILTER"
	CodeReportFailed    = "REPORT_FAILED"
	CodeNotInteractive  = "NOT_INTERACTIVE"
	CodeCancelled       = "CANCELLED"
	CodeAnalyzeFailed   = "ANALYZE_FAILED"
	CodeTUIFailed       = "TUI_FAILED"
)
