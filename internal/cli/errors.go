package cli

import (
	"github.com/vburojevic/convlog/internal/output"
)

// outputErrorCommon normalizes error emission across commands, respecting
// ndjson vs text formats so scripts always get machine-readable failures.
func outputErrorCommon(globals *Globals, ce *CLIError) error {
	if ce == nil {
		return nil
	}
	if globals == nil {
		return ce
	}
	if globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(ce.Code, ce.Message, ce.Hint)
	} else {
		_ = output.NewTextWriter(globals.Stderr, useColor(globals.Stderr)).WriteError(ce.Code, ce.Message, ce.Hint)
	}
	return ce
}
