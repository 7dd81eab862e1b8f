package cli

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vburojevic/convlog/internal/analyzer"
	"github.com/vburojevic/convlog/internal/filter"
	"github.com/vburojevic/convlog/internal/runner"
)

// RunFlags are the analysis settings shared by analyze and ui
type RunFlags struct {
	Input      string `short:"i" required:"" type:"path" help:"Input log file or directory containing log files"`
	Output     string `short:"o" default:"${config_output}" help:"Output directory for reports (required unless defaults.output is configured)"`
	Format     string `short:"f" default:"${config_report_format}" help:"Report format: csv, markdown or both"`
	Detailed   bool   `default:"${config_detailed}" help:"Generate detailed reports with log entries"`
	Encoding   string `default:"${config_encoding}" help:"File encoding"`
	MaxEntries int    `default:"${config_max_entries}" help:"Entries listed per level in Markdown detailed reports"`
	ChunkSize  int    `default:"${config_chunk_size}" hidden:"" help:"Read buffer size in bytes"`

	MinLevel string   `help:"Only count entries at or above this level (critical, error, warning)" placeholder:"LEVEL"`
	Pattern  string   `short:"p" help:"Only count entries whose message matches this regex"`
	Exclude  []string `short:"x" sep:"none" help:"Skip entries whose message matches this regex (repeatable)"`
	Step     []string `sep:"none" help:"Only count entries tagged with this step; a trailing * matches by prefix (repeatable)"`
}

// errOutputRequired is returned when neither -o nor defaults.output names a
// report directory
var errOutputRequired = errors.New("missing flag --output: pass -o <dir> or set defaults.output in the config file")

// Validate runs after flag parsing; the config value has already been applied
// as the flag default at that point
func (f *RunFlags) Validate() error {
	if strings.TrimSpace(f.Output) == "" {
		return errOutputRequired
	}
	return nil
}

// options resolves the flags into runner options, falling back to config
// values for anything left unset
func (f *RunFlags) options(globals *Globals, runID string) (runner.Options, error) {
	d := globals.Config.Defaults
	opts := runner.Options{
		RunID:      runID,
		Input:      f.Input,
		OutputDir:  f.Output,
		Format:     f.Format,
		Detailed:   f.Detailed,
		Encoding:   f.Encoding,
		ChunkSize:  f.ChunkSize,
		MaxEntries: f.MaxEntries,
	}
	if opts.OutputDir == "" {
		opts.OutputDir = d.Output
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return opts, &CLIError{
			Code:    CodeInvalidInput,
			Message: "output directory is required",
			Hint:    "Pass -o <dir> or set defaults.output in the config file",
			Err:     errOutputRequired,
		}
	}
	if opts.Format == "" {
		opts.Format = d.ReportFormat
	}
	if opts.Encoding == "" {
		opts.Encoding = d.Encoding
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = d.ChunkSize
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = d.MaxEntries
	}

	flt, err := filter.Build(filter.Options{
		MinLevel: f.MinLevel,
		Pattern:  f.Pattern,
		Exclude:  f.Exclude,
		Steps:    f.Step,
	})
	if err != nil {
		return opts, err
	}
	opts.Filter = flt
	return opts, nil
}

// AnalyzeCmd scans log files and writes reports
type AnalyzeCmd struct {
	RunFlags `embed:""`
}

// Run executes the analyze command
func (c *AnalyzeCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return c.run(ctx, globals)
}

func (c *AnalyzeCmd) run(ctx context.Context, globals *Globals) error {
	runID := uuid.NewString()
	opts, optErr := c.options(globals, runID)
	rep := newRunReporter(globals, runID, opts.Input)
	agg := analyzer.New()
	if optErr != nil {
		return rep.finish(nil, agg, optErr)
	}

	globals.Debug("searching for log files", zap.String("input", opts.Input), zap.String("run_id", runID))

	result, err := runner.Run(ctx, opts, agg, rep.handle)
	return rep.finish(result, agg, err)
}
