package cli

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vburojevic/convlog/internal/config"
	"github.com/vburojevic/convlog/internal/logging"
	"github.com/vburojevic/convlog/internal/output"
)

// CLI is the root command structure for convlog
type CLI struct {
	// Global flags
	OutputFormat string `name:"output-format" default:"${config_format}" enum:"ndjson,text" help:"Output stream format"`
	Quiet        bool   `short:"q" help:"Suppress progress output (errors and machine output are kept)"`
	Verbose      bool   `short:"v" help:"Show debug output on stderr"`

	// Commands
	Analyze    AnalyzeCmd    `cmd:"" default:"withargs" help:"Analyze log files and write reports"`
	UI         UICmd         `cmd:"" help:"Analyze interactively with a live progress view"`
	Doctor     DoctorCmd     `cmd:"" help:"Check configuration and output directory"`
	Schema     SchemaCmd     `cmd:"" help:"Output JSON Schema for convlog output types"`
	Config     ConfigCmd     `cmd:"" help:"Show or manage configuration"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format     string
	Quiet      bool
	Verbose    bool
	Stdout     io.Writer
	Stderr     io.Writer
	Config     *config.Config
	ConfigFile string
	Logger     *zap.Logger
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, nil)
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:  cli.OutputFormat,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
	if g.Format == "" {
		g.Format = cfg.Format
	}

	// Config can turn these on; flags cannot turn them back off
	if !cli.Quiet && cfg.Quiet {
		g.Quiet = true
	}
	if !cli.Verbose && cfg.Verbose {
		g.Verbose = true
	}

	g.Logger = logging.New(g.Stderr, g.Verbose)
	return g
}

// Debug logs a debug message if verbose mode is enabled
func (g *Globals) Debug(msg string, fields ...zap.Field) {
	g.logger().Debug(msg, fields...)
}

func (g *Globals) logger() *zap.Logger {
	if g.Logger == nil {
		return logging.Nop()
	}
	return g.Logger
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteVersion(Version, Commit)
	}
	_, err := io.WriteString(globals.Stdout, "convlog version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
