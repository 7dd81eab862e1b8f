package cli

import (
	"fmt"

	"github.com/vburojevic/convlog/internal/config"
	"github.com/vburojevic/convlog/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteConfig(globals.ConfigFile, map[string]any{
			"format":  cfg.Format,
			"quiet":   cfg.Quiet,
			"verbose": cfg.Verbose,
			"defaults": map[string]any{
				"output":        cfg.Defaults.Output,
				"report_format": cfg.Defaults.ReportFormat,
				"detailed":      cfg.Defaults.Detailed,
				"encoding":      cfg.Defaults.Encoding,
				"chunk_size":    cfg.Defaults.ChunkSize,
				"max_entries":   cfg.Defaults.MaxEntries,
			},
		})
	}

	w := globals.Stdout
	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(w, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(w, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Defaults:")
	fmt.Fprintf(w, "  output:        %s\n", cfg.Defaults.Output)
	fmt.Fprintf(w, "  report_format: %s\n", cfg.Defaults.ReportFormat)
	fmt.Fprintf(w, "  detailed:      %v\n", cfg.Defaults.Detailed)
	fmt.Fprintf(w, "  encoding:      %s\n", cfg.Defaults.Encoding)
	fmt.Fprintf(w, "  chunk_size:    %d\n", cfg.Defaults.ChunkSize)
	fmt.Fprintf(w, "  max_entries:   %d\n", cfg.Defaults.MaxEntries)

	if globals.ConfigFile != "" {
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "Loaded from: %s\n", globals.ConfigFile)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteConfig(path, nil)
	}

	w := globals.Stdout
	if path == "" {
		fmt.Fprintln(w, "No configuration file found")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Create one at:")
		fmt.Fprintln(w, "  ./.convlog.yaml")
		fmt.Fprintln(w, "  ~/.convlog.yaml")
		fmt.Fprintln(w, "  ~/.config/convlog/config.yaml")
	} else {
		fmt.Fprintf(w, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

const sampleConfig = `# convlog configuration file
# Place this file at ./.convlog.yaml, ~/.convlog.yaml or ~/.config/convlog/config.yaml

# Output stream format: "text" (default) or "ndjson"
format: text

# Suppress progress output
quiet: false

# Enable debug output on stderr
verbose: false

# Defaults for analyze and ui
defaults:
  # Directory reports are written to when -o is not given.
  # There is no built-in default; uncomment to set one.
  # output: reports

  # Report format: csv, markdown or both
  report_format: both

  # Also write detailed reports listing every entry
  detailed: false

  # Text encoding of the input files (WHATWG or IANA name)
  encoding: utf-8

  # Read buffer size in bytes
  chunk_size: 65536

  # Entries listed per level in Markdown detailed reports
  max_entries: 100
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}
