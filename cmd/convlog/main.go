package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/convlog/internal/cli"
	"github.com/vburojevic/convlog/internal/config"
)

const quickStart = `convlog - classify CRITICAL/ERROR/WARNING lines in log files and write reports

START HERE:
  convlog -i logs/ -o reports/

Flags:
  -i    Log file, or directory of *.log and *.txt files
  -o    Output directory for reports (required)
  -f    Report format: csv, markdown or both (default both)
  --min-level, -p, -x, --step    Narrow what gets counted

Other useful commands:
  convlog analyze --help               All analysis flags
  convlog ui -i logs/                  Interactive progress view
  convlog config generate              Sample configuration file
  convlog doctor                       Check config and output directory
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags still win
	vars := kong.Vars{
		"config_format":        cfg.Format,
		"config_output":        cfg.Defaults.Output,
		"config_report_format": cfg.Defaults.ReportFormat,
		"config_detailed":      strconv.FormatBool(cfg.Defaults.Detailed),
		"config_encoding":      cfg.Defaults.Encoding,
		"config_chunk_size":    strconv.Itoa(cfg.Defaults.ChunkSize),
		"config_max_entries":   strconv.Itoa(cfg.Defaults.MaxEntries),
	}

	ctx := kong.Parse(&c,
		kong.Name("convlog"),
		kong.Description("Analyze log files for CRITICAL, ERROR and WARNING messages and write CSV/Markdown reports"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	globals.ConfigFile = config.ConfigFile()
	defer func() { _ = globals.Logger.Sync() }()

	if err := ctx.Run(globals); err != nil {
		_ = globals.Logger.Sync()
		os.Exit(1)
	}
}
