package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/vburojevic/convlog/internal/config"
	"github.com/vburojevic/convlog/internal/output"
	"github.com/vburojevic/convlog/internal/runner"
	"github.com/vburojevic/convlog/internal/scanner"
)

// DoctorCmd checks configuration and the environment reports are written to
type DoctorCmd struct{}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	d := globals.Config.Defaults
	checks := []checkResult{
		c.checkConfig(globals.ConfigFile),
		c.checkOutputDir(d.Output),
		c.checkEncoding(d.Encoding),
		c.checkReportFormat(d.ReportFormat),
		c.checkTerminal(),
	}

	errorCount := 0
	warnCount := 0
	for _, check := range checks {
		switch check.Status {
		case "error":
			errorCount++
		case "warning":
			warnCount++
		}
	}

	report := doctorReport{
		Type:          "doctor",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     time.Now().Format(time.RFC3339),
		Checks:        checks,
		AllPassed:     errorCount == 0,
		ErrorCount:    errorCount,
		WarnCount:     warnCount,
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(report)
	}

	color := useColor(globals.Stdout)
	render := func(status, s string) string {
		if !color {
			return s
		}
		switch status {
		case "ok":
			return output.Styles.Success.Render(s)
		case "warning":
			return output.Styles.Caution.Render(s)
		default:
			return output.Styles.Danger.Render(s)
		}
	}

	fmt.Fprintln(globals.Stdout, "convlog Doctor")
	fmt.Fprintln(globals.Stdout, "==============")
	fmt.Fprintln(globals.Stdout)

	for _, check := range checks {
		var icon string
		switch check.Status {
		case "ok":
			icon = "✓"
		case "warning":
			icon = "⚠"
		case "error":
			icon = "✗"
		}

		fmt.Fprintf(globals.Stdout, "%s %s\n", render(check.Status, icon), check.Name)
		if check.Message != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Message)
		}
		if check.Details != "" {
			fmt.Fprintf(globals.Stdout, "  %s\n", check.Details)
		}
	}

	fmt.Fprintln(globals.Stdout)
	if errorCount == 0 && warnCount == 0 {
		fmt.Fprintln(globals.Stdout, "All checks passed!")
	} else {
		fmt.Fprintf(globals.Stdout, "Errors: %d, Warnings: %d\n", errorCount, warnCount)
	}

	return nil
}

func (c *DoctorCmd) checkConfig(configPath string) checkResult {
	if configPath == "" {
		return checkResult{
			Name:    "Config",
			Status:  "ok",
			Message: "Using defaults (no config file)",
			Details: "Create with: convlog config generate > ~/.convlog.yaml",
		}
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return checkResult{
			Name:    "Config",
			Status:  "error",
			Message: "Config file has errors",
			Details: err.Error(),
		}
	}

	absPath, _ := filepath.Abs(configPath)
	return checkResult{
		Name:    "Config",
		Status:  "ok",
		Message: fmt.Sprintf("Loaded from: %s", absPath),
		Details: fmt.Sprintf("Output format: %s, Report format: %s", cfg.Format, cfg.Defaults.ReportFormat),
	}
}

func (c *DoctorCmd) checkOutputDir(dir string) checkResult {
	if dir == "" {
		return checkResult{
			Name:    "Output directory",
			Status:  "ok",
			Message: "No default configured; pass -o on every run",
			Details: "Set defaults.output in the config file to skip -o",
		}
	}
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// created on the first run; the nearest existing parent must be writable
		parent := filepath.Dir(filepath.Clean(dir))
		for {
			if _, err := os.Stat(parent); err == nil || parent == filepath.Dir(parent) {
				break
			}
			parent = filepath.Dir(parent)
		}
		if !c.checkWritePermission(parent) {
			return checkResult{
				Name:    "Output directory",
				Status:  "error",
				Message: fmt.Sprintf("%s does not exist and cannot be created", dir),
				Details: fmt.Sprintf("%s is not writable", parent),
			}
		}
		return checkResult{
			Name:    "Output directory",
			Status:  "ok",
			Message: fmt.Sprintf("%s will be created on the first run", dir),
		}
	case err != nil:
		return checkResult{Name: "Output directory", Status: "error", Message: err.Error()}
	case !info.IsDir():
		return checkResult{
			Name:    "Output directory",
			Status:  "error",
			Message: fmt.Sprintf("%s is not a directory", dir),
			Details: "Set defaults.output or pass -o",
		}
	case !c.checkWritePermission(dir):
		return checkResult{
			Name:    "Output directory",
			Status:  "error",
			Message: fmt.Sprintf("%s is not writable", dir),
		}
	}
	return checkResult{Name: "Output directory", Status: "ok", Message: dir}
}

func (c *DoctorCmd) checkEncoding(name string) checkResult {
	if _, err := scanner.ResolveEncoding(name); err != nil {
		return checkResult{
			Name:    "Encoding",
			Status:  "error",
			Message: err.Error(),
			Details: "Use a WHATWG or IANA name such as utf-8, latin-1 or windows-1252",
		}
	}
	return checkResult{Name: "Encoding", Status: "ok", Message: name}
}

func (c *DoctorCmd) checkReportFormat(format string) checkResult {
	formats, err := runner.ParseFormats(format)
	if err != nil {
		return checkResult{Name: "Report format", Status: "error", Message: err.Error()}
	}
	return checkResult{Name: "Report format", Status: "ok", Message: strings.Join(formats, ", ")}
}

func (c *DoctorCmd) checkTerminal() checkResult {
	if isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()) {
		return checkResult{Name: "Terminal", Status: "ok", Message: "Interactive (convlog ui available)"}
	}
	return checkResult{
		Name:    "Terminal",
		Status:  "warning",
		Message: "Not interactive; convlog ui is unavailable",
		Details: "convlog analyze works without a terminal",
	}
}

// checkWritePermission checks if we can write to a directory
func (c *DoctorCmd) checkWritePermission(path string) bool {
	f, err := os.CreateTemp(path, ".convlog_doctor_*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
