package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/convlog/internal/domain"
)

// TextWriter renders run events for a human reader
type TextWriter struct {
	w     io.Writer
	color bool
}

// NewTextWriter creates a text writer; color enables lipgloss styling
func NewTextWriter(w io.Writer, color bool) *TextWriter {
	return &TextWriter{w: w, color: color}
}

func (w *TextWriter) render(style lipgloss.Style, s string) string {
	if !w.color {
		return s
	}
	return style.Render(s)
}

// WriteFilesFound lists the files that will be scanned
func (w *TextWriter) WriteFilesFound(input string, files []string) error {
	_, err := fmt.Fprintf(w.w, "Found %d log file(s) in %s\n", len(files), w.render(Styles.Path, input))
	return err
}

// WriteFileError reports a skipped file
func (w *TextWriter) WriteFileError(fe *domain.FileError) error {
	_, err := fmt.Fprintf(w.w, "%s %s\n", w.render(Styles.Caution, "Skipped"), fe.Error())
	return err
}

// WriteReport reports a written report file
func (w *TextWriter) WriteReport(format, kind, path string) error {
	_, err := fmt.Fprintf(w.w, "%s %s %s report: %s\n",
		w.render(Styles.Success, "Wrote"), format, kind, w.render(Styles.Path, path))
	return err
}

// WriteSummary renders the level table, the step table when steps were seen
// and the recurring message patterns
func (w *TextWriter) WriteSummary(s domain.Summary, patterns []PatternMatch) error {
	header := w.render(Styles.Header, "Summary")
	status := w.render(StatusStyle(s), StatusText(s))
	if _, err := fmt.Fprintf(w.w, "\n%s\n%s %s | %s\n\n", header,
		w.render(Styles.Label, "Total entries:"), w.render(Styles.Value, strconv.Itoa(s.TotalEntries)), status); err != nil {
		return err
	}

	levels := tablewriter.NewWriter(w.w)
	levels.Header("LEVEL", "COUNT", "SHARE")
	for _, level := range domain.Levels {
		n := s.Count(level)
		share := "0.0%"
		if s.TotalEntries > 0 {
			share = fmt.Sprintf("%.1f%%", float64(n)*100/float64(s.TotalEntries))
		}
		if err := levels.Append([]string{w.render(LevelStyle(level), string(level)), strconv.Itoa(n), share}); err != nil {
			return err
		}
	}
	if err := levels.Render(); err != nil {
		return err
	}

	if s.HasSteps() {
		if _, err := fmt.Fprintln(w.w); err != nil {
			return err
		}
		steps := tablewriter.NewWriter(w.w)
		steps.Header("STEP", "CRITICAL", "ERROR", "WARNING", "TOTAL")
		for _, step := range s.SortedSteps() {
			row := []string{w.render(Styles.Step, step)}
			for _, level := range domain.Levels {
				row = append(row, strconv.Itoa(s.StepCount(step, level)))
			}
			row = append(row, strconv.Itoa(s.StepTotal(step)))
			if err := steps.Append(row); err != nil {
				return err
			}
		}
		if err := steps.Render(); err != nil {
			return err
		}
	}

	if len(patterns) > 0 {
		if _, err := fmt.Fprintf(w.w, "\n%s\n", w.render(Styles.Header, "Recurring messages")); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w.w)
		table.Header("LEVEL", "COUNT", "PATTERN")
		for _, p := range patterns {
			if err := table.Append([]string{w.render(LevelStyle(p.Level), string(p.Level)), strconv.Itoa(p.Count), p.Pattern}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}

// WriteError outputs a styled error
func (w *TextWriter) WriteError(code, message, hint string) error {
	line := w.render(Styles.Danger, "Error") + " " + w.render(Styles.Caution, "["+code+"]") + ": " + message + "\n"
	if hint != "" {
		line += w.render(Styles.Label, "Hint: ") + hint + "\n"
	}
	_, err := io.WriteString(w.w, line)
	return err
}
