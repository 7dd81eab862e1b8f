package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/vburojevic/convlog/internal/domain"
)

// CSVWriter writes reports as comma-separated tables
type CSVWriter struct {
	base
}

// NewCSV creates a CSV writer rooted at dir
func NewCSV(dir string, opts ...Option) *CSVWriter {
	return &CSVWriter{base: newBase(dir, "csv", opts)}
}

func (w *CSVWriter) Format() string { return FormatCSV }

// newCSVWriter ends records with \r\n, as spreadsheet tools expect
func newCSVWriter(out io.Writer) *csv.Writer {
	cw := csv.NewWriter(out)
	cw.UseCRLF = true
	return cw
}

// WriteSummary writes total, per-level and per-step counts
func (w *CSVWriter) WriteSummary(summary domain.Summary, filename string) (string, error) {
	path := w.path("summary", filename)
	err := w.write(path, func(out io.Writer) error {
		cw := newCSVWriter(out)
		rows := [][]string{
			{"Category", "Value"},
			{"Total Entries", strconv.Itoa(summary.TotalEntries)},
			{},
			{"Level", "Count"},
		}
		for _, level := range domain.Levels {
			rows = append(rows, []string{string(level), strconv.Itoa(summary.Count(level))})
		}
		rows = append(rows, []string{})

		if summary.HasSteps() {
			rows = append(rows, []string{"Step", "CRITICAL", "ERROR", "WARNING", "Total"})
			for _, step := range summary.SortedSteps() {
				rows = append(rows, []string{
					step,
					strconv.Itoa(summary.StepCount(step, domain.LevelCritical)),
					strconv.Itoa(summary.StepCount(step, domain.LevelError)),
					strconv.Itoa(summary.StepCount(step, domain.LevelWarning)),
					strconv.Itoa(summary.StepTotal(step)),
				})
			}
		}
		return cw.WriteAll(rows)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteDetailed writes one row per stored entry, most severe level first
func (w *CSVWriter) WriteDetailed(src EntrySource, filename string) (string, error) {
	path := w.path("detailed", filename)
	err := w.write(path, func(out io.Writer) error {
		cw := newCSVWriter(out)
		if err := cw.Write([]string{"Level", "Step", "Line Number", "Filename", "Message"}); err != nil {
			return err
		}
		for _, level := range domain.Levels {
			for _, e := range src.EntriesForLevel(level) {
				row := []string{string(e.Level), e.Step, strconv.Itoa(e.LineNumber), e.Filename, e.Message}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
