package report

import (
	"fmt"
	"io"

	"github.com/vburojevic/convlog/internal/domain"
)

// MarkdownWriter writes human-readable reports
type MarkdownWriter struct {
	base
}

// NewMarkdown creates a Markdown writer rooted at dir
func NewMarkdown(dir string, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{base: newBase(dir, "md", opts)}
}

func (w *MarkdownWriter) Format() string { return FormatMarkdown }

// MaxEntries returns the per-level cap used by WriteDetailed
func (w *MarkdownWriter) MaxEntries() int { return w.maxEntries }

// WriteSummary writes the level frequency table and, when steps exist, the
// per-step breakdown
func (w *MarkdownWriter) WriteSummary(summary domain.Summary, filename string) (string, error) {
	path := w.path("summary", filename)
	err := w.write(path, func(out io.Writer) error {
		p := &printer{w: out}
		p.printf("# Log Analysis Summary Report\n\n")
		p.printf("**Generated:** %s\n\n", w.generated())

		p.printf("## Overall Statistics\n\n")
		p.printf("- **Total Entries:** %d\n\n", summary.TotalEntries)

		p.printf("## Error Level Frequency\n\n")
		p.printf("| Level | Count |\n")
		p.printf("|-------|-------|\n")
		for _, level := range domain.Levels {
			p.printf("| %s | %d |\n", level, summary.Count(level))
		}
		p.printf("\n")

		if summary.HasSteps() {
			p.printf("## Errors by Step/Module\n\n")
			p.printf("| Step | CRITICAL | ERROR | WARNING | Total |\n")
			p.printf("|------|----------|-------|---------|-------|\n")
			for _, step := range summary.SortedSteps() {
				p.printf("| %s | %d | %d | %d | %d |\n",
					step,
					summary.StepCount(step, domain.LevelCritical),
					summary.StepCount(step, domain.LevelError),
					summary.StepCount(step, domain.LevelWarning),
					summary.StepTotal(step))
			}
			p.printf("\n")
		}
		return p.err
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteDetailed lists entries per level, at most MaxEntries each, followed by a
// note counting the omitted ones
func (w *MarkdownWriter) WriteDetailed(src EntrySource, filename string) (string, error) {
	path := w.path("detailed", filename)
	err := w.write(path, func(out io.Writer) error {
		p := &printer{w: out}
		p.printf("# Detailed Log Analysis Report\n\n")
		p.printf("**Generated:** %s\n\n", w.generated())

		for _, level := range domain.Levels {
			entries := src.EntriesForLevel(level)
			if len(entries) == 0 {
				continue
			}

			p.printf("## %s Messages (%d total)\n\n", level, len(entries))

			shown := entries
			if len(shown) > w.maxEntries {
				shown = shown[:w.maxEntries]
			}
			for _, e := range shown {
				p.printf("### Line %d", e.LineNumber)
				if e.Filename != "" {
					p.printf(" - %s", e.Filename)
				}
				if e.Step != "" {
					p.printf(" - [STEP: %s]", e.Step)
				}
				p.printf("\n\n")
				p.printf("```\n%s\n```\n\n", e.Message)
			}

			if omitted := len(entries) - len(shown); omitted > 0 {
				p.printf("*...and %d more %s messages*\n\n", omitted, level)
			}
		}
		return p.err
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// printer keeps the first write error so rendering code stays linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
