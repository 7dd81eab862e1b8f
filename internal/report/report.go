// Package report writes analysis summaries and detailed listings to disk as
// CSV or Markdown files.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/benbjohnson/clock"

	"github.com/vburojevic/convlog/internal/domain"
)

const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"

	// DefaultMaxEntries caps the entries listed per level in Markdown detailed reports
	DefaultMaxEntries = 100

	timestampLayout = "20060102_150405"
	generatedLayout = "2006-01-02 15:04:05"
)

// EntrySource provides the stored entries for a level
type EntrySource interface {
	EntriesForLevel(level domain.Level) []domain.Entry
}

// Writer produces report files in one format
type Writer interface {
	// WriteSummary writes the counts report and returns its path.
	// An empty filename generates summary_<timestamp>.<ext>.
	WriteSummary(summary domain.Summary, filename string) (string, error)
	// WriteDetailed writes every stored entry grouped by level and returns its path.
	WriteDetailed(src EntrySource, filename string) (string, error)
	// Format returns the format name
	Format() string
}

// Option configures a Writer
type Option func(*base)

// WithClock sets the clock used for filenames and "Generated" stamps
func WithClock(c clock.Clock) Option {
	return func(b *base) { b.clock = c }
}

// WithMaxEntries caps entries per level in detailed reports that support it
func WithMaxEntries(n int) Option {
	return func(b *base) {
		if n > 0 {
			b.maxEntries = n
		}
	}
}

// New returns the writer for format ("csv" or "markdown")
func New(format, dir string, opts ...Option) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSV(dir, opts...), nil
	case FormatMarkdown:
		return NewMarkdown(dir, opts...), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// base holds what both writers share
type base struct {
	dir        string
	ext        string
	clock      clock.Clock
	maxEntries int
}

func newBase(dir, ext string, opts []Option) base {
	b := base{
		dir:        dir,
		ext:        ext,
		clock:      clock.New(),
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Dir returns the output directory
func (b *base) Dir() string { return b.dir }

// path resolves the destination for a report
func (b *base) path(prefix, filename string) string {
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.%s", prefix, b.clock.Now().Format(timestampLayout), b.ext)
	}
	return filepath.Join(b.dir, filename)
}

func (b *base) generated() string {
	return b.clock.Now().Format(generatedLayout)
}

// write renders into a temp file next to path and renames it into place, so a
// failure never leaves a partial report behind.
func (b *base) write(path string, render func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := render(bw); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}
