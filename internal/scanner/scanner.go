package scanner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vburojevic/convlog/internal/classifier"
	"github.com/vburojevic/convlog/internal/domain"
)

const (
	// DefaultChunkSize is the read buffer size used when Options.ChunkSize is unset
	DefaultChunkSize = 64 * 1024

	// cancellation is polled every ctxCheckLines lines
	ctxCheckLines = 1024
)

// Options configures how files are read
type Options struct {
	Encoding  string // Encoding name, default utf-8
	ChunkSize int    // Read buffer size in bytes (tuning only)
}

func (o Options) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// FileScanner streams one file line by line and yields classified records.
// It is forward-only: once Next returns false the scanner is exhausted.
type FileScanner struct {
	ctx        context.Context
	path       string
	file       *os.File
	lineReader *bufio.Scanner
	classifier *classifier.Classifier

	lines int
	rec   domain.Record
	err   error
	done  bool
}

// Open opens path for scanning. Invalid byte sequences are decoded as U+FFFD.
func Open(path string, opts Options) (*FileScanner, error) {
	return OpenContext(context.Background(), path, opts)
}

// OpenContext is like Open but stops scanning once ctx is cancelled
func OpenContext(ctx context.Context, path string, opts Options) (*FileScanner, error) {
	enc, err := ResolveEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	return openWithEncoding(ctx, path, enc, opts.chunkSize(), classifier.New())
}

func openWithEncoding(ctx context.Context, path string, enc encoding.Encoding, chunkSize int, c *classifier.Classifier) (*FileScanner, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// BOMOverride drops a leading byte order mark and honours it if present
	decoder := unicode.BOMOverride(enc.NewDecoder())

	lr := bufio.NewScanner(transform.NewReader(file, decoder))
	lr.Buffer(make([]byte, 0, chunkSize), math.MaxInt)
	lr.Split(scanLines)

	return &FileScanner{
		ctx:        ctx,
		path:       path,
		file:       file,
		lineReader: lr,
		classifier: c,
	}, nil
}

// scanLines is a bufio.SplitFunc that ends a line at \n, \r\n or a lone \r.
// The terminator is not part of the token.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// \r: need one more byte to tell \r\n from a lone \r
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Next advances to the next classified record
func (s *FileScanner) Next() bool {
	for !s.done {
		if s.lines%ctxCheckLines == 0 {
			if err := s.ctx.Err(); err != nil {
				s.finish(err)
				return false
			}
		}

		if !s.lineReader.Scan() {
			if err := s.lineReader.Err(); err != nil {
				s.finish(fmt.Errorf("read %s: %w", s.path, err))
			} else {
				s.finish(nil)
			}
			return false
		}

		s.lines++
		if rec, ok := s.classifier.Classify(s.lineReader.Text(), s.lines); ok {
			s.rec = rec
			return true
		}
	}
	return false
}

// Record returns the record produced by the last successful Next
func (s *FileScanner) Record() domain.Record { return s.rec }

// Err returns the first non-EOF error encountered
func (s *FileScanner) Err() error { return s.err }

// Lines returns the number of lines consumed so far
func (s *FileScanner) Lines() int { return s.lines }

// Path returns the file being scanned
func (s *FileScanner) Path() string { return s.path }

// Close releases the underlying file
func (s *FileScanner) Close() error {
	s.done = true
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Records returns the remaining records as a single-use sequence
func (s *FileScanner) Records() iter.Seq[domain.Record] {
	return func(yield func(domain.Record) bool) {
		for s.Next() {
			if !yield(s.rec) {
				return
			}
		}
	}
}

func (s *FileScanner) finish(err error) {
	s.done = true
	if s.err == nil {
		s.err = err
	}
}

// Hooks observe a batch scan. Any field may be nil.
type Hooks struct {
	FileStarted func(path string)
	FileDone    func(path string, lines int)
	FileFailed  func(path string, err error)
}

// ScanFiles yields (path, record) pairs for every path in order, exhausting
// each file before moving to the next. A file that cannot be opened or read is
// reported through hooks.FileFailed and skipped. Cancelling ctx ends the
// sequence.
func ScanFiles(ctx context.Context, paths []string, opts Options, hooks Hooks) iter.Seq2[string, domain.Record] {
	return func(yield func(string, domain.Record) bool) {
		enc, err := ResolveEncoding(opts.Encoding)
		if err != nil {
			for _, path := range paths {
				hooks.failed(path, err)
			}
			return
		}
		c := classifier.New()

		for _, path := range paths {
			if ctx.Err() != nil {
				return
			}
			hooks.started(path)

			s, err := openWithEncoding(ctx, path, enc, opts.chunkSize(), c)
			if err != nil {
				hooks.failed(path, err)
				continue
			}

			stopped := false
			for s.Next() {
				if !yield(path, s.rec) {
					stopped = true
					break
				}
			}
			_ = s.Close()

			if stopped {
				return
			}
			if err := s.Err(); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				hooks.failed(path, err)
				continue
			}
			hooks.done(path, s.lines)
		}
	}
}

func (h Hooks) started(path string) {
	if h.FileStarted != nil {
		h.FileStarted(path)
	}
}

func (h Hooks) done(path string, lines int) {
	if h.FileDone != nil {
		h.FileDone(path, lines)
	}
}

func (h Hooks) failed(path string, err error) {
	if h.FileFailed != nil {
		h.FileFailed(path, err)
	}
}
