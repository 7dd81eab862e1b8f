package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vburojevic/convlog/internal/domain"
)

// ErrInvalidFilter is returned for an unknown level or a bad regex
var ErrInvalidFilter = errors.New("invalid filter")

// Options selects records for an analysis. Zero values select everything.
type Options struct {
	MinLevel string   // critical, error or warning
	Pattern  string   // keep messages matching this regex
	Exclude  []string // drop messages matching any of these regexes
	Steps    []string // keep records tagged with one of these steps
}

// Build compiles opts into a single filter. It returns nil when opts select
// every record, so callers can skip matching altogether.
func Build(opts Options) (Filter, error) {
	chain := NewChain()

	if opts.MinLevel != "" {
		level, ok := domain.ParseLevel(opts.MinLevel)
		if !ok {
			return nil, fmt.Errorf("%w: unknown level %q (want critical, error or warning)", ErrInvalidFilter, opts.MinLevel)
		}
		if level != domain.LevelWarning {
			chain.Add(NewLevelFilter(level))
		}
	}

	if opts.Pattern != "" {
		f, err := NewRegexFilter(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern: %v", ErrInvalidFilter, err)
		}
		chain.Add(f)
	}

	for _, ex := range opts.Exclude {
		if strings.TrimSpace(ex) == "" {
			continue
		}
		f, err := NewExcludePatternFilter(ex)
		if err != nil {
			return nil, fmt.Errorf("%w: exclude: %v", ErrInvalidFilter, err)
		}
		chain.Add(f)
	}

	// any selected step will do
	steps := NewOrChain()
	for _, step := range opts.Steps {
		if step = strings.TrimSpace(step); step != "" {
			steps.Add(NewStepFilter(step))
		}
	}
	if steps.Len() > 0 {
		chain.Add(steps)
	}

	if chain.Len() == 0 {
		return nil, nil
	}
	return chain, nil
}
