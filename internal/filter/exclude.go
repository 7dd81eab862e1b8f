package filter

import (
	"regexp"
	"strings"

	"github.com/vburojevic/convlog/internal/domain"
)

// ExcludePatternFilter excludes records matching a regex pattern
type ExcludePatternFilter struct {
	pattern *regexp.Regexp
}

// NewExcludePatternFilter creates an exclusion filter from a pattern string
func NewExcludePatternFilter(pattern string) (*ExcludePatternFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &ExcludePatternFilter{pattern: re}, nil
}

// Match returns true if the record does NOT match the exclusion pattern
func (f *ExcludePatternFilter) Match(rec *domain.Record) bool {
	if f.pattern == nil {
		return true
	}
	return !f.pattern.MatchString(rec.Message)
}

// StepFilter keeps records tagged with one step. A trailing * matches by
// prefix. Records without a step never match.
type StepFilter struct {
	step   string
	prefix bool
}

// NewStepFilter creates a step filter
func NewStepFilter(step string) *StepFilter {
	if prefix, ok := strings.CutSuffix(step, "*"); ok {
		return &StepFilter{step: prefix, prefix: true}
	}
	return &StepFilter{step: step}
}

// Match returns true if the record's step is selected
func (f *StepFilter) Match(rec *domain.Record) bool {
	if rec.Step == "" {
		return false
	}
	if f.prefix {
		return strings.HasPrefix(rec.Step, f.step)
	}
	return rec.Step == f.step
}
