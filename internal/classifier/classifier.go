package classifier

import (
	"regexp"
	"strings"

	"github.com/vburojevic/convlog/internal/domain"
)

// levelPattern pairs a severity with its word-bounded marker
type levelPattern struct {
	level   domain.Level
	pattern *regexp.Regexp
}

// Classifier turns raw log lines into classified records
type Classifier struct {
	levels []levelPattern // checked in order; first match wins
	step   *regexp.Regexp
}

// New creates a classifier for the CRITICAL/ERROR/WARNING keyword scheme
func New() *Classifier {
	return &Classifier{
		levels: []levelPattern{
			{domain.LevelCritical, wordPattern("CRITICAL")},
			{domain.LevelError, wordPattern("ERROR")},
			{domain.LevelWarning, wordPattern("WARNING")},
		},
		step: regexp.MustCompile(`(?i)\[STEP:([^\]]+)\]`),
	}
}

// wordPattern matches word case-insensitively when it is not part of a larger
// word. Go's \b only knows ASCII word characters, so letters and digits from
// any script count as word characters here.
func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(word) + `(?:[^\p{L}\p{N}_]|$)`)
}

// Classify returns the record for line, or false when the line carries no
// severity marker. lineNumber is 1-based.
func (c *Classifier) Classify(line string, lineNumber int) (domain.Record, bool) {
	level, ok := c.Level(line)
	if !ok {
		return domain.Record{}, false
	}

	return domain.Record{
		LineNumber: lineNumber,
		Message:    strings.TrimSpace(line),
		Level:      level,
		Step:       c.Step(line),
	}, true
}

// Level returns the highest-priority marker found in line
func (c *Classifier) Level(line string) (domain.Level, bool) {
	for _, lp := range c.levels {
		if lp.pattern.MatchString(line) {
			return lp.level, true
		}
	}
	return "", false
}

// Step extracts the first [STEP:name] tag. Malformed or blank tags yield "".
func (c *Classifier) Step(line string) string {
	m := c.step.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
