package output

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vburojevic/convlog/internal/domain"
)

var (
	uuidPattern   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	hexPattern    = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	numberPattern = regexp.MustCompile(`\d+`)
)

const (
	maxPatternLen = 100
	maxSamples    = 3
)

// EntrySource provides the stored entries for a level
type EntrySource interface {
	EntriesForLevel(level domain.Level) []domain.Entry
}

// PatternMatch is a group of messages that differ only in variable parts
type PatternMatch struct {
	Level   domain.Level `json:"level"`
	Pattern string       `json:"pattern"`
	Count   int          `json:"count"`
	Samples []string     `json:"samples"`
}

// NormalizeMessage removes variable parts so similar messages group together
func NormalizeMessage(msg string) string {
	msg = uuidPattern.ReplaceAllString(msg, "<uuid>")
	msg = hexPattern.ReplaceAllString(msg, "<addr>")
	msg = numberPattern.ReplaceAllString(msg, "<n>")

	msg = strings.TrimSpace(msg)
	if len(msg) > maxPatternLen {
		msg = msg[:maxPatternLen] + "..."
	}
	return msg
}

// DetectPatterns finds recurring CRITICAL and ERROR messages, most frequent
// first. Only groups seen at least twice are returned, at most limit of them.
func DetectPatterns(src EntrySource, limit int) []PatternMatch {
	var patterns []PatternMatch

	for _, level := range []domain.Level{domain.LevelCritical, domain.LevelError} {
		groups := make(map[string][]string)
		var order []string
		for _, e := range src.EntriesForLevel(level) {
			p := NormalizeMessage(e.Message)
			if _, ok := groups[p]; !ok {
				order = append(order, p)
			}
			groups[p] = append(groups[p], e.Message)
		}

		for _, p := range order {
			messages := groups[p]
			if len(messages) < 2 {
				continue
			}
			samples := messages
			if len(samples) > maxSamples {
				samples = samples[:maxSamples]
			}
			patterns = append(patterns, PatternMatch{
				Level:   level,
				Pattern: p,
				Count:   len(messages),
				Samples: samples,
			})
		}
	}

	// Stable keeps CRITICAL ahead of ERROR and first-seen order on ties
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Count > patterns[j].Count
	})

	if limit > 0 && len(patterns) > limit {
		patterns = patterns[:limit]
	}
	return patterns
}
