package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/convlog/internal/analyzer"
	"github.com/vburojevic/convlog/internal/domain"
)

func TestNormalizeMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"numbers", "ERROR: retry 3 of 5", "ERROR: retry <n> of <n>"},
		{"hex", "CRITICAL: segfault at 0xdeadBEEF", "CRITICAL: segfault at <addr>"},
		{"uuid", "ERROR: job 123e4567-e89b-12d3-a456-426614174000 failed", "ERROR: job <uuid> failed"},
		{"trims", "  ERROR: x  ", "ERROR: x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMessage(tt.in))
		})
	}

	long := NormalizeMessage("ERROR: " + strings.Repeat("x", 200))
	assert.Len(t, long, maxPatternLen+3)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestDetectPatterns(t *testing.T) {
	a := analyzer.New()
	add := func(level domain.Level, msg string) {
		a.Add(domain.Record{LineNumber: a.Total() + 1, Message: msg, Level: level}, "app.log")
	}
	add(domain.LevelError, "ERROR: timeout after 30s")
	add(domain.LevelError, "ERROR: timeout after 45s")
	add(domain.LevelError, "ERROR: timeout after 60s")
	add(domain.LevelError, "ERROR: timeout after 90s")
	add(domain.LevelError, "ERROR: unique failure")
	add(domain.LevelCritical, "CRITICAL: disk 1 full")
	add(domain.LevelCritical, "CRITICAL: disk 2 full")
	add(domain.LevelWarning, "WARNING: slow 1")
	add(domain.LevelWarning, "WARNING: slow 2")

	patterns := DetectPatterns(a, 0)
	require.Len(t, patterns, 2)

	assert.Equal(t, domain.LevelError, patterns[0].Level)
	assert.Equal(t, "ERROR: timeout after <n>s", patterns[0].Pattern)
	assert.Equal(t, 4, patterns[0].Count)
	assert.Len(t, patterns[0].Samples, maxSamples)
	assert.Equal(t, "ERROR: timeout after 30s", patterns[0].Samples[0])

	assert.Equal(t, domain.LevelCritical, patterns[1].Level)
	assert.Equal(t, 2, patterns[1].Count)

	limited := DetectPatterns(a, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, 4, limited[0].Count)
}

func TestDetectPatterns_Empty(t *testing.T) {
	assert.Empty(t, DetectPatterns(analyzer.New(), 5))
}
