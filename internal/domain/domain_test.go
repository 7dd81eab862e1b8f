package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		ok    bool
	}{
		{"CRITICAL", LevelCritical, true},
		{"error", LevelError, true},
		{" Warning ", LevelWarning, true},
		{"info", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelPriority(t *testing.T) {
	assert.Greater(t, LevelCritical.Priority(), LevelError.Priority())
	assert.Greater(t, LevelError.Priority(), LevelWarning.Priority())
	assert.Equal(t, 0, Level("INFO").Priority())
}

func TestSummaryHelpers(t *testing.T) {
	t.Run("empty summary zero-fills", func(t *testing.T) {
		s := NewSummary()
		for _, level := range Levels {
			assert.Equal(t, 0, s.Count(level))
		}
		assert.False(t, s.HasSteps())
		assert.Empty(t, s.SortedSteps())
		assert.Equal(t, 0, s.StepTotal("missing"))
	})

	t.Run("sorts steps and totals per step", func(t *testing.T) {
		s := NewSummary()
		s.StepCounts["Load"] = map[Level]int{LevelError: 2, LevelWarning: 1}
		s.StepCounts["Extract"] = map[Level]int{LevelCritical: 1}

		assert.Equal(t, []string{"Extract", "Load"}, s.SortedSteps())
		assert.Equal(t, 3, s.StepTotal("Load"))
		assert.Equal(t, 2, s.StepCount("Load", LevelError))
		assert.Equal(t, 0, s.StepCount("Load", LevelCritical))
	})
}

func TestFileError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &FileError{Path: "app.log", Err: cause}

	assert.Equal(t, "app.log: permission denied", err.Error())
	require.ErrorIs(t, err, cause)

	var nilErr *FileError
	assert.Equal(t, "", nilErr.Error())
}

func TestNewEntry(t *testing.T) {
	rec := Record{LineNumber: 3, Message: "ERROR: boom", Level: LevelError, Step: "Load"}
	entry := NewEntry(rec, "run.log")

	assert.Equal(t, rec, entry.Record)
	assert.Equal(t, "run.log", entry.Filename)
	assert.True(t, entry.HasStep())
}
