package domain

import "sort"

// Summary holds the aggregated counts of one analysis run at a point in time
type Summary struct {
	TotalEntries int                      `json:"total_entries"`
	LevelCounts  map[Level]int            `json:"level_counts"`
	StepCounts   map[string]map[Level]int `json:"step_counts"`
	Steps        []string                 `json:"steps"` // first-seen order
}

// NewSummary creates a new empty summary
func NewSummary() Summary {
	return Summary{
		LevelCounts: map[Level]int{},
		StepCounts:  map[string]map[Level]int{},
		Steps:       []string{},
	}
}

// Count returns the number of entries for a level (zero when absent)
func (s Summary) Count(level Level) int {
	return s.LevelCounts[level]
}

// StepCount returns the number of entries for a step at a level
func (s Summary) StepCount(step string, level Level) int {
	return s.StepCounts[step][level]
}

// StepTotal returns the number of entries tagged with step across all levels
func (s Summary) StepTotal(step string) int {
	total := 0
	for _, level := range Levels {
		total += s.StepCounts[step][level]
	}
	return total
}

// SortedSteps returns the step names in lexicographic order
func (s Summary) SortedSteps() []string {
	steps := make([]string, 0, len(s.StepCounts))
	for step := range s.StepCounts {
		steps = append(steps, step)
	}
	sort.Strings(steps)
	return steps
}

// HasSteps reports whether any record carried a step tag
func (s Summary) HasSteps() bool { return len(s.StepCounts) > 0 }

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`          // Always "error"
	SchemaVersion int    `json:"schemaVersion"` // Schema version for compatibility
	Code          string `json:"code"`          // Machine-readable error code
	Message       string `json:"message"`       // Human-readable message
	Hint          string `json:"hint,omitempty"`
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (output package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
