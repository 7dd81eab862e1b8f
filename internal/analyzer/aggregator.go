// Package analyzer accumulates classified records into per-level and per-step
// counts for one analysis run.
package analyzer

import (
	"sync"

	"github.com/vburojevic/convlog/internal/domain"
)

// Aggregator accumulates records for one analysis run. All methods are safe
// for concurrent use; a single writer is expected.
type Aggregator struct {
	mu sync.RWMutex

	total         int
	levelCounts   map[domain.Level]int
	stepCounts    map[string]map[domain.Level]int
	steps         []string
	entriesByLvl  map[domain.Level][]domain.Entry
	entriesByStep map[string][]domain.Entry
}

// New creates an empty aggregator
func New() *Aggregator {
	a := &Aggregator{}
	a.reset()
	return a
}

// Reset discards everything accumulated so far
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
}

func (a *Aggregator) reset() {
	a.total = 0
	a.levelCounts = make(map[domain.Level]int)
	a.stepCounts = make(map[string]map[domain.Level]int)
	a.steps = nil
	a.entriesByLvl = make(map[domain.Level][]domain.Entry)
	a.entriesByStep = make(map[string][]domain.Entry)
}

// Add records one classified line. filename may be empty.
func (a *Aggregator) Add(rec domain.Record, filename string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.add(rec, filename)
}

// AddAll records a batch of lines from the same source
func (a *Aggregator) AddAll(recs []domain.Record, filename string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, rec := range recs {
		a.add(rec, filename)
	}
}

func (a *Aggregator) add(rec domain.Record, filename string) {
	a.total++
	a.levelCounts[rec.Level]++

	entry := domain.NewEntry(rec, filename)
	a.entriesByLvl[rec.Level] = append(a.entriesByLvl[rec.Level], entry)

	if !rec.HasStep() {
		return
	}
	counts, ok := a.stepCounts[rec.Step]
	if !ok {
		counts = make(map[domain.Level]int)
		a.stepCounts[rec.Step] = counts
		a.steps = append(a.steps, rec.Step)
	}
	counts[rec.Level]++
	a.entriesByStep[rec.Step] = append(a.entriesByStep[rec.Step], entry)
}

// Summary returns a snapshot of the current counts
func (a *Aggregator) Summary() domain.Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	summary := domain.NewSummary()
	summary.TotalEntries = a.total
	summary.LevelCounts = a.levelFrequency()
	summary.StepCounts = a.stepFrequency()
	summary.Steps = append(summary.Steps, a.steps...)
	return summary
}

// Total returns the number of records added
func (a *Aggregator) Total() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.total
}

// LevelFrequency returns the count of records per level
func (a *Aggregator) LevelFrequency() map[domain.Level]int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.levelFrequency()
}

func (a *Aggregator) levelFrequency() map[domain.Level]int {
	out := make(map[domain.Level]int, len(a.levelCounts))
	for level, n := range a.levelCounts {
		out[level] = n
	}
	return out
}

// StepFrequency returns the per-level counts for each step
func (a *Aggregator) StepFrequency() map[string]map[domain.Level]int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stepFrequency()
}

func (a *Aggregator) stepFrequency() map[string]map[domain.Level]int {
	out := make(map[string]map[domain.Level]int, len(a.stepCounts))
	for step, counts := range a.stepCounts {
		c := make(map[domain.Level]int, len(counts))
		for level, n := range counts {
			c[level] = n
		}
		out[step] = c
	}
	return out
}

// Steps returns step names in the order they were first seen
func (a *Aggregator) Steps() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.steps...)
}

// EntriesForLevel returns the stored entries for level in insertion order
func (a *Aggregator) EntriesForLevel(level domain.Level) []domain.Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]domain.Entry{}, a.entriesByLvl[level]...)
}

// EntriesForStep returns the stored entries for step in insertion order
func (a *Aggregator) EntriesForStep(step string) []domain.Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]domain.Entry{}, a.entriesByStep[step]...)
}
