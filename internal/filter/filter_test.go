package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/convlog/internal/domain"
)

func rec(level domain.Level, step, msg string) *domain.Record {
	return &domain.Record{LineNumber: 1, Level: level, Step: step, Message: msg}
}

func TestLevelFilter(t *testing.T) {
	tests := []struct {
		name     string
		minLevel domain.Level
		level    domain.Level
		want     bool
	}{
		{"critical passes error min", domain.LevelError, domain.LevelCritical, true},
		{"error passes error min", domain.LevelError, domain.LevelError, true},
		{"warning blocked by error min", domain.LevelError, domain.LevelWarning, false},
		{"error blocked by critical min", domain.LevelCritical, domain.LevelError, false},
		{"warning passes warning min", domain.LevelWarning, domain.LevelWarning, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLevelFilter(tt.minLevel)
			assert.Equal(t, tt.want, f.Match(rec(tt.level, "", "x")))
		})
	}
}

func TestRegexFilter(t *testing.T) {
	f, err := NewRegexFilter(`(?i)timeout`)
	require.NoError(t, err)

	assert.True(t, f.Match(rec(domain.LevelError, "", "connection Timeout after 30s")))
	assert.False(t, f.Match(rec(domain.LevelError, "", "disk full")))

	_, err = NewRegexFilter(`[`)
	assert.Error(t, err)
}

func TestExcludePatternFilter(t *testing.T) {
	f, err := NewExcludePatternFilter(`deprecated`)
	require.NoError(t, err)

	assert.False(t, f.Match(rec(domain.LevelWarning, "", "API deprecated")))
	assert.True(t, f.Match(rec(domain.LevelWarning, "", "low memory")))
}

func TestStepFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		step   string
		want   bool
	}{
		{"exact", "Init", "Init", true},
		{"exact is not a prefix", "Init", "Initialize", false},
		{"prefix", "Load*", "LoadConfig", true},
		{"prefix matches itself", "Load*", "Load", true},
		{"prefix mismatch", "Load*", "Save", false},
		{"bare star matches any step", "*", "Save", true},
		{"untagged never matches", "*", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewStepFilter(tt.filter).Match(rec(domain.LevelError, tt.step, "x")))
		})
	}
}

func TestChain(t *testing.T) {
	level := NewLevelFilter(domain.LevelError)
	re, err := NewRegexFilter(`disk`)
	require.NoError(t, err)

	c := NewChain(level, re)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Match(rec(domain.LevelCritical, "", "disk failure")))
	assert.False(t, c.Match(rec(domain.LevelWarning, "", "disk almost full")))
	assert.False(t, c.Match(rec(domain.LevelError, "", "network down")))

	assert.True(t, NewChain().Match(rec(domain.LevelWarning, "", "x")))
}

func TestOrChain(t *testing.T) {
	a, _ := NewRegexFilter(`disk`)
	b, _ := NewRegexFilter(`network`)

	c := NewOrChain(a, b)
	assert.True(t, c.Match(rec(domain.LevelError, "", "disk failure")))
	assert.True(t, c.Match(rec(domain.LevelError, "", "network down")))
	assert.False(t, c.Match(rec(domain.LevelError, "", "cpu hot")))

	assert.True(t, NewOrChain().Match(rec(domain.LevelError, "", "x")))

	c = NewOrChain()
	c.Add(NewStepFilter("Init"))
	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Match(rec(domain.LevelError, "", "disk failure")))
}

func TestBuild(t *testing.T) {
	t.Run("empty options select everything", func(t *testing.T) {
		f, err := Build(Options{})
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("warning minimum is a no-op", func(t *testing.T) {
		f, err := Build(Options{MinLevel: "warning"})
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("combined", func(t *testing.T) {
		f, err := Build(Options{
			MinLevel: "Error",
			Pattern:  `fail`,
			Exclude:  []string{`retry`, "  "},
			Steps:    []string{"Load*"},
		})
		require.NoError(t, err)
		require.NotNil(t, f)

		assert.True(t, f.Match(rec(domain.LevelError, "LoadData", "read failed")))
		assert.False(t, f.Match(rec(domain.LevelWarning, "LoadData", "read failed")))
		assert.False(t, f.Match(rec(domain.LevelError, "LoadData", "read failed, retry")))
		assert.False(t, f.Match(rec(domain.LevelError, "Save", "read failed")))
		assert.False(t, f.Match(rec(domain.LevelError, "LoadData", "ok")))
	})

	t.Run("several steps match any of them", func(t *testing.T) {
		f, err := Build(Options{Steps: []string{"Init", "Load*", " "}})
		require.NoError(t, err)
		require.NotNil(t, f)

		assert.True(t, f.Match(rec(domain.LevelError, "Init", "x")))
		assert.True(t, f.Match(rec(domain.LevelWarning, "LoadData", "x")))
		assert.False(t, f.Match(rec(domain.LevelError, "Initialize", "x")))
		assert.False(t, f.Match(rec(domain.LevelError, "Save", "x")))
		assert.False(t, f.Match(rec(domain.LevelCritical, "", "x")))
	})

	t.Run("blank steps select everything", func(t *testing.T) {
		f, err := Build(Options{Steps: []string{"", "  "}})
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	invalid := []struct {
		name string
		opts Options
	}{
		{"unknown level", Options{MinLevel: "info"}},
		{"bad pattern", Options{Pattern: `(`}},
		{"bad exclude", Options{Exclude: []string{`[a-`}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.opts)
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func BenchmarkChainMatch(b *testing.B) {
	f, err := Build(Options{MinLevel: "error", Exclude: []string{`retry`}, Steps: []string{"Load*"}})
	if err != nil {
		b.Fatal(err)
	}
	r := rec(domain.LevelError, "LoadData", "read failed on block 42")
	b.ReportAllocs()
	for b.Loop() {
		f.Match(r)
	}
}
