package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// --- Doctor ---

func TestDoctorCmd_NDJSON(t *testing.T) {
	globals, stdout, _ := testGlobals("ndjson")
	globals.Config.Defaults.Output = filepath.Join(t.TempDir(), "reports")

	require.NoError(t, (&DoctorCmd{}).Run(globals))

	lines := ndjsonLines(t, stdout)
	require.Len(t, lines, 1)
	report := lines[0]
	assert.Equal(t, "doctor", gjson.Get(report, "type").String())
	assert.Equal(t, int64(0), gjson.Get(report, "error_count").Int())
	assert.True(t, gjson.Get(report, "all_passed").Bool())

	names := gjson.Get(report, "checks.#.name").Array()
	require.Len(t, names, 5)
	assert.Equal(t, "Config", names[0].String())
	assert.Equal(t, "Output directory", names[1].String())
	assert.Contains(t, gjson.Get(report, "checks.1.message").String(), "will be created")
}

func TestDoctorCmd_ReportsProblems(t *testing.T) {
	globals, stdout, _ := testGlobals("ndjson")
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	globals.Config.Defaults.Output = blocker
	globals.Config.Defaults.Encoding = "klingon-8"
	globals.Config.Defaults.ReportFormat = "pdf"

	require.NoError(t, (&DoctorCmd{}).Run(globals))

	report := ndjsonLines(t, stdout)[0]
	assert.False(t, gjson.Get(report, "all_passed").Bool())
	assert.Equal(t, int64(3), gjson.Get(report, "error_count").Int())
	assert.Equal(t, "error", gjson.Get(report, `checks.#(name=="Output directory").status`).String())
	assert.Equal(t, "error", gjson.Get(report, `checks.#(name=="Encoding").status`).String())
	assert.Equal(t, "error", gjson.Get(report, `checks.#(name=="Report format").status`).String())
}

func TestDoctorCmd_NoOutputDefault(t *testing.T) {
	check := (&DoctorCmd{}).checkOutputDir("")
	assert.Equal(t, "ok", check.Status)
	assert.Contains(t, check.Message, "-o")
}

func TestDoctorCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "good.yaml")
		require.NoError(t, os.WriteFile(path, []byte("format: ndjson\n"), 0o644))

		check := (&DoctorCmd{}).checkConfig(path)
		assert.Equal(t, "ok", check.Status)
		assert.Contains(t, check.Message, "good.yaml")
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("format: [unclosed\n"), 0o644))

		check := (&DoctorCmd{}).checkConfig(path)
		assert.Equal(t, "error", check.Status)
	})

	t.Run("none", func(t *testing.T) {
		check := (&DoctorCmd{}).checkConfig("")
		assert.Equal(t, "ok", check.Status)
		assert.Contains(t, check.Message, "defaults")
	})
}

func TestDoctorCmd_Text(t *testing.T) {
	globals, stdout, _ := testGlobals("text")
	globals.Config.Defaults.Output = t.TempDir()

	require.NoError(t, (&DoctorCmd{}).Run(globals))

	text := stdout.String()
	assert.Contains(t, text, "convlog Doctor")
	assert.Contains(t, text, "✓ Output directory")
	assert.Contains(t, text, "✓ Encoding")
	assert.Contains(t, text, "Terminal")
	assert.NotContains(t, text, "✗")
}

// --- Schema ---

func TestSchemaCmd_All(t *testing.T) {
	globals, stdout, _ := testGlobals("ndjson")

	require.NoError(t, (&SchemaCmd{}).Run(globals))

	out := stdout.String()
	require.True(t, gjson.Valid(out))
	defs := gjson.Get(out, "definitions").Map()
	assert.Len(t, defs, len(schemaTypes))
	for _, typ := range schemaTypes {
		assert.Equal(t, typ, gjson.Get(out, "definitions."+typ+".properties.type.const").String())
	}

	codes := gjson.Get(out, "definitions.error.properties.code.enum").Array()
	assert.Len(t, codes, 10)
}

func TestSchemaCmd_SelectedTypes(t *testing.T) {
	globals, stdout, _ := testGlobals("text")

	require.NoError(t, (&SchemaCmd{Type: []string{"Summary", " report ", "unknown"}}).Run(globals))

	defs := gjson.Get(stdout.String(), "definitions").Map()
	assert.Len(t, defs, 2)
	assert.Contains(t, defs, "summary")
	assert.Contains(t, defs, "report")
}

// --- Completion ---

func TestCompletionCmd_Run(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "complete -F _convlog_completions convlog"},
		{"zsh", "compdef _convlog convlog"},
		{"fish", "complete -c convlog -f"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			globals, stdout, _ := testGlobals("text")
			require.NoError(t, (&CompletionCmd{Shell: tt.shell}).Run(globals))
			assert.Contains(t, stdout.String(), tt.want)
			assert.Contains(t, stdout.String(), "min-level")
		})
	}

	globals, _, _ := testGlobals("text")
	assert.Error(t, (&CompletionCmd{Shell: "tcsh"}).Run(globals))
}
