package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vburojevic/convlog/internal/analyzer"
	"github.com/vburojevic/convlog/internal/domain"
)

func lines(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	out := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for _, l := range out {
		require.True(t, gjson.Valid(l), "invalid JSON line: %s", l)
	}
	return out
}

func sampleSummary() domain.Summary {
	a := analyzer.New()
	a.Add(domain.Record{LineNumber: 1, Message: "ERROR: a", Level: domain.LevelError}, "app.log")
	a.Add(domain.Record{LineNumber: 2, Message: "WARNING: b", Level: domain.LevelWarning}, "app.log")
	a.Add(domain.Record{LineNumber: 3, Message: "[STEP:X] CRITICAL: c", Level: domain.LevelCritical, Step: "X"}, "app.log")
	a.Add(domain.Record{LineNumber: 5, Message: "[STEP:Y] ERROR: e", Level: domain.LevelError, Step: "Y"}, "app.log")
	return a.Summary()
}

func TestNDJSONWriter_WriteFilesFound(t *testing.T) {
	t.Run("lists files", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)
		require.NoError(t, w.WriteFilesFound("run-1", "logs", []string{"logs/a.log", "logs/b.txt"}))

		line := buf.String()
		assert.Equal(t, "files_found", gjson.Get(line, "type").String())
		assert.Equal(t, int64(SchemaVersion), gjson.Get(line, "schemaVersion").Int())
		assert.Equal(t, "run-1", gjson.Get(line, "run_id").String())
		assert.Equal(t, "logs", gjson.Get(line, "input").String())
		assert.Equal(t, int64(2), gjson.Get(line, "count").Int())
		assert.Equal(t, "logs/b.txt", gjson.Get(line, "files.1").String())
	})

	t.Run("empty list is an array", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewNDJSONWriter(&buf)
		require.NoError(t, w.WriteFilesFound("run-1", "logs", nil))

		files := gjson.Get(buf.String(), "files")
		assert.True(t, files.IsArray())
		assert.Empty(t, files.Array())
	})
}

func TestNDJSONWriter_WriteFileError(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)
	require.NoError(t, w.WriteFileError("run-1", &domain.FileError{Path: "a.log", Err: errors.New("permission denied")}))

	line := buf.String()
	assert.Equal(t, "file_error", gjson.Get(line, "type").String())
	assert.Equal(t, "a.log", gjson.Get(line, "path").String())
	assert.Equal(t, "permission denied", gjson.Get(line, "error").String())
}

func TestNDJSONWriter_WriteSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	out := NewSummaryOutput("run-1", sampleSummary())
	out.FilesScanned = 1
	require.NoError(t, w.WriteSummary(out))

	line := buf.String()
	assert.Equal(t, "summary", gjson.Get(line, "type").String())
	assert.Equal(t, int64(4), gjson.Get(line, "total_entries").Int())
	assert.Equal(t, int64(2), gjson.Get(line, "level_counts.ERROR").Int())
	assert.Equal(t, int64(1), gjson.Get(line, "level_counts.WARNING").Int())
	assert.Equal(t, int64(1), gjson.Get(line, "level_counts.CRITICAL").Int())
	assert.Equal(t, int64(1), gjson.Get(line, "step_counts.X.CRITICAL").Int())
	assert.False(t, gjson.Get(line, "step_counts.X.ERROR").Exists())
	assert.Equal(t, `["X","Y"]`, gjson.Get(line, "steps").Raw)
	assert.Equal(t, int64(1), gjson.Get(line, "files_scanned").Int())
	assert.False(t, gjson.Get(line, "patterns").Exists())
}

func TestNDJSONWriter_ZeroLevelsPresent(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)
	require.NoError(t, w.WriteSummary(NewSummaryOutput("run-1", domain.NewSummary())))

	line := buf.String()
	for _, level := range domain.Levels {
		v := gjson.Get(line, "level_counts."+string(level))
		assert.True(t, v.Exists(), level)
		assert.Zero(t, v.Int())
	}
	assert.True(t, gjson.Get(line, "steps").IsArray())
}

func TestNDJSONWriter_WriteError(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)
	require.NoError(t, w.WriteError("NO_INPUT_FILES", "no log files found", "check the path"))
	require.NoError(t, w.WriteError("INVALID_FORMAT", "bad"))

	ls := lines(t, &buf)
	require.Len(t, ls, 2)
	assert.Equal(t, "error", gjson.Get(ls[0], "type").String())
	assert.Equal(t, "NO_INPUT_FILES", gjson.Get(ls[0], "code").String())
	assert.Equal(t, "check the path", gjson.Get(ls[0], "hint").String())
	assert.False(t, gjson.Get(ls[1], "hint").Exists())
}

func TestNDJSONWriter_DoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)
	require.NoError(t, w.WriteFileError("run-1", &domain.FileError{Path: "<a&b>.log", Err: errors.New("x")}))
	assert.Contains(t, buf.String(), `"<a&b>.log"`)
}

func TestEmitter_StampsRunID(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, "run-42")
	assert.Equal(t, "run-42", e.RunID())

	require.NoError(t, e.FilesFound("logs", []string{"logs/a.log"}))
	require.NoError(t, e.FileError(&domain.FileError{Path: "logs/a.log", Err: errors.New("boom")}))
	require.NoError(t, e.Report("csv", "summary", "reports/summary.csv"))
	require.NoError(t, e.Summary(NewSummaryOutput("", sampleSummary())))

	ls := lines(t, &buf)
	require.Len(t, ls, 4)
	types := []string{"files_found", "file_error", "report", "summary"}
	for i, l := range ls {
		assert.Equal(t, types[i], gjson.Get(l, "type").String())
		assert.Equal(t, "run-42", gjson.Get(l, "run_id").String())
		assert.Equal(t, int64(SchemaVersion), gjson.Get(l, "schemaVersion").Int())
	}
	assert.Equal(t, "summary", gjson.Get(ls[2], "kind").String())
}

func TestNDJSONWriter_VersionAndConfig(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)
	require.NoError(t, w.WriteVersion("1.2.3", "abc"))
	require.NoError(t, w.WriteConfig("/etc/convlog/config.yaml", map[string]string{"format": "text"}))

	ls := lines(t, &buf)
	assert.Equal(t, "1.2.3", gjson.Get(ls[0], "version").String())
	assert.Equal(t, "abc", gjson.Get(ls[0], "commit").String())
	assert.Equal(t, "config", gjson.Get(ls[1], "type").String())
	assert.Equal(t, "text", gjson.Get(ls[1], "config.format").String())
}
