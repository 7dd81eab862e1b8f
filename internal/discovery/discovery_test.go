package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("ERROR: x\n"), 0o644))
}

func TestFind(t *testing.T) {
	t.Run("returns a single file as is", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conversion.data")
		touch(t, path)

		files, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("lists log files then txt files, non-recursive", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "b.log"))
		touch(t, filepath.Join(dir, "a.txt"))
		touch(t, filepath.Join(dir, "a.log"))
		touch(t, filepath.Join(dir, "notes.md"))
		touch(t, filepath.Join(dir, ".hidden.log"))
		touch(t, filepath.Join(dir, "sub", "deep.log"))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.log"), 0o755))

		files, err := Find(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, ".hidden.log"),
			filepath.Join(dir, "a.log"),
			filepath.Join(dir, "b.log"),
			filepath.Join(dir, "a.txt"),
		}, files)
	})

	t.Run("dot-files are listed", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, ".h.log"))
		touch(t, filepath.Join(dir, ".notes.txt"))
		touch(t, filepath.Join(dir, ".hidden"))

		files, err := Find(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, ".h.log"),
			filepath.Join(dir, ".notes.txt"),
		}, files)
	})

	t.Run("follows symlinks to files", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(t.TempDir(), "real.log")
		touch(t, target)
		require.NoError(t, os.Symlink(target, filepath.Join(dir, "link.log")))

		files, err := Find(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "link.log")}, files)
	})

	t.Run("empty directory yields no files", func(t *testing.T) {
		files, err := Find(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing path is invalid input", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
