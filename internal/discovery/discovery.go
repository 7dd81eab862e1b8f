// Package discovery resolves the input argument into the list of log files to scan.
package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrInvalidInput is returned when the input is neither a file nor a directory
var ErrInvalidInput = errors.New("not a valid file or directory")

// Extensions are the file suffixes picked up from an input directory, in scan order
var Extensions = []string{".log", ".txt"}

// Find returns input itself when it is a file, or the .log files followed by the
// .txt files directly inside it when it is a directory. Subdirectories are not
// searched. An empty directory yields an empty list and no error.
func Find(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, errors.Join(ErrInvalidInput, err))
	}

	if info.Mode().IsRegular() {
		return []string{input}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", input, ErrInvalidInput)
	}

	dirEntries, err := os.ReadDir(input)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", input, err)
	}

	groups := make([][]string, len(Extensions))
	for _, de := range dirEntries {
		if !isFile(input, de) {
			continue
		}
		ext := filepath.Ext(de.Name())
		for i, want := range Extensions {
			if ext == want {
				groups[i] = append(groups[i], filepath.Join(input, de.Name()))
				break
			}
		}
	}

	files := []string{}
	for _, group := range groups {
		sort.Strings(group)
		files = append(files, group...)
	}
	return files, nil
}

// isFile reports regular files, following symlinks. Dot-files count like
// any other name.
func isFile(dir string, de os.DirEntry) bool {
	if de.Type().IsRegular() {
		return true
	}
	if de.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, de.Name()))
	return err == nil && info.Mode().IsRegular()
}
