// Package snippets provides the code snippets appended while typing.
package snippets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions lists the file extensions loaded from a snippet directory.
var Extensions = []string{".txt", ".snippet"}

// Builtin returns a copy of the built-in snippet pool.
func Builtin() []string {
	return append([]string(nil), builtin...)
}

// Load returns the built-in pool followed by every snippet file in dir,
// sorted by file name. A missing or empty dir is not an error.
func Load(dir string) ([]string, error) {
	out := Builtin()
	if dir == "" {
		return out, nil
	}
	extra, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return append(out, extra...), nil
}

// LoadDir reads one snippet per file. Blank files are skipped.
func LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snippet directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !hasSnippetExt(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read snippet %s: %w", name, err)
		}
		text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, text)
	}
	return out, nil
}

func hasSnippetExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
