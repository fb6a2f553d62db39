package snippets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingDir(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != len(builtin) {
		t.Fatalf("expected %d builtin snippets, got %d", len(builtin), len(got))
	}
}

func TestLoadDirReadsSnippetFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.snippet": "func b() {}\r\n",
		"a.txt":     "func a() {}\n\n",
		"blank.txt": "   \n",
		"skip.md":   "# not a snippet",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snippets, got %d: %q", len(got), got)
	}
	if got[0] != "func a() {}" || got[1] != "func b() {}" {
		t.Fatalf("unexpected snippets: %q", got)
	}
}

func TestBuiltinIsCopy(t *testing.T) {
	pool := Builtin()
	pool[0] = "changed"
	if builtin[0] == "changed" {
		t.Fatalf("Builtin must return a copy")
	}
}
