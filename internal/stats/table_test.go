package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"File", "Keys", "Chars"}
	rows := [][]string{
		{"a.ts", "97", "12"},
		{"src/App.tsx", "8", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "File        Keys Chars" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a.ts          97    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "src/App.tsx    8     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name", "N"}, [][]string{{"日本", "1"}}, nil)
	if lines[1] != "日本 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
}
