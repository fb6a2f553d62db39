package tui

import (
	"strings"
	"testing"
)

func plain(runes []styledRune, raw string) []styledRune {
	out := make([]styledRune, 0, len(raw))
	for _, r := range raw {
		out = append(out, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	return append(runes, out...)
}

func TestWrapPrefersSpaces(t *testing.T) {
	lines := wrapStyledRunes(plain(nil, "const value = compute(a, b);"), 12)
	for _, line := range lines {
		if len(line) > 12 {
			t.Fatalf("line too wide: %q", line)
		}
	}
	if lines[0] != "const value" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func TestWrapHardBreaksLongTokens(t *testing.T) {
	lines := wrapStyledRunes(plain(nil, strings.Repeat("x", 10)), 4)
	if len(lines) != 3 || lines[0] != "xxxx" || lines[2] != "xx" {
		t.Fatalf("unexpected hard wrap %q", lines)
	}
}

func TestWrapKeepsIndentation(t *testing.T) {
	lines := wrapStyledRunes(plain(nil, "    returnValue"), 8)
	if lines[0] != "    retu" {
		t.Fatalf("expected indentation to stay on the first line, got %q", lines[0])
	}
}

func TestHighlightLine(t *testing.T) {
	cells := highlightLine("const s = 'x'; // note")
	if cells[0].s != keywordStyle.Render("c") {
		t.Fatalf("expected keyword style")
	}
	if cells[10].s != stringStyle.Render("'") {
		t.Fatalf("expected string style")
	}
	if cells[len(cells)-1].s != commentStyle.Render("e") {
		t.Fatalf("expected comment style")
	}
	if cells[6].s != codeStyle.Render("s") {
		t.Fatalf("expected plain style for identifiers")
	}
}

func TestHighlightExpandsTabs(t *testing.T) {
	if got := len(highlightLine("\tx")); got != tabWidth+1 {
		t.Fatalf("expected %d cells, got %d", tabWidth+1, got)
	}
}
