package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

var jsKeywords = map[string]bool{
	"async": true, "await": true, "break": true, "case": true, "class": true,
	"const": true, "default": true, "do": true, "else": true, "export": true,
	"extends": true, "for": true, "from": true, "function": true, "if": true,
	"import": true, "interface": true, "let": true, "new": true, "return": true,
	"switch": true, "throw": true, "try": true, "catch": true, "type": true,
	"while": true, "SELECT": true, "FROM": true, "WHERE": true, "CREATE": true,
	"TABLE": true, "INSERT": true,
}

// highlightLine styles one line of code rune by rune: comments, string
// literals and keywords.
func highlightLine(line string) []styledRune {
	runes := []rune(strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth)))
	styles := make([]lipgloss.Style, len(runes))
	for i := range styles {
		styles[i] = codeStyle
	}

	var quote rune
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			styles[i] = stringStyle
			if r == quote && (i == 0 || runes[i-1] != '\\') {
				quote = 0
			}
		case r == '/' && i+1 < len(runes) && runes[i+1] == '/', r == '#' && strings.TrimSpace(string(runes[:i])) == "":
			for j := i; j < len(runes); j++ {
				styles[j] = commentStyle
			}
			i = len(runes)
		case r == '"' || r == '\'' || r == '`':
			quote = r
			styles[i] = stringStyle
		case isIdentStart(r) && (i == 0 || !isIdent(runes[i-1])):
			j := i
			for j < len(runes) && isIdent(runes[j]) {
				j++
			}
			if jsKeywords[string(runes[i:j])] {
				for k := i; k < j; k++ {
					styles[k] = keywordStyle
				}
			}
			i = j - 1
		}
	}

	out := make([]styledRune, len(runes))
	for i, r := range runes {
		out[i] = styledRune{
			s:       styles[i].Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		}
	}
	return out
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdent(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width, preferring
// the last space after the indentation.
func wrapStyledRunes(runes []styledRune, width int) []string {
	if width <= 0 {
		return []string{renderStyledRunes(runes)}
	}
	var out []string
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out = append(out, renderStyledRunes(line[:lastSpaceIdx]))
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out = append(out, renderStyledRunes(line))
				line = line[:0]
				lineWidth = 0
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace && hasText(line) {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	return append(out, renderStyledRunes(line))
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func hasText(line []styledRune) bool {
	for _, item := range line {
		if !item.isSpace {
			return true
		}
	}
	return false
}

// lastSpaceIndex returns the last space that follows some text, or -1.
func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i > 0; i-- {
		if line[i].isSpace && hasText(line[:i]) {
			return i
		}
	}
	return -1
}
