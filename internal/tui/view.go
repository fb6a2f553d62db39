package tui

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/lookbusy/internal/model"
	"github.com/verte-zerg/lookbusy/internal/vfs"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

var (
	codeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4D4D4"))
	keywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#569CD6"))
	stringStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CE9178"))
	commentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6A9955"))
	gutterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AEAFAD"))
	explorerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0")).Background(lipgloss.Color("#252526"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#37373D"))
	activeRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Background(lipgloss.Color("#252526"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Background(lipgloss.Color("#2D2D2D")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#1E1E1E")).Padding(0, 1)
	panelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	panelTabStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#007ACC"))
	pausedStyle    = statusStyle.Copy().Background(lipgloss.Color("#C89A3A"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C"))
)

type layout struct {
	explorerWidth int
	editorWidth   int
	editorHeight  int
	panelHeight   int
}

func (m *Model) size() (int, int) {
	if m.width <= 0 || m.height <= 0 {
		return defaultWidth, defaultHeight
	}
	return m.width, m.height
}

func (m *Model) layout() layout {
	width, height := m.size()
	explorer := max(min(width/4, 36), min(18, width/2))
	panel := max(min(height/4, 10), 3)
	return layout{
		explorerWidth: explorer,
		editorWidth:   max(width-explorer-1, 1),
		editorHeight:  max(height-panel-2, 1),
		panelHeight:   panel,
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.size()
	if m.state.Status == model.StatusPanic {
		return renderSheet(m.sheet, width, height)
	}
	l := m.layout()

	explorer := m.renderExplorer(l.explorerWidth, l.editorHeight+1)
	editor := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(l.editorWidth),
		m.editor.View(),
	)
	sep := separatorStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", l.editorHeight+1), "\n"))
	body := lipgloss.JoinHorizontal(lipgloss.Top, explorer, sep, editor)
	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.renderPanel(width, l.panelHeight),
		m.renderStatus(width),
	)
}

func (m *Model) refreshEditor() {
	l := m.layout()
	m.editor.Width = l.editorWidth
	m.editor.Height = l.editorHeight
	m.editor.SetContent(m.renderEditor(l.editorWidth))
	if m.follow {
		m.editor.GotoBottom()
	}
}

func (m *Model) renderEditor(width int) string {
	if m.session.ActiveFile == "" {
		return gutterStyle.Render("No file open. Press tab and pick one from the explorer.")
	}
	lines := strings.Split(m.session.Displayed(), "\n")
	gutter := len(strconv.Itoa(len(lines)))
	textWidth := max(width-gutter-2, 1)
	var b strings.Builder
	for i, line := range lines {
		cells := highlightLine(line)
		if i == len(lines)-1 {
			cells = append(cells, styledRune{s: cursorStyle.Render("▌"), width: 1})
		}
		for j, wrapped := range wrapStyledRunes(cells, textWidth) {
			num := ""
			if j == 0 {
				num = strconv.Itoa(i + 1)
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(gutterStyle.Render(fmt.Sprintf("%*s  ", gutter, num)))
			b.WriteString(wrapped)
		}
	}
	return b.String()
}

func (m *Model) renderExplorer(width, height int) string {
	rows := vfs.Rows(m.tree, false)
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	}
	visible := max(height-1, 1)
	if m.cursor >= m.scroll+visible {
		m.scroll = m.cursor - visible + 1
	}

	lines := []string{explorerStyle.Width(width).Render(fit(" EXPLORER: "+m.tree.Name, width))}
	for i := m.scroll; i < len(rows) && len(lines) < height; i++ {
		row := rows[i]
		text := fit(" "+row.Label(), width)
		style := explorerStyle
		switch {
		case i == m.cursor && m.focus == focusExplorer:
			style = selectedStyle
		case row.Path == m.session.ActiveFile:
			style = activeRowStyle
		}
		lines = append(lines, style.Width(width).Render(text))
	}
	for len(lines) < height {
		lines = append(lines, explorerStyle.Width(width).Render(""))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTabs(width int) string {
	var parts []string
	for _, name := range m.openFiles {
		style := tabStyle
		if name == m.session.ActiveFile {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(path.Base(name)))
	}
	return fit(lipgloss.JoinHorizontal(lipgloss.Top, parts...), width)
}

func (m *Model) renderPanel(width, height int) string {
	names := []string{"TERMINAL", "OUTPUT"}
	stream := m.terminal
	if m.panel == panelOutput {
		stream = m.output
	}
	var header []string
	for i, name := range names {
		if i == m.panel {
			header = append(header, panelStyle.Underline(true).Render(name))
		} else {
			header = append(header, panelTabStyle.Render(name))
		}
	}
	lines := []string{strings.Join(header, "   ")}
	for _, line := range stream.Tail(height - 1) {
		lines = append(lines, panelStyle.Render(fit(line, width)))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus(width int) string {
	style := statusStyle
	status := strings.ToUpper(string(m.state.Status))
	if m.state.Status == model.StatusPaused {
		style = pausedStyle
	}
	segments := []string{"● " + status, string(m.state.Job)}
	if m.session.ActiveFile != "" {
		lines := strings.Count(m.session.Displayed(), "\n") + 1
		segments = append(segments, m.session.ActiveFile, fmt.Sprintf("Ln %d", lines), m.revealer.State(m.session).String())
	}
	segments = append(segments, fmt.Sprintf("%d keys", m.work.Ticks), fmt.Sprintf("%d chaos", m.work.Mutations))
	if m.notice != "" {
		segments = append(segments, "last: "+m.notice)
	}
	left := strings.Join(segments, " · ")
	helpLine := m.help.ShortHelpView(keys.short(m.focus == focusExplorer))
	line := left + "   " + helpLine
	return style.Width(width).Render(fit(line, width))
}

// fit truncates s to width cells. ANSI sequences are ignored when measuring.
func fit(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	if strings.Contains(s, "\x1b[") {
		return lipgloss.NewStyle().MaxWidth(width).Render(s)
	}
	return runewidth.Truncate(s, width, "…")
}
