// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lookbusy/internal/model"
	"github.com/verte-zerg/lookbusy/internal/stats"
	"github.com/verte-zerg/lookbusy/internal/store"
)

const (
	tabOverview = iota
	tabSessions
	tabFiles
)

const plotHeight = 8

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#007ACC"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

type keyMap struct {
	Quit   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Job    key.Binding
	Wider  key.Binding
	Narrow key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	Next:   key.NewBinding(key.WithKeys("tab", "right", "l")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
	Job:    key.NewBinding(key.WithKeys("f")),
	Wider:  key.NewBinding(key.WithKeys("]")),
	Narrow: key.NewBinding(key.WithKeys("[")),
}

var jobCycle = []model.Job{model.JobNone, model.JobFrontend, model.JobAnalyst, model.JobManager}

// Loader builds a report for a filter.
type Loader func(ctx context.Context, filter model.StatsFilter) (stats.Report, error)

// StoreLoader loads reports from st.
func StoreLoader(st *store.Store) Loader {
	return func(ctx context.Context, filter model.StatsFilter) (stats.Report, error) {
		return stats.BuildReport(ctx, st, filter)
	}
}

// Model implements the Bubble Tea stats UI.
type Model struct {
	load   Loader
	filter model.StatsFilter

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	sessions  table.Model
	files     table.Model

	width  int
	height int
}

// NewModel constructs the stats browser and loads the first report.
func NewModel(load Loader, filter model.StatsFilter) *Model {
	if filter.CurveWindow <= 0 {
		filter.CurveWindow = 5
	}
	m := &Model{
		load:     load,
		filter:   filter,
		tabs:     []string{"Overview", "Sessions", "Files"},
		overview: viewport.New(80, 20),
		sessions: table.New(table.WithFocused(true), table.WithStyles(tableStyles())),
		files:    table.New(table.WithFocused(true), table.WithStyles(tableStyles())),
	}
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.moveTab(1)
		case key.Matches(msg, keys.Prev):
			m.moveTab(-1)
		case key.Matches(msg, keys.Job):
			m.filter.Job = nextJob(m.filter.Job)
			m.refreshReport()
		case key.Matches(msg, keys.Wider):
			m.filter.CurveWindow++
			m.refreshReport()
		case key.Matches(msg, keys.Narrow):
			m.filter.CurveWindow = max(m.filter.CurveWindow-1, 1)
			m.refreshReport()
		default:
			return m.updateActive(msg)
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabSessions:
		m.sessions, cmd = m.sessions.Update(msg)
	case tabFiles:
		m.files, cmd = m.files.Update(msg)
	default:
		m.overview, cmd = m.overview.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	parts := []string{m.renderTabs(), m.renderHeader()}
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	}
	switch m.activeTab {
	case tabSessions:
		parts = append(parts, m.sessions.View())
	case tabFiles:
		parts = append(parts, m.files.View())
	default:
		parts = append(parts, m.overview.View())
	}
	parts = append(parts, headerStyle.Render("tab/←/→ switch · f job filter · [ ] curve window · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
}

func (m *Model) renderTabs() string {
	rendered := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			rendered[i] = activeNavStyle.Render(tab)
		} else {
			rendered[i] = inactiveNavStyle.Render(tab)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderHeader() string {
	job := "all jobs"
	if m.filter.Job != model.JobNone {
		job = string(m.filter.Job)
	}
	return headerStyle.Render(fmt.Sprintf("Filter: %s · %d sessions · window %d", job, len(m.report.Sessions), m.filter.CurveWindow))
}

func (m *Model) refreshReport() {
	report, err := m.load(context.Background(), m.filter)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load stats: %v", err)
		m.report = stats.Report{}
	} else {
		m.errMsg = ""
		m.report = report
	}
	m.renderTabContents()
}

func (m *Model) bodySize() (int, int) {
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = 100, 30
	}
	// tabs (3) + header + footer
	return width, max(height-5, 3)
}

func (m *Model) renderTabContents() {
	width, height := m.bodySize()
	m.overview.Width = width
	m.overview.Height = height
	m.overview.SetContent(renderOverview(m.report, m.filter.CurveWindow, width))

	cols, rows := sessionTableData(m.report.Sessions)
	m.sessions.SetColumns(cols)
	m.sessions.SetRows(rows)
	m.sessions.SetWidth(width)
	m.sessions.SetHeight(height)
	m.sessions.GotoBottom()

	cols, rows = fileTableData(m.report.FilesWindow)
	m.files.SetColumns(cols)
	m.files.SetRows(rows)
	m.files.SetWidth(width)
	m.files.SetHeight(height)
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Sessions) == 0 {
		return "No work sessions yet. Run lookbusy and type something."
	}
	var buf bytes.Buffer
	if err := stats.RenderCurves(&buf, report.Sessions, window, width, plotHeight, true); err != nil {
		return errorStyle.Render(err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, renderSummaryCards(report.Sessions), buf.String())
}

func renderSummaryCards(sessions []model.WorkSession) string {
	var keysPerMin, linesPerHour float64
	var totalMs int64
	var mutations, panics int
	for _, s := range sessions {
		m := stats.SessionMetrics(s.Ticks, s.CharsRevealed, s.DurationMs)
		keysPerMin += m.KeysPerMin
		linesPerHour += m.LinesPerHour
		totalMs += s.DurationMs
		mutations += s.Mutations
		panics += s.Panics
	}
	n := float64(len(sessions))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("Sessions", fmt.Sprintf("%d", len(sessions))),
		metricCard("Busy hours", fmt.Sprintf("%.1f", float64(totalMs)/3.6e6)),
		metricCard("Keys/min", fmt.Sprintf("%.1f", keysPerMin/n)),
		metricCard("Lines/hour", fmt.Sprintf("%.0f", linesPerHour/n)),
		metricCard("Chaos", fmt.Sprintf("%d", mutations)),
		metricCard("Panics", fmt.Sprintf("%d", panics)),
	)
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func sessionTableData(sessions []model.WorkSession) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Job", Width: 9},
		{Title: "Minutes", Width: 8},
		{Title: "Keys/min", Width: 9},
		{Title: "Lines/h", Width: 8},
		{Title: "Chaos", Width: 6},
		{Title: "Panics", Width: 6},
	}
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		m := stats.SessionMetrics(s.Ticks, s.CharsRevealed, s.DurationMs)
		job := string(s.Job)
		if job == "" {
			job = "-"
		}
		rows = append(rows, table.Row{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			job,
			fmt.Sprintf("%.1f", float64(s.DurationMs)/60000),
			fmt.Sprintf("%.1f", m.KeysPerMin),
			fmt.Sprintf("%.0f", m.LinesPerHour),
			fmt.Sprintf("%d", s.Mutations),
			fmt.Sprintf("%d", s.Panics),
		})
	}
	return cols, rows
}

func fileTableData(files []model.FileActivity) ([]table.Column, []table.Row) {
	fileWidth := 20
	for _, fa := range files {
		fileWidth = max(fileWidth, lipgloss.Width(fa.File))
	}
	cols := []table.Column{
		{Title: "File", Width: min(fileWidth, 48)},
		{Title: "Keys", Width: 8},
		{Title: "Chars", Width: 8},
	}
	rows := make([]table.Row, 0, len(files))
	for _, fa := range stats.TopFiles(files, len(files)) {
		rows = append(rows, table.Row{fa.File, fmt.Sprintf("%d", fa.Ticks), fmt.Sprintf("%d", fa.Chars)})
	}
	return cols, rows
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#F0F0F0")).
		Background(lipgloss.Color("#37373D"))
	return s
}

func nextJob(job model.Job) model.Job {
	for i, j := range jobCycle {
		if j == job {
			return jobCycle[(i+1)%len(jobCycle)]
		}
	}
	return model.JobNone
}
