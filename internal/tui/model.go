// Package tui provides the Bubble Tea workspace interface.
package tui

import (
	"context"
	"log/slog"
	"math/rand"
	"slices"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lookbusy/internal/content"
	"github.com/verte-zerg/lookbusy/internal/logstream"
	"github.com/verte-zerg/lookbusy/internal/model"
	"github.com/verte-zerg/lookbusy/internal/typing"
	"github.com/verte-zerg/lookbusy/internal/vfs"
)

// Persister stores app state and finished work sessions.
type Persister interface {
	SaveState(ctx context.Context, state model.AppState) error
	InsertWorkSession(ctx context.Context, ws model.WorkSession, files []model.FileActivity) (int64, error)
}

type focus int

const (
	focusExplorer focus = iota
	focusEditor
)

const (
	panelTerminal = iota
	panelOutput
)

type terminalTickMsg time.Time

type outputTickMsg time.Time

// Options wires a Model. Store, Logger, Rand and Now may be nil.
type Options struct {
	Config   model.Config
	State    model.AppState
	Store    Persister
	Logger   *slog.Logger
	Rand     *rand.Rand
	Now      func() time.Time
	Snippets []string
}

// Model implements the Bubble Tea workspace UI.
type Model struct {
	store Persister
	log   *slog.Logger
	now   func() time.Time
	rnd   *rand.Rand

	state    model.AppState
	mutator  *vfs.Mutator
	gen      *content.Generator
	revealer *typing.Revealer

	tree      *vfs.Node
	cursor    int
	scroll    int
	focus     focus
	openFiles []string
	session   typing.Session

	terminal *logstream.Stream
	output   *logstream.Stream
	panel    int

	editor viewport.Model
	follow bool
	help   help.Model
	sheet  [][]string
	notice string

	width  int
	height int

	work     model.WorkSession
	files    map[string]*model.FileActivity
	finished bool
}

// NewModel constructs the workspace for the configured job.
func NewModel(opts Options) *Model {
	rnd := opts.Rand
	if rnd == nil {
		seed := opts.Config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rnd = rand.New(rand.NewSource(seed))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	state := opts.State
	if opts.Config.Job != model.JobNone {
		state = state.SetJob(opts.Config.Job)
	}
	if state.Job == model.JobNone {
		state = state.SetJob(model.JobFrontend)
	}
	if state.Status == "" {
		state = state.SetStatus(model.StatusIdle)
	}

	m := &Model{
		store:    opts.Store,
		log:      logger,
		now:      now,
		rnd:      rnd,
		state:    state,
		mutator:  vfs.NewMutator(rnd, opts.Config.ReservedFolders, opts.Config.FolderProb),
		gen:      content.New(rnd, now),
		revealer: typing.NewRevealer(rnd, typing.Options{Snippets: opts.Snippets, Extensible: opts.Config.Extensible, MaxBuffer: opts.Config.MaxBuffer}),
		tree:     vfs.ProjectFor(state.Job),
		focus:    focusEditor,
		editor:   viewport.New(80, 20),
		follow:   true,
		help:     help.New(),
		files:    map[string]*model.FileActivity{},
	}
	m.terminal = logstream.New(rnd, logstream.Terminal(m.tree.Name))
	m.output = logstream.New(rnd, logstream.Output())
	m.sheet = buildSheet(rnd)
	m.work = model.WorkSession{StartedAt: now(), Job: state.Job}
	if first := vfs.InitialFile(m.tree); first != "" {
		m.openFile(first)
	}
	m.saveState()
	return m
}

// State returns the current app state.
func (m *Model) State() model.AppState {
	return m.state
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tickTerminal(), m.tickOutput())
}

func (m *Model) tickTerminal() tea.Cmd {
	return tea.Tick(m.terminal.Interval, func(t time.Time) tea.Msg { return terminalTickMsg(t) })
}

func (m *Model) tickOutput() tea.Cmd {
	return tea.Tick(m.output.Interval, func(t time.Time) tea.Msg { return outputTickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshEditor()
		return m, nil
	case terminalTickMsg:
		m.terminal.Tick(time.Time(msg))
		return m, m.tickTerminal()
	case outputTickMsg:
		m.output.Tick(time.Time(msg))
		return m, m.tickOutput()
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		m.follow = m.editor.AtBottom()
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		m.Finish()
		return m, tea.Quit
	}
	if key.Matches(msg, keys.Panic) {
		m.togglePanic()
		return m, nil
	}
	if m.state.Status == model.StatusPanic {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Focus):
		if m.focus == focusEditor {
			m.focus = focusExplorer
		} else {
			m.focus = focusEditor
		}
	case key.Matches(msg, keys.Pause):
		m.setStatus(m.state.ToggleSimulation().Status)
	case key.Matches(msg, keys.Add):
		m.mutate(vfs.OpAdd)
	case key.Matches(msg, keys.Rename):
		m.mutate(vfs.OpRename)
	case key.Matches(msg, keys.Delete):
		m.mutate(vfs.OpDelete)
	case key.Matches(msg, keys.Panel):
		m.panel = (m.panel + 1) % 2
	case key.Matches(msg, keys.CloseTab):
		m.closeFile(m.session.ActiveFile)
	case m.focus == focusExplorer:
		m.handleExplorerKey(msg)
	default:
		m.tick()
	}
	return m, nil
}

func (m *Model) handleExplorerKey(msg tea.KeyMsg) {
	rows := vfs.Rows(m.tree, false)
	switch {
	case key.Matches(msg, keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, keys.Down):
		m.cursor = min(m.cursor+1, len(rows)-1)
	case key.Matches(msg, keys.Open):
		if m.cursor < 0 || m.cursor >= len(rows) {
			return
		}
		row := rows[m.cursor]
		if row.Node.Kind == vfs.KindFolder {
			m.tree = vfs.Toggle(m.tree, row.Path)
			return
		}
		m.openFile(row.Path)
		m.focus = focusEditor
	}
}

// tick is one simulated keystroke in the editor.
func (m *Model) tick() {
	switch m.state.Status {
	case model.StatusPaused, model.StatusPanic:
		return
	case model.StatusIdle:
		m.setStatus(model.StatusRunning)
	}
	if m.session.ActiveFile == "" {
		return
	}
	before := m.session.Revealed
	m.session = m.revealer.Advance(m.session)
	revealed := max(m.session.Revealed-before, 0)

	m.work.Ticks++
	m.work.CharsRevealed += revealed
	fa := m.fileActivity(m.session.ActiveFile)
	fa.Ticks++
	fa.Chars += revealed
	m.refreshEditor()
}

func (m *Model) mutate(op vfs.Op) {
	m.tree = m.mutator.Mutate(op, m.tree)
	m.work.Mutations++
	m.notice = op.String()
	m.log.Debug("tree mutated", "op", op.String(), "nodes", m.tree.Count())

	var missing []string
	for _, name := range m.openFiles {
		if n := m.tree.Find(name); n == nil || n.Kind != vfs.KindFile {
			missing = append(missing, name)
		}
	}
	for _, name := range missing {
		m.closeFile(name)
	}
	if rows := vfs.Rows(m.tree, false); m.cursor >= len(rows) {
		m.cursor = max(len(rows)-1, 0)
	}
}

func (m *Model) openFile(path string) {
	if !slices.Contains(m.openFiles, path) {
		m.openFiles = append(m.openFiles, path)
	}
	m.session = m.revealer.Open(path, m.gen.Generate(path))
	m.work.FilesOpened++
	m.follow = false
	m.refreshEditor()
	m.editor.GotoTop()
	m.follow = true
	m.log.Debug("file opened", "file", path, "state", m.revealer.State(m.session).String())
}

func (m *Model) closeFile(path string) {
	idx := slices.Index(m.openFiles, path)
	if idx < 0 {
		return
	}
	m.openFiles = slices.Delete(m.openFiles, idx, idx+1)
	if m.session.ActiveFile != path {
		return
	}
	if len(m.openFiles) == 0 {
		m.session = typing.Session{}
		m.refreshEditor()
		return
	}
	m.openFile(m.openFiles[len(m.openFiles)-1])
}

func (m *Model) togglePanic() {
	if m.state.Status == model.StatusPanic {
		m.setStatus(m.state.ResetPanic().Status)
		return
	}
	m.work.Panics++
	m.setStatus(m.state.TriggerPanic().Status)
}

func (m *Model) setStatus(status model.Status) {
	if m.state.Status == status {
		return
	}
	m.log.Info("status changed", "from", string(m.state.Status), "to", string(status))
	m.state = m.state.SetStatus(status)
	m.saveState()
}

func (m *Model) saveState() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveState(context.Background(), m.state); err != nil {
		m.log.Error("failed to save state", "error", err)
	}
}

func (m *Model) fileActivity(path string) *model.FileActivity {
	fa, ok := m.files[path]
	if !ok {
		fa = &model.FileActivity{File: path}
		m.files[path] = fa
	}
	return fa
}

// Finish persists the state and the work session. It is safe to call twice.
func (m *Model) Finish() {
	if m.finished {
		return
	}
	m.finished = true
	m.saveState()

	m.work.EndedAt = m.now()
	m.work.Job = m.state.Job
	m.work.DurationMs = m.work.EndedAt.Sub(m.work.StartedAt).Milliseconds()
	if m.store == nil || (m.work.Ticks == 0 && m.work.Mutations == 0) {
		return
	}
	files := make([]model.FileActivity, 0, len(m.files))
	for _, fa := range m.files {
		files = append(files, *fa)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].File < files[j].File })
	id, err := m.store.InsertWorkSession(context.Background(), m.work, files)
	if err != nil {
		m.log.Error("failed to save work session", "error", err)
		return
	}
	m.log.Info("work session saved", "id", id, "ticks", m.work.Ticks, "mutations", m.work.Mutations)
}
