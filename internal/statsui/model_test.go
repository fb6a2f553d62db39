package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lookbusy/internal/model"
	"github.com/verte-zerg/lookbusy/internal/stats"
)

func fakeLoader(calls *[]model.StatsFilter) Loader {
	return func(_ context.Context, filter model.StatsFilter) (stats.Report, error) {
		*calls = append(*calls, filter)
		end := time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)
		return stats.Report{
			Sessions: []model.WorkSession{
				{ID: 1, EndedAt: end, Job: model.JobFrontend, Ticks: 300, CharsRevealed: 1200, Mutations: 4, DurationMs: 600000},
				{ID: 2, EndedAt: end.Add(time.Hour), Job: model.JobFrontend, Ticks: 500, CharsRevealed: 2000, Panics: 2, DurationMs: 600000},
			},
			FilesWindow: []model.FileActivity{{File: "src/App.tsx", Ticks: 800, Chars: 3200}},
		}, nil
	}
}

func TestNewModelLoadsReport(t *testing.T) {
	var calls []model.StatsFilter
	m := NewModel(fakeLoader(&calls), model.StatsFilter{})
	if len(calls) != 1 || calls[0].CurveWindow != 5 {
		t.Fatalf("unexpected loader calls %+v", calls)
	}
	view := m.View()
	for _, want := range []string{"Overview", "Sessions", "2 sessions", "Keys/min"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestKeysChangeFilterAndTabs(t *testing.T) {
	var calls []model.StatsFilter
	m := NewModel(fakeLoader(&calls), model.StatsFilter{})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	if m.filter.Job != model.JobFrontend || calls[len(calls)-1].Job != model.JobFrontend {
		t.Fatalf("expected frontend filter, got %q", m.filter.Job)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	if m.filter.CurveWindow != 1 {
		t.Fatalf("expected window floor of 1, got %d", m.filter.CurveWindow)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabFiles {
		t.Fatalf("expected files tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "src/App.tsx") {
		t.Fatalf("expected file row in view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabSessions {
		t.Fatalf("expected sessions tab, got %d", m.activeTab)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestLoaderErrorIsShown(t *testing.T) {
	m := NewModel(func(context.Context, model.StatsFilter) (stats.Report, error) {
		return stats.Report{}, errors.New("disk on fire")
	}, model.StatsFilter{})
	if !strings.Contains(m.View(), "disk on fire") {
		t.Fatalf("expected error in view")
	}
}

func TestNextJobCycles(t *testing.T) {
	job := model.JobNone
	for range jobCycle {
		job = nextJob(job)
	}
	if job != model.JobNone {
		t.Fatalf("expected cycle to wrap, got %q", job)
	}
}
