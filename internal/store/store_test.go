package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/lookbusy/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "lookbusy.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestLoadStateDefault(t *testing.T) {
	st := openTestStore(t)
	state, err := st.LoadState(context.Background())
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if state != model.DefaultAppState() {
		t.Fatalf("expected default state, got %+v", state)
	}
}

func TestSaveStateRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.SaveState(ctx, model.AppState{Job: model.JobFrontend, Status: model.StatusRunning}); err != nil {
		t.Fatalf("save state: %v", err)
	}
	want := model.AppState{Job: model.JobAnalyst, Status: model.StatusPaused}
	if err := st.SaveState(ctx, want); err != nil {
		t.Fatalf("save state: %v", err)
	}
	got, err := st.LoadState(ctx)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestStateIsStoredAsJSON(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.SaveState(ctx, model.AppState{Job: model.JobNone, Status: model.StatusPanic}); err != nil {
		t.Fatalf("save state: %v", err)
	}
	var raw string
	if err := st.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, StateKey).Scan(&raw); err != nil {
		t.Fatalf("query: %v", err)
	}
	if raw != `{"job":null,"status":"panic"}` {
		t.Fatalf("unexpected stored value %s", raw)
	}
	if err := st.SaveState(ctx, model.AppState{Job: model.JobManager, Status: model.StatusRunning}); err != nil {
		t.Fatalf("save state: %v", err)
	}
	if err := st.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, StateKey).Scan(&raw); err != nil {
		t.Fatalf("query: %v", err)
	}
	if raw != `{"job":"manager","status":"running"}` {
		t.Fatalf("unexpected stored value %s", raw)
	}
}

func TestLoadStateRejectsUnknownValues(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	tests := []struct {
		name    string
		raw     string
		want    model.AppState
		wantErr bool
	}{
		{name: "null job", raw: `{"job":null,"status":"paused"}`, want: model.AppState{Job: model.JobNone, Status: model.StatusPaused}},
		{name: "empty job", raw: `{"job":"","status":"running"}`, want: model.AppState{Job: model.JobNone, Status: model.StatusRunning}},
		{name: "missing status", raw: `{"job":"analyst"}`, want: model.AppState{Job: model.JobAnalyst, Status: model.StatusIdle}},
		{name: "unknown job", raw: `{"job":"chef","status":"running"}`, want: model.DefaultAppState()},
		{name: "unknown status", raw: `{"job":"frontend","status":"dancing"}`, want: model.DefaultAppState()},
		{name: "wrong type", raw: `{"job":7,"status":"idle"}`, want: model.DefaultAppState()},
		{name: "malformed", raw: `{"job":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.db.ExecContext(ctx,
				`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, '')
				 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, StateKey, tt.raw)
			if err != nil {
				t.Fatalf("write raw state: %v", err)
			}
			got, err := st.LoadState(ctx)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("load state: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestWorkSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Hour)
		job := model.JobFrontend
		if i == 1 {
			job = model.JobManager
		}
		ws := model.WorkSession{
			StartedAt:     start,
			EndedAt:       start.Add(10 * time.Minute),
			Job:           job,
			Ticks:         100 + i,
			CharsRevealed: 400,
			Mutations:     3,
			FilesOpened:   2,
			DurationMs:    (10 * time.Minute).Milliseconds(),
		}
		files := []model.FileActivity{
			{File: "src/App.tsx", Ticks: 60, Chars: 240},
			{File: "src/main.tsx", Ticks: 40, Chars: 160},
		}
		id, err := st.InsertWorkSession(ctx, ws, files)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := st.ListWorkSessions(ctx, model.StatsFilter{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(all) != 3 || all[0].ID != ids[0] || all[2].Ticks != 102 {
		t.Fatalf("unexpected sessions: %+v", all)
	}

	frontend, err := st.ListWorkSessions(ctx, model.StatsFilter{Job: model.JobFrontend, Last: 1})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(frontend) != 1 || frontend[0].ID != ids[2] {
		t.Fatalf("unexpected filtered sessions: %+v", frontend)
	}

	since := time.Unix(0, 0).UTC().Add(90 * time.Minute)
	recent, err := st.ListWorkSessions(ctx, model.StatsFilter{Since: &since})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent session, got %d", len(recent))
	}

	activity, err := st.ListFileActivity(ctx, ids[:2])
	if err != nil {
		t.Fatalf("list file activity: %v", err)
	}
	if len(activity) != 2 || activity[0].File != "src/App.tsx" || activity[0].Ticks != 120 || activity[0].Chars != 480 {
		t.Fatalf("unexpected activity: %+v", activity)
	}
}
