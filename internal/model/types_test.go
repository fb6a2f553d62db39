package model

import (
	"encoding/json"
	"testing"
)

func TestParseJob(t *testing.T) {
	tests := []struct {
		in      string
		want    Job
		wantErr bool
	}{
		{in: "frontend", want: JobFrontend},
		{in: " Analyst ", want: JobAnalyst},
		{in: "MANAGER", want: JobManager},
		{in: "", want: JobNone},
		{in: "none", want: JobNone},
		{in: "null", want: JobNone},
		{in: "chef", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseJob(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseJob(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseJob(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseJob(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name string
		from Status
		fn   func(AppState) AppState
		want Status
	}{
		{name: "toggle running", from: StatusRunning, fn: AppState.ToggleSimulation, want: StatusPaused},
		{name: "toggle paused", from: StatusPaused, fn: AppState.ToggleSimulation, want: StatusRunning},
		{name: "toggle idle", from: StatusIdle, fn: AppState.ToggleSimulation, want: StatusRunning},
		{name: "toggle panic", from: StatusPanic, fn: AppState.ToggleSimulation, want: StatusRunning},
		{name: "panic from running", from: StatusRunning, fn: AppState.TriggerPanic, want: StatusPanic},
		{name: "panic from paused", from: StatusPaused, fn: AppState.TriggerPanic, want: StatusPanic},
		{name: "reset panic", from: StatusPanic, fn: AppState.ResetPanic, want: StatusIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := AppState{Job: JobManager, Status: tt.from}
			after := tt.fn(before)
			if after.Status != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, after.Status)
			}
			if after.Job != JobManager {
				t.Fatalf("transition must keep the job, got %q", after.Job)
			}
			if before.Status != tt.from {
				t.Fatalf("transition modified its receiver")
			}
		})
	}
}

func TestSetJobAndStatus(t *testing.T) {
	s := DefaultAppState().SetJob(JobAnalyst).SetStatus(StatusPaused)
	if s != (AppState{Job: JobAnalyst, Status: StatusPaused}) {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusIdle, StatusRunning, StatusPaused, StatusPanic} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range []Status{"", "dancing", "RUNNING"} {
		if s.Valid() {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestAppStateJSON(t *testing.T) {
	raw, err := json.Marshal(DefaultAppState())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"job":null,"status":"idle"}` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var s AppState
	if err := json.Unmarshal([]byte(`{"job":"frontend","status":"running"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s != (AppState{Job: JobFrontend, Status: StatusRunning}) {
		t.Fatalf("unexpected state %+v", s)
	}

	s = AppState{Job: JobManager}
	if err := json.Unmarshal([]byte(`{"job":null}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Job != JobNone {
		t.Fatalf("null must decode to no job, got %q", s.Job)
	}

	if err := json.Unmarshal([]byte(`{"job":"chef"}`), &s); err == nil {
		t.Fatalf("expected unknown job to be rejected")
	}
}
