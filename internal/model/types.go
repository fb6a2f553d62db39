// Package model defines shared data structures.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Job selects which simulated workplace is shown.
type Job string

const (
	JobNone     Job = ""
	JobFrontend Job = "frontend"
	JobAnalyst  Job = "analyst"
	JobManager  Job = "manager"
)

// ParseJob validates a job name. "none" and "" map to JobNone.
func ParseJob(s string) (Job, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "null":
		return JobNone, nil
	case string(JobFrontend):
		return JobFrontend, nil
	case string(JobAnalyst):
		return JobAnalyst, nil
	case string(JobManager):
		return JobManager, nil
	default:
		return JobNone, fmt.Errorf("unknown job %q (want frontend, analyst, manager or none)", s)
	}
}

// MarshalJSON writes JobNone as null.
func (j Job) MarshalJSON() ([]byte, error) {
	if j == JobNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(j))
}

// UnmarshalJSON accepts null or one of the known job names.
func (j *Job) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*j = JobNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	job, err := ParseJob(raw)
	if err != nil {
		return err
	}
	*j = job
	return nil
}

// Status is the simulation status.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
	StatusPanic   Status = "panic"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusRunning, StatusPaused, StatusPanic:
		return true
	}
	return false
}

// AppState is the persisted client state.
type AppState struct {
	Job    Job    `json:"job"`
	Status Status `json:"status"`
}

// DefaultAppState returns the state used when nothing is stored yet.
func DefaultAppState() AppState {
	return AppState{Job: JobNone, Status: StatusIdle}
}

// SetJob returns the state with the job replaced.
func (s AppState) SetJob(job Job) AppState {
	s.Job = job
	return s
}

// SetStatus returns the state with the status replaced.
func (s AppState) SetStatus(status Status) AppState {
	s.Status = status
	return s
}

// ToggleSimulation flips running and paused. Any other status starts running.
func (s AppState) ToggleSimulation() AppState {
	if s.Status == StatusRunning {
		s.Status = StatusPaused
		return s
	}
	s.Status = StatusRunning
	return s
}

// TriggerPanic hides the workspace.
func (s AppState) TriggerPanic() AppState {
	s.Status = StatusPanic
	return s
}

// ResetPanic leaves panic mode.
func (s AppState) ResetPanic() AppState {
	s.Status = StatusIdle
	return s
}

// Config defines simulation settings.
type Config struct {
	Job             Job
	Seed            int64
	FolderProb      float64
	MaxBuffer       int
	Extensible      []string
	ReservedFolders []string
	SnippetDir      string
}

// StatsFilter defines filters for work session history.
type StatsFilter struct {
	Job         Job
	Since       *time.Time
	Last        int
	CurveWindow int
	TopFiles    int
}

// WorkSession captures one run of the workspace.
type WorkSession struct {
	ID            int64
	StartedAt     time.Time
	EndedAt       time.Time
	Job           Job
	Ticks         int
	CharsRevealed int
	Mutations     int
	FilesOpened   int
	Panics        int
	DurationMs    int64
}

// FileActivity counts the typing done in one file during a work session.
type FileActivity struct {
	File  string
	Ticks int
	Chars int
}
