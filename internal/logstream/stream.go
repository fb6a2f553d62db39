// Package logstream produces the fake build and extension logs shown under the editor.
package logstream

import (
	"math/rand"
	"time"
)

const timeLayout = "15:04:05"

// Stream is an append-only log that grows on timer ticks.
type Stream struct {
	Name     string
	Interval time.Duration

	rnd    *rand.Rand
	pool   []string
	prob   float64
	keep   int
	format func(ts, line string) string
	lines  []string
}

// Settings describes a stream before it is seeded with randomness.
type Settings struct {
	Name     string
	Interval time.Duration
	Backlog  []string
	Pool     []string
	Prob     float64
	Keep     int
	Format   func(ts, line string) string
}

// New seeds a stream with its backlog. A nil rnd is seeded with the current
// time.
func New(rnd *rand.Rand, settings Settings) *Stream {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	format := settings.Format
	if format == nil {
		format = func(ts, line string) string { return "[" + ts + "] " + line }
	}
	s := &Stream{
		Name:     settings.Name,
		Interval: settings.Interval,
		rnd:      rnd,
		pool:     append([]string(nil), settings.Pool...),
		prob:     settings.Prob,
		keep:     settings.Keep,
		format:   format,
		lines:    append([]string(nil), settings.Backlog...),
	}
	s.trim()
	return s
}

// Tick maybe appends one line stamped with now. It reports whether a line
// was added.
func (s *Stream) Tick(now time.Time) bool {
	if len(s.pool) == 0 || s.rnd.Float64() >= s.prob {
		return false
	}
	line := s.pool[s.rnd.Intn(len(s.pool))]
	s.lines = append(s.lines, s.format(now.Format(timeLayout), line))
	s.trim()
	return true
}

// Lines returns a copy of the retained lines, oldest first.
func (s *Stream) Lines() []string {
	return append([]string(nil), s.lines...)
}

// Tail returns at most n of the newest lines.
func (s *Stream) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	if n >= len(s.lines) {
		return s.Lines()
	}
	return append([]string(nil), s.lines[len(s.lines)-n:]...)
}

func (s *Stream) trim() {
	if s.keep > 0 && len(s.lines) > s.keep {
		s.lines = append([]string(nil), s.lines[len(s.lines)-s.keep:]...)
	}
}
