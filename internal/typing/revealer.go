// Package typing simulates a person typing into the editor one tick at a time.
package typing

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultMinStep   = 2
	DefaultMaxStep   = 6
	DefaultMaxBuffer = 64 * 1024
	// MinMaxBuffer is the smallest cap the CLI accepts.
	MinMaxBuffer = 1024
)

// DefaultExtensible lists the suffixes that keep growing once fully revealed.
var DefaultExtensible = []string{".ts", ".tsx"}

// Session is the editor state for the active file. Revealed counts runes.
type Session struct {
	ActiveFile string
	Buffer     string
	Revealed   int
}

// Displayed returns the revealed prefix of the buffer.
func (s Session) Displayed() string {
	if s.Revealed <= 0 {
		return ""
	}
	i := 0
	for n := 0; n < s.Revealed && i < len(s.Buffer); n++ {
		_, size := utf8.DecodeRuneInString(s.Buffer[i:])
		i += size
	}
	return s.Buffer[:i]
}

// Len returns the buffer length in runes.
func (s Session) Len() int {
	return utf8.RuneCountInString(s.Buffer)
}

// State names where a session sits in the reveal cycle.
type State int

const (
	Filling State = iota
	ExhaustedTerminal
	ExhaustedExtending
)

func (s State) String() string {
	switch s {
	case Filling:
		return "filling"
	case ExhaustedTerminal:
		return "exhausted-terminal"
	case ExhaustedExtending:
		return "exhausted-extending"
	default:
		return "unknown"
	}
}

// Options configures a Revealer. Zero values fall back to the defaults.
type Options struct {
	Snippets   []string
	Extensible []string
	MinStep    int
	MaxStep    int
	MaxBuffer  int
}

// Revealer advances sessions. It is not safe for concurrent use.
type Revealer struct {
	rnd        *rand.Rand
	snippets   []string
	extensible []string
	minStep    int
	maxStep    int
	maxBuffer  int
}

// NewRevealer builds a Revealer. A nil rnd is seeded with the current time.
// The buffer cap is raised to at least twice the longest snippet plus its
// separator, so an append never trims the text it just added.
func NewRevealer(rnd *rand.Rand, opts Options) *Revealer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := &Revealer{
		rnd:        rnd,
		snippets:   append([]string(nil), opts.Snippets...),
		extensible: append([]string(nil), opts.Extensible...),
		minStep:    opts.MinStep,
		maxStep:    opts.MaxStep,
		maxBuffer:  opts.MaxBuffer,
	}
	if opts.Extensible == nil {
		r.extensible = append([]string(nil), DefaultExtensible...)
	}
	if r.minStep <= 0 {
		r.minStep = DefaultMinStep
	}
	if r.maxStep < r.minStep {
		r.maxStep = max(DefaultMaxStep, r.minStep)
	}
	if r.maxBuffer <= 0 {
		r.maxBuffer = DefaultMaxBuffer
	}
	longest := 0
	for _, snippet := range r.snippets {
		longest = max(longest, utf8.RuneCountInString(snippet))
	}
	r.maxBuffer = max(r.maxBuffer, 2*(longest+1))
	return r
}

// Open starts a session on freshly generated content, fully revealed.
func (r *Revealer) Open(name, content string) Session {
	s := Session{ActiveFile: name, Buffer: content}
	s = r.capBuffer(s)
	s.Revealed = s.Len()
	return s
}

// Extensible reports whether name grows once fully revealed.
func (r *Revealer) Extensible(name string) bool {
	for _, suffix := range r.extensible {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// State classifies s.
func (r *Revealer) State(s Session) State {
	if s.Revealed < s.Len() {
		return Filling
	}
	if r.Extensible(s.ActiveFile) && len(r.snippets) > 0 {
		return ExhaustedExtending
	}
	return ExhaustedTerminal
}

// Advance applies one tick and returns the new session.
func (r *Revealer) Advance(s Session) Session {
	n := s.Len()
	if s.Revealed > n {
		s.Revealed = n
	}
	if s.Revealed < 0 {
		s.Revealed = 0
	}
	switch r.State(s) {
	case Filling:
		s.Revealed = min(s.Revealed+r.step(), n)
	case ExhaustedExtending:
		step := r.step()
		snippet := r.snippets[r.rnd.Intn(len(r.snippets))]
		s.Buffer += "\n" + snippet
		s.Revealed += step
		s = r.capBuffer(s)
		s.Revealed = min(s.Revealed, s.Len())
	}
	return s
}

func (r *Revealer) step() int {
	return r.minStep + r.rnd.Intn(r.maxStep-r.minStep+1)
}

// capBuffer drops whole lines from the front until the buffer fits, shifting
// Revealed so the same text stays revealed.
func (r *Revealer) capBuffer(s Session) Session {
	over := s.Len() - r.maxBuffer
	if over <= 0 {
		return s
	}
	dropped := 0
	buf := s.Buffer
	for over > 0 {
		line, rest, found := strings.Cut(buf, "\n")
		if !found {
			cut := 0
			for i := 0; i < over; i++ {
				_, size := utf8.DecodeRuneInString(buf[cut:])
				cut += size
			}
			buf = buf[cut:]
			dropped += over
			break
		}
		removed := utf8.RuneCountInString(line) + 1
		buf = rest
		dropped += removed
		over -= removed
	}
	s.Buffer = buf
	s.Revealed = max(s.Revealed-dropped, 0)
	return s
}
