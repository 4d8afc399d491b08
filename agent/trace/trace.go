// Package trace holds the append-only activity log a dispatcher and its
// specialists write to. The trace is a caller-owned value, not process
// state: a host wanting per-request isolation creates one trace (and one
// router) per request.
package trace

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Component string    `json:"component"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
}

// Trace is safe for interleaved writers. Orchestration logic never reads
// it back; it exists for observability only.
type Trace struct {
	mu      sync.Mutex
	entries []Entry
	logger  zerolog.Logger
	now     func() time.Time
}

func New() *Trace {
	return &Trace{
		logger: log.Logger,
		now:    time.Now,
	}
}

func (t *Trace) append(component string, level Level, message string) {
	e := Entry{
		Timestamp: t.now().UTC(),
		Component: component,
		Level:     level,
		Message:   message,
	}

	t.mu.Lock()
	t.entries = append(t.entries, e)
	t.mu.Unlock()

	ev := t.logger.Info()
	switch level {
	case LevelWarn:
		ev = t.logger.Warn()
	case LevelError:
		ev = t.logger.Error()
	}
	ev.Str("component", component).Msg(message)
}

// Entries returns a snapshot copy of the recorded entries.
func (t *Trace) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Recorder scopes trace writes to one component.
type Recorder struct {
	trace     *Trace
	component string
}

func (t *Trace) Recorder(component string) *Recorder {
	return &Recorder{trace: t, component: component}
}

func (r *Recorder) Info(format string, args ...any) {
	r.trace.append(r.component, LevelInfo, fmt.Sprintf(format, args...))
}

func (r *Recorder) Warn(format string, args ...any) {
	r.trace.append(r.component, LevelWarn, fmt.Sprintf(format, args...))
}

func (r *Recorder) Error(format string, args ...any) {
	r.trace.append(r.component, LevelError, fmt.Sprintf(format, args...))
}
