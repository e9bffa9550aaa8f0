// Package studio owns sketchlab's session state and drives the
// generate request lifecycle: Idle → Generating → {Succeeded, Failed} → Idle.
package studio

import (
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
	"github.com/zhubert/sketchlab/internal/imageref"
)

// TimestampLayout is the ISO-8601 form results are stamped with (always UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ViewMode selects the top-level view.
type ViewMode int

const (
	ViewGenerator ViewMode = iota
	ViewGallery
)

func (v ViewMode) String() string {
	switch v {
	case ViewGallery:
		return "Gallery"
	default:
		return "Generator"
	}
}

// Result is one successful generation. Results are never mutated after
// they are created.
type Result struct {
	ID           uuid.UUID
	OriginalRef  imageref.Ref // Session-local handle to the submitted bytes
	GeneratedRef string       // URL or data: URI returned by the service
	Timestamp    time.Time
	SourceName   string
}

// TimestampISO returns the creation time formatted with TimestampLayout.
func (r Result) TimestampISO() string {
	return r.Timestamp.UTC().Format(TimestampLayout)
}

// Failure is the user-visible notice left by a failed attempt.
type Failure struct {
	Err        error
	SourceName string
	At         time.Time
}

// Message summarises the failure for display.
func (f Failure) Message() string {
	switch pkgerrors.GetKind(f.Err) {
	case pkgerrors.KindNetwork:
		return "Could not reach the generation service"
	case pkgerrors.KindStatus:
		return "The generation service returned an error"
	case pkgerrors.KindMalformed:
		return "The generation service sent an unexpected response"
	case pkgerrors.KindCanceled:
		return "Generation canceled"
	default:
		return "Generation failed"
	}
}

// Session is the single mutable aggregate behind the UI. Only the
// Orchestrator writes to it; readers get copies.
type Session struct {
	mu           sync.RWMutex
	generating   bool
	current      *Result
	history      []Result // newest first
	view         ViewMode
	dark         bool
	failure      *Failure
	lastResponse []byte
}

func newSession(dark bool) *Session {
	return &Session{view: ViewGenerator, dark: dark}
}

// IsGenerating reports whether a request is outstanding.
func (s *Session) IsGenerating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generating
}

// Current returns the latest successful result, or nil when there is none
// (initially, while generating, and after a failure).
func (s *Session) Current() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	r := *s.current
	return &r
}

// History returns all results of this session, newest first.
func (s *Session) History() []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Result, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryLen returns the number of results without copying them.
func (s *Session) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// ViewMode returns the active top-level view.
func (s *Session) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// DarkMode reports whether the dark presentation is active.
func (s *Session) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// Failure returns the notice from the last failed attempt, or nil.
func (s *Session) Failure() *Failure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure == nil {
		return nil
	}
	f := *s.failure
	return &f
}

// LastResponse returns the raw body of the last successful response.
func (s *Session) LastResponse() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastResponse == nil {
		return nil
	}
	out := make([]byte, len(s.lastResponse))
	copy(out, s.lastResponse)
	return out
}
