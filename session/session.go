// Package session provides the diagnostic sink and option bag the
// scoreboard consumes, concretized with an in-memory collector for tests
// and drivers.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/boenset/moore/names"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, anchored at a span when one is
// available (built-in definitions use names.InvalidSpan).
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     names.Span
}

func (d Diagnostic) String() string {
	if !d.Span.IsValid() {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		d.Span.Begin.Filename, d.Span.Begin.Line, d.Span.Begin.Column, d.Severity, d.Message)
}

// Options is the option bag the scoreboard consumes.
type Options struct {
	// TraceScoreboard, when set, makes every scoreboard memo miss/fill log
	// through the scoreboard's own logger to stderr; nothing is emitted to
	// the session.
	TraceScoreboard bool
}

// Session is the diagnostic sink and option bag every elaboration step
// reports through.
type Session interface {
	Emit(Diagnostic)
	Options() Options
}

// InMemory is a Session that simply records every diagnostic emitted, in
// order, for drivers and tests to inspect afterwards.
type InMemory struct {
	ID          uuid.UUID
	opts        Options
	Diagnostics []Diagnostic
}

// NewInMemory creates a collecting Session with the given options and a
// fresh correlation id for tying its diagnostics back to one elaboration run.
func NewInMemory(opts Options) *InMemory {
	return &InMemory{ID: uuid.New(), opts: opts}
}

// Emit implements Session.
func (s *InMemory) Emit(d Diagnostic) { s.Diagnostics = append(s.Diagnostics, d) }

// Options implements Session.
func (s *InMemory) Options() Options { return s.opts }

// HasErrors reports whether any SeverityError diagnostic was emitted.
func (s *InMemory) HasErrors() bool {
	for _, d := range s.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
