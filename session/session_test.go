package session_test

import (
	"strings"
	"testing"

	"github.com/boenset/moore/names"
	"github.com/boenset/moore/session"
)

func TestInMemoryRecordsInOrder(t *testing.T) {
	s := session.NewInMemory(session.Options{})
	s.Emit(session.Diagnostic{Severity: session.SeverityWarning, Message: "first"})
	s.Emit(session.Diagnostic{Severity: session.SeverityError, Message: "second"})

	if len(s.Diagnostics) != 2 {
		t.Fatalf("recorded %d diagnostics, want 2", len(s.Diagnostics))
	}
	if s.Diagnostics[0].Message != "first" || s.Diagnostics[1].Message != "second" {
		t.Errorf("diagnostics out of order: %v", s.Diagnostics)
	}
}

func TestHasErrors(t *testing.T) {
	s := session.NewInMemory(session.Options{})
	if s.HasErrors() {
		t.Errorf("fresh session reports errors")
	}
	s.Emit(session.Diagnostic{Severity: session.SeverityNote, Message: "fyi"})
	if s.HasErrors() {
		t.Errorf("a note alone should not count as an error")
	}
	s.Emit(session.Diagnostic{Severity: session.SeverityError, Message: "broken"})
	if !s.HasErrors() {
		t.Errorf("HasErrors() = false after an error was emitted")
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	s := session.NewInMemory(session.Options{TraceScoreboard: true})
	if !s.Options().TraceScoreboard {
		t.Errorf("TraceScoreboard option was dropped")
	}
}

func TestDiagnosticString(t *testing.T) {
	spanless := session.Diagnostic{Severity: session.SeverityError, Message: "boom"}
	if got := spanless.String(); got != "error: boom" {
		t.Errorf("String() = %q, want %q", got, "error: boom")
	}

	spanned := session.Diagnostic{
		Severity: session.SeverityWarning,
		Message:  "odd",
		Span: names.Span{
			Begin: names.Pos{Filename: "a.vhd", Line: 3, Column: 7},
			End:   names.Pos{Filename: "a.vhd", Line: 3, Column: 9},
		},
	}
	if got := spanned.String(); !strings.HasPrefix(got, "a.vhd:3:7:") {
		t.Errorf("String() = %q, want a file:line:column prefix", got)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := session.NewInMemory(session.Options{})
	b := session.NewInMemory(session.Options{})
	if a.ID == b.ID {
		t.Errorf("two sessions share a correlation id")
	}
}
