// Package names provides interned identifier names and source spans, the
// primitives every other package in this module builds on.
package names

import "sync"

// Name is an interned string. Two Names compare equal iff they were interned
// from the same spelling. The zero Name is invalid.
type Name struct {
	id int
}

// IsValid reports whether n was produced by Table.Intern.
func (n Name) IsValid() bool { return n.id != 0 }

// Table interns strings into comparable Name values.
//
// VHDL identifiers are case insensitive; the table folds to upper case
// before interning so `foo`, `FOO` and `Foo` all intern to the same Name,
// while String still returns the first spelling seen (the common
// "preserve declared case, compare case-insensitively" LRM rule).
type Table struct {
	mu      sync.Mutex
	byFold  map[string]int
	strings []string // index 0 unused, so the zero Name stays invalid
}

// NewTable creates an empty interning table.
func NewTable() *Table {
	return &Table{byFold: map[string]int{}, strings: []string{""}}
}

// Intern returns the Name for s, allocating a new one on first sight.
func (t *Table) Intern(s string) Name {
	fold := fold(s)
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byFold[fold]; ok {
		return Name{id: id}
	}
	id := len(t.strings)
	t.strings = append(t.strings, s)
	t.byFold[fold] = id
	return Name{id: id}
}

// String returns the spelling a Name was first interned with.
func (t *Table) String(n Name) string {
	if !n.IsValid() {
		return "<invalid>"
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.strings[n.id]
}

var (
	globalOnce  sync.Once
	globalTable *Table
)

// Global returns the single process-wide interning table. The built-in
// environment (package builtins) interns its identifiers here exactly once,
// so every session shares the same Name values for "STD", "BOOLEAN", and
// every other predefined identifier; a session's own driver interns user
// identifiers through the same table so built-in and user names compare
// correctly against each other.
func Global() *Table {
	globalOnce.Do(func() { globalTable = NewTable() })
	return globalTable
}

func fold(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
