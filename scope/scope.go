package scope

import "github.com/boenset/moore/noderef"

// Scope is one node of the scope tree: an optional
// parent, an ordered list of referenced Defs holders (e.g. use-clause
// imports), and an explicit-defs map for declarations made directly inside
// this scope.
type Scope struct {
	Parent   *noderef.ScopeRef
	Imported []noderef.ScopeRef // referenced defs-holders, consulted in order
	Explicit *Defs               // definitions injected directly into this scope
}

// NewScope creates an empty scope with the given optional parent.
func NewScope(parent *noderef.ScopeRef) *Scope {
	return &Scope{Parent: parent, Explicit: NewDefs()}
}

// Import appends a referenced defs-holder to this scope's import list, in
// the order use-clauses were processed.
func (s *Scope) Import(ref noderef.ScopeRef) {
	s.Imported = append(s.Imported, ref)
}
