package ast

// SelectorKind tags what one step of a compound name does to its prefix.
type SelectorKind int

const (
	// SelectorDot is `.name`: select a declaration out of the scope the
	// prefix denotes.
	SelectorDot SelectorKind = iota
	// SelectorCall is a function-call or type-conversion-looking suffix:
	// `(args...)`. Not itself resolved by the name resolver; it stops
	// compound-name resolution.
	SelectorCall
	// SelectorIndex is `(expr)` used as an indexed name.
	SelectorIndex
	// SelectorRange is `(range)` used as a slice name.
	SelectorRange
	// SelectorAttribute is `'attr`.
	SelectorAttribute
)

// Selector is one step of a CompoundName.
type Selector struct {
	Kind SelectorKind
	Name Node   // the primary name for SelectorDot/SelectorAttribute
	Args []Node // expressions for SelectorCall/SelectorIndex
}

// CompoundName is `prefix.selector.selector...`.
// Prefix is itself a primary name (Identifier, Char, or StringLit); further
// nesting is expressed by chaining Selectors, not by nesting CompoundNames.
type CompoundName struct {
	Base
	Prefix    Node
	Selectors []Selector
}
