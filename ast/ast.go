// Package ast holds the parsed-syntax-tree node types the scoreboard
// consumes. The lexer/parser that builds these trees is out of scope; this
// package only fixes the shape external code (or, in this project, tests)
// must build by hand.
//
// Plain structs, a marker method (isNode) rather than a rich interface
// hierarchy, grouped fields rather than one node per file.
package ast

import "github.com/boenset/moore/names"

// Node is implemented by every AST node, purely as a marker so generic code
// can accept any AST node uniformly when reporting diagnostics against it.
type Node interface {
	isNode()
	Span() names.Span
}

// Base carries the source span every node needs; embed it by value and set
// it through NewBase when building a tree by hand (as the tests here do, in
// place of a real parser).
type Base struct {
	span names.Span
}

// NewBase builds a Base stamped with the given span.
func NewBase(span names.Span) Base { return Base{span: span} }

func (Base) isNode()            {}
func (b Base) Span() names.Span { return b.span }

// Identifier is a parsed identifier, e.g. `clk` or `my_signal`.
type Identifier struct {
	Base
	Value string
}

// Char is a parsed character literal used as a primary name, e.g. '0'.
type Char struct {
	Base
	Value byte
}

// StringLit is a parsed string literal used as a primary name when it
// spells an operator symbol, e.g. "<=".
type StringLit struct {
	Base
	Value string
}
