package names

import "fmt"

// ResolvableKind tags which of the three disjoint sub-spaces a Resolvable
// name occupies.
type ResolvableKind int

const (
	ResolvableIdent ResolvableKind = iota
	ResolvableBit
	ResolvableOperator
)

// Resolvable is a name exactly as it appears at a use site: an interned
// identifier, a single bit-literal character, or a normalized operator
// symbol. It is comparable, so it can be used directly as a Defs map key;
// equality between two Resolvables of different Kind is always false, which
// gives the three sub-spaces the disjointness this type needs.
type Resolvable struct {
	Kind  ResolvableKind
	Ident Name     // valid when Kind == ResolvableIdent
	Bit   byte     // valid when Kind == ResolvableBit
	Op    Operator // valid when Kind == ResolvableOperator
}

// Ident builds a Resolvable from an interned identifier.
func Ident(n Name) Resolvable { return Resolvable{Kind: ResolvableIdent, Ident: n} }

// Bit builds a Resolvable from a bit-literal character such as '0' or '1'.
func Bit(c byte) Resolvable { return Resolvable{Kind: ResolvableBit, Bit: c} }

// Op builds a Resolvable from an already-normalized operator.
func Op(o Operator) Resolvable { return Resolvable{Kind: ResolvableOperator, Op: o} }

// Display renders the resolvable name for diagnostics: a bit as its quoted
// character and an operator as the quoted VHDL spelling from
// Operator.String.
func (r Resolvable) Display(t *Table) string {
	switch r.Kind {
	case ResolvableIdent:
		return t.String(r.Ident)
	case ResolvableBit:
		return fmt.Sprintf("'%c'", r.Bit)
	case ResolvableOperator:
		return fmt.Sprintf("%q", r.Op.String())
	default:
		return "<invalid-name>"
	}
}
