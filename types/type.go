// Package types implements the VHDL type algebra and constant value model
// as a small set of concrete struct kinds rather than an open class
// hierarchy, switched over by Kind instead of dispatched through an
// interface.
package types

import (
	"fmt"
	"math/big"

	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
)

// Kind tags which of the VHDL type shapes a Ty is.
type Kind int

const (
	KindNull Kind = iota
	KindNamed
	KindEnum
	KindInt
	KindUnboundedInt
	KindPhysical
	KindArray
	KindSubprog
)

// Ty is the VHDL type algebra: a closed tagged sum. Only the field
// matching Kind is meaningful.
type Ty struct {
	Kind     Kind
	Named    *NamedTy
	Enum     *EnumTy
	Int      *IntTy
	Physical *PhysicalTy
	Array    *ArrayTy
	Subprog  *SubprogTy
}

// Null is the type of an expression whose type could not be determined; it
// unifies with nothing and carries no further data.
var Null = Ty{Kind: KindNull}

// UnboundedInt is the type of an as-yet-uncommitted integer literal.
var UnboundedInt = Ty{Kind: KindUnboundedInt}

// NamedTy is a type-mark alias: a name plus the type mark it denotes.
type NamedTy struct {
	Name names.Name
	Mark noderef.TypeMark
}

// NewNamed builds a Ty wrapping a type-mark alias.
func NewNamed(name names.Name, mark noderef.TypeMark) Ty {
	return Ty{Kind: KindNamed, Named: &NamedTy{Name: name, Mark: mark}}
}

// EnumTy is an enumeration type; its only state is which declaration it
// belongs to; the ordered literal list itself lives on the HIR TypeDecl
// node, addressed via EnumRef(decl, index).
type EnumTy struct {
	Decl noderef.TypeDeclRef
}

// NewEnum builds a Ty wrapping an enumeration type.
func NewEnum(decl noderef.TypeDeclRef) Ty {
	return Ty{Kind: KindEnum, Enum: &EnumTy{Decl: decl}}
}

// Direction is the ascending/descending direction of a discrete range.
type Direction int

const (
	DirTo Direction = iota
	DirDownto
)

func (d Direction) String() string {
	if d == DirDownto {
		return "downto"
	}
	return "to"
}

// String renders a Ty for diagnostics.
func (t Ty) String() string {
	switch t.Kind {
	case KindNull:
		return "<null>"
	case KindNamed:
		return fmt.Sprintf("alias(%v)", t.Named.Mark)
	case KindEnum:
		return fmt.Sprintf("Enum(%v)", t.Enum.Decl)
	case KindInt:
		return fmt.Sprintf("Int(%v %v %v)", t.Int.Low, t.Int.Direction, t.Int.High)
	case KindUnboundedInt:
		return "<unbounded-int>"
	case KindPhysical:
		return fmt.Sprintf("Physical(%v)", t.Physical.Decl)
	case KindArray:
		return "Array(...)"
	case KindSubprog:
		return "Subprog(...)"
	default:
		return "<bad-type>"
	}
}

// Equal reports whether two types are the structurally same type
// (not merely compatible/convertible). Used by the type checker and by
// tests comparing expected vs. actual typed-node results.
func (t Ty) Equal(o Ty) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindNull, KindUnboundedInt:
		return true
	case KindNamed:
		return t.Named.Mark == o.Named.Mark
	case KindEnum:
		return t.Enum.Decl == o.Enum.Decl
	case KindInt:
		return t.Int.Direction == o.Int.Direction &&
			t.Int.Low.Cmp(o.Int.Low) == 0 && t.Int.High.Cmp(o.Int.High) == 0
	case KindPhysical:
		return t.Physical.Decl == o.Physical.Decl
	case KindArray:
		return arrayEqual(t.Array, o.Array)
	case KindSubprog:
		return subprogEqual(t.Subprog, o.Subprog)
	default:
		return false
	}
}

// bigIntRange is a small helper used by IntTy/PhysicalTy construction.
func bigIntRange(low, high int64) (*big.Int, *big.Int) {
	return big.NewInt(low), big.NewInt(high)
}
