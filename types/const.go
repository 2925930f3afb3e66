package types

import (
	"math/big"

	"github.com/boenset/moore/noderef"
)

// ConstKind tags which shape a Const value is.
type ConstKind int

const (
	ConstNull ConstKind = iota
	ConstInt
	ConstEnum
	ConstPhysical
)

// Const is a constant value computed for a typed node: an integer, an
// enumeration literal selection, a physical quantity, or the Null sentinel
// used where no concrete value could be produced.
type Const struct {
	Kind    ConstKind
	Type    Ty
	Int     *big.Int // valid when Kind == ConstInt or ConstPhysical
	EnumIdx int       // valid when Kind == ConstEnum: ordinal of the literal
}

// NewConstNull builds the Null constant.
func NewConstNull() Const { return Const{Kind: ConstNull} }

// NewConstInt builds an integer constant, e.g. the default value of an Int
// type: ConstInt(ty, ty.left_bound).
func NewConstInt(ty Ty, value *big.Int) Const {
	return Const{Kind: ConstInt, Type: ty, Int: value}
}

// NewConstEnum builds an enumeration-literal constant selecting the literal
// at the given ordinal.
func NewConstEnum(ty Ty, index int) Const {
	return Const{Kind: ConstEnum, Type: ty, EnumIdx: index}
}

// NewConstPhysical builds a physical-quantity constant, expressed as a
// count of the type's primary unit.
func NewConstPhysical(ty Ty, value *big.Int) Const {
	return Const{Kind: ConstPhysical, Type: ty, Int: value}
}

// MarkResolver chases a type-mark alias down to the Ty it denotes; the
// scoreboard supplies this by resolving a noderef.TypeMark through its own
// type table.
type MarkResolver func(noderef.TypeMark) Ty

const (
	errUnboundedIntHasNoDefault = ErrConst("unbounded integer type has no default value")
	errNoDefaultForType         = ErrConst("type has no defined default value")
)

// Default computes the implicit initializer for ty.K's table:
//
//	Named(_, inner)  -> default of inner
//	Null             -> Const::Null
//	Enum(_)          -> first literal (index 0) -- the LRM-mandated behavior;
//	                    see DESIGN.md for why this project diverges from the
//	                    placeholder Const::Null the original source used.
//	Int(ty)          -> ConstInt(ty, ty.left_bound)
//	UnboundedInt     -> error: unbounded integer has no default
func Default(ty Ty, resolveMark MarkResolver) (Const, error) {
	switch ty.Kind {
	case KindNamed:
		return Default(resolveMark(ty.Named.Mark), resolveMark)
	case KindNull:
		return NewConstNull(), nil
	case KindEnum:
		return NewConstEnum(ty, 0), nil
	case KindInt:
		return NewConstInt(ty, new(big.Int).Set(ty.Int.LeftBound())), nil
	case KindPhysical:
		return NewConstPhysical(ty, new(big.Int).Set(ty.Physical.Base.LeftBound())), nil
	case KindUnboundedInt:
		return Const{}, errUnboundedIntHasNoDefault
	default:
		return Const{}, errNoDefaultForType
	}
}
