package types

import "math/big"

// IntTy is an integer type with arbitrary-precision bounds. Bounds use
// math/big.Int because VHDL's INTEGER spans i32, TIME spans i64, and a
// user type declared with e.g. `range 0 to 2**128-1` must still be
// representable exactly; see DESIGN.md for why this stays on the
// standard library instead of a pack dependency.
type IntTy struct {
	Direction Direction
	Low, High *big.Int
}

// NewIntTy builds an Int Ty from int64 bounds, the common case for
// built-in types.
func NewIntTy(dir Direction, low, high int64) Ty {
	l, h := bigIntRange(low, high)
	return Ty{Kind: KindInt, Int: &IntTy{Direction: dir, Low: l, High: h}}
}

// NewIntTyBig builds an Int Ty from already-constructed big.Int bounds.
func NewIntTyBig(dir Direction, low, high *big.Int) Ty {
	return Ty{Kind: KindInt, Int: &IntTy{Direction: dir, Low: low, High: high}}
}

// LeftBound returns the bound the LRM calls T'LEFT: Low if ascending, High
// if descending. An integer type's implicit default value is ConstInt(ty,
// ty.LeftBound()).
func (t *IntTy) LeftBound() *big.Int {
	if t.Direction == DirDownto {
		return t.High
	}
	return t.Low
}
