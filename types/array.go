package types

import "math/big"

// ArrayIndexKind tags whether an array index is unconstrained
// ("range <>") or a fixed, constrained range.
type ArrayIndexKind int

const (
	IndexUnbounded ArrayIndexKind = iota
	IndexConstrained
)

// ArrayIndex is one dimension of an array type.
type ArrayIndex struct {
	Kind ArrayIndexKind
	// Unbounded carries the index subtype, e.g. NATURAL for
	// `array (NATURAL range <>)`.
	Unbounded Ty
	// Constrained carries the fixed bounds, e.g. `array (0 to 7)`.
	Direction  Direction
	Low, High  *big.Int
}

// UnboundedIndex builds an unconstrained array index over the given index
// subtype.
func UnboundedIndex(elemTy Ty) ArrayIndex {
	return ArrayIndex{Kind: IndexUnbounded, Unbounded: elemTy}
}

// ConstrainedIndex builds a fixed-bounds array index.
func ConstrainedIndex(dir Direction, low, high *big.Int) ArrayIndex {
	return ArrayIndex{Kind: IndexConstrained, Direction: dir, Low: low, High: high}
}

// ArrayTy is an array type: a fixed-arity list of indices plus an element
// type. The index count is fixed at construction and never changes.
type ArrayTy struct {
	Indices []ArrayIndex
	Element Ty
}

// NewArray builds a Ty wrapping an array type.
func NewArray(indices []ArrayIndex, element Ty) Ty {
	return Ty{Kind: KindArray, Array: &ArrayTy{Indices: indices, Element: element}}
}

func arrayEqual(a, b *ArrayTy) bool {
	if len(a.Indices) != len(b.Indices) || !a.Element.Equal(b.Element) {
		return false
	}
	for i := range a.Indices {
		ai, bi := a.Indices[i], b.Indices[i]
		if ai.Kind != bi.Kind {
			return false
		}
		switch ai.Kind {
		case IndexUnbounded:
			if !ai.Unbounded.Equal(bi.Unbounded) {
				return false
			}
		case IndexConstrained:
			if ai.Direction != bi.Direction || ai.Low.Cmp(bi.Low) != 0 || ai.High.Cmp(bi.High) != 0 {
				return false
			}
		}
	}
	return true
}
