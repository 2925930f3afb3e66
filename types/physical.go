package types

import (
	"math/big"

	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
)

// PhysicalUnit is one unit of a physical type: a name, its scale relative to
// the primary unit (absolute, in terms of the primary unit), and, for every
// unit but the primary, the multiplier and referenced-unit index it was
// declared relative to.
type PhysicalUnit struct {
	Name names.Name
	Abs  *big.Int // absolute scale, in units of the primary unit
	Rel  *RelUnit // nil for the primary unit
}

// RelUnit is the "derived from another unit" part of a non-primary
// PhysicalUnit.
type RelUnit struct {
	Scale          *big.Int
	ReferencedUnit int // index into the owning PhysicalTy.Units
}

// PhysicalTy is a physical type: a base integer range plus an ordered list
// of units forming a DAG rooted at PrimaryIndex.
type PhysicalTy struct {
	Decl         noderef.TypeDeclRef
	Base         IntTy
	Units        []PhysicalUnit
	PrimaryIndex int
}

// NewPhysical builds a Ty wrapping a physical type.
func NewPhysical(decl noderef.TypeDeclRef, base IntTy, units []PhysicalUnit, primary int) Ty {
	return Ty{Kind: KindPhysical, Physical: &PhysicalTy{
		Decl: decl, Base: base, Units: units, PrimaryIndex: primary,
	}}
}

// Unit returns the i'th unit, or nil if out of range.
func (t *PhysicalTy) Unit(i int) *PhysicalUnit {
	if i < 0 || i >= len(t.Units) {
		return nil
	}
	return &t.Units[i]
}

// ValidateScales checks the physical unit scale law:
// unit[i].abs == unit[i-1 referenced].abs * rel[i].scale for every non-primary
// unit, and that the primary unit has Abs == 1 and no Rel.
func (t *PhysicalTy) ValidateScales() error {
	primary := t.Unit(t.PrimaryIndex)
	if primary == nil {
		return errPhysicalNoPrimary
	}
	if primary.Rel != nil || primary.Abs.Cmp(big.NewInt(1)) != 0 {
		return errPhysicalBadPrimary
	}
	for i, u := range t.Units {
		if i == t.PrimaryIndex {
			continue
		}
		if u.Rel == nil {
			return errPhysicalMissingRel
		}
		ref := t.Unit(u.Rel.ReferencedUnit)
		if ref == nil {
			return errPhysicalBadRef
		}
		want := new(big.Int).Mul(ref.Abs, u.Rel.Scale)
		if want.Cmp(u.Abs) != 0 {
			return errPhysicalScaleMismatch
		}
	}
	return nil
}
