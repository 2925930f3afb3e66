package types

import (
	"math"
	"math/big"
	"testing"

	"github.com/boenset/moore/noderef"
)

func TestIntTyLeftBound(t *testing.T) {
	ascending := NewIntTy(DirTo, 0, 255)
	if got, want := ascending.Int.LeftBound().Int64(), int64(0); got != want {
		t.Errorf("ascending LeftBound() = %d, want %d", got, want)
	}

	descending := NewIntTy(DirDownto, 0, 255)
	if got, want := descending.Int.LeftBound().Int64(), int64(255); got != want {
		t.Errorf("descending LeftBound() = %d, want %d", got, want)
	}
}

func TestIntTyArbitraryPrecisionBounds(t *testing.T) {
	integerTy := NewIntTy(DirTo, math.MinInt32, math.MaxInt32)
	if got, want := integerTy.Int.High.Int64(), int64(math.MaxInt32); got != want {
		t.Errorf("INTEGER high bound = %d, want %d", got, want)
	}

	timeTy := NewIntTy(DirTo, math.MinInt64, math.MaxInt64)
	if got, want := timeTy.Int.Low.Int64(), int64(math.MinInt64); got != want {
		t.Errorf("TIME base low bound = %d, want %d", got, want)
	}
}

func TestPhysicalScaleLaw(t *testing.T) {
	decl := noderef.NewTypeDeclRef()
	units := []PhysicalUnit{
		{Abs: big.NewInt(1), Rel: nil},
		{Abs: big.NewInt(1000), Rel: &RelUnit{Scale: big.NewInt(1000), ReferencedUnit: 0}},
		{Abs: big.NewInt(60_000_000), Rel: &RelUnit{Scale: big.NewInt(60_000), ReferencedUnit: 1}},
	}
	ty := PhysicalTy{
		Decl:         decl,
		Base:         IntTy{Direction: DirTo, Low: big.NewInt(0), High: big.NewInt(1 << 40)},
		Units:        units,
		PrimaryIndex: 0,
	}
	if err := ty.ValidateScales(); err != nil {
		t.Fatalf("ValidateScales() = %v, want nil", err)
	}
}

func TestPhysicalScaleLawCatchesMismatch(t *testing.T) {
	decl := noderef.NewTypeDeclRef()
	units := []PhysicalUnit{
		{Abs: big.NewInt(1), Rel: nil},
		{Abs: big.NewInt(999), Rel: &RelUnit{Scale: big.NewInt(1000), ReferencedUnit: 0}},
	}
	ty := PhysicalTy{Decl: decl, Base: IntTy{Low: big.NewInt(0), High: big.NewInt(1)}, Units: units}
	if err := ty.ValidateScales(); err == nil {
		t.Fatalf("ValidateScales() = nil, want a scale-mismatch error")
	}
}

func TestDefaultValues(t *testing.T) {
	noResolve := func(noderef.TypeMark) Ty { return Null }

	nullDefault, err := Default(Null, noResolve)
	if err != nil || nullDefault.Kind != ConstNull {
		t.Errorf("Default(Null) = %v, %v; want ConstNull, nil", nullDefault, err)
	}

	decl := noderef.NewTypeDeclRef()
	enumDefault, err := Default(NewEnum(decl), noResolve)
	if err != nil || enumDefault.Kind != ConstEnum || enumDefault.EnumIdx != 0 {
		t.Errorf("Default(Enum) = %v, %v; want ConstEnum index 0, nil", enumDefault, err)
	}

	intTy := NewIntTy(DirTo, 0, 255)
	intDefault, err := Default(intTy, noResolve)
	if err != nil || intDefault.Kind != ConstInt || intDefault.Int.Int64() != 0 {
		t.Errorf("Default(Int) = %v, %v; want ConstInt(0), nil", intDefault, err)
	}

	_, err = Default(UnboundedInt, noResolve)
	if err != errUnboundedIntHasNoDefault {
		t.Errorf("Default(UnboundedInt) err = %v, want errUnboundedIntHasNoDefault", err)
	}
}

func TestArrayEqualRespectsIndexCountAndElement(t *testing.T) {
	a := NewArray([]ArrayIndex{UnboundedIndex(NewIntTy(DirTo, 0, 255))}, NewIntTy(DirTo, 0, 1))
	b := NewArray([]ArrayIndex{UnboundedIndex(NewIntTy(DirTo, 0, 255))}, NewIntTy(DirTo, 0, 1))
	c := NewArray([]ArrayIndex{UnboundedIndex(NewIntTy(DirTo, 0, 255))}, NewIntTy(DirTo, 0, 2))

	if !a.Equal(b) {
		t.Errorf("structurally identical arrays compared unequal")
	}
	if a.Equal(c) {
		t.Errorf("arrays with different element types compared equal")
	}
}
