package builtins_test

import (
	"math/big"
	"testing"

	"github.com/boenset/moore/builtins"
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/scope"
	"github.com/boenset/moore/types"
)

func TestGetIsProcessWide(t *testing.T) {
	if builtins.Get() != builtins.Get() {
		t.Fatalf("Get() returned different registries across calls")
	}
}

func TestInstallTwiceFails(t *testing.T) {
	scopes := map[noderef.ScopeRef]*scope.Scope{}
	tys := map[noderef.Handle]types.Ty{}
	if err := builtins.Install(scopes, tys); err != nil {
		t.Fatalf("first Install() = %v", err)
	}
	if err := builtins.Install(scopes, tys); err != builtins.ErrBuiltinIntegrity {
		t.Fatalf("second Install() = %v, want ErrBuiltinIntegrity", err)
	}
}

func TestInstallFreshSessionsSeeTheSameEnvironment(t *testing.T) {
	install := func() (map[noderef.ScopeRef]*scope.Scope, map[noderef.Handle]types.Ty) {
		scopes := map[noderef.ScopeRef]*scope.Scope{}
		tys := map[noderef.Handle]types.Ty{}
		if err := builtins.Install(scopes, tys); err != nil {
			t.Fatalf("Install() = %v", err)
		}
		return scopes, tys
	}
	s1, t1 := install()
	s2, t2 := install()
	if len(s1) != len(s2) || len(t1) != len(t2) {
		t.Errorf("installs differ: %d/%d scopes, %d/%d types", len(s1), len(s2), len(t1), len(t2))
	}
}

func TestTimeUnits(t *testing.T) {
	r := builtins.Get()
	ty := r.Types[r.TimeType.Handle]
	if ty.Kind != types.KindPhysical {
		t.Fatalf("TIME = %v, want a physical type", ty)
	}
	ph := ty.Physical

	if err := ph.ValidateScales(); err != nil {
		t.Fatalf("ValidateScales() = %v", err)
	}
	if ph.PrimaryIndex != 0 {
		t.Errorf("primary index = %d, want 0 (fs)", ph.PrimaryIndex)
	}
	if got := names.Global().String(ph.Units[0].Name); got != "fs" {
		t.Errorf("primary unit = %q, want fs", got)
	}

	wantHr := new(big.Int)
	wantHr.SetString("3600000000000000000", 10)
	if ph.Units[7].Abs.Cmp(wantHr) != 0 {
		t.Errorf("abs(hr) = %v, want %v", ph.Units[7].Abs, wantHr)
	}

	min := ph.Units[6]
	if min.Rel == nil || min.Rel.Scale.Int64() != 60 || min.Rel.ReferencedUnit != 5 {
		t.Errorf("rel(min) = %+v, want (60, sec)", min.Rel)
	}

	tests := []struct {
		name string
		abs  int64
	}{
		{"fs", 1},
		{"ps", 1_000},
		{"ns", 1_000_000},
		{"us", 1_000_000_000},
		{"ms", 1_000_000_000_000},
		{"sec", 1_000_000_000_000_000},
		{"min", 60_000_000_000_000_000},
	}
	for i, test := range tests {
		if got := names.Global().String(ph.Units[i].Name); got != test.name {
			t.Errorf("unit %d = %q, want %q", i, got, test.name)
		}
		if got := ph.Units[i].Abs.Int64(); got != test.abs {
			t.Errorf("abs(%s) = %d, want %d", test.name, got, test.abs)
		}
	}
}

func TestIntegerBounds(t *testing.T) {
	r := builtins.Get()
	integer := r.Types[r.IntegerType.Handle]
	if integer.Int.Low.Int64() != -2147483648 || integer.Int.High.Int64() != 2147483647 {
		t.Errorf("INTEGER = %v, want i32 bounds", integer)
	}
	natural := r.Types[r.NaturalType.Handle]
	if natural.Int.Low.Int64() != 0 {
		t.Errorf("NATURAL low = %v, want 0", natural.Int.Low)
	}
	positive := r.Types[r.PositiveType.Handle]
	if positive.Int.Low.Int64() != 1 {
		t.Errorf("POSITIVE low = %v, want 1", positive.Int.Low)
	}
}

func TestStandardScopeDeclarations(t *testing.T) {
	r := builtins.Get()
	std := r.Scopes[noderef.ScopeOfBuiltinPkgRef(r.StandardPkgRef)]

	lookupOne := func(name names.Resolvable) noderef.Def {
		t.Helper()
		defs, ok := std.Explicit.Lookup(name)
		if !ok || len(defs) != 1 {
			t.Fatalf("STANDARD lookup %v = %v, %v; want exactly one def", name, defs, ok)
		}
		return defs[0].Value
	}
	intern := func(s string) names.Resolvable { return names.Ident(names.Global().Intern(s)) }

	for _, name := range []string{
		"BOOLEAN", "BIT", "SEVERITY_LEVEL", "INTEGER", "TIME", "DELAY_LENGTH",
		"NATURAL", "POSITIVE", "BOOLEAN_VECTOR", "BIT_VECTOR", "INTEGER_VECTOR",
		"TIME_VECTOR", "FILE_OPEN_KIND", "FILE_OPEN_STATUS",
	} {
		if def := lookupOne(intern(name)); def.Kind != noderef.DefTypeDecl {
			t.Errorf("%s = %v, want TypeDecl", name, def.Kind)
		}
	}

	for _, lit := range []string{"FALSE", "TRUE", "NOTE", "WARNING", "ERROR", "FAILURE"} {
		if def := lookupOne(intern(lit)); def.Kind != noderef.DefEnumLiteral {
			t.Errorf("%s = %v, want EnumLiteral", lit, def.Kind)
		}
	}

	// Bit literals live in their own resolvable sub-space.
	zero := lookupOne(names.Bit('0'))
	one := lookupOne(names.Bit('1'))
	if zero.Kind != noderef.DefEnumLiteral || one.Kind != noderef.DefEnumLiteral {
		t.Errorf("'0'/'1' = %v/%v, want enum literals", zero.Kind, one.Kind)
	}
	if zero.EnumLiteral.Handle != r.BitType.Handle {
		t.Errorf("'0' belongs to %v, want BIT", zero.EnumLiteral.Handle)
	}
	if zero.EnumLiteral.Index != 0 || one.EnumLiteral.Index != 1 {
		t.Errorf("bit literal ordinals = %d/%d, want 0/1", zero.EnumLiteral.Index, one.EnumLiteral.Index)
	}
}

func TestRootScopeOperators(t *testing.T) {
	r := builtins.Get()
	root := r.Scopes[r.RootScopeRef]

	// Every predefined spelling resolves to at least one BuiltinOp def; the
	// six logical operators carry both a unary and a binary registration.
	for _, spelling := range []string{"and", "<=", "?>=", "sra", "&", "**"} {
		op, ok := names.LookupOperatorSpelling(spelling)
		if !ok {
			t.Fatalf("LookupOperatorSpelling(%q) failed", spelling)
		}
		defs, found := root.Explicit.Lookup(names.Op(op))
		if !found || len(defs) == 0 {
			t.Errorf("operator %q is not registered in the root scope", spelling)
			continue
		}
		for _, d := range defs {
			if d.Value.Kind != noderef.DefBuiltinOp {
				t.Errorf("operator %q registered as %v, want BuiltinOp", spelling, d.Value.Kind)
			}
		}
	}

	and, _ := names.LookupOperatorSpelling("and")
	defs, _ := root.Explicit.Lookup(names.Op(and))
	if len(defs) != 2 {
		t.Errorf("`and` has %d registrations, want 2 (unary and binary)", len(defs))
	}
}

func TestVectorTypesAreUnbounded(t *testing.T) {
	r := builtins.Get()
	for _, ref := range []noderef.TypeDeclRef{
		r.BooleanVectorType, r.BitVectorType, r.IntegerVectorType, r.TimeVectorType,
	} {
		ty := r.Types[ref.Handle]
		if ty.Kind != types.KindArray {
			t.Errorf("%v = %v, want an array type", ref, ty)
			continue
		}
		if len(ty.Array.Indices) != 1 || ty.Array.Indices[0].Kind != types.IndexUnbounded {
			t.Errorf("%v indices = %+v, want one unbounded NATURAL index", ref, ty.Array.Indices)
		}
	}
}
