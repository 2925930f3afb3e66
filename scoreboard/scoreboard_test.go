package scoreboard_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/boenset/moore/ast"
	"github.com/boenset/moore/hwir"
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/scoreboard"
	"github.com/boenset/moore/session"
)

// fixture bundles a fresh session, fake hardware-IR collaborators, and the
// board under test, the way every test here begins.
type fixture struct {
	sess    *session.InMemory
	module  *hwir.FakeModule
	codegen *hwir.FakeCodeGenerator
	typeck  *hwir.FakeTypeChecker
	board   *scoreboard.Board
}

func newFixture() *fixture {
	f := &fixture{
		sess:    session.NewInMemory(session.Options{}),
		module:  &hwir.FakeModule{},
		codegen: &hwir.FakeCodeGenerator{},
		typeck:  &hwir.FakeTypeChecker{},
	}
	f.board = scoreboard.New(f.sess, f.module, hwir.FakeTypeMapper{}, f.codegen, f.typeck)
	return f
}

func (f *fixture) hasDiag(t *testing.T, substr string) {
	t.Helper()
	for _, d := range f.sess.Diagnostics {
		if strings.Contains(d.Message, substr) {
			return
		}
	}
	t.Errorf("no diagnostic contains %q; got %v", substr, f.sess.Diagnostics)
}

func spanAt(line int) names.Span {
	return names.Span{
		Begin: names.Pos{Filename: "test.vhd", Line: line, Column: 1},
		End:   names.Pos{Filename: "test.vhd", Line: line, Column: 2},
	}
}

func ident(s string) *ast.Identifier { return &ast.Identifier{Value: s} }

func identAt(s string, line int) *ast.Identifier {
	return &ast.Identifier{Base: ast.NewBase(spanAt(line)), Value: s}
}

func intLit(v int64) *ast.IntLit { return &ast.IntLit{Value: big.NewInt(v)} }

func mark(name string) *ast.SubtypeInd { return &ast.SubtypeInd{Mark: ident(name)} }

func port(name string, mode ast.Mode, tyMark string) *ast.IntfObjDecl {
	return &ast.IntfObjDecl{Names: []*ast.Identifier{ident(name)}, Mode: mode, Ind: mark(tyMark)}
}

func entityUnit(name string, ports ...*ast.IntfObjDecl) *ast.DesignUnit {
	return &ast.DesignUnit{Kind: ast.UnitEntity, Entity: &ast.EntityDecl{Name: ident(name), Ports: ports}}
}

func archUnit(name string, entity ast.Node, decls, stmts []ast.Node) *ast.DesignUnit {
	return &ast.DesignUnit{Kind: ast.UnitArch, Arch: &ast.ArchBody{
		Name: ident(name), Entity: entity, Decls: decls, Stmts: stmts,
	}}
}

func pkgUnit(name string, decls ...ast.Node) *ast.DesignUnit {
	return &ast.DesignUnit{Kind: ast.UnitPkgDecl, PkgDecl: &ast.PkgDecl{Name: ident(name), Decls: decls}}
}

func library(units ...*ast.DesignUnit) *ast.Library {
	return &ast.Library{Name: ident("work"), Units: units}
}

func dot(sel string) ast.Selector {
	return ast.Selector{Kind: ast.SelectorDot, Name: ident(sel)}
}

func TestArchIndexGroupsByEntity(t *testing.T) {
	f := newFixture()
	lib := f.board.AddLibrary("WORK", library(
		entityUnit("e"),
		archUnit("a", ident("e"), nil, nil),
	))

	tab, err := f.board.GetArchTable(lib)
	if err != nil {
		t.Fatalf("GetArchTable() = %v", err)
	}
	hir, err := f.board.GetLibHIR(lib)
	if err != nil {
		t.Fatalf("GetLibHIR() = %v", err)
	}
	entity, arch := hir.Entities[0], hir.Archs[0]

	group := tab.ByEntity[entity]
	if group == nil || len(group.Ordered) != 1 || group.Ordered[0] != arch {
		t.Errorf("ByEntity[e].Ordered = %v, want [%v]", group, arch)
	}
	if got := group.ByName[names.Global().Intern("a")]; got != arch {
		t.Errorf("ByName[a] = %v, want %v", got, arch)
	}
	if got := tab.ByArch[arch]; got != entity {
		t.Errorf("ByArch[a] = %v, want %v", got, entity)
	}
}

func TestArchIndexOrderPreservedPerEntity(t *testing.T) {
	f := newFixture()
	lib := f.board.AddLibrary("WORK", library(
		entityUnit("e"),
		archUnit("rtl", ident("e"), nil, nil),
		archUnit("behav", ident("e"), nil, nil),
	))

	tab, err := f.board.GetArchTable(lib)
	if err != nil {
		t.Fatalf("GetArchTable() = %v", err)
	}
	hir, _ := f.board.GetLibHIR(lib)
	group := tab.ByEntity[hir.Entities[0]]
	if len(group.Ordered) != 2 || group.Ordered[0] != hir.Archs[0] || group.Ordered[1] != hir.Archs[1] {
		t.Errorf("Ordered = %v, want source order %v", group.Ordered, hir.Archs)
	}
}

func TestArchIndexUnknownTarget(t *testing.T) {
	f := newFixture()
	lib := f.board.AddLibrary("WORK", library(
		archUnit("a", identAt("missing", 3), nil, nil),
	))

	_, err := f.board.GetArchTable(lib)
	if !errors.Is(err, scoreboard.ErrUnknownName) {
		t.Fatalf("GetArchTable() err = %v, want ErrUnknownName", err)
	}
	f.hasDiag(t, "Unknown entity `missing`")
}

func TestArchIndexWrongKindTarget(t *testing.T) {
	f := newFixture()
	pkg := &ast.DesignUnit{Kind: ast.UnitPkgDecl, PkgDecl: &ast.PkgDecl{Name: identAt("e", 1)}}
	lib := f.board.AddLibrary("WORK", library(
		pkg,
		archUnit("a", identAt("e", 5), nil, nil),
	))

	_, err := f.board.GetArchTable(lib)
	if !errors.Is(err, scoreboard.ErrWrongKind) {
		t.Fatalf("GetArchTable() err = %v, want ErrWrongKind", err)
	}
	f.hasDiag(t, "`e` is not an entity")

	// Both the use site and the conflicting declaration are reported.
	var spans []names.Span
	for _, d := range f.sess.Diagnostics {
		spans = append(spans, d.Span)
	}
	wantUse, wantDecl := spanAt(5), spanAt(1)
	seenUse, seenDecl := false, false
	for _, s := range spans {
		if s == wantUse {
			seenUse = true
		}
		if s == wantDecl {
			seenDecl = true
		}
	}
	if !seenUse || !seenDecl {
		t.Errorf("diagnostics spans = %v, want both use %v and decl %v", spans, wantUse, wantDecl)
	}
}

func TestArchIndexBadEntityName(t *testing.T) {
	f := newFixture()
	compound := &ast.CompoundName{Prefix: ident("work"), Selectors: []ast.Selector{dot("e")}}
	lib := f.board.AddLibrary("WORK", library(
		entityUnit("e"),
		archUnit("a", compound, nil, nil),
	))

	_, err := f.board.GetArchTable(lib)
	if !errors.Is(err, scoreboard.ErrBadEntityName) {
		t.Fatalf("GetArchTable() err = %v, want ErrBadEntityName", err)
	}
	f.hasDiag(t, "is not a valid entity name")
}

func TestArchIndexCollectsAllFailures(t *testing.T) {
	f := newFixture()
	lib := f.board.AddLibrary("WORK", library(
		archUnit("a", ident("missing1"), nil, nil),
		archUnit("b", ident("missing2"), nil, nil),
	))

	if _, err := f.board.GetArchTable(lib); err == nil {
		t.Fatalf("GetArchTable() = nil, want failure")
	}
	f.hasDiag(t, "Unknown entity `missing1`")
	f.hasDiag(t, "Unknown entity `missing2`")
}

func TestOperatorSymbolsResolveInRootScope(t *testing.T) {
	f := newFixture()
	spellings := []string{
		"and", "or", "nand", "nor", "xor", "xnor",
		"=", "/=", "<", "<=", ">", ">=",
		"?=", "?/=", "?<", "?<=", "?>", "?>=",
		"sll", "srl", "sla", "sra", "rol", "ror",
		"+", "-", "&", "*", "/", "mod", "rem", "**", "abs", "not",
	}
	for _, spelling := range spellings {
		t.Run(spelling, func(t *testing.T) {
			rn, err := f.board.ResolvableFromPrimaryName(&ast.StringLit{Value: spelling})
			if err != nil {
				t.Fatalf("ResolvableFromPrimaryName(%q) = %v", spelling, err)
			}
			defs, err := f.board.ResolveName(rn, f.board.RootScope(), false)
			if err != nil {
				t.Fatalf("ResolveName(%q) = %v", spelling, err)
			}
			for _, d := range defs {
				if d.Kind != noderef.DefBuiltinOp {
					t.Errorf("def kind = %v, want BuiltinOp", d.Kind)
				}
			}
		})
	}
}

func TestLeqResolvesToSingleBuiltinOp(t *testing.T) {
	f := newFixture()
	op, ok := names.LookupOperatorSpelling("<=")
	if !ok || op.Kind != names.OpRelational || op.Rel != names.RelLeq {
		t.Fatalf("LookupOperatorSpelling(\"<=\") = %v, %v", op, ok)
	}
	defs, err := f.board.ResolveName(names.Op(op), f.board.RootScope(), false)
	if err != nil {
		t.Fatalf("ResolveName(<=) = %v", err)
	}
	if len(defs) != 1 || defs[0].Kind != noderef.DefBuiltinOp {
		t.Errorf("defs = %v, want exactly one BuiltinOp", defs)
	}
}

func TestUnknownOperatorSpelling(t *testing.T) {
	f := newFixture()
	_, err := f.board.ResolvableFromPrimaryName(&ast.StringLit{Value: "<=>"})
	if !errors.Is(err, scoreboard.ErrUnknownOperator) {
		t.Fatalf("err = %v, want ErrUnknownOperator", err)
	}
	f.hasDiag(t, "is not a valid operator symbol")
}

func TestCompoundSelectionThroughPackages(t *testing.T) {
	f := newFixture()
	cn := &ast.CompoundName{Prefix: ident("STD"), Selectors: []ast.Selector{dot("STANDARD"), dot("BOOLEAN")}}
	def, consumed, err := f.board.ResolveCompoundName(cn, f.board.RootScope())
	if err != nil {
		t.Fatalf("ResolveCompoundName(STD.STANDARD.BOOLEAN) = %v", err)
	}
	if consumed != 2 {
		t.Errorf("consumed = %d, want 2", consumed)
	}
	if def.Kind != noderef.DefTypeDecl {
		t.Errorf("def kind = %v, want TypeDecl", def.Kind)
	}
}

func TestCompoundSelectIntoNonScope(t *testing.T) {
	f := newFixture()
	cn := &ast.CompoundName{Prefix: ident("FALSE"), Selectors: []ast.Selector{dot("x")}}
	_, _, err := f.board.ResolveCompoundName(cn, f.board.RootScope())
	if !errors.Is(err, scoreboard.ErrNonSelectable) {
		t.Fatalf("err = %v, want ErrNonSelectable", err)
	}
	f.hasDiag(t, "cannot select into EnumLiteral")
}

func TestUnknownNameFailsDeterministically(t *testing.T) {
	f := newFixture()
	name := names.Ident(names.Global().Intern("no_such_thing"))
	for i := 0; i < 2; i++ {
		_, err := f.board.ResolveName(name, f.board.RootScope(), false)
		if !errors.Is(err, scoreboard.ErrUnknownName) {
			t.Fatalf("lookup %d: err = %v, want ErrUnknownName", i, err)
		}
	}
	// A failed make is not cached, so both attempts re-run and re-report.
	if got := len(f.sess.Diagnostics); got != 2 {
		t.Errorf("diagnostic count = %d, want 2 (one per retry)", got)
	}
	f.hasDiag(t, "`no_such_thing` is not known")
}

func TestOnlyDefsIsSubsetOfFullResolution(t *testing.T) {
	f := newFixture()
	for _, name := range []string{"STD", "STANDARD", "BOOLEAN", "TIME", "no_such_thing"} {
		rn := names.Ident(names.Global().Intern(name))
		narrow, errNarrow := f.board.ResolveName(rn, f.board.RootScope(), true)
		wide, errWide := f.board.ResolveName(rn, f.board.RootScope(), false)
		if errNarrow != nil {
			continue // empty set is trivially a subset
		}
		if errWide != nil {
			t.Errorf("%s: onlyDefs found %v but full resolution failed", name, narrow)
			continue
		}
		for _, n := range narrow {
			found := false
			for _, w := range wide {
				if n == w {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s: onlyDefs def %v missing from full resolution %v", name, n, wide)
			}
		}
	}
}

func TestMemoizationReturnsSameResult(t *testing.T) {
	f := newFixture()
	lib := f.board.AddLibrary("WORK", library(entityUnit("e"), archUnit("a", ident("e"), nil, nil)))

	first, err := f.board.GetLibHIR(lib)
	if err != nil {
		t.Fatalf("GetLibHIR() = %v", err)
	}
	second, err := f.board.GetLibHIR(lib)
	if err != nil {
		t.Fatalf("second GetLibHIR() = %v", err)
	}
	if first != second {
		t.Errorf("GetLibHIR returned different pointers across calls")
	}

	e1, err := f.board.GetEntityHIR(first.Entities[0])
	if err != nil {
		t.Fatalf("GetEntityHIR() = %v", err)
	}
	e2, _ := f.board.GetEntityHIR(first.Entities[0])
	if e1 != e2 {
		t.Errorf("GetEntityHIR returned different pointers across calls")
	}

	t1, err := f.board.GetArchTable(lib)
	if err != nil {
		t.Fatalf("GetArchTable() = %v", err)
	}
	t2, _ := f.board.GetArchTable(lib)
	if t1 != t2 {
		t.Errorf("GetArchTable returned different pointers across calls")
	}
}

func TestCtxItemsMakeBuiltinsVisible(t *testing.T) {
	f := newFixture()
	unit := entityUnit("e")
	unit.Ctx = &ast.CtxItems{Items: []ast.CtxItem{
		{Kind: ast.CtxItemLibrary, Names: []*ast.Identifier{ident("STD")}},
		{Kind: ast.CtxItemUse, All: true, Name: &ast.CompoundName{
			Prefix: ident("STD"), Selectors: []ast.Selector{dot("STANDARD")},
		}},
	}}
	lib := f.board.AddLibrary("WORK", library(unit))

	hir, err := f.board.GetLibHIR(lib)
	if err != nil {
		t.Fatalf("GetLibHIR() = %v", err)
	}
	if _, err := f.board.GetEntityHIR(hir.Entities[0]); err != nil {
		t.Fatalf("GetEntityHIR() = %v", err)
	}

	rn := names.Ident(names.Global().Intern("BOOLEAN"))
	defs, err := f.board.ResolveName(rn, noderef.ScopeOfEntityRef(hir.Entities[0]), false)
	if err != nil {
		t.Fatalf("ResolveName(BOOLEAN) in entity scope = %v", err)
	}
	if defs[0].Kind != noderef.DefTypeDecl {
		t.Errorf("BOOLEAN resolved to %v, want TypeDecl", defs[0].Kind)
	}
}

func TestPackageInstanceResolvesThroughBindings(t *testing.T) {
	f := newFixture()
	generic := &ast.DesignUnit{Kind: ast.UnitPkgDecl, PkgDecl: &ast.PkgDecl{
		Name: ident("G"),
		Generics: []*ast.IntfObjDecl{
			{Names: []*ast.Identifier{ident("WIDTH")}, Ind: mark("INTEGER")},
		},
		Decls: []ast.Node{&ast.ObjDecl{
			Kind: ast.ObjConst, Names: []*ast.Identifier{ident("DEPTH")},
			Ind: mark("INTEGER"), Default: intLit(4),
		}},
	}}
	inst := &ast.DesignUnit{Kind: ast.UnitPkgInst, PkgInst: &ast.PkgInst{
		Name: ident("I"), Uninst: ident("G"),
		GenericMap: []ast.GenericAssoc{{Formal: ident("WIDTH"), Actual: intLit(8)}},
	}}
	lib := f.board.AddLibrary("WORK", library(generic, inst))
	if _, err := f.board.GetLibHIR(lib); err != nil {
		t.Fatalf("GetLibHIR() = %v", err)
	}

	// A declaration of the generic package is visible through the instance.
	cn := &ast.CompoundName{Prefix: ident("I"), Selectors: []ast.Selector{dot("DEPTH")}}
	def, consumed, err := f.board.ResolveCompoundName(cn, noderef.ScopeOfLibRef(lib))
	if err != nil {
		t.Fatalf("ResolveCompoundName(I.DEPTH) = %v", err)
	}
	if consumed != 1 || def.Kind != noderef.DefConst {
		t.Errorf("I.DEPTH = %v after %d selectors, want the Const def", def.Kind, consumed)
	}

	// The bound formal generic resolves through the instance too.
	cn = &ast.CompoundName{Prefix: ident("I"), Selectors: []ast.Selector{dot("WIDTH")}}
	def, _, err = f.board.ResolveCompoundName(cn, noderef.ScopeOfLibRef(lib))
	if err != nil {
		t.Fatalf("ResolveCompoundName(I.WIDTH) = %v", err)
	}
	if def.Kind != noderef.DefSignal {
		t.Errorf("I.WIDTH = %v, want the formal generic's def", def.Kind)
	}

	// A name the generic package never declares still fails.
	cn = &ast.CompoundName{Prefix: ident("I"), Selectors: []ast.Selector{dot("absent")}}
	if _, _, err = f.board.ResolveCompoundName(cn, noderef.ScopeOfLibRef(lib)); !errors.Is(err, scoreboard.ErrUnknownName) {
		t.Errorf("I.absent err = %v, want ErrUnknownName", err)
	}
}

func TestPackageInstancePositionalBinding(t *testing.T) {
	f := newFixture()
	generic := &ast.DesignUnit{Kind: ast.UnitPkgDecl, PkgDecl: &ast.PkgDecl{
		Name: ident("G"),
		Generics: []*ast.IntfObjDecl{
			{Names: []*ast.Identifier{ident("WIDTH")}, Ind: mark("INTEGER")},
		},
	}}
	inst := &ast.DesignUnit{Kind: ast.UnitPkgInst, PkgInst: &ast.PkgInst{
		Name: ident("I"), Uninst: ident("G"),
		GenericMap: []ast.GenericAssoc{{Actual: intLit(8)}},
	}}
	lib := f.board.AddLibrary("WORK", library(generic, inst))
	if _, err := f.board.GetLibHIR(lib); err != nil {
		t.Fatalf("GetLibHIR() = %v", err)
	}

	cn := &ast.CompoundName{Prefix: ident("I"), Selectors: []ast.Selector{dot("WIDTH")}}
	def, _, err := f.board.ResolveCompoundName(cn, noderef.ScopeOfLibRef(lib))
	if err != nil {
		t.Fatalf("ResolveCompoundName(I.WIDTH) = %v", err)
	}
	if def.Kind != noderef.DefSignal {
		t.Errorf("I.WIDTH = %v, want the formal bound positionally", def.Kind)
	}
}

func TestOverloadsCollectAcrossExplicitAndImports(t *testing.T) {
	f := newFixture()
	// A context clause that makes BOOLEAN visible twice: once by name
	// (entered into the scope's explicit defs) and once through `.all`
	// (entered into its import list). Both must contribute to the overload
	// set; the explicit match must not suppress the imported one.
	unit := entityUnit("e")
	unit.Ctx = &ast.CtxItems{Items: []ast.CtxItem{
		{Kind: ast.CtxItemUse, Name: &ast.CompoundName{
			Prefix: ident("STD"), Selectors: []ast.Selector{dot("STANDARD"), dot("BOOLEAN")},
		}},
		{Kind: ast.CtxItemUse, All: true, Name: &ast.CompoundName{
			Prefix: ident("STD"), Selectors: []ast.Selector{dot("STANDARD")},
		}},
	}}
	lib := f.board.AddLibrary("WORK", library(unit))
	h, err := f.board.GetLibHIR(lib)
	if err != nil {
		t.Fatalf("GetLibHIR() = %v", err)
	}
	if _, err := f.board.GetEntityHIR(h.Entities[0]); err != nil {
		t.Fatalf("GetEntityHIR() = %v", err)
	}

	rn := names.Ident(names.Global().Intern("BOOLEAN"))
	defs, err := f.board.ResolveName(rn, noderef.ScopeOfEntityRef(h.Entities[0]), false)
	if err != nil {
		t.Fatalf("ResolveName(BOOLEAN) = %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("BOOLEAN overloads = %v, want the explicit and the imported candidate", defs)
	}
	for _, d := range defs {
		if d.Kind != noderef.DefTypeDecl {
			t.Errorf("overload kind = %v, want TypeDecl", d.Kind)
		}
	}
}

type libShape struct {
	Entities []string
	Archs    []archShape
}

type archShape struct {
	Name   string
	Entity string
}

func shapeOf(t *testing.T, b *scoreboard.Board, lib noderef.LibRef) libShape {
	t.Helper()
	h, err := b.GetLibHIR(lib)
	if err != nil {
		t.Fatalf("GetLibHIR() = %v", err)
	}
	var shape libShape
	for _, e := range h.Entities {
		eh, err := b.GetEntityHIR(e)
		if err != nil {
			t.Fatalf("GetEntityHIR() = %v", err)
		}
		shape.Entities = append(shape.Entities, names.Global().String(eh.Name))
	}
	for _, a := range h.Archs {
		ah, err := b.GetArchHIR(a)
		if err != nil {
			t.Fatalf("GetArchHIR() = %v", err)
		}
		eh, _ := b.GetEntityHIR(ah.Entity)
		shape.Archs = append(shape.Archs, archShape{
			Name:   names.Global().String(ah.Name),
			Entity: names.Global().String(eh.Name),
		})
	}
	return shape
}

func TestLoweringTwiceIsStructurallyEqual(t *testing.T) {
	build := func() (*fixture, noderef.LibRef) {
		f := newFixture()
		lib := f.board.AddLibrary("WORK", library(
			entityUnit("e", port("clk", ast.ModeIn, "BIT")),
			archUnit("a", ident("e"), nil, nil),
		))
		return f, lib
	}
	f1, lib1 := build()
	f2, lib2 := build()

	s1 := shapeOf(t, f1.board, lib1)
	s2 := shapeOf(t, f2.board, lib2)
	if diff := cmp.Diff(s1, s2); diff != "" {
		t.Errorf("HIR shapes differ across sessions (-first +second):\n%s", diff)
	}
}
