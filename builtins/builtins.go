// Package builtins materializes the closed set of VHDL predefined entities
// the STD.STANDARD environment mandates: the STD library, the
// STANDARD/TEXTIO/ENV packages, their types, enumeration literals, physical
// units, and the predefined operator set.
//
// Construction happens once per process behind a sync.Once gate, the direct
// Go analogue of the teacher's original `lazy_static!` tables
// (original_source/src/vhdl/builtin.rs). The frozen result is copied into
// each session's scoreboard tables by Install.
package builtins

import (
	"math/big"
	"sync"

	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/scope"
	"github.com/boenset/moore/types"
)

// Err is a sentinel error value, following the "errors are values" design
// used throughout this module (see scoreboard.Err, types.ErrConst).
type Err string

func (e Err) Error() string { return string(e) }

// ErrBuiltinIntegrity is returned by Install if the built-in environment was
// already installed into the same set of tables.
const ErrBuiltinIntegrity = Err("builtins already installed for this session")

// Registry is the frozen, process-wide built-in environment: every scope,
// type, and handle spec.md §4.A mandates.
type Registry struct {
	RootScopeRef   noderef.ScopeRef
	StdLibRef      noderef.LibRef
	StandardPkgRef noderef.BuiltinPkgRef
	TextioPkgRef   noderef.BuiltinPkgRef
	EnvPkgRef      noderef.BuiltinPkgRef

	BooleanType        noderef.TypeDeclRef
	BitType            noderef.TypeDeclRef
	SeverityLevelType  noderef.TypeDeclRef
	IntegerType        noderef.TypeDeclRef
	TimeType           noderef.TypeDeclRef
	DelayLengthType    noderef.TypeDeclRef
	NaturalType        noderef.TypeDeclRef
	PositiveType       noderef.TypeDeclRef
	BooleanVectorType  noderef.TypeDeclRef
	BitVectorType      noderef.TypeDeclRef
	IntegerVectorType  noderef.TypeDeclRef
	TimeVectorType     noderef.TypeDeclRef
	FileOpenKindType   noderef.TypeDeclRef
	FileOpenStatusType noderef.TypeDeclRef

	// Scopes holds the three scopes spec.md §4.A builds, keyed by the
	// ScopeRef that addresses them: the root scope, the STD library scope,
	// and the STANDARD package scope.
	Scopes map[noderef.ScopeRef]*scope.Scope
	// Types holds every builtin type's Ty, keyed by its TypeDeclRef's
	// underlying Handle.
	Types map[noderef.Handle]types.Ty
}

var (
	once     sync.Once
	registry *Registry
)

// Get returns the process-wide Registry, building it on first use. Every
// subsequent call, from any session, observes the same frozen scopes and
// types.
func Get() *Registry {
	once.Do(func() { registry = build() })
	return registry
}

func named(tbl *names.Table, name string, mark noderef.TypeMark) types.Ty {
	return types.NewNamed(tbl.Intern(name), mark)
}

func build() *Registry {
	tbl := names.Global()
	r := &Registry{
		RootScopeRef:   noderef.ScopeOfLibRef(noderef.NewLibRef()),
		StdLibRef:      noderef.NewLibRef(),
		StandardPkgRef: noderef.NewBuiltinPkgRef(),
		TextioPkgRef:   noderef.NewBuiltinPkgRef(),
		EnvPkgRef:      noderef.NewBuiltinPkgRef(),

		BooleanType:        noderef.NewTypeDeclRef(),
		BitType:            noderef.NewTypeDeclRef(),
		SeverityLevelType:  noderef.NewTypeDeclRef(),
		IntegerType:        noderef.NewTypeDeclRef(),
		TimeType:           noderef.NewTypeDeclRef(),
		DelayLengthType:    noderef.NewTypeDeclRef(),
		NaturalType:        noderef.NewTypeDeclRef(),
		PositiveType:       noderef.NewTypeDeclRef(),
		BooleanVectorType:  noderef.NewTypeDeclRef(),
		BitVectorType:      noderef.NewTypeDeclRef(),
		IntegerVectorType:  noderef.NewTypeDeclRef(),
		TimeVectorType:     noderef.NewTypeDeclRef(),
		FileOpenKindType:   noderef.NewTypeDeclRef(),
		FileOpenStatusType: noderef.NewTypeDeclRef(),

		Types: map[noderef.Handle]types.Ty{},
	}

	booleanMark := noderef.TypeMarkOfType(r.BooleanType)
	bitMark := noderef.TypeMarkOfType(r.BitType)
	integerMark := noderef.TypeMarkOfType(r.IntegerType)
	timeMark := noderef.TypeMarkOfType(r.TimeType)
	naturalMark := noderef.TypeMarkOfType(r.NaturalType)

	r.Types[r.BooleanType.Handle] = types.NewEnum(r.BooleanType)
	r.Types[r.BitType.Handle] = types.NewEnum(r.BitType)
	r.Types[r.SeverityLevelType.Handle] = types.NewEnum(r.SeverityLevelType)
	r.Types[r.FileOpenKindType.Handle] = types.NewEnum(r.FileOpenKindType)
	r.Types[r.FileOpenStatusType.Handle] = types.NewEnum(r.FileOpenStatusType)

	r.Types[r.IntegerType.Handle] = types.NewIntTy(types.DirTo, int64(minInt32), int64(maxInt32))
	r.Types[r.NaturalType.Handle] = types.NewIntTy(types.DirTo, 0, int64(maxInt32))
	r.Types[r.PositiveType.Handle] = types.NewIntTy(types.DirTo, 1, int64(maxInt32))

	timeBase := types.IntTy{Direction: types.DirTo, Low: big.NewInt(minInt64), High: big.NewInt(maxInt64)}
	r.Types[r.TimeType.Handle] = types.NewPhysical(r.TimeType, timeBase, timeUnits(), 0)

	delayBase := types.IntTy{Direction: types.DirTo, Low: big.NewInt(0), High: big.NewInt(maxInt64)}
	r.Types[r.DelayLengthType.Handle] = types.NewPhysical(r.TimeType, delayBase, timeUnits(), 0)

	r.Types[r.BooleanVectorType.Handle] = types.NewArray(
		[]types.ArrayIndex{types.UnboundedIndex(named(tbl, "NATURAL", naturalMark))},
		named(tbl, "BOOLEAN", booleanMark),
	)
	r.Types[r.BitVectorType.Handle] = types.NewArray(
		[]types.ArrayIndex{types.UnboundedIndex(named(tbl, "NATURAL", naturalMark))},
		named(tbl, "BIT", bitMark),
	)
	r.Types[r.IntegerVectorType.Handle] = types.NewArray(
		[]types.ArrayIndex{types.UnboundedIndex(named(tbl, "NATURAL", naturalMark))},
		named(tbl, "INTEGER", integerMark),
	)
	r.Types[r.TimeVectorType.Handle] = types.NewArray(
		[]types.ArrayIndex{types.UnboundedIndex(named(tbl, "NATURAL", naturalMark))},
		named(tbl, "TIME", timeMark),
	)

	r.Scopes = map[noderef.ScopeRef]*scope.Scope{}
	r.Scopes[r.RootScopeRef] = buildRootScope(tbl, r)
	stdLibScopeRef := noderef.ScopeOfLibRef(r.StdLibRef)
	r.Scopes[stdLibScopeRef] = buildStdLibScope(tbl, r)
	standardScopeRef := noderef.ScopeOfBuiltinPkgRef(r.StandardPkgRef)
	r.Scopes[standardScopeRef] = buildStandardPkgScope(tbl, r)

	return r
}

func buildRootScope(tbl *names.Table, r *Registry) *scope.Scope {
	s := scope.NewScope(nil)
	s.Explicit.Insert(names.Ident(tbl.Intern("STD")), noderef.DefOfLib(r.StdLibRef), names.InvalidSpan)
	s.Import(noderef.ScopeOfBuiltinPkgRef(r.StandardPkgRef))

	for _, op := range unaryOperators() {
		s.Explicit.Insert(names.Op(op), noderef.DefOfBuiltinOp(noderef.NewBuiltinOpRef()), names.InvalidSpan)
	}
	for _, op := range binaryOperators() {
		s.Explicit.Insert(names.Op(op), noderef.DefOfBuiltinOp(noderef.NewBuiltinOpRef()), names.InvalidSpan)
	}
	return s
}

func buildStdLibScope(tbl *names.Table, r *Registry) *scope.Scope {
	parent := r.RootScopeRef
	s := scope.NewScope(&parent)
	s.Explicit.Insert(names.Ident(tbl.Intern("STANDARD")), noderef.DefOfBuiltinPkg(r.StandardPkgRef), names.InvalidSpan)
	s.Explicit.Insert(names.Ident(tbl.Intern("TEXTIO")), noderef.DefOfBuiltinPkg(r.TextioPkgRef), names.InvalidSpan)
	s.Explicit.Insert(names.Ident(tbl.Intern("ENV")), noderef.DefOfBuiltinPkg(r.EnvPkgRef), names.InvalidSpan)
	return s
}

func buildStandardPkgScope(tbl *names.Table, r *Registry) *scope.Scope {
	parent := noderef.ScopeOfLibRef(r.StdLibRef)
	s := scope.NewScope(&parent)
	ins := s.Explicit.Insert

	ins(names.Ident(tbl.Intern("BOOLEAN")), noderef.DefOfTypeDecl(r.BooleanType), names.InvalidSpan)
	ins(names.Ident(tbl.Intern("FALSE")), noderef.DefOfEnumLiteral(noderef.NewEnumRef(r.BooleanType, 0)), names.InvalidSpan)
	ins(names.Ident(tbl.Intern("TRUE")), noderef.DefOfEnumLiteral(noderef.NewEnumRef(r.BooleanType, 1)), names.InvalidSpan)

	ins(names.Ident(tbl.Intern("BIT")), noderef.DefOfTypeDecl(r.BitType), names.InvalidSpan)
	ins(names.Bit('0'), noderef.DefOfEnumLiteral(noderef.NewEnumRef(r.BitType, 0)), names.InvalidSpan)
	ins(names.Bit('1'), noderef.DefOfEnumLiteral(noderef.NewEnumRef(r.BitType, 1)), names.InvalidSpan)

	ins(names.Ident(tbl.Intern("SEVERITY_LEVEL")), noderef.DefOfTypeDecl(r.SeverityLevelType), names.InvalidSpan)
	for i, lit := range []string{"NOTE", "WARNING", "ERROR", "FAILURE"} {
		ins(names.Ident(tbl.Intern(lit)), noderef.DefOfEnumLiteral(noderef.NewEnumRef(r.SeverityLevelType, i)), names.InvalidSpan)
	}

	ins(names.Ident(tbl.Intern("INTEGER")), noderef.DefOfTypeDecl(r.IntegerType), names.InvalidSpan)

	ins(names.Ident(tbl.Intern("TIME")), noderef.DefOfTypeDecl(r.TimeType), names.InvalidSpan)
	for i, unit := range []string{"fs", "ps", "ns", "us", "ms", "sec", "min", "hr"} {
		ins(names.Ident(tbl.Intern(unit)), noderef.DefOfUnit(noderef.NewUnitRef(r.TimeType, i)), names.InvalidSpan)
	}

	ins(names.Ident(tbl.Intern("DELAY_LENGTH")), noderef.DefOfTypeDecl(r.DelayLengthType), names.InvalidSpan)
	ins(names.Ident(tbl.Intern("NATURAL")), noderef.DefOfTypeDecl(r.NaturalType), names.InvalidSpan)
	ins(names.Ident(tbl.Intern("POSITIVE")), noderef.DefOfTypeDecl(r.PositiveType), names.InvalidSpan)

	ins(names.Ident(tbl.Intern("BOOLEAN_VECTOR")), noderef.DefOfTypeDecl(r.BooleanVectorType), names.InvalidSpan)
	ins(names.Ident(tbl.Intern("BIT_VECTOR")), noderef.DefOfTypeDecl(r.BitVectorType), names.InvalidSpan)
	ins(names.Ident(tbl.Intern("INTEGER_VECTOR")), noderef.DefOfTypeDecl(r.IntegerVectorType), names.InvalidSpan)
	ins(names.Ident(tbl.Intern("TIME_VECTOR")), noderef.DefOfTypeDecl(r.TimeVectorType), names.InvalidSpan)

	ins(names.Ident(tbl.Intern("FILE_OPEN_KIND")), noderef.DefOfTypeDecl(r.FileOpenKindType), names.InvalidSpan)
	for i, lit := range []string{"READ_MODE", "WRITE_MODE", "APPEND_MODE"} {
		ins(names.Ident(tbl.Intern(lit)), noderef.DefOfEnumLiteral(noderef.NewEnumRef(r.FileOpenKindType, i)), names.InvalidSpan)
	}

	ins(names.Ident(tbl.Intern("FILE_OPEN_STATUS")), noderef.DefOfTypeDecl(r.FileOpenStatusType), names.InvalidSpan)
	for i, lit := range []string{"OPEN_OK", "STATUS_ERROR", "NAME_ERROR", "MODE_ERROR"} {
		ins(names.Ident(tbl.Intern(lit)), noderef.DefOfEnumLiteral(noderef.NewEnumRef(r.FileOpenStatusType, i)), names.InvalidSpan)
	}

	return s
}

func timeUnits() []types.PhysicalUnit {
	named := func(name string, abs int64, rel *types.RelUnit) types.PhysicalUnit {
		return types.PhysicalUnit{Name: names.Global().Intern(name), Abs: big.NewInt(abs), Rel: rel}
	}
	rel := func(scale int64, idx int) *types.RelUnit {
		return &types.RelUnit{Scale: big.NewInt(scale), ReferencedUnit: idx}
	}
	return []types.PhysicalUnit{
		named("fs", 1, nil),
		named("ps", 1_000, rel(1000, 0)),
		named("ns", 1_000_000, rel(1000, 1)),
		named("us", 1_000_000_000, rel(1000, 2)),
		named("ms", 1_000_000_000_000, rel(1000, 3)),
		named("sec", 1_000_000_000_000_000, rel(1000, 4)),
		named("min", 60_000_000_000_000_000, rel(60, 5)),
		named("hr", 3_600_000_000_000_000_000, rel(60, 6)),
	}
}

func unaryOperators() []names.Operator {
	return []names.Operator{
		{Kind: names.OpAdd},
		{Kind: names.OpSub},
		{Kind: names.OpAbs},
		{Kind: names.OpNot},
		{Kind: names.OpLogical, Logical: names.LogAnd},
		{Kind: names.OpLogical, Logical: names.LogOr},
		{Kind: names.OpLogical, Logical: names.LogNand},
		{Kind: names.OpLogical, Logical: names.LogNor},
		{Kind: names.OpLogical, Logical: names.LogXor},
		{Kind: names.OpLogical, Logical: names.LogXnor},
	}
}

func binaryOperators() []names.Operator {
	ops := []names.Operator{
		{Kind: names.OpLogical, Logical: names.LogAnd},
		{Kind: names.OpLogical, Logical: names.LogOr},
		{Kind: names.OpLogical, Logical: names.LogNand},
		{Kind: names.OpLogical, Logical: names.LogNor},
		{Kind: names.OpLogical, Logical: names.LogXor},
		{Kind: names.OpLogical, Logical: names.LogXnor},
	}
	for _, rel := range []names.RelKind{names.RelEq, names.RelNeq, names.RelLt, names.RelLeq, names.RelGt, names.RelGeq} {
		ops = append(ops, names.Operator{Kind: names.OpRelational, Rel: rel})
	}
	for _, rel := range []names.RelKind{names.RelEq, names.RelNeq, names.RelLt, names.RelLeq, names.RelGt, names.RelGeq} {
		ops = append(ops, names.Operator{Kind: names.OpMatchRelational, Rel: rel})
	}
	for _, sh := range []names.ShiftKind{names.ShiftSll, names.ShiftSrl, names.ShiftSla, names.ShiftSra, names.ShiftRol, names.ShiftRor} {
		ops = append(ops, names.Operator{Kind: names.OpShift, Shift: sh})
	}
	ops = append(ops,
		names.Operator{Kind: names.OpAdd},
		names.Operator{Kind: names.OpSub},
		names.Operator{Kind: names.OpConcat},
		names.Operator{Kind: names.OpMul},
		names.Operator{Kind: names.OpDiv},
		names.Operator{Kind: names.OpMod},
		names.Operator{Kind: names.OpRem},
		names.Operator{Kind: names.OpPow},
	)
	return ops
}

const (
	minInt32 = -2147483648
	maxInt32 = 2147483647
	minInt64 = -9223372036854775808
	maxInt64 = 9223372036854775807
)

// Install copies the frozen registry's scopes and types into a session's own
// mutable tables. scopes and tys are the scoreboard's scope_table and
// ty_table, passed in directly rather than through an import of package
// scoreboard (which imports builtins, not the reverse). Returns
// ErrBuiltinIntegrity if the session's tables already hold the root scope,
// i.e. Install was already called once for this session.
func Install(scopes map[noderef.ScopeRef]*scope.Scope, tys map[noderef.Handle]types.Ty) error {
	r := Get()
	if _, ok := scopes[r.RootScopeRef]; ok {
		return ErrBuiltinIntegrity
	}
	for ref, sc := range r.Scopes {
		scopes[ref] = sc
	}
	for h, ty := range r.Types {
		tys[h] = ty
	}
	return nil
}
