// Package hir defines the lowered, name-carrying intermediate representation
// the scoreboard produces on demand from the AST. HIR nodes are plain,
// arena-allocated structs; cross-references are typed noderef handles, never
// ownership edges, so the graph is acyclic by construction even though the
// demand graph that builds it is not (see scoreboard.Board).
//
// Like the types package, each HIR shape that can take several forms is
// modeled as a Kind tag plus the fields for that shape, rather than an
// interface hierarchy, so the scoreboard and later phases can switch
// exhaustively instead of type-asserting.
package hir

import (
	"math/big"

	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/types"
)

// Lib is the HIR of one library: the design units it contains, grouped by
// kind. Populated eagerly by lowering (every unit gets a handle and is
// appended here); the unit's own body HIR is produced later, on demand.
type Lib struct {
	Name        names.Name
	Entities    []noderef.EntityRef
	Archs       []noderef.ArchRef
	Configs     []noderef.ConfigRef
	Contexts    []noderef.ContextRef
	PkgDecls    []noderef.PkgDeclRef
	PkgBodies   []noderef.PkgBodyRef
	PkgInsts    []noderef.PkgInstRef
}

// CtxItems is the synthesized scope for one design unit's context-clause
// prefix: the libraries it makes visible and the packages its `use` clauses
// import.
type CtxItems struct {
	// Libraries named by `library` clauses, installed into this scope's
	// explicit defs.
	Libraries []names.Name
	// Imports are the scopes `use`d wholesale (`use a.b.all;`), appended to
	// the synthesized scope's referenced-defs list in clause order. A
	// non-`.all` use clause adds its selected definition to the scope's
	// explicit defs instead and does not appear here.
	Imports []noderef.ScopeRef
}

// Entity is the HIR of `entity E is generic(...) port(...) ... end;`.
type Entity struct {
	CtxItems noderef.CtxItemsRef
	Lib      noderef.LibRef
	Name     names.Name
	Generics []noderef.InterfaceObjRef
	Ports    []noderef.InterfaceObjRef
}

// Mode mirrors ast.Mode after lowering.
type Mode int

const (
	ModeIn Mode = iota
	ModeOut
	ModeInout
	ModeBuffer
	ModeLinkage
)

// InterfaceObj is the HIR of one generic or port interface object
// declaration, addressed by a noderef.InterfaceObjRef.
type InterfaceObj struct {
	Parent  noderef.ScopeRef
	Name    names.Name
	Mode    Mode
	Ind     *SubtypeInd
	Default *noderef.ExprRef
}

// Arch is the HIR of `architecture A of E is decls begin stmts end;`.
type Arch struct {
	CtxItems noderef.CtxItemsRef
	Entity   noderef.EntityRef
	Name     names.Name
	Decls    []noderef.DeclRef
	Stmts    []noderef.ConcStmtRef
}

// PackageKind tags which of the three package-flavored design units a
// Package HIR node lowers.
type PackageKind int

const (
	PackageDecl PackageKind = iota
	PackageBody
	PackageInst
)

// GenericBinding binds one actual to a generic package's formal generic, used
// only when Kind == PackageInst.
type GenericBinding struct {
	Formal names.Name
	Actual noderef.ExprRef
}

// Package is the HIR of a package declaration, package body, or package
// instantiation. PackageInst additionally carries the generic package being
// instantiated and its actual-to-formal generic bindings (spec.md's
// "Package" HIR kind elaborated per SPEC_FULL's supplemented-features list).
type Package struct {
	Kind     PackageKind
	CtxItems noderef.CtxItemsRef
	Name     names.Name
	Generics []noderef.InterfaceObjRef // PackageDecl: formal generics, in declared order
	Decls    []noderef.DeclRef         // PackageDecl / PackageBody
	Uninst   noderef.PkgDeclRef
	Bindings []GenericBinding // PackageInst
}

// TypeDefKind tags which optional definition a TypeDecl carries.
type TypeDefKind int

const (
	TypeIncomplete TypeDefKind = iota
	TypeEnum
	TypeRange
	TypeAccess
	TypeArray
	TypeFile
)

// UnitDecl is one `name = multiplier unit;` line of a physical type's units
// clause, carried through HIR before the type checker folds it into a
// types.PhysicalUnit.
type UnitDecl struct {
	Name       names.Name
	Multiplier *big.Int         // nil for the primary unit
	Of         *noderef.UnitRef // nil for the primary unit
}

// TypeDecl is the HIR of `type T is <def>;`. Exactly one of the
// Kind-selected fields below is meaningful.
type TypeDecl struct {
	Parent noderef.ScopeRef
	Name   names.Name
	Def    TypeDefKind

	// TypeEnum
	EnumLiterals []names.Resolvable // Ident or Bit, in declared order

	// TypeRange (also covers physical types when Units != nil)
	RangeLow, RangeHigh noderef.ExprRef
	RangeDir            types.Direction
	Units               []UnitDecl

	// TypeAccess
	AccessTarget *SubtypeInd

	// TypeArray
	IndexUnbounded bool // true: `array (I range <>)`; false: constrained
	IndexMark      noderef.TypeMark
	IndexRanges    []ArrayConstraintElem // constrained index ranges, in dimension order
	Element        *SubtypeInd

	// TypeFile
	FileElement *SubtypeInd
}

// SubtypeDecl is the HIR of `subtype S is <subtype indication>;`.
type SubtypeDecl struct {
	Parent noderef.ScopeRef
	Name   names.Name
	Ind    *SubtypeInd
}

// ConstraintKind tags which shape a SubtypeInd's optional constraint takes.
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota
	ConstraintRange
	ConstraintArray
	ConstraintRecord
)

// ArrayConstraintElem is one dimension of a lowered array constraint.
type ArrayConstraintElem struct {
	Low, High noderef.ExprRef
	Dir       types.Direction
}

// RecordConstraintElem constrains one field of a record subtype.
type RecordConstraintElem struct {
	Field names.Name
	Ind   *SubtypeInd
}

// Constraint is the lowered form of ast.Constraint.
type Constraint struct {
	Kind        ConstraintKind
	Low, High   noderef.ExprRef // ConstraintRange
	Dir         types.Direction
	ArrayElems  []ArrayConstraintElem // ConstraintArray
	ElementInd  *SubtypeInd           // optional nested element constraint
	RecordElems []RecordConstraintElem
}

// SubtypeInd is the lowered form of ast.SubtypeInd: a type mark plus an
// optional constraint.
type SubtypeInd struct {
	Mark       noderef.TypeMark
	Constraint *Constraint
}

// ConstDecl, SignalDecl, VarDecl, SharedVarDecl, FileDecl are the HIR of the
// five object declaration kinds, sharing the same shape: a parent scope, a
// name, a subtype indication, and an optional initializer expression.
type ConstDecl struct {
	Parent  noderef.ScopeRef
	Name    names.Name
	Ind     *SubtypeInd
	Default *noderef.ExprRef
}

type SignalDecl struct {
	Parent  noderef.ScopeRef
	Name    names.Name
	Ind     *SubtypeInd
	Default *noderef.ExprRef
}

type VarDecl struct {
	Parent  noderef.ScopeRef
	Name    names.Name
	Ind     *SubtypeInd
	Default *noderef.ExprRef
}

type SharedVarDecl struct {
	Parent  noderef.ScopeRef
	Name    names.Name
	Ind     *SubtypeInd
	Default *noderef.ExprRef
}

type FileDecl struct {
	Parent  noderef.ScopeRef
	Name    names.Name
	Ind     *SubtypeInd
	Default *noderef.ExprRef
}

// Sensitivity tags which form a process's sensitivity clause takes.
type SensitivityKind int

const (
	SensitivityNone SensitivityKind = iota
	SensitivityAll
	SensitivityExplicit
)

// ProcessStmt is the HIR of a concurrent process statement.
type ProcessStmt struct {
	Parent      noderef.ScopeRef
	Label       names.Name // invalid Name if the process is unlabeled
	Postponed   bool
	Sensitivity SensitivityKind
	Explicit    []noderef.SignalRef // valid when Sensitivity == SensitivityExplicit
	Decls       []noderef.DeclRef
	Stmts       []noderef.SeqStmtRef
}

// AssignTargetKind tags whether a signal assignment's target is a single
// named signal or an aggregate of several.
type AssignTargetKind int

const (
	TargetSignal AssignTargetKind = iota
	TargetAggregate
)

// AssignTarget is the lowered left-hand side of a signal assignment.
type AssignTarget struct {
	Kind       AssignTargetKind
	Signal     noderef.SignalRef
	Aggregate  []noderef.SignalRef
}

// AssignKind tags a signal assignment's overall shape.
type AssignKind int

const (
	AssignSimple AssignKind = iota
	AssignConditional
	AssignSelected
)

// DelayMechanism mirrors ast.DelayMechanism after lowering.
type DelayMechanism int

const (
	DelayInertial DelayMechanism = iota
	DelayTransport
	DelayRejectInertial
)

// Waveform is one lowered `value after delay` element; Value is invalid for
// the `null` transaction.
type Waveform struct {
	HasValue bool
	Value    noderef.ExprRef
	HasAfter bool
	After    noderef.ExprRef
}

// SigAssignStmt is the HIR of a signal assignment, used both as a concurrent
// statement and inside a process body.
type SigAssignStmt struct {
	Parent    noderef.ScopeRef
	Label     names.Name
	Target    AssignTarget
	Kind      AssignKind
	Mechanism DelayMechanism
	Reject    *noderef.ExprRef // valid when Mechanism == DelayRejectInertial
	Waveforms []Waveform
}

// CompInstStmt is the HIR of a concurrent component instantiation.
type CompInstStmt struct {
	Parent     noderef.ScopeRef
	Label      names.Name
	Entity     noderef.EntityRef
	GenericMap []Assoc
	PortMap    []Assoc
}

// Assoc is one lowered `formal => actual` association.
type Assoc struct {
	HasFormal bool
	Formal    names.Name
	Actual    noderef.ExprRef
}

// ConcStmtKind tags which concrete concurrent statement a ConcStmt wraps.
type ConcStmtKind int

const (
	ConcProcess ConcStmtKind = iota
	ConcSigAssign
	ConcCompInst
)

// ConcStmt is the HIR payload addressed by a noderef.ConcStmtRef.
type ConcStmt struct {
	Kind      ConcStmtKind
	Process   *ProcessStmt
	SigAssign *SigAssignStmt
	CompInst  *CompInstStmt
}

// SeqStmtKind tags which concrete sequential statement a SeqStmt wraps.
type SeqStmtKind int

const (
	SeqSigAssign SeqStmtKind = iota
	SeqVarAssign
	SeqIf
	SeqCase
	SeqLoop
	SeqExit
	SeqNext
	SeqWait
	SeqNull
	SeqAssert
	SeqReport
)

// VarAssignStmt is the HIR of `target := value;`.
type VarAssignStmt struct {
	Target noderef.ExprRef
	Value  noderef.ExprRef
}

// IfBranch is one lowered `elsif`/`if` arm.
type IfBranch struct {
	Cond  noderef.ExprRef
	Stmts []noderef.SeqStmtRef
}

// IfStmt is the HIR of an `if` statement.
type IfStmt struct {
	Branches []IfBranch
	Else     []noderef.SeqStmtRef
}

// CaseAlt is one lowered `when choice[, choice...] => stmts` arm; a nil
// Choices slice denotes the `when others` arm.
type CaseAlt struct {
	Choices []noderef.ExprRef
	Stmts   []noderef.SeqStmtRef
}

// CaseStmt is the HIR of a `case` statement.
type CaseStmt struct {
	Expr noderef.ExprRef
	Alts []CaseAlt
}

// LoopKind mirrors ast.LoopKind after lowering.
type LoopKind int

const (
	LoopPlain LoopKind = iota
	LoopWhile
	LoopFor
)

// LoopStmt is the HIR of a `loop`/`while ... loop`/`for ... loop` statement.
type LoopStmt struct {
	Kind      LoopKind
	Cond      noderef.ExprRef // LoopWhile
	ParamName names.Name      // LoopFor
	RangeLow  noderef.ExprRef // LoopFor
	RangeHigh noderef.ExprRef
	RangeDir  types.Direction
	Stmts     []noderef.SeqStmtRef
}

// ExitNextStmt is the HIR of `exit`/`next`.
type ExitNextStmt struct {
	Label   names.Name // invalid if untargeted
	HasCond bool
	Cond    noderef.ExprRef
}

// WaitStmt is the HIR of `wait [on ...] [until ...] [for ...];`.
type WaitStmt struct {
	On       []noderef.SignalRef
	HasUntil bool
	Until    noderef.ExprRef
	HasFor   bool
	For      noderef.ExprRef
}

// AssertStmt is the HIR of `assert cond [report msg] [severity sev];`.
type AssertStmt struct {
	Cond       noderef.ExprRef
	HasReport  bool
	Report     noderef.ExprRef
	HasSev     bool
	Severity   noderef.ExprRef
}

// ReportStmt is the HIR of `report msg [severity sev];`.
type ReportStmt struct {
	Report   noderef.ExprRef
	HasSev   bool
	Severity noderef.ExprRef
}

// SeqStmt is the HIR payload addressed by a noderef.SeqStmtRef.
type SeqStmt struct {
	Kind      SeqStmtKind
	SigAssign *SigAssignStmt
	VarAssign *VarAssignStmt
	If        *IfStmt
	Case      *CaseStmt
	Loop      *LoopStmt
	ExitNext  *ExitNextStmt
	Wait      *WaitStmt
	Assert    *AssertStmt
	Report    *ReportStmt
}

// ExprKind tags which concrete shape an Expr node takes.
type ExprKind int

const (
	ExprName ExprKind = iota
	ExprSelect
	ExprAttribute
	ExprIntLit
	ExprFloatLit
	ExprUnary
	ExprBinary
	ExprRange
)

// Expr is the HIR of an expression: a parent scope, a span, and its concrete
// shape.
type Expr struct {
	Kind   ExprKind
	Parent noderef.ScopeRef
	Span   names.Span

	// ExprName: a resolved name (the defs it denotes are looked up through
	// the scoreboard's resolver, keyed by this node's handle and Parent).
	Name names.Resolvable

	// ExprSelect: `prefix.suffix`.
	SelectPrefix noderef.ExprRef
	SelectName   names.Resolvable

	// ExprAttribute: `prefix'attr(args...)`.
	AttrPrefix noderef.ExprRef
	AttrName   names.Name
	AttrArgs   []noderef.ExprRef

	// ExprIntLit
	IntValue *big.Int

	// ExprFloatLit
	FloatValue float64

	// ExprUnary
	UnaryOp      names.Operator
	UnaryOperand noderef.ExprRef

	// ExprBinary
	BinaryOp  names.Operator
	BinaryLHS noderef.ExprRef
	BinaryRHS noderef.ExprRef

	// ExprRange
	RangeLow, RangeHigh noderef.ExprRef
	RangeDir            types.Direction
}
