package ast

// DelayMechanism selects how a signal assignment's pulse rejection limit is
// computed: `transport`, `reject T inertial`, or plain inertial (the
// implicit case, where the reject limit equals the first waveform delay).
type DelayMechanism int

const (
	DelayInertial DelayMechanism = iota
	DelayTransport
	DelayRejectInertial
)

// Waveform is one `value after delay` element of a waveform list, or the
// `null` transaction when Value == nil.
type Waveform struct {
	Value Node // nil denotes the `null` waveform element
	After Node // optional delay expression
}

// SigAssignStmt is `target <= [transport|reject T inertial] waveform, ...;`,
// used both as a concurrent statement (ConcStmtRef) and inside a process
// body (SeqStmtRef).
type SigAssignStmt struct {
	Base
	Target    Node
	Mechanism DelayMechanism
	Reject    Node // delay expression when Mechanism == DelayRejectInertial
	Waveforms []Waveform
}

// VarAssignStmt is `target := value;`.
type VarAssignStmt struct {
	Base
	Target Node
	Value  Node
}

// IfBranch is one `elsif`/`if` arm.
type IfBranch struct {
	Cond  Node
	Stmts []Node
}

// IfStmt is `if ... elsif ... else ... end if;`.
type IfStmt struct {
	Base
	Branches []IfBranch
	Else     []Node // nil if there is no else branch
}

// CaseAlt is one `when choice[, choice...] => stmts` arm. Choices is nil
// for the `when others` arm.
type CaseAlt struct {
	Choices []Node
	Stmts   []Node
}

// CaseStmt is `case expr is when ... end case;`.
type CaseStmt struct {
	Base
	Expr Node
	Alts []CaseAlt
}

// LoopKind tags which iteration scheme a LoopStmt uses.
type LoopKind int

const (
	LoopPlain LoopKind = iota // bare `loop ... end loop`, exited only by exit/next
	LoopWhile
	LoopFor
)

// LoopStmt is `[label:] [while cond|for id in range] loop stmts end loop;`.
type LoopStmt struct {
	Base
	Kind      LoopKind
	Cond      Node   // valid when Kind == LoopWhile
	ParamName Node   // valid when Kind == LoopFor
	Range     *RangeExpr // valid when Kind == LoopFor
	Stmts     []Node
}

// ExitNextKind distinguishes `exit` from `next`.
type ExitNextKind int

const (
	KindExit ExitNextKind = iota
	KindNext
)

// ExitNextStmt is `exit|next [label] [when cond];`.
type ExitNextStmt struct {
	Base
	Kind ExitNextKind
	Cond Node // optional
}

// WaitStmt is `wait [on sig,...] [until cond] [for delay];`.
type WaitStmt struct {
	Base
	On    []Node
	Until Node
	For   Node
}

// NullStmt is the no-op sequential statement `null;`.
type NullStmt struct {
	Base
}

// AssertStmt is `assert cond [report msg] [severity sev];`. A nil
// Severity means the implicit default severity applies, resolved later by
// the type checker's builtin environment rather than stamped into the AST.
type AssertStmt struct {
	Base
	Cond     Node
	Report   Node // optional
	Severity Node // optional
}

// ReportStmt is `report msg [severity sev];`.
type ReportStmt struct {
	Base
	Report   Node
	Severity Node // optional
}

// ProcessStmt is a concurrent process statement: `[label:] process
// [(sensitivity...)] [is] decls begin stmts end process;`.
type ProcessStmt struct {
	Base
	Label       *Identifier // nil if unlabeled
	Postponed   bool
	Sensitivity []Node // nil for a process with no sensitivity list
	Decls       []Node
	Stmts       []Node
}

// ConcSigAssignStmt wraps a SigAssignStmt used directly as a concurrent
// statement (as opposed to one nested inside a ProcessStmt).
type ConcSigAssignStmt struct {
	Base
	Assign *SigAssignStmt
}

// PortMapAssoc is one `formal => actual` (or purely positional, Formal ==
// nil) association in a port or generic map.
type PortMapAssoc struct {
	Formal Node // optional
	Actual Node
}

// CompInstStmt is `label : component_name [generic map (...)] port map
// (...);`, a concurrent component instantiation.
type CompInstStmt struct {
	Base
	Label      *Identifier
	Entity     Node // the instantiated unit's name
	GenericMap []PortMapAssoc
	PortMap    []PortMapAssoc
}
