package scoreboard

import (
	"github.com/pkg/errors"

	"github.com/boenset/moore/ast"
	"github.com/boenset/moore/hir"
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/scope"
	"github.com/boenset/moore/types"
)

// GetExpr returns the lowered HIR for an expression handle.
func (b *Board) GetExpr(ref noderef.ExprRef) (*hir.Expr, bool) {
	return b.exprs.get(ref)
}

// GetConcStmt returns the lowered HIR for a concurrent statement handle.
func (b *Board) GetConcStmt(ref noderef.ConcStmtRef) (*hir.ConcStmt, bool) {
	return b.concStmts.get(ref)
}

// GetSeqStmt returns the lowered HIR for a sequential statement handle.
func (b *Board) GetSeqStmt(ref noderef.SeqStmtRef) (*hir.SeqStmt, bool) {
	return b.seqStmts.get(ref)
}

// lowerExpr lowers one expression tree into the expression table, returning
// the handle of the root node. Names inside the expression are carried as
// Resolvables, not resolved here; resolution and typing happen on demand
// when a later product asks for this node's type.
func (b *Board) lowerExpr(n ast.Node, parent noderef.ScopeRef) (noderef.ExprRef, error) {
	node := hir.Expr{Parent: parent, Span: n.Span()}
	switch e := n.(type) {
	case *ast.Identifier, *ast.Char, *ast.StringLit:
		rn, err := b.ResolvableFromPrimaryName(n)
		if err != nil {
			return noderef.ExprRef{}, err
		}
		node.Kind = hir.ExprName
		node.Name = rn
	case *ast.IntLit:
		node.Kind = hir.ExprIntLit
		node.IntValue = e.Value
	case *ast.FloatLit:
		node.Kind = hir.ExprFloatLit
		node.FloatValue = e.Value
	case *ast.UnaryExpr:
		op, err := b.operatorOf(e.Op)
		if err != nil {
			return noderef.ExprRef{}, err
		}
		operand, err := b.lowerExpr(e.Operand, parent)
		if err != nil {
			return noderef.ExprRef{}, err
		}
		node.Kind = hir.ExprUnary
		node.UnaryOp = op
		node.UnaryOperand = operand
	case *ast.BinaryExpr:
		op, err := b.operatorOf(e.Op)
		if err != nil {
			return noderef.ExprRef{}, err
		}
		lhs, err := b.lowerExpr(e.LHS, parent)
		if err != nil {
			return noderef.ExprRef{}, err
		}
		rhs, err := b.lowerExpr(e.RHS, parent)
		if err != nil {
			return noderef.ExprRef{}, err
		}
		node.Kind = hir.ExprBinary
		node.BinaryOp = op
		node.BinaryLHS = lhs
		node.BinaryRHS = rhs
	case *ast.RangeExpr:
		low, err := b.lowerExpr(e.Low, parent)
		if err != nil {
			return noderef.ExprRef{}, err
		}
		high, err := b.lowerExpr(e.High, parent)
		if err != nil {
			return noderef.ExprRef{}, err
		}
		node.Kind = hir.ExprRange
		node.RangeLow, node.RangeHigh = low, high
		node.RangeDir = types.Direction(e.Direction)
	case *ast.CompoundName:
		return b.lowerCompoundExpr(e, parent)
	default:
		return noderef.ExprRef{}, errors.Wrapf(ErrWrongKind, "%T is not an expression", n)
	}
	r := noderef.NewExprRef()
	b.exprs.insert(r, node)
	return r, nil
}

// operatorOf normalizes the operator designator of a unary/binary
// expression, which a parser may deliver as a keyword identifier (`and`,
// `mod`) or as a string literal (`"<="`).
func (b *Board) operatorOf(n ast.Node) (names.Operator, error) {
	var spelling string
	switch v := n.(type) {
	case *ast.Identifier:
		spelling = v.Value
	case *ast.StringLit:
		spelling = v.Value
	default:
		return names.Operator{}, errors.Wrapf(ErrWrongKind, "%T is not an operator designator", n)
	}
	op, ok := names.LookupOperatorSpelling(spelling)
	if !ok {
		b.errorf(n.Span(), "`%s` is not a valid operator symbol; see IEEE 1076-2008 section 9.2 for a list of predefined operators", spelling)
		return names.Operator{}, errors.Wrapf(ErrUnknownOperator, "%q", spelling)
	}
	return op, nil
}

// lowerCompoundExpr folds a compound name used in expression position into a
// chain of ExprSelect/ExprAttribute nodes. Call, index, and slice suffixes
// are not representable in the expression data model and stop lowering with
// an error; they belong to the type checker's overload-resolution pass,
// which this project treats as an external collaborator past the minimum
// typing implemented here.
func (b *Board) lowerCompoundExpr(cn *ast.CompoundName, parent noderef.ScopeRef) (noderef.ExprRef, error) {
	rn, err := b.ResolvableFromPrimaryName(cn.Prefix)
	if err != nil {
		return noderef.ExprRef{}, err
	}
	cur := noderef.NewExprRef()
	b.exprs.insert(cur, hir.Expr{Parent: parent, Span: cn.Prefix.Span(), Kind: hir.ExprName, Name: rn})

	for i := 0; i < len(cn.Selectors); i++ {
		sel := cn.Selectors[i]
		switch sel.Kind {
		case ast.SelectorDot:
			selName, err := b.ResolvableFromPrimaryName(sel.Name)
			if err != nil {
				return noderef.ExprRef{}, err
			}
			next := noderef.NewExprRef()
			b.exprs.insert(next, hir.Expr{
				Parent: parent, Span: cn.Span(),
				Kind: hir.ExprSelect, SelectPrefix: cur, SelectName: selName,
			})
			cur = next
		case ast.SelectorAttribute:
			id, ok := sel.Name.(*ast.Identifier)
			if !ok {
				return noderef.ExprRef{}, errors.Wrapf(ErrWrongKind, "attribute designator must be an identifier")
			}
			node := hir.Expr{
				Parent: parent, Span: cn.Span(),
				Kind: hir.ExprAttribute, AttrPrefix: cur, AttrName: names.Global().Intern(id.Value),
			}
			// `x'attr(args)` parses as an attribute selector followed by a
			// call selector; fold the call's arguments onto the attribute.
			if i+1 < len(cn.Selectors) && cn.Selectors[i+1].Kind == ast.SelectorCall {
				i++
				for _, arg := range cn.Selectors[i].Args {
					a, err := b.lowerExpr(arg, parent)
					if err != nil {
						return noderef.ExprRef{}, err
					}
					node.AttrArgs = append(node.AttrArgs, a)
				}
			}
			next := noderef.NewExprRef()
			b.exprs.insert(next, node)
			cur = next
		default:
			return noderef.ExprRef{}, errors.Wrapf(ErrWrongKind, "call/index/slice suffix is not an elaborable expression")
		}
	}
	return cur, nil
}

// resolveSignalRef resolves a name to the signal it denotes, distinguishing
// declared signals from entity interface objects via the signal-view map.
func (b *Board) resolveSignalRef(n ast.Node, at noderef.ScopeRef) (noderef.SignalRef, error) {
	rn, err := b.ResolvableFromPrimaryName(n)
	if err != nil {
		return noderef.SignalRef{}, err
	}
	def, err := b.resolveOne(rn, at, false)
	if err != nil {
		return noderef.SignalRef{}, err
	}
	if def.Kind != noderef.DefSignal {
		b.errorf(n.Span(), "`%s` is not a signal", b.display(rn))
		return noderef.SignalRef{}, errors.Wrapf(ErrWrongKind, "%s is a %s, not a signal", b.display(rn), def.Kind)
	}
	if iface, ok := b.ifaceSignals[def.Signal]; ok {
		return noderef.SignalRef{IsInterface: true, Interface: iface}, nil
	}
	return noderef.SignalRef{Decl: def.Signal}, nil
}

// lowerConcStmt lowers one concurrent statement into the concurrent
// statement table.
func (b *Board) lowerConcStmt(n ast.Node, parent noderef.ScopeRef) (noderef.ConcStmtRef, error) {
	var node hir.ConcStmt
	switch s := n.(type) {
	case *ast.ProcessStmt:
		p, err := b.lowerProcess(s, parent)
		if err != nil {
			return noderef.ConcStmtRef{}, err
		}
		node = hir.ConcStmt{Kind: hir.ConcProcess, Process: p}
	case *ast.ConcSigAssignStmt:
		a, err := b.lowerSigAssign(s.Assign, parent, names.Name{})
		if err != nil {
			return noderef.ConcStmtRef{}, err
		}
		node = hir.ConcStmt{Kind: hir.ConcSigAssign, SigAssign: a}
	case *ast.CompInstStmt:
		ci, err := b.lowerCompInst(s, parent)
		if err != nil {
			return noderef.ConcStmtRef{}, err
		}
		node = hir.ConcStmt{Kind: hir.ConcCompInst, CompInst: ci}
	default:
		return noderef.ConcStmtRef{}, errors.Wrapf(ErrWrongKind, "%T is not a concurrent statement", n)
	}
	r := noderef.NewConcStmtRef()
	b.concStmts.insert(r, node)
	return r, nil
}

func (b *Board) lowerProcess(s *ast.ProcessStmt, parent noderef.ScopeRef) (*hir.ProcessStmt, error) {
	procRef := noderef.NewProcessRef()
	scopeRef := noderef.ScopeOfProcessRef(procRef)
	b.scopes[scopeRef] = scope.NewScope(&parent)

	p := &hir.ProcessStmt{Parent: parent}
	if s.Label != nil {
		p.Label = names.Global().Intern(s.Label.Value)
	}
	p.Postponed = s.Postponed

	for _, d := range s.Decls {
		decl, err := b.lowerDecl(d, scopeRef)
		if err != nil {
			return nil, err
		}
		p.Decls = append(p.Decls, decl)
	}

	// Sensitivity resolves after the declarative part so the process scope
	// is fully populated, even though VHDL sensitivity entries can only name
	// signals declared outside the process.
	switch {
	case s.Sensitivity == nil:
		p.Sensitivity = hir.SensitivityNone
	case len(s.Sensitivity) == 1 && isAllKeyword(s.Sensitivity[0]):
		p.Sensitivity = hir.SensitivityAll
	default:
		p.Sensitivity = hir.SensitivityExplicit
		for _, sig := range s.Sensitivity {
			ref, err := b.resolveSignalRef(sig, scopeRef)
			if err != nil {
				return nil, err
			}
			p.Explicit = append(p.Explicit, ref)
		}
	}

	for _, st := range s.Stmts {
		stmt, err := b.lowerSeqStmt(st, scopeRef)
		if err != nil {
			return nil, err
		}
		p.Stmts = append(p.Stmts, stmt)
	}
	return p, nil
}

func isAllKeyword(n ast.Node) bool {
	id, ok := n.(*ast.Identifier)
	return ok && names.Global().Intern(id.Value) == names.Global().Intern("all")
}

func (b *Board) lowerSigAssign(s *ast.SigAssignStmt, parent noderef.ScopeRef, label names.Name) (*hir.SigAssignStmt, error) {
	target, err := b.resolveSignalRef(s.Target, parent)
	if err != nil {
		return nil, err
	}
	a := &hir.SigAssignStmt{
		Parent: parent,
		Label:  label,
		Target: hir.AssignTarget{Kind: hir.TargetSignal, Signal: target},
		Kind:   hir.AssignSimple,
	}
	switch s.Mechanism {
	case ast.DelayTransport:
		a.Mechanism = hir.DelayTransport
	case ast.DelayRejectInertial:
		a.Mechanism = hir.DelayRejectInertial
		reject, err := b.lowerExpr(s.Reject, parent)
		if err != nil {
			return nil, err
		}
		a.Reject = &reject
	default:
		a.Mechanism = hir.DelayInertial
	}
	for _, w := range s.Waveforms {
		var wf hir.Waveform
		if w.Value != nil {
			v, err := b.lowerExpr(w.Value, parent)
			if err != nil {
				return nil, err
			}
			wf.HasValue, wf.Value = true, v
		}
		if w.After != nil {
			d, err := b.lowerExpr(w.After, parent)
			if err != nil {
				return nil, err
			}
			wf.HasAfter, wf.After = true, d
		}
		a.Waveforms = append(a.Waveforms, wf)
	}
	return a, nil
}

func (b *Board) lowerCompInst(s *ast.CompInstStmt, parent noderef.ScopeRef) (*hir.CompInstStmt, error) {
	var def noderef.Def
	var err error
	if cn, ok := s.Entity.(*ast.CompoundName); ok {
		def, _, err = b.ResolveCompoundName(cn, parent)
	} else {
		var rn names.Resolvable
		rn, err = b.ResolvableFromPrimaryName(s.Entity)
		if err == nil {
			def, err = b.resolveOne(rn, parent, false)
		}
	}
	if err != nil {
		return nil, err
	}
	if def.Kind != noderef.DefEntity {
		b.errorf(s.Entity.Span(), "`%s` is not an entity", def.Kind)
		return nil, errors.Wrapf(ErrWrongKind, "instantiated unit is a %s, not an entity", def.Kind)
	}
	ci := &hir.CompInstStmt{Parent: parent, Entity: def.Entity}
	if s.Label != nil {
		ci.Label = names.Global().Intern(s.Label.Value)
	}
	lowerAssocs := func(assocs []ast.PortMapAssoc) ([]hir.Assoc, error) {
		var out []hir.Assoc
		for _, assoc := range assocs {
			actual, err := b.lowerExpr(assoc.Actual, parent)
			if err != nil {
				return nil, err
			}
			h := hir.Assoc{Actual: actual}
			if assoc.Formal != nil {
				if id, ok := assoc.Formal.(*ast.Identifier); ok {
					h.HasFormal = true
					h.Formal = names.Global().Intern(id.Value)
				}
			}
			out = append(out, h)
		}
		return out, nil
	}
	if ci.GenericMap, err = lowerAssocs(s.GenericMap); err != nil {
		return nil, err
	}
	if ci.PortMap, err = lowerAssocs(s.PortMap); err != nil {
		return nil, err
	}
	return ci, nil
}

// lowerSeqStmt lowers one sequential statement into the sequential
// statement table.
func (b *Board) lowerSeqStmt(n ast.Node, parent noderef.ScopeRef) (noderef.SeqStmtRef, error) {
	var node hir.SeqStmt
	switch s := n.(type) {
	case *ast.SigAssignStmt:
		a, err := b.lowerSigAssign(s, parent, names.Name{})
		if err != nil {
			return noderef.SeqStmtRef{}, err
		}
		node = hir.SeqStmt{Kind: hir.SeqSigAssign, SigAssign: a}
	case *ast.VarAssignStmt:
		target, err := b.lowerExpr(s.Target, parent)
		if err != nil {
			return noderef.SeqStmtRef{}, err
		}
		value, err := b.lowerExpr(s.Value, parent)
		if err != nil {
			return noderef.SeqStmtRef{}, err
		}
		node = hir.SeqStmt{Kind: hir.SeqVarAssign, VarAssign: &hir.VarAssignStmt{Target: target, Value: value}}
	case *ast.IfStmt:
		stmt := &hir.IfStmt{}
		for _, br := range s.Branches {
			cond, err := b.lowerExpr(br.Cond, parent)
			if err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmts, err := b.lowerSeqStmts(br.Stmts, parent)
			if err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.Branches = append(stmt.Branches, hir.IfBranch{Cond: cond, Stmts: stmts})
		}
		var err error
		if stmt.Else, err = b.lowerSeqStmts(s.Else, parent); err != nil {
			return noderef.SeqStmtRef{}, err
		}
		node = hir.SeqStmt{Kind: hir.SeqIf, If: stmt}
	case *ast.CaseStmt:
		expr, err := b.lowerExpr(s.Expr, parent)
		if err != nil {
			return noderef.SeqStmtRef{}, err
		}
		stmt := &hir.CaseStmt{Expr: expr}
		for _, alt := range s.Alts {
			var choices []noderef.ExprRef
			for _, c := range alt.Choices {
				ch, err := b.lowerExpr(c, parent)
				if err != nil {
					return noderef.SeqStmtRef{}, err
				}
				choices = append(choices, ch)
			}
			stmts, err := b.lowerSeqStmts(alt.Stmts, parent)
			if err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.Alts = append(stmt.Alts, hir.CaseAlt{Choices: choices, Stmts: stmts})
		}
		node = hir.SeqStmt{Kind: hir.SeqCase, Case: stmt}
	case *ast.LoopStmt:
		stmt := &hir.LoopStmt{Kind: hir.LoopKind(s.Kind)}
		var err error
		switch s.Kind {
		case ast.LoopWhile:
			if stmt.Cond, err = b.lowerExpr(s.Cond, parent); err != nil {
				return noderef.SeqStmtRef{}, err
			}
		case ast.LoopFor:
			id, ok := s.ParamName.(*ast.Identifier)
			if !ok {
				return noderef.SeqStmtRef{}, errors.Wrapf(ErrWrongKind, "loop parameter must be an identifier")
			}
			stmt.ParamName = names.Global().Intern(id.Value)
			if stmt.RangeLow, err = b.lowerExpr(s.Range.Low, parent); err != nil {
				return noderef.SeqStmtRef{}, err
			}
			if stmt.RangeHigh, err = b.lowerExpr(s.Range.High, parent); err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.RangeDir = types.Direction(s.Range.Direction)
		}
		if stmt.Stmts, err = b.lowerSeqStmts(s.Stmts, parent); err != nil {
			return noderef.SeqStmtRef{}, err
		}
		node = hir.SeqStmt{Kind: hir.SeqLoop, Loop: stmt}
	case *ast.ExitNextStmt:
		stmt := &hir.ExitNextStmt{}
		if s.Cond != nil {
			cond, err := b.lowerExpr(s.Cond, parent)
			if err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.HasCond, stmt.Cond = true, cond
		}
		kind := hir.SeqExit
		if s.Kind == ast.KindNext {
			kind = hir.SeqNext
		}
		node = hir.SeqStmt{Kind: kind, ExitNext: stmt}
	case *ast.WaitStmt:
		stmt := &hir.WaitStmt{}
		for _, sig := range s.On {
			ref, err := b.resolveSignalRef(sig, parent)
			if err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.On = append(stmt.On, ref)
		}
		if s.Until != nil {
			until, err := b.lowerExpr(s.Until, parent)
			if err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.HasUntil, stmt.Until = true, until
		}
		if s.For != nil {
			delay, err := b.lowerExpr(s.For, parent)
			if err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.HasFor, stmt.For = true, delay
		}
		node = hir.SeqStmt{Kind: hir.SeqWait, Wait: stmt}
	case *ast.NullStmt:
		node = hir.SeqStmt{Kind: hir.SeqNull}
	case *ast.AssertStmt:
		cond, err := b.lowerExpr(s.Cond, parent)
		if err != nil {
			return noderef.SeqStmtRef{}, err
		}
		stmt := &hir.AssertStmt{Cond: cond}
		if s.Report != nil {
			if stmt.Report, err = b.lowerExpr(s.Report, parent); err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.HasReport = true
		}
		if s.Severity != nil {
			if stmt.Severity, err = b.lowerExpr(s.Severity, parent); err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.HasSev = true
		}
		node = hir.SeqStmt{Kind: hir.SeqAssert, Assert: stmt}
	case *ast.ReportStmt:
		report, err := b.lowerExpr(s.Report, parent)
		if err != nil {
			return noderef.SeqStmtRef{}, err
		}
		stmt := &hir.ReportStmt{Report: report}
		if s.Severity != nil {
			if stmt.Severity, err = b.lowerExpr(s.Severity, parent); err != nil {
				return noderef.SeqStmtRef{}, err
			}
			stmt.HasSev = true
		}
		node = hir.SeqStmt{Kind: hir.SeqReport, Report: stmt}
	default:
		return noderef.SeqStmtRef{}, errors.Wrapf(ErrWrongKind, "%T is not a sequential statement", n)
	}
	r := noderef.NewSeqStmtRef()
	b.seqStmts.insert(r, node)
	return r, nil
}

func (b *Board) lowerSeqStmts(stmts []ast.Node, parent noderef.ScopeRef) ([]noderef.SeqStmtRef, error) {
	var out []noderef.SeqStmtRef
	for _, s := range stmts {
		ref, err := b.lowerSeqStmt(s, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}
