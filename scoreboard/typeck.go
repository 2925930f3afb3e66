package scoreboard

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/boenset/moore/hir"
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/types"
)

// TypeCtxKind tags which form an imposed type context takes.
type TypeCtxKind int

const (
	// TypeCtxExact imposes a concrete type on the node.
	TypeCtxExact TypeCtxKind = iota
	// TypeCtxMatchNode records that the node's type must match another
	// typed node's type; the scoreboard stores it and does not resolve it.
	TypeCtxMatchNode
)

// TypeCtx is the type context imposed on an expression from the outside,
// e.g. "the right-hand side of this assignment must have the target's
// type". The external type checker deposits these; the scoreboard stores
// and hands them back, and itself consults only an exact context, when
// typing an integer literal.
type TypeCtx struct {
	Kind  TypeCtxKind
	Exact types.Ty       // valid when Kind == TypeCtxExact
	Match noderef.Handle // valid when Kind == TypeCtxMatchNode
}

// SetTypeCtx records the imposed type context for a typed node. A node's
// context is set at most once; a second set for the same node is a
// scoreboard invariant violation.
func (b *Board) SetTypeCtx(node noderef.Handle, ctx TypeCtx) {
	if _, exists := b.tyctx[node]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant) + " (duplicate insert)")
	}
	b.tyctx[node] = ctx
}

// TypeCtxOf returns the imposed type context for a typed node, if any.
func (b *Board) TypeCtxOf(node noderef.Handle) (TypeCtx, bool) {
	ctx, ok := b.tyctx[node]
	return ctx, ok
}

// GetType computes (or returns the memoized) type of a typed node.
func (b *Board) GetType(tn noderef.TypedNode) (types.Ty, error) {
	key := tn.Key()
	if ty, ok := b.tys[key]; ok {
		return ty, nil
	}
	b.trace("make ty for %v", key)
	ty, err := b.makeType(tn)
	if err != nil {
		return types.Null, err
	}
	if _, exists := b.tys[key]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant) + " (duplicate insert)")
	}
	b.tys[key] = ty
	b.trace("ty for %v is %v", key, ty)
	return ty, nil
}

func (b *Board) makeType(tn noderef.TypedNode) (types.Ty, error) {
	switch tn.Kind {
	case noderef.TypedInterfaceObj:
		o, ok := b.ifObj.get(tn.InterfaceObj)
		if !ok {
			return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered interface object", tn.InterfaceObj)
		}
		return b.typeOfSubtypeInd(o.Ind)
	case noderef.TypedConstDecl:
		d, ok := b.constDecl.get(tn.ConstDecl)
		if !ok {
			return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered constant", tn.ConstDecl)
		}
		return b.typeOfSubtypeInd(d.Ind)
	case noderef.TypedSignalDecl:
		d, ok := b.signalDecl.get(tn.SignalDecl)
		if !ok {
			return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered signal", tn.SignalDecl)
		}
		return b.typeOfSubtypeInd(d.Ind)
	case noderef.TypedVarDecl:
		d, ok := b.varDecl.get(tn.VarDecl)
		if !ok {
			return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered variable", tn.VarDecl)
		}
		return b.typeOfSubtypeInd(d.Ind)
	case noderef.TypedSharedVarDecl:
		d, ok := b.sharedVarDecl.get(tn.SharedVar)
		if !ok {
			return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered shared variable", tn.SharedVar)
		}
		return b.typeOfSubtypeInd(d.Ind)
	case noderef.TypedFileDecl:
		d, ok := b.fileDecl.get(tn.FileDecl)
		if !ok {
			return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered file", tn.FileDecl)
		}
		return b.typeOfSubtypeInd(d.Ind)
	case noderef.TypedExpr:
		return b.typeOfExpr(tn.Expr)
	default:
		return types.Null, errors.Wrapf(ErrWrongKind, "node kind %v carries no type", tn.Kind)
	}
}

func (b *Board) typeOfExpr(ref noderef.ExprRef) (types.Ty, error) {
	e, ok := b.exprs.get(ref)
	if !ok {
		return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered expression", ref)
	}
	switch e.Kind {
	case hir.ExprIntLit:
		// An integer literal commits to a concrete integer type only under
		// an imposed context; bare, it stays unbounded.
		if ctx, ok := b.tyctx[ref.Handle]; ok && ctx.Kind == TypeCtxExact {
			return ctx.Exact, nil
		}
		return types.UnboundedInt, nil
	case hir.ExprName:
		def, err := b.resolveOne(e.Name, e.Parent, false)
		if err != nil {
			return types.Null, err
		}
		return b.typeOfDef(def)
	case hir.ExprUnary:
		return b.GetType(noderef.TypedNode{Kind: noderef.TypedExpr, Expr: e.UnaryOperand})
	case hir.ExprBinary:
		if e.BinaryOp.Kind == names.OpRelational || e.BinaryOp.Kind == names.OpMatchRelational {
			return b.TypeOfMark(noderef.TypeMarkOfType(b.reg.BooleanType))
		}
		lhs, err := b.GetType(noderef.TypedNode{Kind: noderef.TypedExpr, Expr: e.BinaryLHS})
		if err != nil {
			return types.Null, err
		}
		if lhs.Kind != types.KindUnboundedInt {
			return lhs, nil
		}
		return b.GetType(noderef.TypedNode{Kind: noderef.TypedExpr, Expr: e.BinaryRHS})
	case hir.ExprRange:
		return b.GetType(noderef.TypedNode{Kind: noderef.TypedExpr, Expr: e.RangeLow})
	default:
		// Selections, attributes and float literals are typed by the
		// external type checker's richer pass, past the minimum here.
		return types.Null, nil
	}
}

func (b *Board) typeOfDef(def noderef.Def) (types.Ty, error) {
	switch def.Kind {
	case noderef.DefTypeDecl:
		return b.TypeOfMark(noderef.TypeMarkOfType(def.TypeDecl))
	case noderef.DefSubtypeDecl:
		return b.TypeOfMark(noderef.TypeMarkOfSubtype(def.SubtypeDecl))
	case noderef.DefEnumLiteral:
		return b.TypeOfMark(noderef.TypeMarkOfType(noderef.TypeDeclRef{Handle: def.EnumLiteral.Handle}))
	case noderef.DefUnit:
		return b.TypeOfMark(noderef.TypeMarkOfType(noderef.TypeDeclRef{Handle: def.Unit.Handle}))
	case noderef.DefConst:
		return b.GetType(noderef.TypedNode{Kind: noderef.TypedConstDecl, ConstDecl: def.Const})
	case noderef.DefSignal:
		if iface, ok := b.ifaceSignals[def.Signal]; ok {
			return b.GetType(noderef.TypedNode{Kind: noderef.TypedInterfaceObj, InterfaceObj: iface})
		}
		return b.GetType(noderef.TypedNode{Kind: noderef.TypedSignalDecl, SignalDecl: def.Signal})
	case noderef.DefVar:
		return b.GetType(noderef.TypedNode{Kind: noderef.TypedVarDecl, VarDecl: def.Var})
	case noderef.DefSharedVar:
		return b.GetType(noderef.TypedNode{Kind: noderef.TypedSharedVarDecl, SharedVar: def.SharedVar})
	case noderef.DefFile:
		return b.GetType(noderef.TypedNode{Kind: noderef.TypedFileDecl, FileDecl: def.File})
	default:
		return types.Null, nil
	}
}

// TypeOfMark computes the Ty a type mark denotes: a builtin type straight
// from the installed tables, or a user type/subtype declaration elaborated
// from its HIR and memoized under its handle.
func (b *Board) TypeOfMark(mark noderef.TypeMark) (types.Ty, error) {
	h := mark.Type.Handle
	if mark.IsSubtype {
		h = mark.Subtype.Handle
	}
	if ty, ok := b.tys[h]; ok {
		return ty, nil
	}
	b.trace("make ty for %v", h)
	var ty types.Ty
	var err error
	if mark.IsSubtype {
		ty, err = b.typeOfSubtypeDecl(mark.Subtype)
	} else {
		ty, err = b.typeOfTypeDecl(mark.Type)
	}
	if err != nil {
		return types.Null, err
	}
	if _, exists := b.tys[h]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant) + " (duplicate insert)")
	}
	b.tys[h] = ty
	b.trace("ty for %v is %v", h, ty)
	return ty, nil
}

func (b *Board) typeOfTypeDecl(ref noderef.TypeDeclRef) (types.Ty, error) {
	td, ok := b.typeDecl.get(ref)
	if !ok {
		return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered type declaration", ref)
	}
	switch td.Def {
	case hir.TypeEnum:
		return types.NewEnum(ref), nil
	case hir.TypeRange:
		low, err := b.constIntOf(td.RangeLow)
		if err != nil {
			return types.Null, err
		}
		high, err := b.constIntOf(td.RangeHigh)
		if err != nil {
			return types.Null, err
		}
		if len(td.Units) == 0 {
			return types.NewIntTyBig(td.RangeDir, low, high), nil
		}
		units, primary, err := foldUnits(td.Units)
		if err != nil {
			return types.Null, err
		}
		base := types.IntTy{Direction: td.RangeDir, Low: low, High: high}
		return types.NewPhysical(ref, base, units, primary), nil
	case hir.TypeArray:
		elem := types.Null
		if td.Element != nil {
			var err error
			if elem, err = b.typeOfSubtypeInd(td.Element); err != nil {
				return types.Null, err
			}
		}
		var indices []types.ArrayIndex
		if td.IndexUnbounded {
			idxTy := types.Null
			if td.IndexMark.Type.IsValid() || td.IndexMark.Subtype.IsValid() {
				var err error
				if idxTy, err = b.TypeOfMark(td.IndexMark); err != nil {
					return types.Null, err
				}
			}
			indices = append(indices, types.UnboundedIndex(idxTy))
		}
		for _, rng := range td.IndexRanges {
			low, err := b.constIntOf(rng.Low)
			if err != nil {
				return types.Null, err
			}
			high, err := b.constIntOf(rng.High)
			if err != nil {
				return types.Null, err
			}
			indices = append(indices, types.ConstrainedIndex(rng.Dir, low, high))
		}
		return types.NewArray(indices, elem), nil
	default:
		// Incomplete, access, and file types are outside the type algebra.
		return types.Null, nil
	}
}

// foldUnits turns lowered unit declarations into PhysicalUnits with the
// absolute scale of each unit computed from the relative chain, so the
// scale law abs[i] == abs[ref]*scale holds by construction.
func foldUnits(decls []hir.UnitDecl) ([]types.PhysicalUnit, int, error) {
	units := make([]types.PhysicalUnit, 0, len(decls))
	primary := -1
	for i, d := range decls {
		u := types.PhysicalUnit{Name: d.Name}
		if d.Of == nil {
			if primary >= 0 {
				return nil, 0, errors.Wrapf(ErrWrongKind, "physical type declares more than one primary unit")
			}
			primary = i
			u.Abs = big.NewInt(1)
		} else {
			refIdx := d.Of.Index
			if refIdx < 0 || refIdx >= len(units) || d.Multiplier == nil {
				return nil, 0, errors.Wrapf(ErrWrongKind, "unit %d references an unelaborated unit", i)
			}
			u.Abs = new(big.Int).Mul(units[refIdx].Abs, d.Multiplier)
			u.Rel = &types.RelUnit{Scale: new(big.Int).Set(d.Multiplier), ReferencedUnit: refIdx}
		}
		units = append(units, u)
	}
	if primary < 0 {
		return nil, 0, errors.Wrapf(ErrWrongKind, "physical type has no primary unit")
	}
	return units, primary, nil
}

func (b *Board) typeOfSubtypeDecl(ref noderef.SubtypeDeclRef) (types.Ty, error) {
	sd, ok := b.subtypeDecl.get(ref)
	if !ok {
		return types.Null, errors.Wrapf(ErrWrongKind, "%v is not a lowered subtype declaration", ref)
	}
	return b.typeOfSubtypeInd(sd.Ind)
}

// typeOfSubtypeInd resolves a subtype indication to a Ty, narrowing an
// integer base type when a range constraint is present.
func (b *Board) typeOfSubtypeInd(ind *hir.SubtypeInd) (types.Ty, error) {
	if ind == nil {
		return types.Null, nil
	}
	base, err := b.TypeOfMark(ind.Mark)
	if err != nil {
		return types.Null, err
	}
	c := ind.Constraint
	if c == nil || c.Kind != hir.ConstraintRange {
		return base, nil
	}
	low, err := b.constIntOf(c.Low)
	if err != nil {
		return types.Null, err
	}
	high, err := b.constIntOf(c.High)
	if err != nil {
		return types.Null, err
	}
	switch base.Kind {
	case types.KindInt:
		return types.NewIntTyBig(c.Dir, low, high), nil
	case types.KindPhysical:
		narrowed := types.IntTy{Direction: c.Dir, Low: low, High: high}
		return types.NewPhysical(base.Physical.Decl, narrowed, base.Physical.Units, base.Physical.PrimaryIndex), nil
	default:
		return base, nil
	}
}

// constIntOf folds an expression to its integer constant value, the minimum
// evaluation needed to materialize range bounds.
func (b *Board) constIntOf(ref noderef.ExprRef) (*big.Int, error) {
	c, err := b.GetConst(ref)
	if err != nil {
		return nil, err
	}
	if c.Kind != types.ConstInt && c.Kind != types.ConstPhysical {
		return nil, errors.Wrapf(ErrWrongKind, "%v does not fold to an integer constant", ref)
	}
	return c.Int, nil
}

// GetConst computes (or returns the memoized) constant value of an
// expression. Folding covers integer literals, unary +, - and abs, the
// binary integer operators +, -, *, / and **, enumeration literals, and
// references to constants
// with a constant initializer; anything richer is outside the minimum
// this core needs for built-in and user range bounds.
func (b *Board) GetConst(ref noderef.ExprRef) (*types.Const, error) {
	if c, ok := b.consts[ref.Handle]; ok {
		return c, nil
	}
	b.trace("make const for %v", ref)
	c, err := b.makeConst(ref)
	if err != nil {
		return nil, err
	}
	if _, exists := b.consts[ref.Handle]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant) + " (duplicate insert)")
	}
	b.consts[ref.Handle] = &c
	b.trace("const for %v is %+v", ref, c)
	return &c, nil
}

func (b *Board) makeConst(ref noderef.ExprRef) (types.Const, error) {
	e, ok := b.exprs.get(ref)
	if !ok {
		return types.Const{}, errors.Wrapf(ErrWrongKind, "%v is not a lowered expression", ref)
	}
	switch e.Kind {
	case hir.ExprIntLit:
		return types.NewConstInt(types.UnboundedInt, new(big.Int).Set(e.IntValue)), nil
	case hir.ExprUnary:
		operand, err := b.GetConst(e.UnaryOperand)
		if err != nil {
			return types.Const{}, err
		}
		if operand.Kind != types.ConstInt {
			return types.Const{}, errors.Wrapf(ErrWrongKind, "unary %s on a non-integer constant", e.UnaryOp)
		}
		switch e.UnaryOp.Kind {
		case names.OpAdd:
			return *operand, nil
		case names.OpSub:
			return types.NewConstInt(operand.Type, new(big.Int).Neg(operand.Int)), nil
		case names.OpAbs:
			return types.NewConstInt(operand.Type, new(big.Int).Abs(operand.Int)), nil
		default:
			return types.Const{}, errors.Wrapf(ErrWrongKind, "unary %s is not constant-foldable", e.UnaryOp)
		}
	case hir.ExprBinary:
		lhs, err := b.GetConst(e.BinaryLHS)
		if err != nil {
			return types.Const{}, err
		}
		rhs, err := b.GetConst(e.BinaryRHS)
		if err != nil {
			return types.Const{}, err
		}
		if lhs.Kind != types.ConstInt || rhs.Kind != types.ConstInt {
			return types.Const{}, errors.Wrapf(ErrWrongKind, "binary %s on non-integer constants", e.BinaryOp)
		}
		out := new(big.Int)
		switch e.BinaryOp.Kind {
		case names.OpAdd:
			out.Add(lhs.Int, rhs.Int)
		case names.OpSub:
			out.Sub(lhs.Int, rhs.Int)
		case names.OpMul:
			out.Mul(lhs.Int, rhs.Int)
		case names.OpDiv:
			if rhs.Int.Sign() == 0 {
				return types.Const{}, errors.Wrapf(ErrWrongKind, "division by zero in a constant expression")
			}
			out.Quo(lhs.Int, rhs.Int)
		case names.OpPow:
			out.Exp(lhs.Int, rhs.Int, nil)
		default:
			return types.Const{}, errors.Wrapf(ErrWrongKind, "binary %s is not constant-foldable", e.BinaryOp)
		}
		return types.NewConstInt(lhs.Type, out), nil
	case hir.ExprName:
		def, err := b.resolveOne(e.Name, e.Parent, false)
		if err != nil {
			return types.Const{}, err
		}
		switch def.Kind {
		case noderef.DefEnumLiteral:
			ty, err := b.typeOfDef(def)
			if err != nil {
				return types.Const{}, err
			}
			return types.NewConstEnum(ty, def.EnumLiteral.Index), nil
		case noderef.DefConst:
			d, ok := b.constDecl.get(def.Const)
			if !ok || d.Default == nil {
				return types.Const{}, errors.Wrapf(ErrWrongKind, "constant `%s` has no foldable initializer", b.display(e.Name))
			}
			c, err := b.GetConst(*d.Default)
			if err != nil {
				return types.Const{}, err
			}
			return *c, nil
		default:
			return types.Const{}, errors.Wrapf(ErrWrongKind, "`%s` is not a constant expression", b.display(e.Name))
		}
	default:
		return types.Const{}, errors.Wrapf(ErrWrongKind, "%v is not constant-foldable", ref)
	}
}

// DefaultValue computes a type's implicit initializer, chasing named
// aliases through the scoreboard's type tables.
func (b *Board) DefaultValue(ty types.Ty) (types.Const, error) {
	return types.Default(ty, func(mark noderef.TypeMark) types.Ty {
		t, err := b.TypeOfMark(mark)
		if err != nil {
			return types.Null
		}
		return t
	})
}
