package scoreboard

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/boenset/moore/hir"
	"github.com/boenset/moore/hwir"
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
)

// GetIRDeclaration builds (or returns the memoized) declaration-only IR
// skeleton for an entity: its port signature with named arguments, but no
// body. Used when only a signature is needed, e.g. to instantiate a
// component whose architecture has not been elaborated.
func (b *Board) GetIRDeclaration(ref noderef.EntityRef) (*hwir.Entity, error) {
	if e, ok := b.lldecl[ref]; ok {
		return e, nil
	}
	b.trace("make lldecl for %v", ref)
	e, err := b.GetEntityHIR(ref)
	if err != nil {
		return nil, err
	}
	ent, err := b.makeIREntity(e, names.Global().String(e.Name))
	if err != nil {
		return nil, err
	}
	if _, exists := b.lldecl[ref]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant) + " (duplicate insert)")
	}
	b.lldecl[ref] = ent
	b.trace("lldecl for %v is %v", ref, ent.Name)
	return ent, nil
}

// GetIRDefinition elaborates an architecture into the hardware-IR module:
// type-check, build the "<entity>_<arch>" IR entity from the entity's port
// signature, code-generate every declaration and concurrent statement in
// source order, then register the finished entity and cache its value
// reference.
func (b *Board) GetIRDefinition(ref noderef.ArchRef) (hwir.ValueRef, error) {
	if v, ok := b.lldef[ref]; ok {
		return v, nil
	}
	b.trace("make lldef for %v", ref)

	if err := b.typeck.Typeck(ref); err != nil {
		return hwir.ValueRef{}, err
	}

	a, err := b.GetArchHIR(ref)
	if err != nil {
		return hwir.ValueRef{}, err
	}
	e, err := b.GetEntityHIR(a.Entity)
	if err != nil {
		return hwir.ValueRef{}, err
	}

	irName := fmt.Sprintf("%s_%s", names.Global().String(e.Name), names.Global().String(a.Name))
	ent, err := b.makeIREntity(e, irName)
	if err != nil {
		return hwir.ValueRef{}, err
	}

	for _, d := range a.Decls {
		if err := b.codegen.Codegen(d.Handle(), ent); err != nil {
			return hwir.ValueRef{}, err
		}
	}
	for _, s := range a.Stmts {
		if err := b.codegen.Codegen(s.Handle, ent); err != nil {
			return hwir.ValueRef{}, err
		}
	}

	v, err := b.module.AddEntity(ent)
	if err != nil {
		return hwir.ValueRef{}, err
	}
	if _, exists := b.lldef[ref]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant) + " (duplicate insert)")
	}
	b.lldef[ref] = v
	b.trace("lldef for %v is %v", ref, v)
	return v, nil
}

// makeIREntity partitions an entity's ports into inputs (in, inout,
// linkage) and outputs (out, inout, buffer), preserving declaration order,
// and maps each port's VHDL type to its IR equivalent. An inout port
// appears on both sides.
func (b *Board) makeIREntity(e *hir.Entity, irName string) (*hwir.Entity, error) {
	ent := &hwir.Entity{Name: irName}
	for _, portRef := range e.Ports {
		port, ok := b.ifObj.get(portRef)
		if !ok {
			return nil, errors.Wrapf(ErrScoreboardInvariant, "port %v has no lowered HIR", portRef)
		}
		ty, err := b.GetType(noderef.TypedNode{Kind: noderef.TypedInterfaceObj, InterfaceObj: portRef})
		if err != nil {
			return nil, err
		}
		irTy, err := b.typeMapper.MapType(ty)
		if err != nil {
			return nil, err
		}
		name := names.Global().String(port.Name)
		switch port.Mode {
		case hir.ModeIn, hir.ModeLinkage:
			ent.Sig.InTypes = append(ent.Sig.InTypes, irTy)
			ent.NameInput(len(ent.Sig.InTypes)-1, name)
		case hir.ModeOut, hir.ModeBuffer:
			ent.Sig.OutTypes = append(ent.Sig.OutTypes, irTy)
			ent.NameOutput(len(ent.Sig.OutTypes)-1, name)
		case hir.ModeInout:
			ent.Sig.InTypes = append(ent.Sig.InTypes, irTy)
			ent.NameInput(len(ent.Sig.InTypes)-1, name)
			ent.Sig.OutTypes = append(ent.Sig.OutTypes, irTy)
			ent.NameOutput(len(ent.Sig.OutTypes)-1, name)
		}
	}
	return ent, nil
}
