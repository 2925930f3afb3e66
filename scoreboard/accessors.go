package scoreboard

import (
	"github.com/boenset/moore/hir"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/scope"
)

// GetDefs returns the explicit definition table a scope contributes: the
// per-selector view compound-name resolution re-resolves against.
func (b *Board) GetDefs(ref noderef.ScopeRef) (*scope.Defs, bool) {
	sc, ok := b.scopeAt(ref)
	if !ok {
		return nil, false
	}
	return sc.Explicit, true
}

// Accessors for lowered declaration HIR. These are plain table reads: the
// nodes are produced as a side effect of lowering their enclosing
// declarative part, so there is no make step to run on a miss.

func (b *Board) GetTypeDeclHIR(ref noderef.TypeDeclRef) (*hir.TypeDecl, bool) {
	return b.typeDecl.get(ref)
}

func (b *Board) GetSubtypeDeclHIR(ref noderef.SubtypeDeclRef) (*hir.SubtypeDecl, bool) {
	return b.subtypeDecl.get(ref)
}

func (b *Board) GetConstDeclHIR(ref noderef.ConstDeclRef) (*hir.ConstDecl, bool) {
	return b.constDecl.get(ref)
}

func (b *Board) GetSignalDeclHIR(ref noderef.SignalDeclRef) (*hir.SignalDecl, bool) {
	return b.signalDecl.get(ref)
}

func (b *Board) GetVarDeclHIR(ref noderef.VarDeclRef) (*hir.VarDecl, bool) {
	return b.varDecl.get(ref)
}

func (b *Board) GetFileDeclHIR(ref noderef.FileDeclRef) (*hir.FileDecl, bool) {
	return b.fileDecl.get(ref)
}
