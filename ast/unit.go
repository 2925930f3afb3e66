package ast

// CtxItemKind tags which shape a context item (one entry of the
// library/use/context clause prefix attached to a design unit) takes.
type CtxItemKind int

const (
	// CtxItemLibrary is `library a, b;`.
	CtxItemLibrary CtxItemKind = iota
	// CtxItemUse is `use a.b.all;` or `use a.b.c;`.
	CtxItemUse
	// CtxItemContext is `context a.b;`, referencing a named context
	// declaration.
	CtxItemContext
)

// CtxItem is one entry of a design unit's context-item prefix.
type CtxItem struct {
	Base
	Kind  CtxItemKind
	Names []*Identifier // CtxItemLibrary: one or more library names
	Name  Node          // CtxItemUse/CtxItemContext: a CompoundName, possibly `.all`
	All   bool          // CtxItemUse: whether the name ends in `.all`
}

// CtxItems is the context-clause prefix of one design unit.
type CtxItems struct {
	Base
	Items []CtxItem
}

// PkgDecl is `package P is decls end package;`.
type PkgDecl struct {
	Base
	Name     *Identifier
	Generics []*IntfObjDecl // non-nil for a generic (VHDL-2008) package
	Decls    []Node
}

// PkgBody is `package body P is decls end package body;`.
type PkgBody struct {
	Base
	Name  *Identifier
	Decls []Node
}

// GenericAssoc is one `formal => actual` generic-map association used by a
// package instantiation.
type GenericAssoc struct {
	Formal Node // optional
	Actual Node
}

// PkgInst is `package P is new Q generic map (...);`.
type PkgInst struct {
	Base
	Name       *Identifier
	Uninst     Node // the name of the generic package being instantiated
	GenericMap []GenericAssoc
}

// CfgDecl is `configuration C of E is ... end configuration;`. The binding
// specifications inside are out of scope for this project's elaborator; the
// declaration is tracked only so it can be listed in its library's HIR.
type CfgDecl struct {
	Base
	Name   *Identifier
	Entity Node
}

// CtxDecl is `context C is ... end context;`, a named, reusable context
// clause.
type CtxDecl struct {
	Base
	Name  *Identifier
	Items []CtxItem
}

// DesignUnitKind tags which payload a DesignUnit carries.
type DesignUnitKind int

const (
	UnitEntity DesignUnitKind = iota
	UnitArch
	UnitCfg
	UnitCtx
	UnitPkgDecl
	UnitPkgBody
	UnitPkgInst
)

// DesignUnit is one top-level library unit together with the context items
// preceding it.
type DesignUnit struct {
	Base
	Kind    DesignUnitKind
	Ctx     *CtxItems
	Entity  *EntityDecl
	Arch    *ArchBody
	Cfg     *CfgDecl
	CtxDecl *CtxDecl
	PkgDecl *PkgDecl
	PkgBody *PkgBody
	PkgInst *PkgInst
}

// Library is a named collection of design units, the root of the AST the
// scoreboard consumes.
type Library struct {
	Base
	Name  *Identifier
	Units []*DesignUnit
}
