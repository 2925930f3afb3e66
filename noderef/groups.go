package noderef

// DefKind tags which concrete thing a Def denotes.
type DefKind int

const (
	DefLib DefKind = iota
	DefArch
	DefConfig
	DefContext
	DefEntity
	DefPkgDecl
	DefPkgInst
	DefBuiltinPkg
	DefTypeDecl
	DefSubtypeDecl
	DefEnumLiteral
	DefUnit
	DefConst
	DefSignal
	DefFile
	DefVar
	DefSharedVar
	DefBuiltinOp
)

// Def is what a resolved name can denote: a closed tagged sum over every
// declarable or predefined thing a name lookup can resolve to. A tagged
// struct rather than an interface, so callers can switch over Kind
// exhaustively instead of type-asserting.
type Def struct {
	Kind         DefKind
	Lib          LibRef
	Arch         ArchRef
	Config       ConfigRef
	Context      ContextRef
	Entity       EntityRef
	PkgDecl      PkgDeclRef
	PkgInst      PkgInstRef
	BuiltinPkg   BuiltinPkgRef
	TypeDecl     TypeDeclRef
	SubtypeDecl  SubtypeDeclRef
	EnumLiteral  EnumRef
	Unit         UnitRef
	Const        ConstDeclRef
	Signal       SignalDeclRef
	File         FileDeclRef
	Var          VarDeclRef
	SharedVar    SharedVarDeclRef
	BuiltinOp    BuiltinOpRef
}

func DefOfLib(r LibRef) Def               { return Def{Kind: DefLib, Lib: r} }
func DefOfArch(r ArchRef) Def             { return Def{Kind: DefArch, Arch: r} }
func DefOfConfig(r ConfigRef) Def         { return Def{Kind: DefConfig, Config: r} }
func DefOfContext(r ContextRef) Def       { return Def{Kind: DefContext, Context: r} }
func DefOfEntity(r EntityRef) Def         { return Def{Kind: DefEntity, Entity: r} }
func DefOfPkgDecl(r PkgDeclRef) Def       { return Def{Kind: DefPkgDecl, PkgDecl: r} }
func DefOfPkgInst(r PkgInstRef) Def       { return Def{Kind: DefPkgInst, PkgInst: r} }
func DefOfBuiltinPkg(r BuiltinPkgRef) Def { return Def{Kind: DefBuiltinPkg, BuiltinPkg: r} }
func DefOfTypeDecl(r TypeDeclRef) Def     { return Def{Kind: DefTypeDecl, TypeDecl: r} }
func DefOfSubtypeDecl(r SubtypeDeclRef) Def {
	return Def{Kind: DefSubtypeDecl, SubtypeDecl: r}
}
func DefOfEnumLiteral(r EnumRef) Def   { return Def{Kind: DefEnumLiteral, EnumLiteral: r} }
func DefOfUnit(r UnitRef) Def          { return Def{Kind: DefUnit, Unit: r} }
func DefOfConst(r ConstDeclRef) Def    { return Def{Kind: DefConst, Const: r} }
func DefOfSignal(r SignalDeclRef) Def  { return Def{Kind: DefSignal, Signal: r} }
func DefOfFile(r FileDeclRef) Def      { return Def{Kind: DefFile, File: r} }
func DefOfVar(r VarDeclRef) Def        { return Def{Kind: DefVar, Var: r} }
func DefOfSharedVar(r SharedVarDeclRef) Def {
	return Def{Kind: DefSharedVar, SharedVar: r}
}
func DefOfBuiltinOp(r BuiltinOpRef) Def { return Def{Kind: DefBuiltinOp, BuiltinOp: r} }

func (d DefKind) String() string {
	switch d {
	case DefLib:
		return "Lib"
	case DefArch:
		return "Arch"
	case DefConfig:
		return "Config"
	case DefContext:
		return "Context"
	case DefEntity:
		return "Entity"
	case DefPkgDecl:
		return "PkgDecl"
	case DefPkgInst:
		return "PkgInst"
	case DefBuiltinPkg:
		return "BuiltinPkg"
	case DefTypeDecl:
		return "TypeDecl"
	case DefSubtypeDecl:
		return "SubtypeDecl"
	case DefEnumLiteral:
		return "EnumLiteral"
	case DefUnit:
		return "Unit"
	case DefConst:
		return "Const"
	case DefSignal:
		return "Signal"
	case DefFile:
		return "File"
	case DefVar:
		return "Var"
	case DefSharedVar:
		return "SharedVar"
	case DefBuiltinOp:
		return "BuiltinOp"
	default:
		return "<bad-def-kind>"
	}
}

// ScopeRefKind tags which thing a ScopeRef wraps.
type ScopeRefKind int

const (
	ScopeOfLib ScopeRefKind = iota
	ScopeOfCtxItems
	ScopeOfEntity
	ScopeOfPkgDecl
	ScopeOfPkgInst
	ScopeOfBuiltinPkg
	ScopeOfArch
	ScopeOfProcess
)

// ScopeRef is anything that contributes a scope.
type ScopeRef struct {
	Kind       ScopeRefKind
	Lib        LibRef
	CtxItems   CtxItemsRef
	Entity     EntityRef
	PkgDecl    PkgDeclRef
	PkgInst    PkgInstRef
	BuiltinPkg BuiltinPkgRef
	Arch       ArchRef
	Process    ProcessRef
}

func ScopeOfLibRef(r LibRef) ScopeRef     { return ScopeRef{Kind: ScopeOfLib, Lib: r} }
func ScopeOfCtxItemsRef(r CtxItemsRef) ScopeRef {
	return ScopeRef{Kind: ScopeOfCtxItems, CtxItems: r}
}
func ScopeOfEntityRef(r EntityRef) ScopeRef { return ScopeRef{Kind: ScopeOfEntity, Entity: r} }
func ScopeOfPkgDeclRef(r PkgDeclRef) ScopeRef {
	return ScopeRef{Kind: ScopeOfPkgDecl, PkgDecl: r}
}
func ScopeOfPkgInstRef(r PkgInstRef) ScopeRef {
	return ScopeRef{Kind: ScopeOfPkgInst, PkgInst: r}
}
func ScopeOfBuiltinPkgRef(r BuiltinPkgRef) ScopeRef {
	return ScopeRef{Kind: ScopeOfBuiltinPkg, BuiltinPkg: r}
}
func ScopeOfArchRef(r ArchRef) ScopeRef       { return ScopeRef{Kind: ScopeOfArch, Arch: r} }
func ScopeOfProcessRef(r ProcessRef) ScopeRef { return ScopeRef{Kind: ScopeOfProcess, Process: r} }

// AsScopeRef maps a Def to the ScopeRef it contributes, and ok=false if the
// definition has no associated scope.
func (d Def) AsScopeRef() (ScopeRef, bool) {
	switch d.Kind {
	case DefLib:
		return ScopeOfLibRef(d.Lib), true
	case DefPkgDecl:
		return ScopeOfPkgDeclRef(d.PkgDecl), true
	case DefPkgInst:
		return ScopeOfPkgInstRef(d.PkgInst), true
	case DefBuiltinPkg:
		return ScopeOfBuiltinPkgRef(d.BuiltinPkg), true
	default:
		return ScopeRef{}, false
	}
}

// DeclKind tags which concrete declaration a DeclRef wraps.
type DeclKind int

const (
	DeclOfTypeKind DeclKind = iota
	DeclOfSubtypeKind
	DeclOfConstKind
	DeclOfSignalKind
	DeclOfVarKind
	DeclOfSharedVarKind
	DeclOfFileKind
)

// DeclRef is a declaration found inside a package, block (architecture), or
// process declarative part: the "declarations-in-X" group spec §3 names.
type DeclRef struct {
	Kind      DeclKind
	Type      TypeDeclRef
	Subtype   SubtypeDeclRef
	Const     ConstDeclRef
	Signal    SignalDeclRef
	Var       VarDeclRef
	SharedVar SharedVarDeclRef
	File      FileDeclRef
}

func DeclOfType(r TypeDeclRef) DeclRef       { return DeclRef{Kind: DeclOfTypeKind, Type: r} }
func DeclOfSubtype(r SubtypeDeclRef) DeclRef { return DeclRef{Kind: DeclOfSubtypeKind, Subtype: r} }
func DeclOfConst(r ConstDeclRef) DeclRef     { return DeclRef{Kind: DeclOfConstKind, Const: r} }
func DeclOfSignal(r SignalDeclRef) DeclRef   { return DeclRef{Kind: DeclOfSignalKind, Signal: r} }
func DeclOfVar(r VarDeclRef) DeclRef         { return DeclRef{Kind: DeclOfVarKind, Var: r} }
func DeclOfSharedVar(r SharedVarDeclRef) DeclRef {
	return DeclRef{Kind: DeclOfSharedVarKind, SharedVar: r}
}
func DeclOfFile(r FileDeclRef) DeclRef { return DeclRef{Kind: DeclOfFileKind, File: r} }

// Handle returns the underlying Handle, used as a hir_table/ty_table key.
func (d DeclRef) Handle() Handle {
	switch d.Kind {
	case DeclOfTypeKind:
		return d.Type.Handle
	case DeclOfSubtypeKind:
		return d.Subtype.Handle
	case DeclOfConstKind:
		return d.Const.Handle
	case DeclOfSignalKind:
		return d.Signal.Handle
	case DeclOfVarKind:
		return d.Var.Handle
	case DeclOfSharedVarKind:
		return d.SharedVar.Handle
	case DeclOfFileKind:
		return d.File.Handle
	default:
		return Handle{}
	}
}

// TypeMark is either a type declaration or a subtype declaration.
type TypeMark struct {
	IsSubtype bool
	Type      TypeDeclRef
	Subtype   SubtypeDeclRef
}

func TypeMarkOfType(r TypeDeclRef) TypeMark       { return TypeMark{Type: r} }
func TypeMarkOfSubtype(r SubtypeDeclRef) TypeMark { return TypeMark{IsSubtype: true, Subtype: r} }

// SignalRef is either an interface signal or a declared signal.
type SignalRef struct {
	IsInterface bool
	Interface   InterfaceObjRef
	Decl        SignalDeclRef
}

// TypedNodeKind tags which concrete node a TypedNode wraps. These are the
// nodes the type checker can compute a Ty for.
type TypedNodeKind int

const (
	TypedExpr TypedNodeKind = iota
	TypedConstDecl
	TypedSignalDecl
	TypedVarDecl
	TypedSharedVarDecl
	TypedFileDecl
	TypedInterfaceObj
)

// TypedNode identifies a node that carries a type.
type TypedNode struct {
	Kind         TypedNodeKind
	Expr         ExprRef
	ConstDecl    ConstDeclRef
	SignalDecl   SignalDeclRef
	VarDecl      VarDeclRef
	SharedVar    SharedVarDeclRef
	FileDecl     FileDeclRef
	InterfaceObj InterfaceObjRef
}

// Key returns the underlying Handle, used as the ty_table/const_table key.
func (t TypedNode) Key() Handle {
	switch t.Kind {
	case TypedExpr:
		return t.Expr.Handle
	case TypedConstDecl:
		return t.ConstDecl.Handle
	case TypedSignalDecl:
		return t.SignalDecl.Handle
	case TypedVarDecl:
		return t.VarDecl.Handle
	case TypedSharedVarDecl:
		return t.SharedVar.Handle
	case TypedFileDecl:
		return t.FileDecl.Handle
	case TypedInterfaceObj:
		return t.InterfaceObj.Handle
	default:
		return Handle{}
	}
}
