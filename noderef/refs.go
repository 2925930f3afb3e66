package noderef

// Each typed ref below wraps a Handle of one fixed Kind. They exist so the
// Go type system catches cross-kind mistakes at compile time.

type LibRef struct{ Handle }
type EntityRef struct{ Handle }
type ArchRef struct{ Handle }
type ConfigRef struct{ Handle }
type ContextRef struct{ Handle }
type CtxItemsRef struct{ Handle }
type PkgDeclRef struct{ Handle }
type PkgBodyRef struct{ Handle }
type PkgInstRef struct{ Handle }
type BuiltinPkgRef struct{ Handle }
type TypeDeclRef struct{ Handle }
type SubtypeDeclRef struct{ Handle }
type EnumRef struct {
	Handle
	Index int // ordinal position of the literal within its enumeration
}
type UnitRef struct {
	Handle
	Index int // ordinal position of the unit within its physical type
}
type ConstDeclRef struct{ Handle }
type SignalDeclRef struct{ Handle }
type FileDeclRef struct{ Handle }
type VarDeclRef struct{ Handle }
type SharedVarDeclRef struct{ Handle }
type InterfaceObjRef struct{ Handle }
type ProcessRef struct{ Handle }
type ConcStmtRef struct{ Handle }
type SeqStmtRef struct{ Handle }
type ExprRef struct{ Handle }
type BuiltinOpRef struct{ Handle }

func NewLibRef() LibRef                 { return LibRef{Alloc(KindLib)} }
func NewEntityRef() EntityRef           { return EntityRef{Alloc(KindEntity)} }
func NewArchRef() ArchRef               { return ArchRef{Alloc(KindArch)} }
func NewConfigRef() ConfigRef           { return ConfigRef{Alloc(KindConfig)} }
func NewContextRef() ContextRef         { return ContextRef{Alloc(KindContext)} }
func NewCtxItemsRef() CtxItemsRef       { return CtxItemsRef{Alloc(KindCtxItems)} }
func NewPkgDeclRef() PkgDeclRef         { return PkgDeclRef{Alloc(KindPkgDecl)} }
func NewPkgBodyRef() PkgBodyRef         { return PkgBodyRef{Alloc(KindPkgBody)} }
func NewPkgInstRef() PkgInstRef         { return PkgInstRef{Alloc(KindPkgInst)} }
func NewBuiltinPkgRef() BuiltinPkgRef   { return BuiltinPkgRef{Alloc(KindBuiltinPkg)} }
func NewTypeDeclRef() TypeDeclRef       { return TypeDeclRef{Alloc(KindTypeDecl)} }
func NewSubtypeDeclRef() SubtypeDeclRef { return SubtypeDeclRef{Alloc(KindSubtypeDecl)} }
func NewConstDeclRef() ConstDeclRef     { return ConstDeclRef{Alloc(KindConstDecl)} }
func NewSignalDeclRef() SignalDeclRef   { return SignalDeclRef{Alloc(KindSignalDecl)} }
func NewFileDeclRef() FileDeclRef       { return FileDeclRef{Alloc(KindFileDecl)} }
func NewVarDeclRef() VarDeclRef         { return VarDeclRef{Alloc(KindVarDecl)} }
func NewSharedVarDeclRef() SharedVarDeclRef {
	return SharedVarDeclRef{Alloc(KindSharedVarDecl)}
}
func NewInterfaceObjRef() InterfaceObjRef { return InterfaceObjRef{Alloc(KindInterfaceObj)} }
func NewProcessRef() ProcessRef           { return ProcessRef{Alloc(KindProcess)} }
func NewConcStmtRef() ConcStmtRef         { return ConcStmtRef{Alloc(KindConcStmt)} }
func NewSeqStmtRef() SeqStmtRef           { return SeqStmtRef{Alloc(KindSeqStmt)} }
func NewExprRef() ExprRef                 { return ExprRef{Alloc(KindExpr)} }
func NewBuiltinOpRef() BuiltinOpRef       { return BuiltinOpRef{Alloc(KindBuiltinOp)} }

// NewEnumRef tags the declaring enumeration type's handle with a literal's
// ordinal index.
func NewEnumRef(decl TypeDeclRef, index int) EnumRef {
	return EnumRef{Handle: decl.Handle, Index: index}
}

// NewUnitRef tags a physical type's handle with a unit's ordinal index.
func NewUnitRef(decl TypeDeclRef, index int) UnitRef {
	return UnitRef{Handle: decl.Handle, Index: index}
}
