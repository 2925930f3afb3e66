// Package noderef defines the opaque, kind-tagged handles that every HIR,
// scope, type, and IR node is identified by,
// along with the tagged-union "groups" (Def, ScopeRef, ...) that coerce
// between related handle kinds.
//
// Handles carry no data beyond their kind and an integer identity; equality
// is identity. They are drawn from a single process-wide counter, the same
// shape as a typed-handle allocator pool.
package noderef

import "sync/atomic"

// Kind tags which disjoint category a Handle belongs to.
type Kind int

const (
	KindLib Kind = iota
	KindEntity
	KindArch
	KindConfig
	KindContext
	KindCtxItems
	KindPkgDecl
	KindPkgBody
	KindPkgInst
	KindBuiltinPkg
	KindTypeDecl
	KindSubtypeDecl
	KindEnumLiteral
	KindUnit
	KindConstDecl
	KindSignalDecl
	KindFileDecl
	KindVarDecl
	KindSharedVarDecl
	KindInterfaceObj
	KindProcess
	KindConcStmt
	KindSeqStmt
	KindExpr
	KindBuiltinOp
)

func (k Kind) String() string {
	switch k {
	case KindLib:
		return "Lib"
	case KindEntity:
		return "Entity"
	case KindArch:
		return "Arch"
	case KindConfig:
		return "Config"
	case KindContext:
		return "Context"
	case KindCtxItems:
		return "CtxItems"
	case KindPkgDecl:
		return "PkgDecl"
	case KindPkgBody:
		return "PkgBody"
	case KindPkgInst:
		return "PkgInst"
	case KindBuiltinPkg:
		return "BuiltinPkg"
	case KindTypeDecl:
		return "TypeDecl"
	case KindSubtypeDecl:
		return "SubtypeDecl"
	case KindEnumLiteral:
		return "EnumLiteral"
	case KindUnit:
		return "Unit"
	case KindConstDecl:
		return "ConstDecl"
	case KindSignalDecl:
		return "SignalDecl"
	case KindFileDecl:
		return "FileDecl"
	case KindVarDecl:
		return "VarDecl"
	case KindSharedVarDecl:
		return "SharedVarDecl"
	case KindInterfaceObj:
		return "InterfaceObj"
	case KindProcess:
		return "Process"
	case KindConcStmt:
		return "ConcStmt"
	case KindSeqStmt:
		return "SeqStmt"
	case KindExpr:
		return "Expr"
	case KindBuiltinOp:
		return "BuiltinOp"
	default:
		return "<bad-kind>"
	}
}

// Handle is an opaque reference to an analyzable artifact.
type Handle struct {
	id   uint64
	kind Kind
}

// ID exposes the raw identity, useful only for logging/tracing.
func (h Handle) ID() uint64 { return h.id }

// Kind returns which category this handle belongs to.
func (h Handle) Kind() Kind { return h.kind }

// IsValid reports whether h was produced by Alloc (the zero Handle is not
// a valid reference to anything).
func (h Handle) IsValid() bool { return h.id != 0 }

func (h Handle) String() string {
	return h.kind.String() + "#" + itoa(h.id)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

var counter uint64

// Alloc draws a fresh, process-wide unique handle of the given kind.
//
// This is the single allocation point every typed New*Ref constructor below
// funnels through, keeping handle identity globally unique across every
// kind even though callers only ever see the typed wrappers.
func Alloc(kind Kind) Handle {
	id := atomic.AddUint64(&counter, 1)
	return Handle{id: id, kind: kind}
}
