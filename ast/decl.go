package ast

// ConstraintKind tags which shape a SubtypeInd's optional constraint takes.
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota
	ConstraintRange
	ConstraintArray
	ConstraintRecord
)

// ArrayConstraintElem is one dimension of an array constraint: a discrete
// range. A nested element constraint is carried by the enclosing
// Constraint's ElementInd, not here.
type ArrayConstraintElem struct {
	Range Node // a RangeExpr or a name denoting a subtype's range
}

// RecordConstraintElem constrains one field of a record subtype.
type RecordConstraintElem struct {
	Field string
	Ind   *SubtypeInd
}

// Constraint restricts a type mark the way VHDL's subtype indications do.
type Constraint struct {
	Kind          ConstraintKind
	Range         Node // valid when Kind == ConstraintRange
	ArrayElems    []ArrayConstraintElem
	ElementInd    *SubtypeInd // optional recursive element constraint
	RecordElems   []RecordConstraintElem
}

// SubtypeInd is a type mark optionally restricted by a constraint.
type SubtypeInd struct {
	Base
	Mark       Node // Identifier or CompoundName naming a type or subtype
	Constraint *Constraint
}

// TypeDefKind tags which shape a TypeDecl's definition takes.
type TypeDefKind int

const (
	TypeDefIncomplete TypeDefKind = iota // `type T;` with no definition yet
	TypeDefEnum
	TypeDefRange
	TypeDefAccess
	TypeDefArray
	TypeDefFile
)

// TypeDef is the optional definition attached to a TypeDecl.
type TypeDef struct {
	Kind TypeDefKind

	// TypeDefEnum
	EnumLiterals []Node // Identifier or Char nodes, in declared order

	// TypeDefRange (also used for physical types: Units != nil)
	Range     *RangeExpr
	Units     []PhysicalUnitDecl // non-nil for a physical type definition

	// TypeDefAccess
	AccessTarget *SubtypeInd

	// TypeDefArray
	IndexConstraints []Node // RangeExpr, `<>`-marker Identifier, or a type mark
	ElementInd       *SubtypeInd

	// TypeDefFile
	FileElementInd *SubtypeInd
}

// PhysicalUnitDecl is one `name = multiplier unit;` line inside a physical
// type's `units ... end units` clause. The primary unit has Of == nil.
type PhysicalUnitDecl struct {
	Base
	Name       *Identifier
	Multiplier *IntLit   // nil for the primary unit
	Of         *Identifier // nil for the primary unit
}

// TypeDecl is `type T is <def>;`.
type TypeDecl struct {
	Base
	Name *Identifier
	Def  *TypeDef // nil for an incomplete type declaration
}

// SubtypeDecl is `subtype S is <subtype indication>;`.
type SubtypeDecl struct {
	Base
	Name *Identifier
	Ind  *SubtypeInd
}

// ObjKind tags which kind of object an ObjDecl declares.
type ObjKind int

const (
	ObjConst ObjKind = iota
	ObjSignal
	ObjVar
	ObjSharedVar
	ObjFile
)

// ObjDecl is a declaration of a constant, signal, variable, shared
// variable, or file.
type ObjDecl struct {
	Base
	Kind    ObjKind
	Names   []*Identifier // VHDL allows `signal a, b, c : T;`
	Ind     *SubtypeInd
	Default Node // optional initializer expression
}

// Mode is a port/generic's direction of data flow.
type Mode int

const (
	ModeIn Mode = iota
	ModeOut
	ModeInout
	ModeBuffer
	ModeLinkage
)

// IntfObjDecl is one interface object declaration: a generic or a port.
type IntfObjDecl struct {
	Base
	Names   []*Identifier
	Mode    Mode
	Ind     *SubtypeInd
	Default Node // optional default expression (generics only)
}
