// Package hwir concretizes the hardware-IR module, type mapper, code
// generator, and type checker the scoreboard treats as external
// collaborators per spec.md §6. The scoreboard only calls through these
// interfaces; the concrete code generator for statements and declarations
// inside architectures stays out of scope, so this package also provides a
// minimal FakeModule test double that lets scoreboard tests exercise
// GetIRDefinition end-to-end.
package hwir

import (
	"fmt"

	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/types"
)

// Type is the hardware IR's own type representation. Opaque to the
// scoreboard beyond equality and String, matching llhd::Type's role in the
// teacher's Rust original.
type Type struct {
	name string
}

// NewType wraps a name as an opaque hardware-IR type.
func NewType(name string) Type { return Type{name: name} }

func (t Type) String() string { return t.name }

// ValueRef is an opaque reference to a value in the hardware IR (an entity,
// an argument, a signal), returned by Module.AddEntity and cached by the
// scoreboard in its lldecl/lldef tables.
type ValueRef struct {
	name string
}

func (v ValueRef) String() string { return v.name }

// Signature is the input/output port-type signature of an entity to be
// added to a Module.
type Signature struct {
	InTypes, OutTypes []Type
}

// Entity is a hardware-IR entity under construction: the scoreboard builds
// its signature, then passes it to CodeGenerator for every declaration and
// statement in source order.
type Entity struct {
	Name     string
	InNames  []string
	OutNames []string
	Sig      Signature
}

// NameInput assigns a name to the i'th input argument (0-based), matching
// the order ports were partitioned in GetIRDefinition.
func (e *Entity) NameInput(i int, name string) {
	for len(e.InNames) <= i {
		e.InNames = append(e.InNames, "")
	}
	e.InNames[i] = name
}

// NameOutput assigns a name to the i'th output argument.
func (e *Entity) NameOutput(i int, name string) {
	for len(e.OutNames) <= i {
		e.OutNames = append(e.OutNames, "")
	}
	e.OutNames[i] = name
}

// Module is the hardware-IR module the scoreboard emits into. Implemented
// externally in a real build; FakeModule below is the test double.
type Module interface {
	// AddEntity registers a finished IR entity and returns a stable
	// reference to it.
	AddEntity(e *Entity) (ValueRef, error)
}

// TypeMapper translates a VHDL type into the hardware IR's type system.
// Opaque to the scoreboard core beyond this one call.
type TypeMapper interface {
	MapType(ty types.Ty) (Type, error)
}

// CodeGenerator emits IR for a single declaration or statement; the
// scoreboard is responsible only for calling it in source order with the
// correct parent IR entity.
type CodeGenerator interface {
	Codegen(decl noderef.Handle, entity *Entity) error
}

// TypeChecker is called once, before a GetIRDefinition request, to type-check
// an architecture's body.
type TypeChecker interface {
	Typeck(arch noderef.ArchRef) error
}

// FakeModule is a minimal in-memory Module used only by this project's own
// test suite (spec.md's hardware-IR module is an external collaborator; no
// concrete codegen backend is implemented here).
type FakeModule struct {
	Entities []*Entity
}

// AddEntity implements Module by recording e and returning a ValueRef keyed
// off its name.
func (m *FakeModule) AddEntity(e *Entity) (ValueRef, error) {
	m.Entities = append(m.Entities, e)
	return ValueRef{name: e.Name}, nil
}

// FakeTypeMapper maps every VHDL type to an opaque IR type named after the
// VHDL type's String() form, sufficient for tests that only check port
// counts/names, not bit-accurate hardware types.
type FakeTypeMapper struct{}

func (FakeTypeMapper) MapType(ty types.Ty) (Type, error) {
	return NewType(fmt.Sprintf("ir<%s>", ty.String())), nil
}

// FakeCodeGenerator records which (decl, entity) pairs it was invoked for,
// in call order, so tests can assert the scoreboard walked declarations and
// statements in source order.
type FakeCodeGenerator struct {
	Calls []FakeCodegenCall
}

// FakeCodegenCall is one recorded CodeGenerator.Codegen invocation.
type FakeCodegenCall struct {
	Decl   noderef.Handle
	Entity string
}

func (g *FakeCodeGenerator) Codegen(decl noderef.Handle, entity *Entity) error {
	g.Calls = append(g.Calls, FakeCodegenCall{Decl: decl, Entity: entity.Name})
	return nil
}

// FakeTypeChecker records which architectures it was asked to type-check and
// never fails, sufficient for tests that exercise the GetIRDefinition
// control flow without a real type-checking pass.
type FakeTypeChecker struct {
	Checked []noderef.ArchRef
}

func (c *FakeTypeChecker) Typeck(arch noderef.ArchRef) error {
	c.Checked = append(c.Checked, arch)
	return nil
}
