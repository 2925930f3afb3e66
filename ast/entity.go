package ast

// EntityDecl is `entity E is generic(...) port(...) decls begin stmts end
// entity;`. Generics and ports are both IntfObjDecl lists; an entity with
// no generic clause has a nil Generics, distinct from an explicit empty
// `generic ()`.
type EntityDecl struct {
	Base
	Name     *Identifier
	Generics []*IntfObjDecl
	Ports    []*IntfObjDecl
	Decls    []Node
	Stmts    []Node // the entity's own passive concurrent statements
}
