package ast

// ArchBody is `architecture A of E is decls begin stmts end architecture;`.
// Entity is the name of the entity this architecture implements, resolved
// against the library's entities rather than stored as a direct reference
// here (name resolution is the scoreboard's job, not the parser's).
type ArchBody struct {
	Base
	Name   *Identifier
	Entity Node
	Decls  []Node
	Stmts  []Node // concurrent statements: ProcessStmt, ConcSigAssignStmt, CompInstStmt, ...
}
