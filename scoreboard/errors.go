// Package scoreboard implements the demand-driven, memoizing elaborator:
// every `Get*` accessor below checks its table first and, on a miss, derives
// the result via an unexported `make*` and inserts it before returning. A
// second insert for the same key is a scoreboard invariant violation and
// panics rather than silently overwriting, the same contract
// original_source/src/vhdl/score/mod.rs's `set_*` helpers enforce with a
// `debug_assert!` on first insertion.
package scoreboard

// Err is a sentinel error value, following the "errors are values, not
// types" design used throughout this module (see types.ErrConst,
// builtins.Err).
type Err string

func (e Err) Error() string { return string(e) }

// The taxonomy of scoreboard errors (spec.md §7); ErrBuiltinIntegrity and
// ErrScoreboardInvariant are internal. The resolver, the architecture
// indexer and some lowering steps also report a Diagnostic to the session
// when they return one of these; other lowering, type and constant-folding
// paths return the error without emitting a Diagnostic. Callers that need to
// distinguish failure modes programmatically compare against these with
// errors.Is after an errors.Wrapf unwrap.
const (
	ErrUnknownName         = Err("name is not known in this scope")
	ErrUnknownOperator     = Err("operator symbol is not one of the recognized spellings")
	ErrAmbiguousSelection  = Err("name resolves to more than one definition")
	ErrNonSelectable       = Err("definition does not have a scope that can be selected into")
	ErrWrongKind           = Err("definition is not of the kind this operation requires")
	ErrBadEntityName       = Err("architecture's entity name is not a simple identifier or does not denote an entity")
	ErrBuiltinIntegrity    = Err("builtin environment installed twice for this session")
	ErrScoreboardInvariant = Err("scoreboard memoization invariant violated")
)
