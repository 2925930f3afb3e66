package scoreboard

import (
	"github.com/pkg/errors"

	"github.com/boenset/moore/ast"
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/scope"
)

// ResolvableFromPrimaryName normalizes a parsed primary name (an
// Identifier, Char, or StringLit) into the Resolvable it denotes:
// identifiers and bit characters map straight across, and a string literal
// is checked against the fixed 34-entry operator spelling table, since
// `function "<=" (...)` declares the designator as an operator symbol, not
// an ordinary identifier. Returns ErrUnknownOperator if s spells none of
// the 34 recognized operators.
func (b *Board) ResolvableFromPrimaryName(n ast.Node) (names.Resolvable, error) {
	switch v := n.(type) {
	case *ast.Identifier:
		return names.Ident(names.Global().Intern(v.Value)), nil
	case *ast.Char:
		return names.Bit(v.Value), nil
	case *ast.StringLit:
		op, ok := names.LookupOperatorSpelling(v.Value)
		if !ok {
			b.errorf(v.Span(), "`%s` is not a valid operator symbol; see IEEE 1076-2008 section 9.2 for a list of predefined operators", v.Value)
			return names.Resolvable{}, errors.Wrapf(ErrUnknownOperator, "%q", v.Value)
		}
		return names.Op(op), nil
	default:
		return names.Resolvable{}, errors.Wrapf(ErrWrongKind, "%T is not a primary name", n)
	}
}

// scopeAt fetches the Scope a ScopeRef addresses, demand-computing the two
// scope kinds that are not already present from AddLibrary/hir lowering: a
// design unit's context-clause scope and a package instantiation's scope,
// each built the first time something actually resolves through it.
func (b *Board) scopeAt(ref noderef.ScopeRef) (*scope.Scope, bool) {
	if sc, ok := b.scopes[ref]; ok {
		return sc, true
	}
	switch ref.Kind {
	case noderef.ScopeOfCtxItems:
		sc, err := b.GetCtxItemsScope(ref.CtxItems)
		if err != nil {
			return nil, false
		}
		return sc, true
	case noderef.ScopeOfPkgInst:
		sc, err := b.GetPkgInstScope(ref.PkgInst)
		if err != nil {
			return nil, false
		}
		return sc, true
	}
	return nil, false
}

// ResolveName looks up name in scope's explicit definitions and its imports
// together (and, if both yield nothing, in its parent), without following
// any `.selector` suffix. When
// onlyDefs is true, only the scope's own explicit definitions are
// consulted and neither imports nor the parent chain are walked: this is
// the compound-name resolver's per-selector question "does this scope
// declare X", and its result is always a subset of the onlyDefs=false
// result for the same name and scope.
func (b *Board) ResolveName(name names.Resolvable, at noderef.ScopeRef, onlyDefs bool) ([]noderef.Def, error) {
	spanned := b.resolveSpanned(name, at, onlyDefs, map[noderef.ScopeRef]bool{})
	if len(spanned) == 0 {
		b.errorf(names.InvalidSpan, "`%s` is not known", b.display(name))
		return nil, errors.Wrapf(ErrUnknownName, "%s", b.display(name))
	}
	defs := make([]noderef.Def, len(spanned))
	for i, s := range spanned {
		defs[i] = s.Value
	}
	return defs, nil
}

func (b *Board) resolveSpanned(name names.Resolvable, at noderef.ScopeRef, onlyDefs bool, seen map[noderef.ScopeRef]bool) []names.Spanned[noderef.Def] {
	if seen[at] {
		return nil
	}
	seen[at] = true

	sc, ok := b.scopeAt(at)
	if !ok {
		return nil
	}

	var out []names.Spanned[noderef.Def]
	if spanned, ok := sc.Explicit.Lookup(name); ok {
		out = append(out, spanned...)
	}
	// A per-selector-step resolution (onlyDefs) asks "does this scope
	// declare X", not "is X visible from here outward", so it chases
	// neither imports nor the enclosing parent; only a plain top-level
	// lookup does.
	if onlyDefs {
		return out
	}
	// Explicit defs and every referenced defs-holder all contribute to the
	// overload set; an explicit match must not suppress import-contributed
	// overloads of the same name. Only a completely empty result escalates
	// to the parent.
	for _, imp := range sc.Imported {
		out = append(out, b.resolveSpanned(name, imp, false, seen)...)
	}
	if len(out) == 0 && sc.Parent != nil {
		out = append(out, b.resolveSpanned(name, *sc.Parent, false, seen)...)
	}
	return out
}

func (b *Board) display(r names.Resolvable) string {
	return r.Display(names.Global())
}

// ResolveCompoundName resolves a dotted name `prefix.a.b...` one selector at
// a time: the prefix resolves like a plain name, then each `SelectorDot`
// step re-resolves with onlyDefs=true against the scope the previous step's
// single definition contributes, stopping at the first non-dot selector
// (call/index/range/attribute), which the caller handles separately.
// At every step, resolution must land on exactly one definition: zero is
// ErrUnknownName, more than one is ErrAmbiguousSelection, and a dot-selector
// following a definition with no scope is ErrNonSelectable.
func (b *Board) ResolveCompoundName(cn *ast.CompoundName, at noderef.ScopeRef) (noderef.Def, int, error) {
	prefixName, err := b.ResolvableFromPrimaryName(cn.Prefix)
	if err != nil {
		return noderef.Def{}, 0, err
	}
	def, err := b.resolveOne(prefixName, at, false)
	if err != nil {
		return noderef.Def{}, 0, err
	}

	i := 0
	for ; i < len(cn.Selectors); i++ {
		sel := cn.Selectors[i]
		if sel.Kind != ast.SelectorDot {
			break
		}
		scopeRef, ok := def.AsScopeRef()
		if !ok {
			b.errorf(cn.Span(), "cannot select into %s", def.Kind)
			return noderef.Def{}, i, errors.Wrapf(ErrNonSelectable, "%s", def.Kind)
		}
		selName, err := b.ResolvableFromPrimaryName(sel.Name)
		if err != nil {
			return noderef.Def{}, i, err
		}
		def, err = b.resolveOne(selName, scopeRef, true)
		if err != nil {
			return noderef.Def{}, i, err
		}
	}
	return def, i, nil
}

// resolveOne resolves name to exactly one definition or fails with
// ErrUnknownName / ErrAmbiguousSelection, emitting the matching diagnostic.
// An ambiguity additionally gets one note per candidate so the user can see
// every definition the name might denote.
func (b *Board) resolveOne(name names.Resolvable, at noderef.ScopeRef, onlyDefs bool) (noderef.Def, error) {
	spanned := b.resolveSpanned(name, at, onlyDefs, map[noderef.ScopeRef]bool{})
	if len(spanned) == 0 {
		b.errorf(names.InvalidSpan, "`%s` is not known", b.display(name))
		return noderef.Def{}, errors.Wrapf(ErrUnknownName, "%s", b.display(name))
	}
	if len(spanned) > 1 {
		b.errorf(names.InvalidSpan, "`%s` is ambiguous: %d candidate definitions", b.display(name), len(spanned))
		for _, s := range spanned {
			b.notef(s.Span, "candidate: %s", s.Value.Kind)
		}
		return noderef.Def{}, errors.Wrapf(ErrAmbiguousSelection, "%s (%d candidates)", b.display(name), len(spanned))
	}
	return spanned[0].Value, nil
}
