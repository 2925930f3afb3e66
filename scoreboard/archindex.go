package scoreboard

import (
	"github.com/pkg/errors"

	"github.com/boenset/moore/ast"
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
)

// EntityArchs groups the architectures refining one entity: in source order,
// and by architecture name.
type EntityArchs struct {
	Ordered []noderef.ArchRef
	ByName  map[names.Name]noderef.ArchRef
}

// ArchTable groups a library's architectures by the entity they refine,
// plus the inverse architecture-to-entity mapping.
type ArchTable struct {
	ByEntity map[noderef.EntityRef]*EntityArchs
	ByArch   map[noderef.ArchRef]noderef.EntityRef
}

// GetArchTable indexes a library's architectures by target entity. Unlike
// the per-unit lowering accessors, this pass keeps going after a bad
// architecture so the user sees every target problem in one run, and then
// returns failure without a partial table if any were found.
func (b *Board) GetArchTable(lib noderef.LibRef) (*ArchTable, error) {
	if t, ok := b.archTables[lib]; ok {
		return t, nil
	}
	b.trace("make archs for %v", lib)
	t, err := b.makeArchTable(lib)
	if err != nil {
		return nil, err
	}
	if _, exists := b.archTables[lib]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant) + " (duplicate insert)")
	}
	b.archTables[lib] = t
	b.trace("archs for %v is %+v", lib, *t)
	return t, nil
}

func (b *Board) makeArchTable(lib noderef.LibRef) (*ArchTable, error) {
	hirLib, err := b.GetLibHIR(lib)
	if err != nil {
		return nil, err
	}
	libScope, ok := b.scopes[noderef.ScopeOfLibRef(lib)]
	if !ok {
		return nil, errors.Wrapf(ErrScoreboardInvariant, "library %v has no scope after lowering", lib)
	}

	t := &ArchTable{
		ByEntity: map[noderef.EntityRef]*EntityArchs{},
		ByArch:   map[noderef.ArchRef]noderef.EntityRef{},
	}
	for _, e := range hirLib.Entities {
		t.ByEntity[e] = &EntityArchs{ByName: map[names.Name]noderef.ArchRef{}}
	}

	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, archRef := range hirLib.Archs {
		unit := b.unitTable[archRef.Handle]
		if unit == nil || unit.Arch == nil {
			fail(errors.Wrapf(ErrScoreboardInvariant, "architecture %v has no AST", archRef))
			continue
		}

		// The target must be a simple identifier; `work.e` or anything
		// fancier is rejected here rather than resolved.
		target, ok := unit.Arch.Entity.(*ast.Identifier)
		if !ok {
			b.errorf(unit.Arch.Entity.Span(), "`%s` is not a valid entity name", describeNode(unit.Arch.Entity))
			fail(errors.Wrapf(ErrBadEntityName, "architecture %v", archRef))
			continue
		}

		name := names.Ident(names.Global().Intern(target.Value))
		overloads, found := libScope.Explicit.Lookup(name)
		if !found || len(overloads) == 0 {
			b.errorf(target.Span(), "Unknown entity `%s`", target.Value)
			fail(errors.Wrapf(ErrUnknownName, "entity %s", target.Value))
			continue
		}
		// Within one library, a later homograph shadows an earlier one, so
		// the last def under the name is the authoritative one.
		last := overloads[len(overloads)-1]
		if last.Value.Kind != noderef.DefEntity {
			b.errorf(target.Span(), "`%s` is not an entity", target.Value)
			b.notef(last.Span, "`%s` was declared here as a %s", target.Value, last.Value.Kind)
			fail(errors.Wrapf(ErrWrongKind, "%s is a %s", target.Value, last.Value.Kind))
			continue
		}

		entity := last.Value.Entity
		group := t.ByEntity[entity]
		if group == nil {
			group = &EntityArchs{ByName: map[names.Name]noderef.ArchRef{}}
			t.ByEntity[entity] = group
		}
		archName := names.Global().Intern(unit.Arch.Name.Value)
		group.Ordered = append(group.Ordered, archRef)
		group.ByName[archName] = archRef
		t.ByArch[archRef] = entity
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return t, nil
}

func describeNode(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Identifier:
		return v.Value
	case *ast.CompoundName:
		if id, ok := v.Prefix.(*ast.Identifier); ok {
			return id.Value + "..."
		}
	}
	return "<name>"
}
