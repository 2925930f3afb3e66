package scoreboard

import (
	"github.com/pkg/errors"

	"github.com/boenset/moore/ast"
	"github.com/boenset/moore/hir"
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/scope"
	"github.com/boenset/moore/types"
)

// GetLibHIR lowers a library's design units into HIR, allocating one handle
// per unit and registering it in the library's own scope so `use`/selection
// can find it by name. Nested unit bodies (entity ports, architecture
// statements, ...) are lowered lazily, on their own Get* call.
func (b *Board) GetLibHIR(ref noderef.LibRef) (*hir.Lib, error) {
	if h, ok := b.hirLib.get(ref); ok {
		return h, nil
	}
	b.trace("make hir<Lib> for %v", ref)
	h, err := b.makeLibHIR(ref)
	if err != nil {
		return nil, err
	}
	p := b.hirLib.insert(ref, h)
	b.trace("hir<Lib> for %v is %+v", ref, *p)
	return p, nil
}

func (b *Board) makeLibHIR(ref noderef.LibRef) (hir.Lib, error) {
	astLib, ok := b.astLibs[ref]
	if !ok {
		return hir.Lib{}, errors.Wrapf(ErrUnknownName, "library %v has no registered AST", ref)
	}

	libScopeRef := noderef.ScopeOfLibRef(ref)
	root := b.RootScope()
	libScope := scope.NewScope(&root)
	b.scopes[libScopeRef] = libScope

	l := hir.Lib{Name: b.libNames[ref]}

	for _, unit := range astLib.Units {
		var ctxRef noderef.CtxItemsRef
		if unit.Ctx != nil {
			ctxRef = noderef.NewCtxItemsRef()
			b.ctxItemsAST[ctxRef] = unit.Ctx
		}

		switch unit.Kind {
		case ast.UnitEntity:
			r := noderef.NewEntityRef()
			b.registerUnit(r.Handle, unit, ref, ctxRef)
			b.declareUnit(libScope, unit.Entity.Name, noderef.DefOfEntity(r))
			l.Entities = append(l.Entities, r)
		case ast.UnitArch:
			r := noderef.NewArchRef()
			b.registerUnit(r.Handle, unit, ref, ctxRef)
			l.Archs = append(l.Archs, r)
		case ast.UnitCfg:
			r := noderef.NewConfigRef()
			b.registerUnit(r.Handle, unit, ref, ctxRef)
			b.declareUnit(libScope, unit.Cfg.Name, noderef.DefOfConfig(r))
			l.Configs = append(l.Configs, r)
		case ast.UnitCtx:
			r := noderef.NewContextRef()
			b.registerUnit(r.Handle, unit, ref, ctxRef)
			b.declareUnit(libScope, unit.CtxDecl.Name, noderef.DefOfContext(r))
			l.Contexts = append(l.Contexts, r)
		case ast.UnitPkgDecl:
			r := noderef.NewPkgDeclRef()
			b.registerUnit(r.Handle, unit, ref, ctxRef)
			b.declareUnit(libScope, unit.PkgDecl.Name, noderef.DefOfPkgDecl(r))
			l.PkgDecls = append(l.PkgDecls, r)
		case ast.UnitPkgBody:
			r := noderef.NewPkgBodyRef()
			b.registerUnit(r.Handle, unit, ref, ctxRef)
			l.PkgBodies = append(l.PkgBodies, r)
		case ast.UnitPkgInst:
			r := noderef.NewPkgInstRef()
			b.registerUnit(r.Handle, unit, ref, ctxRef)
			b.declareUnit(libScope, unit.PkgInst.Name, noderef.DefOfPkgInst(r))
			l.PkgInsts = append(l.PkgInsts, r)
		}
	}
	return l, nil
}

// declareUnit inserts name -> def into scope's explicit defs, shadowing
// rule aside (multiple entries under one name form an overload set; VHDL
// library units are not overloadable by name, but Defs.Insert's append
// semantics let a later duplicate still be diagnosed as ambiguous rather
// than silently replacing the earlier one).
func (b *Board) declareUnit(sc *scope.Scope, id *ast.Identifier, def noderef.Def) {
	sc.Explicit.Insert(names.Ident(names.Global().Intern(id.Value)), def, id.Span())
}

func (b *Board) registerUnit(h noderef.Handle, unit *ast.DesignUnit, lib noderef.LibRef, ctx noderef.CtxItemsRef) {
	b.unitTable[h] = unit
	b.unitLib[h] = lib
	b.unitCtx[h] = ctx
}

// GetCtxItemsScope demand-computes the synthesized scope for one design
// unit's context-clause prefix: the libraries its `library` clauses name,
// plus whatever its `use` clauses import, consulted before the unit's own
// declarative region.
func (b *Board) GetCtxItemsScope(ref noderef.CtxItemsRef) (*scope.Scope, error) {
	if sc, ok := b.ctxScopes[ref]; ok {
		return sc, nil
	}
	b.trace("make scope<CtxItems> for %v", ref)
	sc, err := b.makeCtxItemsScope(ref)
	if err != nil {
		return nil, err
	}
	if _, exists := b.ctxScopes[ref]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant))
	}
	b.ctxScopes[ref] = sc
	b.scopes[noderef.ScopeOfCtxItemsRef(ref)] = sc
	b.trace("scope<CtxItems> for %v is %+v", ref, *sc)
	return sc, nil
}

func (b *Board) makeCtxItemsScope(ref noderef.CtxItemsRef) (*scope.Scope, error) {
	root := b.RootScope()
	sc := scope.NewScope(&root)

	astCtx := b.ctxItemsAST[ref]
	data := hir.CtxItems{}
	if astCtx == nil {
		b.ctxItems.insert(ref, data)
		return sc, nil
	}

	for _, item := range astCtx.Items {
		switch item.Kind {
		case ast.CtxItemLibrary:
			for _, id := range item.Names {
				libRef, ok := b.LookupLibrary(id.Value)
				if !ok {
					return nil, errors.Wrapf(ErrUnknownName, "library %s", id.Value)
				}
				n := names.Global().Intern(id.Value)
				sc.Explicit.Insert(names.Ident(n), noderef.DefOfLib(libRef), id.Span())
				data.Libraries = append(data.Libraries, n)
			}
		case ast.CtxItemUse:
			cn, ok := item.Name.(*ast.CompoundName)
			if !ok {
				return nil, errors.Wrapf(ErrWrongKind, "use clause name must be a compound name")
			}
			def, consumed, lastName, err := b.resolveFrom(cn, sc)
			if err != nil {
				return nil, err
			}
			if item.All {
				scopeRef, ok := def.AsScopeRef()
				if !ok {
					return nil, errors.Wrapf(ErrNonSelectable, "use %s.all: %s has no scope", b.display(lastName), def.Kind)
				}
				sc.Import(scopeRef)
				data.Imports = append(data.Imports, scopeRef)
			} else {
				if consumed == 0 {
					return nil, errors.Wrapf(ErrWrongKind, "use clause must select a declaration")
				}
				sc.Explicit.Insert(lastName, def, cn.Span())
			}
		case ast.CtxItemContext:
			// Named context declarations (`context C is ...;`) are out of
			// scope for resolution depth here: a context's own item list is
			// tracked on its hir.Context-equivalent (not modeled as a
			// distinct HIR node in this project) but is not re-expanded
			// into importing scopes.
		}
	}

	b.ctxItems.insert(ref, data)
	return sc, nil
}

// resolveFrom resolves a compound name's dotted steps where the very first
// step must be looked up in an in-progress scope (sc) that has not yet been
// registered under any ScopeRef, since it is itself being built from
// earlier context items in the same clause list.
func (b *Board) resolveFrom(cn *ast.CompoundName, sc *scope.Scope) (noderef.Def, int, names.Resolvable, error) {
	prefixName, err := b.ResolvableFromPrimaryName(cn.Prefix)
	if err != nil {
		return noderef.Def{}, 0, names.Resolvable{}, err
	}
	defs := b.lookupInScope(prefixName, sc)
	if len(defs) == 0 {
		return noderef.Def{}, 0, prefixName, errors.Wrapf(ErrUnknownName, "%s", b.display(prefixName))
	}
	if len(defs) > 1 {
		return noderef.Def{}, 0, prefixName, errors.Wrapf(ErrAmbiguousSelection, "%s (%d candidates)", b.display(prefixName), len(defs))
	}
	def := defs[0]
	lastName := prefixName

	i := 0
	for ; i < len(cn.Selectors); i++ {
		sel := cn.Selectors[i]
		if sel.Kind != ast.SelectorDot {
			break
		}
		scopeRef, ok := def.AsScopeRef()
		if !ok {
			return noderef.Def{}, i, lastName, errors.Wrapf(ErrNonSelectable, "%s", def.Kind)
		}
		selName, err := b.ResolvableFromPrimaryName(sel.Name)
		if err != nil {
			return noderef.Def{}, i, lastName, err
		}
		def, err = b.resolveOne(selName, scopeRef, true)
		if err != nil {
			return noderef.Def{}, i, lastName, err
		}
		lastName = selName
	}
	return def, i, lastName, nil
}

func (b *Board) lookupInScope(name names.Resolvable, sc *scope.Scope) []noderef.Def {
	var out []noderef.Def
	if spanned, ok := sc.Explicit.Lookup(name); ok {
		for _, s := range spanned {
			out = append(out, s.Value)
		}
	}
	// Explicit defs and every import contribute overloads side by side, the
	// same no-short-circuit rule resolveSpanned applies; only a completely
	// empty result escalates to the parent.
	for _, imp := range sc.Imported {
		for _, s := range b.resolveSpanned(name, imp, false, map[noderef.ScopeRef]bool{}) {
			out = append(out, s.Value)
		}
	}
	if len(out) == 0 && sc.Parent != nil {
		for _, s := range b.resolveSpanned(name, *sc.Parent, false, map[noderef.ScopeRef]bool{}) {
			out = append(out, s.Value)
		}
	}
	return out
}

// GetEntityHIR lowers `entity E is generic(...) port(...) ...;` on demand.
func (b *Board) GetEntityHIR(ref noderef.EntityRef) (*hir.Entity, error) {
	if h, ok := b.hirEntity.get(ref); ok {
		return h, nil
	}
	b.trace("make hir<Entity> for %v", ref)
	h, err := b.makeEntityHIR(ref)
	if err != nil {
		return nil, err
	}
	p := b.hirEntity.insert(ref, h)
	b.trace("hir<Entity> for %v is %+v", ref, *p)
	return p, nil
}

func (b *Board) makeEntityHIR(ref noderef.EntityRef) (hir.Entity, error) {
	unit, ok := b.unitTable[ref.Handle]
	if !ok || unit.Entity == nil {
		return hir.Entity{}, errors.Wrapf(ErrWrongKind, "%v is not a known entity", ref)
	}
	ctxRef := b.unitCtx[ref.Handle]
	lib := b.unitLib[ref.Handle]

	parent := noderef.ScopeOfLibRef(lib)
	if ctxRef.IsValid() {
		parent = noderef.ScopeOfCtxItemsRef(ctxRef)
		if _, err := b.GetCtxItemsScope(ctxRef); err != nil {
			return hir.Entity{}, err
		}
	}
	entityScopeRef := noderef.ScopeOfEntityRef(ref)
	entityScope := scope.NewScope(&parent)
	b.scopes[entityScopeRef] = entityScope

	e := hir.Entity{
		CtxItems: ctxRef,
		Lib:      lib,
		Name:     names.Global().Intern(unit.Entity.Name.Value),
	}
	for _, g := range unit.Entity.Generics {
		refs, err := b.lowerIntfObjDecl(g, entityScopeRef, hir.ModeIn)
		if err != nil {
			return hir.Entity{}, err
		}
		e.Generics = append(e.Generics, refs...)
	}
	for _, p := range unit.Entity.Ports {
		refs, err := b.lowerIntfObjDecl(p, entityScopeRef, hir.Mode(p.Mode))
		if err != nil {
			return hir.Entity{}, err
		}
		e.Ports = append(e.Ports, refs...)
	}
	return e, nil
}

func (b *Board) lowerIntfObjDecl(decl *ast.IntfObjDecl, parent noderef.ScopeRef, mode hir.Mode) ([]noderef.InterfaceObjRef, error) {
	ind, err := b.lowerSubtypeInd(decl.Ind, parent)
	if err != nil {
		return nil, err
	}
	var defaultRef *noderef.ExprRef
	if decl.Default != nil {
		e, err := b.lowerExpr(decl.Default, parent)
		if err != nil {
			return nil, err
		}
		defaultRef = &e
	}
	var out []noderef.InterfaceObjRef
	for _, id := range decl.Names {
		r := noderef.NewInterfaceObjRef()
		name := names.Global().Intern(id.Value)
		node := hir.InterfaceObj{Parent: parent, Name: name, Mode: mode, Ind: ind, Default: defaultRef}
		b.ifObj.insert(r, node)
		if sc, ok := b.scopes[parent]; ok {
			// Interface objects resolve like signals; each gets a fresh
			// signal-view ref so Def::Signal stays the one def kind a signal
			// name can denote. ifaceSignals maps the view back to the
			// InterfaceObjRef for callers that need the port HIR.
			view := noderef.NewSignalDeclRef()
			b.ifaceSignals[view] = r
			sc.Explicit.Insert(names.Ident(name), noderef.DefOfSignal(view), id.Span())
		}
		out = append(out, r)
	}
	return out, nil
}

// GetInterfaceObj returns the lowered HIR for a generic/port declaration.
func (b *Board) GetInterfaceObj(ref noderef.InterfaceObjRef) (*hir.InterfaceObj, bool) {
	return b.ifObj.get(ref)
}

// GetArchHIR lowers `architecture A of E is decls begin stmts end;` on
// demand: its entity binding is resolved by name against the owning
// library's scope, matching spec.md's architecture-to-entity binding rule.
func (b *Board) GetArchHIR(ref noderef.ArchRef) (*hir.Arch, error) {
	if h, ok := b.hirArch.get(ref); ok {
		return h, nil
	}
	b.trace("make hir<Arch> for %v", ref)
	h, err := b.makeArchHIR(ref)
	if err != nil {
		return nil, err
	}
	p := b.hirArch.insert(ref, h)
	b.trace("hir<Arch> for %v is %+v", ref, *p)
	return p, nil
}

func (b *Board) makeArchHIR(ref noderef.ArchRef) (hir.Arch, error) {
	unit, ok := b.unitTable[ref.Handle]
	if !ok || unit.Arch == nil {
		return hir.Arch{}, errors.Wrapf(ErrWrongKind, "%v is not a known architecture", ref)
	}
	ctxRef := b.unitCtx[ref.Handle]
	lib := b.unitLib[ref.Handle]

	entName, err := b.ResolvableFromPrimaryName(unit.Arch.Entity)
	if err != nil {
		return hir.Arch{}, err
	}
	def, err := b.resolveOne(entName, noderef.ScopeOfLibRef(lib), false)
	if err != nil {
		return hir.Arch{}, errors.Wrapf(ErrBadEntityName, "%s", b.display(entName))
	}
	if def.Kind != noderef.DefEntity {
		return hir.Arch{}, errors.Wrapf(ErrBadEntityName, "%s is not an entity", b.display(entName))
	}
	// Demand the entity so its scope (ports, generics) exists before the
	// architecture body resolves names through it.
	if _, err := b.GetEntityHIR(def.Entity); err != nil {
		return hir.Arch{}, err
	}

	parent := noderef.ScopeOfEntityRef(def.Entity)
	if ctxRef.IsValid() {
		if _, err := b.GetCtxItemsScope(ctxRef); err != nil {
			return hir.Arch{}, err
		}
	}
	archScopeRef := noderef.ScopeOfArchRef(ref)
	archScope := scope.NewScope(&parent)
	b.scopes[archScopeRef] = archScope

	a := hir.Arch{
		CtxItems: ctxRef,
		Entity:   def.Entity,
		Name:     names.Global().Intern(unit.Arch.Name.Value),
	}
	for _, d := range unit.Arch.Decls {
		decl, err := b.lowerDecl(d, archScopeRef)
		if err != nil {
			return hir.Arch{}, err
		}
		a.Decls = append(a.Decls, decl)
	}
	for _, s := range unit.Arch.Stmts {
		stmt, err := b.lowerConcStmt(s, archScopeRef)
		if err != nil {
			return hir.Arch{}, err
		}
		a.Stmts = append(a.Stmts, stmt)
	}
	return a, nil
}

// GetPackageHIR lowers a package declaration, body, or instantiation;
// handle is the PkgDeclRef/PkgBodyRef/PkgInstRef's underlying Handle.
func (b *Board) GetPackageHIR(handle noderef.Handle) (*hir.Package, error) {
	if h, ok := b.hirPkg.get(handle); ok {
		return h, nil
	}
	b.trace("make hir<Package> for %v", handle)
	h, err := b.makePackageHIR(handle)
	if err != nil {
		return nil, err
	}
	p := b.hirPkg.insert(handle, h)
	b.trace("hir<Package> for %v is %+v", handle, *p)
	return p, nil
}

func (b *Board) makePackageHIR(handle noderef.Handle) (hir.Package, error) {
	unit, ok := b.unitTable[handle]
	if !ok {
		return hir.Package{}, errors.Wrapf(ErrWrongKind, "%v is not a known package unit", handle)
	}
	ctxRef := b.unitCtx[handle]
	lib := b.unitLib[handle]
	parent := noderef.ScopeOfLibRef(lib)
	if ctxRef.IsValid() {
		parent = noderef.ScopeOfCtxItemsRef(ctxRef)
		if _, err := b.GetCtxItemsScope(ctxRef); err != nil {
			return hir.Package{}, err
		}
	}

	switch unit.Kind {
	case ast.UnitPkgDecl:
		scopeRef := noderef.ScopeOfPkgDeclRef(noderef.PkgDeclRef{Handle: handle})
		sc := scope.NewScope(&parent)
		b.scopes[scopeRef] = sc
		p := hir.Package{Kind: hir.PackageDecl, CtxItems: ctxRef, Name: names.Global().Intern(unit.PkgDecl.Name.Value)}
		for _, g := range unit.PkgDecl.Generics {
			refs, err := b.lowerIntfObjDecl(g, scopeRef, hir.ModeIn)
			if err != nil {
				return hir.Package{}, err
			}
			p.Generics = append(p.Generics, refs...)
		}
		for _, d := range unit.PkgDecl.Decls {
			decl, err := b.lowerDecl(d, scopeRef)
			if err != nil {
				return hir.Package{}, err
			}
			p.Decls = append(p.Decls, decl)
		}
		return p, nil
	case ast.UnitPkgBody:
		scopeRef := noderef.ScopeOfPkgDeclRef(noderef.PkgDeclRef{Handle: handle})
		sc := scope.NewScope(&parent)
		b.scopes[scopeRef] = sc
		p := hir.Package{Kind: hir.PackageBody, CtxItems: ctxRef, Name: names.Global().Intern(unit.PkgBody.Name.Value)}
		for _, d := range unit.PkgBody.Decls {
			decl, err := b.lowerDecl(d, scopeRef)
			if err != nil {
				return hir.Package{}, err
			}
			p.Decls = append(p.Decls, decl)
		}
		return p, nil
	case ast.UnitPkgInst:
		uninstName, err := b.ResolvableFromPrimaryName(unit.PkgInst.Uninst)
		if err != nil {
			return hir.Package{}, err
		}
		def, err := b.resolveOne(uninstName, parent, false)
		if err != nil {
			return hir.Package{}, err
		}
		if def.Kind != noderef.DefPkgDecl {
			return hir.Package{}, errors.Wrapf(ErrWrongKind, "%s is not a generic package", b.display(uninstName))
		}
		p := hir.Package{Kind: hir.PackageInst, CtxItems: ctxRef, Name: names.Global().Intern(unit.PkgInst.Name.Value), Uninst: def.PkgDecl}
		for _, assoc := range unit.PkgInst.GenericMap {
			actual, err := b.lowerExpr(assoc.Actual, parent)
			if err != nil {
				return hir.Package{}, err
			}
			var formal names.Name
			if assoc.Formal != nil {
				fn, err := b.ResolvableFromPrimaryName(assoc.Formal)
				if err != nil {
					return hir.Package{}, err
				}
				if fn.Kind == names.ResolvableIdent {
					formal = fn.Ident
				}
			}
			p.Bindings = append(p.Bindings, hir.GenericBinding{Formal: formal, Actual: actual})
		}
		return p, nil
	default:
		return hir.Package{}, errors.Wrapf(ErrWrongKind, "%v is not a package unit", handle)
	}
}

// GetPkgInstScope demand-computes the scope a package instantiation
// contributes: the bound formal generics are entered first, then the rest
// of the generic package's declarations, so resolving a name through the
// instance consults the bindings before falling back to the generic
// package's own scope.
func (b *Board) GetPkgInstScope(ref noderef.PkgInstRef) (*scope.Scope, error) {
	scopeRef := noderef.ScopeOfPkgInstRef(ref)
	if sc, ok := b.scopes[scopeRef]; ok {
		return sc, nil
	}
	b.trace("make scope<PkgInst> for %v", ref)
	sc, err := b.makePkgInstScope(ref)
	if err != nil {
		return nil, err
	}
	if _, exists := b.scopes[scopeRef]; exists {
		panic("scoreboard: " + string(ErrScoreboardInvariant) + " (duplicate insert)")
	}
	b.scopes[scopeRef] = sc
	b.trace("scope<PkgInst> for %v is %+v", ref, *sc)
	return sc, nil
}

func (b *Board) makePkgInstScope(ref noderef.PkgInstRef) (*scope.Scope, error) {
	p, err := b.GetPackageHIR(ref.Handle)
	if err != nil {
		return nil, err
	}
	if p.Kind != hir.PackageInst {
		return nil, errors.Wrapf(ErrWrongKind, "%v is not a package instantiation", ref)
	}
	uninst, err := b.GetPackageHIR(p.Uninst.Handle)
	if err != nil {
		return nil, err
	}
	uninstScope, ok := b.scopes[noderef.ScopeOfPkgDeclRef(p.Uninst)]
	if !ok {
		return nil, errors.Wrapf(ErrScoreboardInvariant, "package %v has no scope after lowering", p.Uninst)
	}

	// The binding's formal is named explicitly or, for a positional
	// association, taken from the generic package's formal at that position.
	formalName := func(i int, bind hir.GenericBinding) (names.Resolvable, bool) {
		if bind.Formal.IsValid() {
			return names.Ident(bind.Formal), true
		}
		if i < len(uninst.Generics) {
			if o, ok := b.ifObj.get(uninst.Generics[i]); ok {
				return names.Ident(o.Name), true
			}
		}
		return names.Resolvable{}, false
	}

	sc := scope.NewScope(nil)
	bound := map[names.Resolvable]bool{}
	for i, bind := range p.Bindings {
		name, ok := formalName(i, bind)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownName, "generic association %d of %v has no formal", i, ref)
		}
		entries, found := uninstScope.Explicit.Lookup(name)
		if !found {
			b.errorf(names.InvalidSpan, "`%s` is not known", b.display(name))
			return nil, errors.Wrapf(ErrUnknownName, "formal generic %s", b.display(name))
		}
		for _, e := range entries {
			sc.Explicit.Insert(name, e.Value, e.Span)
		}
		bound[name] = true
	}
	uninstScope.Explicit.Each(func(name names.Resolvable, entries []names.Spanned[noderef.Def]) {
		if bound[name] {
			return
		}
		for _, e := range entries {
			sc.Explicit.Insert(name, e.Value, e.Span)
		}
	})
	return sc, nil
}

// lowerDecl lowers one declarative-part item into the matching noderef.DeclRef.
func (b *Board) lowerDecl(n ast.Node, parent noderef.ScopeRef) (noderef.DeclRef, error) {
	switch d := n.(type) {
	case *ast.TypeDecl:
		return b.lowerTypeDecl(d, parent)
	case *ast.SubtypeDecl:
		return b.lowerSubtypeDecl(d, parent)
	case *ast.ObjDecl:
		return b.lowerObjDecl(d, parent)
	default:
		return noderef.DeclRef{}, errors.Wrapf(ErrWrongKind, "%T is not a declaration", n)
	}
}

func (b *Board) lowerTypeDecl(d *ast.TypeDecl, parent noderef.ScopeRef) (noderef.DeclRef, error) {
	r := noderef.NewTypeDeclRef()
	name := names.Global().Intern(d.Name.Value)
	node := hir.TypeDecl{Parent: parent, Name: name}

	if d.Def == nil {
		node.Def = hir.TypeIncomplete
	} else {
		switch d.Def.Kind {
		case ast.TypeDefEnum:
			node.Def = hir.TypeEnum
			for _, lit := range d.Def.EnumLiterals {
				rn, err := b.ResolvableFromPrimaryName(lit)
				if err != nil {
					return noderef.DeclRef{}, err
				}
				node.EnumLiterals = append(node.EnumLiterals, rn)
			}
		case ast.TypeDefRange:
			node.Def = hir.TypeRange
			if d.Def.Range != nil {
				low, err := b.lowerExpr(d.Def.Range.Low, parent)
				if err != nil {
					return noderef.DeclRef{}, err
				}
				high, err := b.lowerExpr(d.Def.Range.High, parent)
				if err != nil {
					return noderef.DeclRef{}, err
				}
				node.RangeLow, node.RangeHigh = low, high
				node.RangeDir = types.Direction(d.Def.Range.Direction)
			}
			for _, u := range d.Def.Units {
				ud := hir.UnitDecl{Name: names.Global().Intern(u.Name.Value)}
				if u.Multiplier != nil {
					ud.Multiplier = u.Multiplier.Value
				}
				if u.Of != nil {
					// A secondary unit is declared relative to an earlier
					// unit of the same type; find its ordinal.
					refName := names.Global().Intern(u.Of.Value)
					for j := range node.Units {
						if node.Units[j].Name == refName {
							of := noderef.NewUnitRef(r, j)
							ud.Of = &of
							break
						}
					}
					if ud.Of == nil {
						b.errorf(u.Of.Span(), "`%s` is not known", u.Of.Value)
						return noderef.DeclRef{}, errors.Wrapf(ErrUnknownName, "unit %s", u.Of.Value)
					}
				}
				node.Units = append(node.Units, ud)
			}
		case ast.TypeDefArray:
			node.Def = hir.TypeArray
			elemInd, err := b.lowerSubtypeInd(d.Def.ElementInd, parent)
			if err != nil {
				return noderef.DeclRef{}, err
			}
			node.Element = elemInd
			for _, ic := range d.Def.IndexConstraints {
				switch c := ic.(type) {
				case *ast.Identifier:
					node.IndexUnbounded = true
				case *ast.RangeExpr:
					low, err := b.lowerExpr(c.Low, parent)
					if err != nil {
						return noderef.DeclRef{}, err
					}
					high, err := b.lowerExpr(c.High, parent)
					if err != nil {
						return noderef.DeclRef{}, err
					}
					node.IndexRanges = append(node.IndexRanges, hir.ArrayConstraintElem{
						Low: low, High: high, Dir: types.Direction(c.Direction),
					})
				}
			}
		case ast.TypeDefAccess:
			node.Def = hir.TypeAccess
			target, err := b.lowerSubtypeInd(d.Def.AccessTarget, parent)
			if err != nil {
				return noderef.DeclRef{}, err
			}
			node.AccessTarget = target
		case ast.TypeDefFile:
			node.Def = hir.TypeFile
			elem, err := b.lowerSubtypeInd(d.Def.FileElementInd, parent)
			if err != nil {
				return noderef.DeclRef{}, err
			}
			node.FileElement = elem
		}
	}

	b.typeDecl.insert(r, node)
	if sc, ok := b.scopes[parent]; ok {
		sc.Explicit.Insert(names.Ident(name), noderef.DefOfTypeDecl(r), d.Span())
		if node.Def == hir.TypeEnum {
			for i, lit := range node.EnumLiterals {
				sc.Explicit.Insert(lit, noderef.DefOfEnumLiteral(noderef.NewEnumRef(r, i)), d.Span())
			}
		}
		if node.Def == hir.TypeRange {
			for i, u := range node.Units {
				sc.Explicit.Insert(names.Ident(u.Name), noderef.DefOfUnit(noderef.NewUnitRef(r, i)), d.Span())
			}
		}
	}
	return noderef.DeclOfType(r), nil
}

func (b *Board) lowerSubtypeDecl(d *ast.SubtypeDecl, parent noderef.ScopeRef) (noderef.DeclRef, error) {
	r := noderef.NewSubtypeDeclRef()
	name := names.Global().Intern(d.Name.Value)
	ind, err := b.lowerSubtypeInd(d.Ind, parent)
	if err != nil {
		return noderef.DeclRef{}, err
	}
	node := hir.SubtypeDecl{Parent: parent, Name: name, Ind: ind}
	b.subtypeDecl.insert(r, node)
	if sc, ok := b.scopes[parent]; ok {
		sc.Explicit.Insert(names.Ident(name), noderef.DefOfSubtypeDecl(r), d.Span())
	}
	return noderef.DeclOfSubtype(r), nil
}

func (b *Board) lowerObjDecl(d *ast.ObjDecl, parent noderef.ScopeRef) (noderef.DeclRef, error) {
	ind, err := b.lowerSubtypeInd(d.Ind, parent)
	if err != nil {
		return noderef.DeclRef{}, err
	}
	var defaultRef *noderef.ExprRef
	if d.Default != nil {
		e, err := b.lowerExpr(d.Default, parent)
		if err != nil {
			return noderef.DeclRef{}, err
		}
		defaultRef = &e
	}
	// VHDL permits `signal a, b : T;`; only the first declared name's
	// DeclRef is returned to the caller (its list), matching the shape
	// hir.Arch.Decls/hir.Package.Decls expect: one entry per declaration
	// statement, not per name. Every name still gets declared in scope.
	var first noderef.DeclRef
	for i, id := range d.Names {
		name := names.Global().Intern(id.Value)
		ref, def := b.newObjDeclRef(d.Kind, parent, name, ind, defaultRef)
		if sc, ok := b.scopes[parent]; ok {
			sc.Explicit.Insert(names.Ident(name), def, id.Span())
		}
		if i == 0 {
			first = ref
		}
	}
	return first, nil
}

func (b *Board) newObjDeclRef(kind ast.ObjKind, parent noderef.ScopeRef, name names.Name, ind *hir.SubtypeInd, def *noderef.ExprRef) (noderef.DeclRef, noderef.Def) {
	switch kind {
	case ast.ObjConst:
		r := noderef.NewConstDeclRef()
		b.constDecl.insert(r, hir.ConstDecl{Parent: parent, Name: name, Ind: ind, Default: def})
		return noderef.DeclOfConst(r), noderef.DefOfConst(r)
	case ast.ObjSignal:
		r := noderef.NewSignalDeclRef()
		b.signalDecl.insert(r, hir.SignalDecl{Parent: parent, Name: name, Ind: ind, Default: def})
		return noderef.DeclOfSignal(r), noderef.DefOfSignal(r)
	case ast.ObjVar:
		r := noderef.NewVarDeclRef()
		b.varDecl.insert(r, hir.VarDecl{Parent: parent, Name: name, Ind: ind, Default: def})
		return noderef.DeclOfVar(r), noderef.DefOfVar(r)
	case ast.ObjSharedVar:
		r := noderef.NewSharedVarDeclRef()
		b.sharedVarDecl.insert(r, hir.SharedVarDecl{Parent: parent, Name: name, Ind: ind, Default: def})
		return noderef.DeclOfSharedVar(r), noderef.DefOfSharedVar(r)
	case ast.ObjFile:
		r := noderef.NewFileDeclRef()
		b.fileDecl.insert(r, hir.FileDecl{Parent: parent, Name: name, Ind: ind, Default: def})
		return noderef.DeclOfFile(r), noderef.DefOfFile(r)
	default:
		panic("scoreboard: unknown object kind")
	}
}

func (b *Board) lowerSubtypeInd(ind *ast.SubtypeInd, parent noderef.ScopeRef) (*hir.SubtypeInd, error) {
	if ind == nil {
		return nil, nil
	}
	markName, err := b.ResolvableFromPrimaryName(ind.Mark)
	if err != nil {
		if cn, ok := ind.Mark.(*ast.CompoundName); ok {
			def, _, err := b.ResolveCompoundName(cn, parent)
			if err != nil {
				return nil, err
			}
			return b.subtypeIndFromDef(def, ind.Constraint, parent)
		}
		return nil, err
	}
	def, err := b.resolveOne(markName, parent, false)
	if err != nil {
		return nil, err
	}
	return b.subtypeIndFromDef(def, ind.Constraint, parent)
}

func (b *Board) subtypeIndFromDef(def noderef.Def, constraint *ast.Constraint, parent noderef.ScopeRef) (*hir.SubtypeInd, error) {
	var mark noderef.TypeMark
	switch def.Kind {
	case noderef.DefTypeDecl:
		mark = noderef.TypeMarkOfType(def.TypeDecl)
	case noderef.DefSubtypeDecl:
		mark = noderef.TypeMarkOfSubtype(def.SubtypeDecl)
	default:
		return nil, errors.Wrapf(ErrWrongKind, "%s is not a type or subtype", def.Kind)
	}
	out := &hir.SubtypeInd{Mark: mark}
	if constraint == nil {
		return out, nil
	}
	c := &hir.Constraint{}
	switch constraint.Kind {
	case ast.ConstraintRange:
		c.Kind = hir.ConstraintRange
		if rng, ok := constraint.Range.(*ast.RangeExpr); ok {
			low, err := b.lowerExpr(rng.Low, parent)
			if err != nil {
				return nil, err
			}
			high, err := b.lowerExpr(rng.High, parent)
			if err != nil {
				return nil, err
			}
			c.Low, c.High = low, high
			c.Dir = types.Direction(rng.Direction)
		}
	case ast.ConstraintArray:
		c.Kind = hir.ConstraintArray
		for _, elem := range constraint.ArrayElems {
			rng, ok := elem.Range.(*ast.RangeExpr)
			if !ok {
				continue
			}
			low, err := b.lowerExpr(rng.Low, parent)
			if err != nil {
				return nil, err
			}
			high, err := b.lowerExpr(rng.High, parent)
			if err != nil {
				return nil, err
			}
			c.ArrayElems = append(c.ArrayElems, hir.ArrayConstraintElem{Low: low, High: high, Dir: types.Direction(rng.Direction)})
		}
		if constraint.ElementInd != nil {
			elemInd, err := b.lowerSubtypeInd(constraint.ElementInd, parent)
			if err != nil {
				return nil, err
			}
			c.ElementInd = elemInd
		}
	case ast.ConstraintRecord:
		c.Kind = hir.ConstraintRecord
		for _, f := range constraint.RecordElems {
			ind, err := b.lowerSubtypeInd(f.Ind, parent)
			if err != nil {
				return nil, err
			}
			c.RecordElems = append(c.RecordElems, hir.RecordConstraintElem{Field: names.Global().Intern(f.Field), Ind: ind})
		}
	}
	out.Constraint = c
	return out, nil
}
