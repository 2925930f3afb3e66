package scope_test

import (
	"testing"

	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
	"github.com/boenset/moore/scope"
)

func TestDefsOverloadListPreservesInsertionOrder(t *testing.T) {
	d := scope.NewDefs()
	name := names.Ident(names.NewTable().Intern("f"))

	first := noderef.DefOfBuiltinOp(noderef.NewBuiltinOpRef())
	second := noderef.DefOfBuiltinOp(noderef.NewBuiltinOpRef())
	d.Insert(name, first, names.InvalidSpan)
	d.Insert(name, second, names.InvalidSpan)

	got, ok := d.Lookup(name)
	if !ok || len(got) != 2 {
		t.Fatalf("Lookup() = %v, %v; want two entries", got, ok)
	}
	if got[0].Value != first || got[1].Value != second {
		t.Errorf("overload order = %v, want insertion order", got)
	}
}

func TestDefsLookupMissing(t *testing.T) {
	d := scope.NewDefs()
	tab := names.NewTable()
	d.Insert(names.Ident(tab.Intern("present")), noderef.DefOfLib(noderef.NewLibRef()), names.InvalidSpan)

	if _, ok := d.Lookup(names.Ident(tab.Intern("absent"))); ok {
		t.Fatalf("Lookup(absent) reported ok")
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestDefsDistinguishesResolvableSubspaces(t *testing.T) {
	d := scope.NewDefs()
	tab := names.NewTable()
	identDef := noderef.DefOfLib(noderef.NewLibRef())
	bitDef := noderef.DefOfEnumLiteral(noderef.NewEnumRef(noderef.NewTypeDeclRef(), 0))

	d.Insert(names.Ident(tab.Intern("0")), identDef, names.InvalidSpan)
	d.Insert(names.Bit('0'), bitDef, names.InvalidSpan)

	fromIdent, _ := d.Lookup(names.Ident(tab.Intern("0")))
	fromBit, _ := d.Lookup(names.Bit('0'))
	if len(fromIdent) != 1 || fromIdent[0].Value != identDef {
		t.Errorf("identifier lookup = %v, want the lib def only", fromIdent)
	}
	if len(fromBit) != 1 || fromBit[0].Value != bitDef {
		t.Errorf("bit lookup = %v, want the enum def only", fromBit)
	}
}

func TestScopeImportOrder(t *testing.T) {
	s := scope.NewScope(nil)
	a := noderef.ScopeOfLibRef(noderef.NewLibRef())
	b := noderef.ScopeOfLibRef(noderef.NewLibRef())
	s.Import(a)
	s.Import(b)

	if len(s.Imported) != 2 || s.Imported[0] != a || s.Imported[1] != b {
		t.Errorf("Imported = %v, want [a b] in import order", s.Imported)
	}
}

func TestScopeParent(t *testing.T) {
	parent := noderef.ScopeOfLibRef(noderef.NewLibRef())
	child := scope.NewScope(&parent)
	if child.Parent == nil || *child.Parent != parent {
		t.Errorf("Parent = %v, want %v", child.Parent, parent)
	}
	orphan := scope.NewScope(nil)
	if orphan.Parent != nil {
		t.Errorf("orphan Parent = %v, want nil", orphan.Parent)
	}
}
