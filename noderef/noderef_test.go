package noderef

import "testing"

func TestAllocIsGloballyUnique(t *testing.T) {
	seen := map[uint64]bool{}
	for i := 0; i < 100; i++ {
		h := Alloc(KindExpr)
		if seen[h.ID()] {
			t.Fatalf("Alloc produced a duplicate id %d", h.ID())
		}
		seen[h.ID()] = true
	}
}

func TestDefAsScopeRef(t *testing.T) {
	tests := []struct {
		name string
		def  Def
		want bool
	}{
		{"lib is selectable", DefOfLib(NewLibRef()), true},
		{"pkg decl is selectable", DefOfPkgDecl(NewPkgDeclRef()), true},
		{"pkg inst is selectable", DefOfPkgInst(NewPkgInstRef()), true},
		{"builtin pkg is selectable", DefOfBuiltinPkg(NewBuiltinPkgRef()), true},
		{"signal is not selectable", DefOfSignal(NewSignalDeclRef()), false},
		{"const is not selectable", DefOfConst(NewConstDeclRef()), false},
		{"enum literal is not selectable", DefOfEnumLiteral(NewEnumRef(NewTypeDeclRef(), 0)), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, ok := test.def.AsScopeRef()
			if ok != test.want {
				t.Errorf("AsScopeRef() ok = %v, want %v", ok, test.want)
			}
		})
	}
}

func TestHandleKindDistinct(t *testing.T) {
	lib := NewLibRef()
	entity := NewEntityRef()
	if lib.Kind() == entity.Kind() {
		t.Fatalf("LibRef and EntityRef share a Kind tag")
	}
}
