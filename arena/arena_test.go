package arena

import "testing"

func TestAllocReturnsStablePointers(t *testing.T) {
	a := New[int]()
	p1 := a.Alloc(1)
	p2 := a.Alloc(2)
	for i := 0; i < 1000; i++ {
		a.Alloc(i)
	}
	if *p1 != 1 || *p2 != 2 {
		t.Fatalf("pointers became invalid after further allocations: *p1=%d *p2=%d", *p1, *p2)
	}
	if a.Len() != 1002 {
		t.Fatalf("Len() = %d, want 1002", a.Len())
	}
}
