// Package arena implements bulk-lifetime storage for HIR, scope, definition,
// type, and constant nodes.
//
// Every arena-allocated node lives until the owning session ends and is
// never mutated after insertion; cross-references between nodes are typed
// handles into other arenas, never ownership edges, which is what makes the
// HIR/scope/type graphs acyclic by construction even though the demand
// graph that builds them is not.
package arena

// Arena allocates values of type T and returns stable pointers to them. A
// pointer returned by Alloc remains valid for the arena's entire lifetime;
// the backing slice is never reallocated out from under a live pointer
// because each element is individually heap-allocated, so the garbage
// collector alone gives arena-owned nodes a stable address for as long as
// anything still references them.
type Arena[T any] struct {
	items []*T
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Alloc copies v into the arena and returns a stable pointer to the copy.
func (a *Arena[T]) Alloc(v T) *T {
	p := new(T)
	*p = v
	a.items = append(a.items, p)
	return p
}

// Len reports how many values have been allocated.
func (a *Arena[T]) Len() int { return len(a.items) }
