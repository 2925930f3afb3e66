// Package scope implements the scope and definition tables used to resolve
// VHDL names: a map-backed lookup table adapted from "one name -> one Node"
// to "one name -> nonempty overload list" since VHDL allows overloading.
package scope

import (
	"github.com/boenset/moore/names"
	"github.com/boenset/moore/noderef"
)

// Defs maps a resolvable name to the nonempty list of definitions it may
// denote at a use site. The list permits overloading; each entry's span
// points back to its declaration site for diagnostics.
type Defs struct {
	entries map[names.Resolvable][]names.Spanned[noderef.Def]
}

// NewDefs creates an empty Defs table.
func NewDefs() *Defs {
	return &Defs{entries: map[names.Resolvable][]names.Spanned[noderef.Def]{}}
}

// Insert adds one more definition under name, preserving insertion order
// within the overload list.
func (d *Defs) Insert(name names.Resolvable, def noderef.Def, span names.Span) {
	d.entries[name] = append(d.entries[name], names.NewSpanned(def, span))
}

// Lookup returns the overload list for name, or (nil, false) if name has no
// entry at all.
func (d *Defs) Lookup(name names.Resolvable) ([]names.Spanned[noderef.Def], bool) {
	v, ok := d.entries[name]
	return v, ok
}

// Each calls fn once per name with its full overload list. Iteration order
// over names is unspecified; the order within each overload list is
// insertion order.
func (d *Defs) Each(fn func(names.Resolvable, []names.Spanned[noderef.Def])) {
	for name, entries := range d.entries {
		fn(name, entries)
	}
}

// Len reports how many distinct names this Defs table has entries for.
func (d *Defs) Len() int { return len(d.entries) }
