// Package flagset implements named, type-safe bit-flag collections: a closed
// set of named single-bit (or explicitly valued) members declared once
// through a Builder, compiled into an immutable Collection, and combined,
// tested and serialized through the small immutable Value type.
//
// A Collection is built once, typically during program initialization, and
// is safe for concurrent use without locking. Values belonging to different
// collections can never be mixed: combinators panic on a cross-collection
// operand, and equality across collections is simply false.
package flagset

// Member describes one canonical (non-alias) flag of a collection: its name,
// resolved bits, optional user data and positions in the declaration order.
// Members are handed out by value and never change after Build.
type Member struct {
	col            *Collection
	name           string
	bits           uint64
	data           any
	index          int
	indexNoAliases int
}

// Name returns the member's declared name.
func (m Member) Name() string { return m.name }

// Bits returns the member's resolved bit pattern.
func (m Member) Bits() uint64 { return m.bits }

// Data returns the user data attached at declaration time, or nil.
func (m Member) Data() any { return m.data }

// Index returns the member's position in the declaration order, aliases
// included.
func (m Member) Index() int { return m.index }

// IndexWithoutAliases returns the member's position among canonical members
// only. This is the iteration and display order.
func (m Member) IndexWithoutAliases() int { return m.indexNoAliases }

// Value returns the flag value holding exactly this member's bits.
func (m Member) Value() Value {
	return Value{col: m.col, bits: m.bits}
}
