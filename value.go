package flagset

import (
	"github.com/pkg/errors"
)

// Value is an immutable flag value: a bit pattern tagged with the Collection
// it belongs to. Values are small, copied freely, and comparable — two
// values are == when they share the collection and the bits, so a Value can
// be used as a map key directly.
//
// Combinators and subset comparisons require both operands to belong to the
// same collection; mixing collections is a programmer error and panics with
// an error wrapping ErrTypeMismatch. Equal and Contains instead report false
// across collections, keeping generic container code safe.
type Value struct {
	col  *Collection
	bits uint64
}

// Bits returns the raw bit pattern.
func (v Value) Bits() uint64 { return v.bits }

// Collection returns the collection this value belongs to.
func (v Value) Collection() *Collection { return v.col }

// IsEmpty reports whether no flags are set.
func (v Value) IsEmpty() bool { return v.bits == 0 }

// Contains reports whether every flag of o is set in v. A value of a
// different collection is never contained.
func (v Value) Contains(o Value) bool {
	if v.col != o.col {
		return false
	}
	return v.bits&o.bits == o.bits
}

// Has reports whether the named member's flags are all set in v. The name
// must be a canonical or alias member of the value's collection; an unknown
// name panics with an error wrapping ErrUnknownFlagName.
func (v Value) Has(name string) bool {
	i, ok := v.col.byName[name]
	if !ok {
		panic(errors.Wrapf(ErrUnknownFlagName, "%s.%s", v.col.name, name))
	}
	m := v.col.members[i]
	return v.bits&m.bits == m.bits
}

func (v Value) check(o Value, op string) {
	if v.col != o.col {
		panic(errors.Wrapf(ErrTypeMismatch, "%s: %s vs %s", op, collectionName(v.col), collectionName(o.col)))
	}
}

func collectionName(c *Collection) string {
	if c == nil {
		return "<nil>"
	}
	return c.name
}

// Or returns the union of the two values.
func (v Value) Or(o Value) Value {
	v.check(o, "or")
	return Value{col: v.col, bits: v.bits | o.bits}
}

// And returns the intersection of the two values.
func (v Value) And(o Value) Value {
	v.check(o, "and")
	return Value{col: v.col, bits: v.bits & o.bits}
}

// Xor returns the symmetric difference of the two values.
func (v Value) Xor(o Value) Value {
	v.check(o, "xor")
	return Value{col: v.col, bits: v.bits ^ o.bits}
}

// Diff returns the flags of v that are not set in o.
func (v Value) Diff(o Value) Value {
	v.check(o, "diff")
	return Value{col: v.col, bits: v.bits &^ o.bits}
}

// Not returns the complement of v, clipped to the collection's universe.
// Bits outside the universe are never set, so Not(Not(v)) == v holds only
// for values inside the universe.
func (v Value) Not() Value {
	var universe uint64
	if v.col != nil {
		universe = v.col.universe
	}
	return Value{col: v.col, bits: universe &^ v.bits}
}

// Equal reports whether both values belong to the same collection and hold
// the same bits. Values of different collections are unequal, not an error.
func (v Value) Equal(o Value) bool {
	return v.col == o.col && v.bits == o.bits
}

// SubsetOf reports whether every flag of v is set in o. This is a partial
// order: two values may be subsets of each other in neither direction.
func (v Value) SubsetOf(o Value) bool {
	v.check(o, "subset")
	return v.bits&o.bits == v.bits
}

// StrictSubsetOf reports whether v is a subset of o and differs from it.
func (v Value) StrictSubsetOf(o Value) bool {
	v.check(o, "subset")
	return v.bits != o.bits && v.bits&o.bits == v.bits
}

// SupersetOf reports whether every flag of o is set in v.
func (v Value) SupersetOf(o Value) bool {
	v.check(o, "superset")
	return v.bits&o.bits == o.bits
}

// StrictSupersetOf reports whether v is a superset of o and differs from it.
func (v Value) StrictSupersetOf(o Value) bool {
	v.check(o, "superset")
	return v.bits != o.bits && v.bits&o.bits == o.bits
}

// IsDisjoint reports whether v shares no flags with any of the others.
func (v Value) IsDisjoint(others ...Value) bool {
	for _, o := range others {
		v.check(o, "disjoint")
		if v.bits&o.bits != 0 {
			return false
		}
	}
	return true
}

// decompose greedily accounts for the value's bits using canonical members
// in declaration order: a member is taken when its bits are a non-empty
// subset of the bits still unaccounted for. Returns the taken members and
// any remaining bits no member could cover.
func (v Value) decompose() ([]Member, uint64) {
	rest := v.bits
	if v.col == nil || rest == 0 {
		return nil, rest
	}
	var picked []Member
	for _, m := range v.col.members {
		if rest == 0 {
			break
		}
		if rest&m.bits == m.bits {
			picked = append(picked, m)
			rest &^= m.bits
		}
	}
	return picked, rest
}

// Members returns the ordered canonical members that reconstruct the value,
// using greedy declaration-order decomposition. Fails with an error wrapping
// ErrUnrepresentable when bits remain that no canonical member covers.
func (v Value) Members() ([]Member, error) {
	picked, rest := v.decompose()
	if rest != 0 {
		return nil, errors.Wrapf(ErrUnrepresentable, "%s: 0x%x unaccounted", collectionName(v.col), rest)
	}
	return picked, nil
}

// Count returns the number of members the decomposition yields. Bits outside
// the declared universe contribute nothing to the count.
func (v Value) Count() int {
	picked, _ := v.decompose()
	return len(picked)
}

// Properties returns the canonical member whose bits exactly equal the
// value's bits. Combined values, the zero value and out-of-universe values
// have no properties unless a member was declared with that exact pattern.
func (v Value) Properties() (Member, bool) {
	if v.col == nil {
		return Member{}, false
	}
	return v.col.MemberByBits(v.bits)
}

// Name returns the exact-match member's name, or "" for combined values.
func (v Value) Name() string {
	m, ok := v.Properties()
	if !ok {
		return ""
	}
	return m.name
}

// Data returns the exact-match member's user data, or nil.
func (v Value) Data() any {
	m, ok := v.Properties()
	if !ok {
		return nil
	}
	return m.data
}
