package flagset

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Collection is an immutable, validated flag collection descriptor.
// Created by Builder.Build(). It resolves member names and bit patterns,
// tracks aliases, and owns the synthesized zero/all values. Collections are
// safe for concurrent use without synchronization.
type Collection struct {
	name       string
	members    []Member          // canonical members, first-declared order
	byName     map[string]int    // canonical + alias name → members index
	aliases    map[string]string // alias name → canonical name
	lookup     map[string]uint64 // every recognized name (incl. zero/all) → bits
	byBits     map[uint64]int    // exact bit pattern → members index
	names      []string          // declared names in order, then zero/all
	universe   uint64
	zeroName   string // "" when disabled
	allName    string // "" when disabled
	dotted     bool
	unique     bool
	uniqueBits bool
}

// Name returns the collection's display name.
func (c *Collection) Name() string { return c.name }

// Len returns the number of canonical (alias-free) members.
func (c *Collection) Len() int { return len(c.members) }

// Members returns the canonical members in declaration order.
func (c *Collection) Members() []Member {
	out := make([]Member, len(c.members))
	copy(out, c.members)
	return out
}

// Member looks up a canonical or alias name and returns the canonical member
// it resolves to. The zero/all alias names are not members.
func (c *Collection) Member(name string) (Member, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Member{}, false
	}
	return c.members[i], true
}

// MemberByBits returns the canonical member whose bits exactly equal the
// given pattern, if any.
func (c *Collection) MemberByBits(bits uint64) (Member, bool) {
	i, ok := c.byBits[bits]
	if !ok {
		return Member{}, false
	}
	return c.members[i], true
}

// Aliases returns a copy of the alias name → canonical name mapping.
func (c *Collection) Aliases() map[string]string {
	out := make(map[string]string, len(c.aliases))
	for alias, name := range c.aliases {
		out[alias] = name
	}
	return out
}

// Names returns every name the collection recognizes, in declaration order,
// aliases included, followed by the zero/all alias names when enabled.
func (c *Collection) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// ZeroName returns the alias name of the zero value, if enabled.
func (c *Collection) ZeroName() (string, bool) { return c.zeroName, c.zeroName != "" }

// AllName returns the alias name of the all value, if enabled.
func (c *Collection) AllName() (string, bool) { return c.allName, c.allName != "" }

// Zero returns the value with no flags set.
func (c *Collection) Zero() Value {
	return Value{col: c}
}

// All returns the value with every declared flag set: the collection's
// universe.
func (c *Collection) All() Value {
	return Value{col: c, bits: c.universe}
}

// Value returns the value of a named member. The name may be a canonical
// member, an alias, or the zero/all alias name.
// Panics on an unknown name; use Member for a checked lookup.
func (c *Collection) Value(name string) Value {
	bits, ok := c.lookup[name]
	if !ok {
		panic(errors.Wrapf(ErrUnknownFlagName, "%s.%s", c.name, name))
	}
	return Value{col: c, bits: bits}
}

// FromBits constructs a value holding exactly the given bits. The conversion
// is lossless in both directions: no masking is applied, so the result may
// hold bits outside the declared universe. Such values have no Properties
// and fail SimpleString with ErrUnrepresentable.
func (c *Collection) FromBits(bits uint64) Value {
	return Value{col: c, bits: bits}
}

// Extend returns a new Builder seeded with this collection's configuration.
// Only abstract collections (built from zero declarations) can be extended;
// a collection with canonical members is finalized.
func (c *Collection) Extend(name string) (*Builder, error) {
	if len(c.members) > 0 {
		return nil, errors.Wrapf(ErrFinalized, "cannot extend %q", c.name)
	}
	return &Builder{
		name:       name,
		zeroName:   c.zeroName,
		allName:    c.allName,
		unique:     c.unique,
		uniqueBits: c.uniqueBits,
		dotted:     c.dotted,
	}, nil
}

// exportFormat is the portable JSON representation of a collection
// descriptor. Implementations in other languages can load it and resolve
// names and bit patterns without reimplementing the builder.
type exportFormat struct {
	Name     string            `json:"name"`
	Version  int               `json:"version"`
	Members  []memberExport    `json:"members"`
	Aliases  map[string]string `json:"aliases,omitempty"`
	Universe uint64            `json:"universe"`
	ZeroName string            `json:"zero_name,omitempty"`
	AllName  string            `json:"all_name,omitempty"`
}

type memberExport struct {
	Name  string `json:"name"`
	Bits  uint64 `json:"bits"`
	Index int    `json:"index"`
}

// Export writes the descriptor to a portable JSON file: member names with
// their resolved bits and declaration indices, the alias graph, and the
// universe. User data is not exported; it is host-program state.
func (c *Collection) Export(path string) error {
	export := exportFormat{
		Name:     c.name,
		Version:  1,
		Members:  make([]memberExport, len(c.members)),
		Universe: c.universe,
		ZeroName: c.zeroName,
		AllName:  c.allName,
	}
	for i, m := range c.members {
		export.Members[i] = memberExport{Name: m.name, Bits: m.bits, Index: m.index}
	}
	if len(c.aliases) > 0 {
		export.Aliases = c.Aliases()
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "flagset: marshal %q", c.name)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "flagset: write %q", c.name)
	}
	return nil
}
