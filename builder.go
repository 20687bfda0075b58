package flagset

import (
	"strings"

	"github.com/pkg/errors"
)

// Default names registered for the synthesized zero and all members.
const (
	DefaultZeroName = "no_flags"
	DefaultAllName  = "all_flags"
)

// Builder declares the members of a flag collection. After declaring flags,
// call Build() to validate the declarations and produce an immutable
// Collection. A builder whose Build produced canonical members is finalized
// and rejects further declarations.
type Builder struct {
	name       string
	decls      []decl
	zeroName   string
	allName    string
	unique     bool
	uniqueBits bool
	dotted     bool
	finalized  bool
}

type decl struct {
	name string
	bits uint64
	auto bool
	data any
}

// NewBuilder creates a Builder for a named flag collection. The name is used
// by the verbose string form (e.g. "TextStyle.bold") and must parse back, so
// it is validated like a member name at Build time.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		zeroName: DefaultZeroName,
		allName:  DefaultAllName,
		dotted:   true,
	}
}

// ZeroName sets the alias name registered for the zero value.
func (b *Builder) ZeroName(name string) *Builder {
	b.zeroName = name
	return b
}

// NoZeroName disables the zero value's alias name.
func (b *Builder) NoZeroName() *Builder {
	b.zeroName = ""
	return b
}

// AllName sets the alias name registered for the all value.
func (b *Builder) AllName(name string) *Builder {
	b.allName = name
	return b
}

// NoAllName disables the all value's alias name.
func (b *Builder) NoAllName() *Builder {
	b.allName = ""
	return b
}

// Unique makes Build fail if any declaration aliases an earlier one.
func (b *Builder) Unique() *Builder {
	b.unique = true
	return b
}

// UniqueBits makes Build fail if any two canonical members share a bit.
// Implies Unique.
func (b *Builder) UniqueBits() *Builder {
	b.unique = true
	b.uniqueBits = true
	return b
}

// DottedSingleFlag controls whether the verbose string form renders a value
// holding exactly one member as "Name.member" instead of "Name(member)".
// Enabled by default. Does not affect SimpleString.
func (b *Builder) DottedSingleFlag(enabled bool) *Builder {
	b.dotted = enabled
	return b
}

// FlagBuilder declares a single flag member.
type FlagBuilder struct {
	b   *Builder
	def decl
}

// Flag begins declaring a named flag. Without a Bits call the flag is
// auto-assigned the lowest bit position left unclaimed by any declaration.
func (b *Builder) Flag(name string) *FlagBuilder {
	return &FlagBuilder{
		b:   b,
		def: decl{name: name, auto: true},
	}
}

// Bits sets an explicit bit pattern instead of auto-assignment. The pattern
// may span multiple bits; zero is reserved and rejected at Build.
func (fb *FlagBuilder) Bits(bits uint64) *FlagBuilder {
	fb.def.bits = bits
	fb.def.auto = false
	return fb
}

// Data attaches user data to the flag. Only the first declaration of a bit
// pattern may carry data.
func (fb *FlagBuilder) Data(data any) *FlagBuilder {
	fb.def.data = data
	return fb
}

// Add registers the flag declaration with the builder.
// Panics if the builder has already produced a collection with members.
func (fb *FlagBuilder) Add() {
	if fb.b.finalized {
		panic(errors.Wrapf(ErrFinalized, "cannot declare flag %q on %q", fb.def.name, fb.b.name))
	}
	fb.b.decls = append(fb.b.decls, fb.def)
}

// Flags declares several auto-assigned flags at once, in order.
func (b *Builder) Flags(names ...string) *Builder {
	for _, name := range names {
		b.Flag(name).Add()
	}
	return b
}

// FlagList declares auto-assigned flags from a space and/or comma separated
// list, e.g. "bold, italic underline".
func (b *Builder) FlagList(list string) *Builder {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	return b.Flags(fields...)
}

// Build validates the declarations and produces an immutable Collection.
// Nothing is partially constructed: on any violation Build returns an error
// wrapping one of the package sentinels and no collection.
//
// Building with zero declarations is legal and yields an abstract collection
// usable only through its zero/all values and as a base for Extend. A build
// that produces canonical members finalizes the builder.
func (b *Builder) Build() (*Collection, error) {
	if b.finalized {
		return nil, errors.Wrapf(ErrFinalized, "collection %q already has members", b.name)
	}
	if err := validateName(b.name); err != nil {
		return nil, errors.WithMessage(err, "collection name")
	}
	if b.zeroName != "" && b.zeroName == b.allName {
		return nil, errors.Wrapf(ErrDuplicateName, "zero and all aliases both named %q", b.zeroName)
	}

	decls := make([]decl, len(b.decls))
	copy(decls, b.decls)

	if err := b.checkNames(decls); err != nil {
		return nil, err
	}
	if err := b.assignBits(decls); err != nil {
		return nil, err
	}

	c := &Collection{
		name:       b.name,
		byName:     make(map[string]int),
		aliases:    make(map[string]string),
		lookup:     make(map[string]uint64),
		byBits:     make(map[uint64]int),
		zeroName:   b.zeroName,
		allName:    b.allName,
		dotted:     b.dotted,
		unique:     b.unique,
		uniqueBits: b.uniqueBits,
	}

	for i, d := range decls {
		c.names = append(c.names, d.name)
		c.lookup[d.name] = d.bits
		c.universe |= d.bits

		if ci, ok := c.byBits[d.bits]; ok {
			// Later declaration of an already-used bit pattern: an alias of
			// the first-declared member.
			if d.data != nil {
				return nil, errors.Wrapf(ErrAliasData, "flag %q aliases %q", d.name, c.members[ci].name)
			}
			c.aliases[d.name] = c.members[ci].name
			c.byName[d.name] = ci
			continue
		}
		m := Member{
			col:            c,
			name:           d.name,
			bits:           d.bits,
			data:           d.data,
			index:          i,
			indexNoAliases: len(c.members),
		}
		c.byBits[d.bits] = len(c.members)
		c.byName[d.name] = len(c.members)
		c.members = append(c.members, m)
	}

	if err := b.checkUniqueness(c); err != nil {
		return nil, err
	}

	if c.zeroName != "" {
		c.names = append(c.names, c.zeroName)
		c.lookup[c.zeroName] = 0
	}
	if c.allName != "" {
		c.names = append(c.names, c.allName)
		c.lookup[c.allName] = c.universe
	}

	b.finalized = len(c.members) > 0
	return c, nil
}

// checkNames validates each declared name and rejects duplicates and
// collisions with the configured zero/all alias names.
func (b *Builder) checkNames(decls []decl) error {
	seen := make(map[string]struct{}, len(decls))
	for _, d := range decls {
		if err := validateName(d.name); err != nil {
			return err
		}
		if _, dup := seen[d.name]; dup {
			return errors.Wrapf(ErrDuplicateName, "flag %q", d.name)
		}
		if (d.name == b.zeroName && b.zeroName != "") || (d.name == b.allName && b.allName != "") {
			return errors.Wrapf(ErrDuplicateName, "flag %q collides with a reserved alias name", d.name)
		}
		seen[d.name] = struct{}{}
	}
	return nil
}

// assignBits resolves auto declarations in place. Explicitly used bits are
// collected across the whole declaration list first, so an auto flag never
// lands on a bit claimed by a later explicit declaration.
func (b *Builder) assignBits(decls []decl) error {
	var used uint64
	for _, d := range decls {
		if d.auto {
			continue
		}
		if d.bits == 0 {
			return errors.Wrapf(ErrReservedBits, "flag %q", d.name)
		}
		used |= d.bits
	}

	bit := uint64(1)
	for i := range decls {
		if !decls[i].auto {
			continue
		}
		for bit != 0 && bit&used != 0 {
			bit <<= 1
		}
		if bit == 0 {
			return errors.Wrapf(ErrNoFreeBits, "flag %q", decls[i].name)
		}
		decls[i].bits = bit
		used |= bit
		bit <<= 1
	}
	return nil
}

// checkUniqueness enforces the Unique and UniqueBits modes on the resolved
// collection.
func (b *Builder) checkUniqueness(c *Collection) error {
	if b.unique && len(c.aliases) > 0 {
		pairs := make([]string, 0, len(c.aliases))
		for _, name := range c.names {
			if target, ok := c.aliases[name]; ok {
				pairs = append(pairs, name+" -> "+target)
			}
		}
		return errors.Wrapf(ErrUniqueness, "collection %q has aliases: %s", c.name, strings.Join(pairs, ", "))
	}
	if b.uniqueBits {
		var seen uint64
		for _, m := range c.members {
			if seen&m.bits != 0 {
				for _, other := range c.members {
					if other.indexNoAliases < m.indexNoAliases && other.bits&m.bits != 0 {
						return errors.Wrapf(ErrUniqueness, "collection %q: %q and %q have overlapping bits",
							c.name, other.name, m.name)
					}
				}
			}
			seen |= m.bits
		}
	}
	return nil
}

// validateName rejects names that are empty or could not survive the string
// round trip.
func validateName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidName, "empty name")
	}
	if strings.ContainsAny(name, "|,() \t\n") {
		return errors.Wrapf(ErrInvalidName, "name %q", name)
	}
	return nil
}
