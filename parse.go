package flagset

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// SimpleString renders the canonical string form: the decomposed member
// names joined by '|' in declaration order, or "" for the zero value.
// Fails with an error wrapping ErrUnrepresentable when the value holds bits
// outside the declared universe.
func (v Value) SimpleString() (string, error) {
	members, err := v.Members()
	if err != nil {
		return "", err
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.name
	}
	return strings.Join(names, "|"), nil
}

// String renders the verbose form: "Name()", "Name.member" (single member,
// when the collection's dotted display is enabled) or "Name(a|b)". Bits no
// canonical member covers are rendered as a trailing hex token and do not
// survive FromString.
func (v Value) String() string {
	if v.col == nil {
		return fmt.Sprintf("Value(0x%x)", v.bits)
	}
	picked, rest := v.decompose()
	if v.col.dotted && rest == 0 && len(picked) == 1 {
		return v.col.name + "." + picked[0].name
	}
	tokens := make([]string, 0, len(picked)+1)
	for _, m := range picked {
		tokens = append(tokens, m.name)
	}
	if rest != 0 {
		tokens = append(tokens, fmt.Sprintf("0x%x", rest))
	}
	return v.col.name + "(" + strings.Join(tokens, "|") + ")"
}

// FromSimpleString parses the canonical string form: member names joined by
// '|', where "" is the zero value. Names may be canonical members, aliases
// or the zero/all alias names; duplicates are idempotent. Fails with an
// error wrapping ErrUnknownFlagName on any unrecognized token.
func (c *Collection) FromSimpleString(s string) (Value, error) {
	bits, err := c.bitsFromSimple(s)
	if err != nil {
		return Value{}, err
	}
	return Value{col: c, bits: bits}, nil
}

func (c *Collection) bitsFromSimple(s string) (uint64, error) {
	var bits uint64
	for _, tok := range strings.Split(s, "|") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		b, ok := c.lookup[tok]
		if !ok {
			return 0, errors.Wrapf(ErrUnknownFlagName, "%s.%s in %q", c.name, tok, s)
		}
		bits |= b
	}
	return bits, nil
}

// FromString parses both the canonical simple form and the verbose forms
// produced by Value.String: "Name()", "Name.member" and "Name(a|b)".
func (c *Collection) FromString(s string) (Value, error) {
	if len(s) <= len(c.name) || !strings.HasPrefix(s, c.name) {
		return c.FromSimpleString(s)
	}
	switch s[len(c.name)] {
	case '(':
		if !strings.HasSuffix(s, ")") {
			return Value{}, errors.Errorf("flagset: %s: invalid input %q", c.name, s)
		}
		return c.FromSimpleString(s[len(c.name)+1 : len(s)-1])
	case '.':
		name := s[len(c.name)+1:]
		bits, ok := c.lookup[name]
		if !ok {
			return Value{}, errors.Wrapf(ErrUnknownFlagName, "%s.%s in %q", c.name, name, s)
		}
		return Value{col: c, bits: bits}, nil
	default:
		return Value{}, errors.Errorf("flagset: %s: invalid input %q", c.name, s)
	}
}
