// Package flagfile loads flag collection declarations from TOML documents.
// It is a declaration front-end for flagset: documents are translated into
// builder calls, so every validation rule of the core applies unchanged.
//
// A document declares one or more collections:
//
//	[[collection]]
//	name = "TextStyle"
//	flags = "bold italic"          # shorthand, auto-assigned in order
//
//	[[collection.flag]]            # explicit declarations follow shorthand
//	name = "underline"
//
//	[[collection.flag]]
//	name = "heavy"
//	bits = 24
//	data = "weight"
//
// Optional collection keys: zero_name / all_name (empty string disables the
// alias, omitting the key keeps the library default), unique, unique_bits,
// dotted.
package flagfile

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/blackwell-systems/flagset"
)

type document struct {
	Collections []collectionDef `toml:"collection"`
}

type collectionDef struct {
	Name       string    `toml:"name"`
	ZeroName   *string   `toml:"zero_name"`
	AllName    *string   `toml:"all_name"`
	Unique     bool      `toml:"unique"`
	UniqueBits bool      `toml:"unique_bits"`
	Dotted     *bool     `toml:"dotted"`
	Flags      string    `toml:"flags"`
	Flag       []flagDef `toml:"flag"`
}

type flagDef struct {
	Name string  `toml:"name"`
	Bits *uint64 `toml:"bits"`
	Data any     `toml:"data"`
}

// Parse builds the collections declared in a TOML document. Unknown keys are
// rejected, so typos in a document fail loudly instead of silently dropping
// configuration.
func Parse(data []byte) ([]*flagset.Collection, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(err, "flagfile: decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("flagfile: unknown key %q", undecoded[0].String())
	}
	if len(doc.Collections) == 0 {
		return nil, errors.New("flagfile: document declares no collections")
	}

	collections := make([]*flagset.Collection, 0, len(doc.Collections))
	for _, def := range doc.Collections {
		c, err := build(def)
		if err != nil {
			return nil, errors.WithMessagef(err, "flagfile: collection %q", def.Name)
		}
		collections = append(collections, c)
	}
	return collections, nil
}

// Load reads and parses a TOML document from a file.
func Load(path string) ([]*flagset.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "flagfile: read")
	}
	return Parse(data)
}

// LoadInto loads a document and registers every collection it declares.
func LoadInto(path string, reg *flagset.Registry) ([]*flagset.Collection, error) {
	collections, err := Load(path)
	if err != nil {
		return nil, err
	}
	for _, c := range collections {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return collections, nil
}

func build(def collectionDef) (*flagset.Collection, error) {
	b := flagset.NewBuilder(def.Name)
	if def.ZeroName != nil {
		if *def.ZeroName == "" {
			b.NoZeroName()
		} else {
			b.ZeroName(*def.ZeroName)
		}
	}
	if def.AllName != nil {
		if *def.AllName == "" {
			b.NoAllName()
		} else {
			b.AllName(*def.AllName)
		}
	}
	if def.Unique {
		b.Unique()
	}
	if def.UniqueBits {
		b.UniqueBits()
	}
	if def.Dotted != nil {
		b.DottedSingleFlag(*def.Dotted)
	}

	if def.Flags != "" {
		b.FlagList(def.Flags)
	}
	for _, f := range def.Flag {
		fb := b.Flag(f.Name)
		if f.Bits != nil {
			fb.Bits(*f.Bits)
		}
		if f.Data != nil {
			fb.Data(f.Data)
		}
		fb.Add()
	}
	return b.Build()
}
