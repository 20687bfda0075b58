// Package flagcodec serializes flag values across process boundaries. It is
// an adapter over the public flagset surface — Bits, SimpleString, FromBits,
// FromSimpleString — and never reaches into descriptor internals.
//
// An Adapter is bound to one collection and one wire Mode: AsString encodes
// the canonical simple string (readable, robust against bit reassignment),
// AsBits encodes the raw bit pattern (compact, stable only while bit
// assignments are). Decoding accepts either representation regardless of
// mode, and rejects bit patterns outside the collection's universe as
// malformed input.
package flagcodec

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/blackwell-systems/flagset"
)

// Mode selects the wire representation of a flag value.
type Mode int

const (
	// AsString encodes values as their canonical simple string.
	AsString Mode = iota
	// AsBits encodes values as their raw bit pattern.
	AsBits
)

// Adapter encodes and decodes values of one collection.
type Adapter struct {
	col  *flagset.Collection
	mode Mode
}

// New creates an adapter bound to a collection.
func New(col *flagset.Collection, mode Mode) *Adapter {
	return &Adapter{col: col, mode: mode}
}

// Collection returns the collection the adapter is bound to.
func (a *Adapter) Collection() *flagset.Collection { return a.col }

// Marshal encodes a value to msgpack.
func (a *Adapter) Marshal(v flagset.Value) ([]byte, error) {
	if v.Collection() != a.col {
		return nil, errors.Wrapf(flagset.ErrTypeMismatch, "flagcodec: value of %q, adapter bound to %q",
			v.Collection().Name(), a.col.Name())
	}
	if a.mode == AsBits {
		return msgpack.Marshal(v.Bits())
	}
	s, err := v.SimpleString()
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(s)
}

// Unmarshal decodes a msgpack payload produced in either mode.
func (a *Adapter) Unmarshal(data []byte) (flagset.Value, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	return a.decodeMsgpack(dec)
}

func (a *Adapter) decodeMsgpack(dec *msgpack.Decoder) (flagset.Value, error) {
	code, err := dec.PeekCode()
	if err != nil {
		return flagset.Value{}, errors.Wrap(err, "flagcodec: peek")
	}
	if msgpcode.IsString(code) {
		s, err := dec.DecodeString()
		if err != nil {
			return flagset.Value{}, errors.Wrap(err, "flagcodec: decode string")
		}
		return a.col.FromSimpleString(s)
	}
	bits, err := dec.DecodeUint64()
	if err != nil {
		return flagset.Value{}, errors.Wrap(err, "flagcodec: decode bits")
	}
	return a.fromBits(bits)
}

// fromBits validates a decoded bit pattern against the universe. Arbitrary
// bits are legal inside a process, but on the wire they indicate a payload
// from a different or newer collection layout.
func (a *Adapter) fromBits(bits uint64) (flagset.Value, error) {
	if bits&^a.col.All().Bits() != 0 {
		return flagset.Value{}, errors.Wrapf(flagset.ErrUnrepresentable,
			"flagcodec: %s: bits 0x%x", a.col.Name(), bits)
	}
	return a.col.FromBits(bits), nil
}

// Field wraps a value for embedding in structs serialized with
// encoding/json or msgpack. Decoding into a Field requires one obtained
// from an Adapter, so the collection is known.
type Field struct {
	adapter *Adapter
	Value   flagset.Value
}

// Field wraps a value of the adapter's collection.
func (a *Adapter) Field(v flagset.Value) Field {
	return Field{adapter: a, Value: v}
}

// EmptyField returns a zero-valued field ready to be decoded into.
func (a *Adapter) EmptyField() Field {
	return Field{adapter: a, Value: a.col.Zero()}
}

var (
	_ json.Marshaler        = Field{}
	_ json.Unmarshaler      = (*Field)(nil)
	_ msgpack.CustomEncoder = Field{}
	_ msgpack.CustomDecoder = (*Field)(nil)
)

// MarshalJSON encodes the wrapped value per the adapter's mode.
func (f Field) MarshalJSON() ([]byte, error) {
	if f.adapter == nil {
		return nil, errors.New("flagcodec: field not bound to an adapter")
	}
	if f.adapter.mode == AsBits {
		return json.Marshal(f.Value.Bits())
	}
	s, err := f.Value.SimpleString()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes either representation.
func (f *Field) UnmarshalJSON(data []byte) error {
	if f.adapter == nil {
		return errors.New("flagcodec: field not bound to an adapter")
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return errors.Wrap(err, "flagcodec: decode string")
		}
		v, err := f.adapter.col.FromSimpleString(s)
		if err != nil {
			return err
		}
		f.Value = v
		return nil
	}
	bits, err := strconv.ParseUint(string(trimmed), 10, 64)
	if err != nil {
		return errors.Wrap(err, "flagcodec: decode bits")
	}
	v, err := f.adapter.fromBits(bits)
	if err != nil {
		return err
	}
	f.Value = v
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (f Field) EncodeMsgpack(enc *msgpack.Encoder) error {
	if f.adapter == nil {
		return errors.New("flagcodec: field not bound to an adapter")
	}
	if f.adapter.mode == AsBits {
		return enc.EncodeUint64(f.Value.Bits())
	}
	s, err := f.Value.SimpleString()
	if err != nil {
		return err
	}
	return enc.EncodeString(s)
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (f *Field) DecodeMsgpack(dec *msgpack.Decoder) error {
	if f.adapter == nil {
		return errors.New("flagcodec: field not bound to an adapter")
	}
	v, err := f.adapter.decodeMsgpack(dec)
	if err != nil {
		return err
	}
	f.Value = v
	return nil
}
