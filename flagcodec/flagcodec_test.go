package flagcodec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/blackwell-systems/flagset"
	"github.com/blackwell-systems/flagset/flagcodec"
)

func buildStyles(t *testing.T) *flagset.Collection {
	t.Helper()
	c, err := flagset.NewBuilder("TextStyle").
		Flags("bold", "italic", "underline").
		Build()
	require.NoError(t, err)
	return c
}

func TestMsgpackRoundTripBothModes(t *testing.T) {
	c := buildStyles(t)
	v := c.Value("bold").Or(c.Value("underline"))

	for _, mode := range []flagcodec.Mode{flagcodec.AsString, flagcodec.AsBits} {
		a := flagcodec.New(c, mode)
		data, err := a.Marshal(v)
		require.NoError(t, err)
		got, err := a.Unmarshal(data)
		require.NoError(t, err)
		assert.True(t, got.Equal(v), "mode %d", mode)
	}
}

func TestDecodeAcceptsEitherRepresentation(t *testing.T) {
	c := buildStyles(t)
	v := c.Value("italic")

	strData, err := flagcodec.New(c, flagcodec.AsString).Marshal(v)
	require.NoError(t, err)
	bitsData, err := flagcodec.New(c, flagcodec.AsBits).Marshal(v)
	require.NoError(t, err)

	// An AsBits adapter still reads string payloads and vice versa.
	a := flagcodec.New(c, flagcodec.AsBits)
	got, err := a.Unmarshal(strData)
	require.NoError(t, err)
	assert.True(t, got.Equal(v))
	got, err = a.Unmarshal(bitsData)
	require.NoError(t, err)
	assert.True(t, got.Equal(v))
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	c := buildStyles(t)
	a := flagcodec.New(c, flagcodec.AsBits)

	unknown, err := msgpack.Marshal("bold|blink")
	require.NoError(t, err)
	_, err = a.Unmarshal(unknown)
	require.ErrorIs(t, err, flagset.ErrUnknownFlagName)

	stray, err := msgpack.Marshal(uint64(1 << 20))
	require.NoError(t, err)
	_, err = a.Unmarshal(stray)
	require.ErrorIs(t, err, flagset.ErrUnrepresentable)
}

func TestMarshalRejectsForeignValues(t *testing.T) {
	c := buildStyles(t)
	other, err := flagset.NewBuilder("Other").Flags("x").Build()
	require.NoError(t, err)

	a := flagcodec.New(c, flagcodec.AsString)
	_, err = a.Marshal(other.Value("x"))
	require.ErrorIs(t, err, flagset.ErrTypeMismatch)
}

func TestFieldJSON(t *testing.T) {
	c := buildStyles(t)
	a := flagcodec.New(c, flagcodec.AsString)
	v := c.Value("bold").Or(c.Value("italic"))

	data, err := json.Marshal(a.Field(v))
	require.NoError(t, err)
	assert.JSONEq(t, `"bold|italic"`, string(data))

	f := a.EmptyField()
	require.NoError(t, json.Unmarshal(data, &f))
	assert.True(t, f.Value.Equal(v))

	// Bits mode emits a number; decode accepts it either way.
	ab := flagcodec.New(c, flagcodec.AsBits)
	data, err = json.Marshal(ab.Field(v))
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))

	f = a.EmptyField()
	require.NoError(t, json.Unmarshal(data, &f))
	assert.True(t, f.Value.Equal(v))
}

func TestFieldJSONInStruct(t *testing.T) {
	c := buildStyles(t)
	a := flagcodec.New(c, flagcodec.AsString)

	type doc struct {
		Title string          `json:"title"`
		Style flagcodec.Field `json:"style"`
	}
	in := doc{Title: "heading", Style: a.Field(c.Value("bold"))}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"heading","style":"bold"}`, string(data))

	out := doc{Style: a.EmptyField()}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.Style.Value.Equal(c.Value("bold")))
}

func TestFieldMsgpack(t *testing.T) {
	c := buildStyles(t)
	a := flagcodec.New(c, flagcodec.AsBits)
	v := c.All()

	data, err := msgpack.Marshal(a.Field(v))
	require.NoError(t, err)

	f := a.EmptyField()
	require.NoError(t, msgpack.Unmarshal(data, &f))
	assert.True(t, f.Value.Equal(v))
}

func TestUnboundFieldFails(t *testing.T) {
	var f flagcodec.Field
	_, err := json.Marshal(&f)
	require.Error(t, err)
	require.Error(t, json.Unmarshal([]byte(`"bold"`), &f))
}
