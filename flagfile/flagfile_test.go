package flagfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/flagset"
	"github.com/blackwell-systems/flagset/flagfile"
)

const stylesDoc = `
[[collection]]
name = "TextStyle"
flags = "bold, italic"

  [[collection.flag]]
  name = "underline"

  [[collection.flag]]
  name = "heavy"
  bits = 24
  data = "weight"

[[collection]]
name = "Perms"
zero_name = "none"
all_name = ""
unique_bits = true
dotted = false
flags = "read write exec"
`

func TestParseDocument(t *testing.T) {
	collections, err := flagfile.Parse([]byte(stylesDoc))
	require.NoError(t, err)
	require.Len(t, collections, 2)

	styles := collections[0]
	assert.Equal(t, "TextStyle", styles.Name())
	require.Equal(t, 4, styles.Len())

	// Shorthand flags come first, then explicit declarations; "heavy"
	// claims a two-bit pattern the auto flags must steer around.
	assert.Equal(t, uint64(1), styles.Value("bold").Bits())
	assert.Equal(t, uint64(2), styles.Value("italic").Bits())
	assert.Equal(t, uint64(4), styles.Value("underline").Bits())
	assert.Equal(t, uint64(24), styles.Value("heavy").Bits())
	assert.Equal(t, "weight", styles.Value("heavy").Data())

	perms := collections[1]
	assert.Equal(t, "Perms", perms.Name())
	assert.True(t, perms.Value("none").IsEmpty())
	_, enabled := perms.AllName()
	assert.False(t, enabled)
	assert.Equal(t, "Perms(read)", perms.Value("read").String())
}

func TestParseRejectsCoreViolations(t *testing.T) {
	_, err := flagfile.Parse([]byte(`
[[collection]]
name = "Bad"
unique = true

  [[collection.flag]]
  name = "a"
  bits = 1

  [[collection.flag]]
  name = "b"
  bits = 1
`))
	require.ErrorIs(t, err, flagset.ErrUniqueness)

	_, err = flagfile.Parse([]byte(`
[[collection]]
name = "Bad"

  [[collection.flag]]
  name = "zero"
  bits = 0
`))
	require.ErrorIs(t, err, flagset.ErrReservedBits)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := flagfile.Parse([]byte(`
[[collection]]
name = "Typo"
flags = "a b"
uniqueness = true
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := flagfile.Parse([]byte(""))
	require.Error(t, err)
}

func TestLoadInto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.toml")
	require.NoError(t, os.WriteFile(path, []byte(stylesDoc), 0o644))

	reg := flagset.NewRegistry()
	collections, err := flagfile.LoadInto(path, reg)
	require.NoError(t, err)
	require.Len(t, collections, 2)

	c, ok := reg.Lookup("TextStyle")
	require.True(t, ok)
	assert.Same(t, collections[0], c)
	assert.Equal(t, []string{"Perms", "TextStyle"}, reg.Names())
}
