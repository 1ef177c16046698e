package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xRadioAc7iv/go-picklecache/internal/codec"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"gob", codec.Gob, false},
		{"JSON", codec.JSON, false},
		{" yaml ", codec.YAML, false},
		{"yml", codec.YAML, false},
		{"pickle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := codec.Lookup(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, codec.ErrUnknownCodec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
		})
	}
}

func TestRoundTripStringMap(t *testing.T) {
	in := map[string]string{
		"apple": "banana",
		"empty": "",
		"city":  "new york",
		"emoji": "🚀🔥",
	}

	for _, name := range codec.Names() {
		t.Run(name, func(t *testing.T) {
			c, err := codec.Lookup(name)
			require.NoError(t, err)

			data, err := c.Encode(in)
			require.NoError(t, err)

			out := map[string]string{}
			require.NoError(t, c.Decode(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

type point struct {
	X, Y int
	Tag  string
}

func TestGobStructValuesAndIntKeys(t *testing.T) {
	c, err := codec.Lookup(codec.Gob)
	require.NoError(t, err)

	in := map[int]point{
		0:  {},
		7:  {X: 1, Y: 2, Tag: "a"},
		-3: {X: -1, Tag: "neg"},
	}

	data, err := c.Encode(in)
	require.NoError(t, err)

	out := map[int]point{}
	require.NoError(t, c.Decode(data, &out))
	assert.Equal(t, in, out)
}

func TestJSONIntKeys(t *testing.T) {
	c, err := codec.Lookup(codec.JSON)
	require.NoError(t, err)

	data, err := c.Encode(map[int]bool{1: true, 2: false})
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":true,"2":false}`, string(data))

	out := map[int]bool{}
	require.NoError(t, c.Decode(data, &out))
	assert.Equal(t, map[int]bool{1: true, 2: false}, out)
}

type labelled struct {
	Labels []string
	Raw    []byte
}

func TestJSONRejectsInvalidUTF8(t *testing.T) {
	c, err := codec.Lookup(codec.JSON)
	require.NoError(t, err)

	tests := []struct {
		name string
		in   any
	}{
		{"key", map[string]string{"k\xff": "v"}},
		{"value", map[string]string{"k": "v\xfe"}},
		{"nested in struct", map[int]labelled{1: {Labels: []string{"ok", "\xc3"}}}},
		{"behind interface", map[string]any{"k": []any{"\xff"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Encode(tt.in)
			assert.ErrorIs(t, err, codec.ErrInvalidUTF8)
		})
	}

	t.Run("bytes and valid unicode pass", func(t *testing.T) {
		_, err := c.Encode(map[string]labelled{"🚀": {Labels: []string{"ü"}, Raw: []byte{0xff}}})
		assert.NoError(t, err)
	})
}

func TestDecodeGarbage(t *testing.T) {
	for _, name := range []string{codec.Gob, codec.JSON} {
		t.Run(name, func(t *testing.T) {
			c, err := codec.Lookup(name)
			require.NoError(t, err)

			out := map[string]string{}
			assert.Error(t, c.Decode([]byte{0xff, 0x00, 0x13, 0x37}, &out))
		})
	}
}
