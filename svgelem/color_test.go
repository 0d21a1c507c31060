package svgelem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	valid := []struct {
		in   string
		want RGB
	}{
		{"f7ebec", RGB{247, 235, 236}},
		{"#f7ebec", RGB{247, 235, 236}},
		{"000000", RGB{0, 0, 0}},
		{"ffffff", RGB{255, 255, 255}},
		{"#abcdef", RGB{0xab, 0xcd, 0xef}},
	}
	for _, tt := range valid {
		c, err := ParseHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c, tt.in)
	}

	invalid := []string{
		"", "a", "abcde", "abcdefg", "abcdefgh",
		"#bcdefgh", "#12345z", "#123z56", "#1z3456",
		"f7ebec#", "##bcde",
	}
	for _, in := range invalid {
		_, err := ParseHex(in)
		assert.Error(t, err, in)
	}
}

func TestRGBStrings(t *testing.T) {
	c := RGB{247, 235, 236}
	assert.Equal(t, "#f7ebec", c.Hex())
	assert.Equal(t, "rgb(247, 235, 236)", c.RGBString())
	assert.Equal(t, "#f7ebec", c.String())

	assert.Equal(t, "#000000", Black.Hex())
	assert.Equal(t, "#ffffff", White.Hex())
	assert.Equal(t, "rgb(0, 0, 0)", Black.RGBString())
}

func TestRGBA(t *testing.T) {
	r, g, b, a := White.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)

	r, _, _, a = RGB{0x80, 0, 0}.RGBA()
	assert.Equal(t, uint32(0x8080), r)
	assert.Equal(t, uint32(0xffff), a)
}
