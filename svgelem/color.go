package svgelem

import (
	"errors"
	"fmt"
	"strconv"
)

// RGB is a 24-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0x00, 0x00, 0x00}
	White = RGB{0xff, 0xff, 0xff}
)

// Transparent is the attribute value disabling a paint.
const Transparent = "transparent"

var errInvalidHexColor = errors.New("invalid hex color")

// ParseHex reads a color in "#rrggbb" or "rrggbb" form.
func ParseHex(s string) (RGB, error) {
	if len(s) == 7 {
		if s[0] != '#' {
			return RGB{}, errInvalidHexColor
		}
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, errInvalidHexColor
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, errInvalidHexColor
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// Hex returns the color in "#rrggbb" form, the form used in
// attribute values.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBString returns the color in "rgb(r, g, b)" form.
func (c RGB) RGBString() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// RGBA implements image/color.Color (alpha-premultiplied, full opacity).
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}
