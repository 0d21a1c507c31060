package svgraster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// namedColors is the palette accepted by name. Figures built through
// the model always carry hex colors; the names cover hand-edited
// documents.
var namedColors = map[string]color.NRGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
}

// parseColor resolves a paint value: #rgb and #rrggbb hex forms,
// rgb() and rgba() functions, named colors, and the explicit
// "none"/"transparent", which yield a nil color.
func parseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "none" || s == "transparent":
		return nil, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBColor(s[len("rgb(") : len(s)-1])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBAColor(s[len("rgba(") : len(s)-1])
	}
	if col, ok := namedColors[s]; ok {
		return col, nil
	}
	return nil, fmt.Errorf("unsupported color %q", s)
}

func parseHexColor(s string) (color.Color, error) {
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	switch len(s) {
	case 4: // #rgb, each nibble doubled
		r := uint8(v >> 8 & 0xf)
		g := uint8(v >> 4 & 0xf)
		b := uint8(v & 0xf)
		return color.NRGBA{r * 0x11, g * 0x11, b * 0x11, 0xff}, nil
	case 7: // #rrggbb
		return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
	}
	return nil, fmt.Errorf("invalid hex color %q", s)
}

func parseRGBColor(args string) (color.Color, error) {
	chans := splitOnCommaOrSpace(args)
	if len(chans) != 3 {
		return nil, errParamMismatch
	}
	var out [3]uint8
	for i, ch := range chans {
		v, err := strconv.ParseUint(strings.TrimSpace(ch), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid color channel %q", ch)
		}
		out[i] = uint8(v)
	}
	return color.NRGBA{out[0], out[1], out[2], 0xff}, nil
}

func parseRGBAColor(args string) (color.Color, error) {
	chans := splitOnCommaOrSpace(args)
	if len(chans) != 4 {
		return nil, errParamMismatch
	}
	col, err := parseRGBColor(strings.Join(chans[:3], " "))
	if err != nil {
		return nil, err
	}
	alpha, err := strconv.ParseFloat(strings.TrimSpace(chans[3]), 64)
	if err != nil || alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("invalid alpha value %q", chans[3])
	}
	out := col.(color.NRGBA)
	out.A = uint8(alpha*255 + 0.5)
	return out, nil
}
