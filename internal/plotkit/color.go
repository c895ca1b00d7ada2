package plotkit

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xd6, 0x27, 0x28, 0xff},
	"green":   {0x2c, 0xa0, 0x2c, 0xff},
	"blue":    {0x1f, 0x77, 0xb4, 0xff},
	"orange":  {0xff, 0x7f, 0x0e, 0xff},
	"purple":  {0x94, 0x67, 0xbd, 0xff},
	"brown":   {0x8c, 0x56, 0x4b, 0xff},
	"magenta": {0xe3, 0x77, 0xc2, 0xff},
	"grey":    {0x7f, 0x7f, 0x7f, 0xff},
	"gray":    {0x7f, 0x7f, 0x7f, 0xff},
	"yellow":  {0xbc, 0xbd, 0x22, 0xff},
	"cyan":    {0x17, 0xbe, 0xcf, 0xff},
}

// ParseColor resolves a color name or a #RRGGBB / #RRGGBBAA hex string.
func ParseColor(s string) (color.Color, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok && (len(hex) == 6 || len(hex) == 8) {
		v, err := strconv.ParseUint(hex, 16, 64)
		if err == nil {
			c := color.RGBA{A: 0xff}
			if len(hex) == 8 {
				c.A = uint8(v)
				v >>= 8
			}
			c.B = uint8(v)
			c.G = uint8(v >> 8)
			c.R = uint8(v >> 16)
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown color %q", s)
}
