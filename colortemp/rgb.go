// Package colortemp converts between correlated color temperatures and RGB
// colors, and blends colors for the light envelope
package colortemp

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// Black is the color of an idle light.
var Black = RGB{}

// Hex returns the color in #rrggbb form.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// ParseHex parses a #rrggbb (or #rgb) color.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, errInvalidHex.Fmt(s)
	}

	r, g, b := c.RGB255()

	return RGB{R: r, G: g, B: b}, nil
}

// MustParseHex is like ParseHex but panics on malformed input. It is meant
// for package-level defaults.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}

	return c
}

// channel clamps v to [0,255] and rounds it. NaN maps to 0.
func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}

	if v >= 255 {
		return 255
	}

	return uint8(math.Round(v))
}
