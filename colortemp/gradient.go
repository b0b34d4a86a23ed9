package colortemp

// Stop is one end of a Kelvin gradient: a temperature and the color chosen
// to represent it, which need not be the black body color.
type Stop struct {
	Kelvin int
	Color  RGB
}

// NewStop builds a Stop from a temperature and an optional hex color. When
// hex is empty the black body color of kelvin is used; when kelvin is zero
// it is estimated from the color.
func NewStop(kelvin int, hex string) (Stop, error) {
	if hex == "" {
		k := int(ClampKelvin(float64(kelvin)))

		return Stop{Kelvin: k, Color: KelvinToRGB(float64(k))}, nil
	}

	c, err := ParseHex(hex)
	if err != nil {
		return Stop{}, err
	}

	if kelvin == 0 {
		kelvin = RGBToKelvin(c)
	}

	return Stop{Kelvin: int(ClampKelvin(float64(kelvin))), Color: c}, nil
}

// Gradient maps temperatures between two stops onto the blend of the stop
// colors. It lets a user pick a warm and cool palette once and then address
// colors inside it by temperature.
type Gradient struct {
	Start Stop
	End   Stop
}

// At returns the gradient color for temperature k. k is clamped to the
// range spanned by the stops.
func (g Gradient) At(k int) RGB {
	lo, hi := g.Start.Kelvin, g.End.Kelvin
	if lo > hi {
		lo, hi = hi, lo
	}

	k = min(max(k, lo), hi)

	span := g.End.Kelvin - g.Start.Kelvin
	if span == 0 {
		return Interpolate(g.Start.Color, g.End.Color, 0.5)
	}

	return Interpolate(
		g.Start.Color,
		g.End.Color,
		float64(k-g.Start.Kelvin)/float64(span),
	)
}
