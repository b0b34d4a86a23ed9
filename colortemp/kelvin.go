package colortemp

import "math"

const (
	// MinKelvin and MaxKelvin bound every temperature the model accepts.
	MinKelvin = 1000
	MaxKelvin = 40000

	// neutralKelvin is used in place of non-finite input.
	neutralKelvin = 6600
)

// ClampKelvin limits k to [MinKelvin, MaxKelvin]. NaN maps to the neutral
// white point.
func ClampKelvin(k float64) float64 {
	switch {
	case math.IsNaN(k):
		return neutralKelvin
	case k < MinKelvin:
		return MinKelvin
	case k > MaxKelvin:
		return MaxKelvin
	}

	return k
}

// KelvinToRGB approximates the color of a black body at temperature k using
// the piecewise fit popularised by Tanner Helland. Out of range input is
// clamped.
func KelvinToRGB(k float64) RGB {
	t := ClampKelvin(k) / 100

	var r, g, b float64

	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}

	switch {
	case t >= 66:
		b = 255
	case t <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

// KelvinToHex is shorthand for KelvinToRGB(k).Hex().
func KelvinToHex(k float64) string {
	return KelvinToRGB(k).Hex()
}
