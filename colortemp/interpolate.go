package colortemp

import "math"

// Clamp01 limits f to [0,1]. NaN maps to 0.
func Clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}

	if f > 1 {
		return 1
	}

	return f
}

// Lerp blends a and b linearly; f is clamped to [0,1].
func Lerp(a, b, f float64) float64 {
	f = Clamp01(f)

	return a + (b-a)*f
}

// Interpolate blends a towards b per channel; f is clamped to [0,1].
func Interpolate(a, b RGB, f float64) RGB {
	f = Clamp01(f)

	return RGB{
		R: channel(Lerp(float64(a.R), float64(b.R), f)),
		G: channel(Lerp(float64(a.G), float64(b.G), f)),
		B: channel(Lerp(float64(a.B), float64(b.B), f)),
	}
}
