package colortemp

import (
	"math"
	"sync"
)

const (
	// LookupStep is the Kelvin distance between two lookup table samples.
	LookupStep = 100

	// LookupMinKelvin and LookupMaxKelvin bound the inverse lookup. Above
	// LookupMaxKelvin a single 8-bit color covers more than two steps of
	// temperature, so no estimate can stay within one step of the input.
	LookupMinKelvin = MinKelvin
	LookupMaxKelvin = 11000
)

// Sample is a single entry of the inverse lookup table.
type Sample struct {
	Kelvin int
	RGB    RGB
}

var (
	lookupOnce  sync.Once
	lookupTable []Sample
)

// LookupTable returns the samples of KelvinToRGB from LookupMinKelvin to
// LookupMaxKelvin in LookupStep increments. The table is built on first use
// and shared, so callers must not modify it.
func LookupTable() []Sample {
	lookupOnce.Do(func() {
		n := (LookupMaxKelvin-LookupMinKelvin)/LookupStep + 1
		lookupTable = make([]Sample, 0, n)

		for k := LookupMinKelvin; k <= LookupMaxKelvin; k += LookupStep {
			lookupTable = append(lookupTable, Sample{
				Kelvin: k,
				RGB:    KelvinToRGB(float64(k)),
			})
		}
	})

	return lookupTable
}

// RGBToKelvin estimates the temperature of c. The closest lookup samples
// locate it to within a step; the span around them is then walked one
// Kelvin at a time and the middle of the temperatures closest to c is
// returned. The forward model saturates, so an exact color usually maps
// back to a whole interval and the middle keeps the error under one step.
func RGBToKelvin(c RGB) int {
	best := math.MaxInt
	first, last := LookupMinKelvin, LookupMinKelvin

	for _, s := range LookupTable() {
		d := distance(c, s.RGB)

		switch {
		case d < best:
			best = d
			first, last = s.Kelvin, s.Kelvin
		case d == best:
			last = s.Kelvin
		}
	}

	lo := max(first-LookupStep, LookupMinKelvin)
	hi := min(last+LookupStep, LookupMaxKelvin)

	best = math.MaxInt

	for k := lo; k <= hi; k++ {
		d := distance(c, KelvinToRGB(float64(k)))

		switch {
		case d < best:
			best = d
			first, last = k, k
		case d == best:
			last = k
		}
	}

	return (first + last + 1) / 2
}

// HexToKelvin parses hex and estimates its temperature.
func HexToKelvin(hex string) (int, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return 0, err
	}

	return RGBToKelvin(c), nil
}

func distance(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)

	return dr*dr + dg*dg + db*db
}
