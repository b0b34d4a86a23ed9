package config

import (
	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/colortemp"
)

// Gradient returns the master Kelvin range.
func (c *Config) Gradient() (colortemp.Gradient, error) {
	start, err := colortemp.NewStop(c.Palette.StartKelvin, c.Palette.StartHex)
	if err != nil {
		return colortemp.Gradient{}, errInvalidColor.Fmt("start", c.Palette.StartHex)
	}

	end, err := colortemp.NewStop(c.Palette.EndKelvin, c.Palette.EndHex)
	if err != nil {
		return colortemp.Gradient{}, errInvalidColor.Fmt("end", c.Palette.EndHex)
	}

	return colortemp.Gradient{Start: start, End: end}, nil
}

// Session derives the settings of a breathing session. Palette colors not
// set explicitly are read off the master gradient at their Kelvin value.
func (c *Config) Session() (breath.Config, error) {
	g, err := c.Gradient()
	if err != nil {
		return breath.Config{}, err
	}

	pick := func(name, hex string, kelvin int) (colortemp.RGB, error) {
		if hex == "" {
			return g.At(kelvin), nil
		}

		rgb, err := colortemp.ParseHex(hex)
		if err != nil {
			return colortemp.RGB{}, errInvalidColor.Fmt(name, hex)
		}

		return rgb, nil
	}

	def, err := pick("default", c.Palette.DefaultColor, c.Palette.DefaultKelvin)
	if err != nil {
		return breath.Config{}, err
	}

	warm, err := pick("warm", c.Palette.WarmColor, c.Palette.WarmKelvin)
	if err != nil {
		return breath.Config{}, err
	}

	cool, err := pick("cool", c.Palette.CoolColor, c.Palette.CoolKelvin)
	if err != nil {
		return breath.Config{}, err
	}

	cfg := breath.Config{
		DefaultColor: def,
		WarmColor:    warm,
		CoolColor:    cool,
		PrimaryVolume: breath.Volume{
			Default: percent(c.Volume.Default),
			Min:     percent(c.Volume.Min),
			Max:     percent(c.Volume.Max),
		},
		BreathsPerMinute: c.Breath.PerMinute,
		LightDelay:       c.Light.Delay,
		LightFade:        c.Light.Fade,
		SoundDelay:       c.Sound.Delay,
		SoundFade:        c.Sound.Fade,
		SecondaryVolume:  percent(c.Secondary.Volume),
		PanningPeriod:    c.Panning.Period,
		SecondaryEnabled: c.Secondary.Enabled,
		PanningEnabled:   c.Panning.Enabled,
	}

	if err := cfg.Validate(); err != nil {
		return breath.Config{}, err
	}

	return cfg, nil
}

func percent(v int) float64 {
	return float64(v) / 100
}
