package config

import (
	"regexp"
	"time"

	"github.com/ayoisaiah/breathe/colortemp"
)

var (
	minBreathsPerMinute = 1.0
	maxBreathsPerMinute = 30.0

	minFrameRate = 1
	maxFrameRate = 120

	// Color format validation.
	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if c.Breath.PerMinute < minBreathsPerMinute ||
		c.Breath.PerMinute > maxBreathsPerMinute {
		return errInvalidRate.Fmt(
			minBreathsPerMinute,
			maxBreathsPerMinute,
			c.Breath.PerMinute,
		)
	}

	if err := c.validatePalette(); err != nil {
		return err
	}

	if err := c.validateVolumes(); err != nil {
		return err
	}

	if err := c.validateDurations(); err != nil {
		return err
	}

	if c.Settings.FrameRate < minFrameRate || c.Settings.FrameRate > maxFrameRate {
		return errInvalidFrameRate.Fmt(minFrameRate, maxFrameRate, c.Settings.FrameRate)
	}

	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return errMissingBroker
	}

	return nil
}

func (c *Config) validatePalette() error {
	p := c.Palette

	kelvins := []struct {
		name  string
		value int
	}{
		{"start", p.StartKelvin},
		{"end", p.EndKelvin},
		{"default", p.DefaultKelvin},
		{"warm", p.WarmKelvin},
		{"cool", p.CoolKelvin},
	}

	for _, k := range kelvins {
		if k.value < colortemp.MinKelvin || k.value > colortemp.MaxKelvin {
			return errInvalidKelvin.Fmt(
				k.name,
				colortemp.MinKelvin,
				colortemp.MaxKelvin,
				k.value,
			)
		}
	}

	colors := []struct {
		name  string
		value string
	}{
		{"start", p.StartHex},
		{"end", p.EndHex},
		{"default", p.DefaultColor},
		{"warm", p.WarmColor},
		{"cool", p.CoolColor},
	}

	for _, col := range colors {
		if col.value != "" && !hexColorRegex.MatchString(col.value) {
			return errInvalidColor.Fmt(col.name, col.value)
		}
	}

	return nil
}

func (c *Config) validateVolumes() error {
	percents := []struct {
		name  string
		value int
	}{
		{"default", c.Volume.Default},
		{"minimum", c.Volume.Min},
		{"maximum", c.Volume.Max},
		{"secondary", c.Secondary.Volume},
	}

	for _, p := range percents {
		if p.value < 0 || p.value > 100 {
			return errInvalidPercent.Fmt(p.name, p.value)
		}
	}

	if c.Volume.Min > c.Volume.Max {
		return errVolumeOrder.Fmt(c.Volume.Min, c.Volume.Max)
	}

	return nil
}

func (c *Config) validateDurations() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"light.delay", c.Light.Delay},
		{"light.fade", c.Light.Fade},
		{"sound.delay", c.Sound.Delay},
		{"sound.fade", c.Sound.Fade},
		{"panning.period", c.Panning.Period},
		{"session.duration", c.Limits.Duration},
		{"mqtt.min_interval", c.MQTT.MinInterval},
	}

	for _, d := range durations {
		if d.value < 0 {
			return errNegativeDuration.Fmt(d.name, d.value)
		}
	}

	return nil
}
