package breath

import (
	"math"
	"time"

	"github.com/spf13/cast"

	"github.com/ayoisaiah/breathe/colortemp"
)

// SyncDuration is the length of the transition from the fade-in colors to
// the breathing range.
const SyncDuration = 2 * time.Second

// Keys accepted by ParseConfig.
const (
	KeyBreathsPerMinute     = "breathsPerMinute"
	KeyLightDelay           = "lightDelayMs"
	KeyLightFade            = "lightFadeDurationMs"
	KeySoundDelay           = "soundDelayMs"
	KeySoundFade            = "soundFadeDurationMs"
	KeyDefaultColor         = "defaultColor"
	KeyWarmColor            = "warmColor"
	KeyCoolColor            = "coolColor"
	KeyPrimaryVolumeDefault = "primaryVolumeDefault"
	KeyPrimaryVolumeMin     = "primaryVolumeMin"
	KeyPrimaryVolumeMax     = "primaryVolumeMax"
	KeySecondaryVolume      = "secondaryVolume"
	KeySecondaryEnabled     = "secondaryEnabled"
	KeyPanningEnabled       = "panningEnabled"
	KeyPanningPeriod        = "panningPeriodMs"
)

// Volume is a linear gain envelope for the primary track.
type Volume struct {
	Default float64
	Min     float64
	Max     float64
}

// Config holds the settings of one session. It is not modified while a
// session runs, except for the breathing rate.
type Config struct {
	DefaultColor     colortemp.RGB
	WarmColor        colortemp.RGB
	CoolColor        colortemp.RGB
	PrimaryVolume    Volume
	BreathsPerMinute float64
	LightDelay       time.Duration
	LightFade        time.Duration
	SoundDelay       time.Duration
	SoundFade        time.Duration
	SecondaryVolume  float64
	PanningPeriod    time.Duration
	SecondaryEnabled bool
	PanningEnabled   bool
}

// HalfCycle is the length of one inhale or one exhale.
func (c *Config) HalfCycle() time.Duration {
	if c.BreathsPerMinute <= 0 {
		return 0
	}

	return time.Duration(float64(30*time.Second) / c.BreathsPerMinute)
}

// LightWindow returns the delay and length of the light fade-in. Negative
// values count as zero.
func (c *Config) LightWindow() (delay, fade time.Duration) {
	return max(c.LightDelay, 0), max(c.LightFade, 0)
}

// SoundWindow is LightWindow for the audio fade-in.
func (c *Config) SoundWindow() (delay, fade time.Duration) {
	return max(c.SoundDelay, 0), max(c.SoundFade, 0)
}

// FadeInEnd is the elapsed time at which both fade-in windows are over.
func (c *Config) FadeInEnd() time.Duration {
	lightDelay, lightFade := c.LightWindow()
	soundDelay, soundFade := c.SoundWindow()

	return max(lightDelay+lightFade, soundDelay+soundFade)
}

// SecondaryTarget is the gain of the secondary track once faded in.
func (c *Config) SecondaryTarget() float64 {
	if !c.SecondaryEnabled {
		return 0
	}

	return c.SecondaryVolume
}

// Validate checks every field. Negative delays and fades are accepted and
// behave like zero.
func (c *Config) Validate() error {
	if err := validateRate(c.BreathsPerMinute); err != nil {
		return err
	}

	volumes := []struct {
		name string
		v    float64
	}{
		{"default", c.PrimaryVolume.Default},
		{"minimum", c.PrimaryVolume.Min},
		{"maximum", c.PrimaryVolume.Max},
		{"secondary", c.SecondaryVolume},
	}

	for _, vol := range volumes {
		if math.IsNaN(vol.v) || vol.v < 0 || vol.v > 1 {
			return invalid(errVolumeRange.Fmt(vol.name, vol.v))
		}
	}

	if c.PrimaryVolume.Min > c.PrimaryVolume.Max {
		return invalid(
			errVolumeOrder.Fmt(c.PrimaryVolume.Min, c.PrimaryVolume.Max),
		)
	}

	if c.PanningEnabled && c.PanningPeriod <= 0 {
		return invalid(errPanningPeriod)
	}

	return nil
}

func validateRate(bpm float64) error {
	if math.IsNaN(bpm) || math.IsInf(bpm, 0) || bpm <= 0 {
		return invalid(errRateTooLow.Fmt(bpm))
	}

	return nil
}

// ParseConfig builds a Config from a flat key-value map such as a stored
// preset. Values may be numbers, numeric strings or booleans. Unknown keys
// are ignored, missing numbers and colors are errors and missing booleans
// are false. The result is validated.
func ParseConfig(m map[string]any) (Config, error) {
	p := parser{m: m}

	cfg := Config{
		BreathsPerMinute: p.float(KeyBreathsPerMinute),
		LightDelay:       p.millis(KeyLightDelay),
		LightFade:        p.millis(KeyLightFade),
		SoundDelay:       p.millis(KeySoundDelay),
		SoundFade:        p.millis(KeySoundFade),
		DefaultColor:     p.color(KeyDefaultColor),
		WarmColor:        p.color(KeyWarmColor),
		CoolColor:        p.color(KeyCoolColor),
		PrimaryVolume: Volume{
			Default: p.float(KeyPrimaryVolumeDefault),
			Min:     p.float(KeyPrimaryVolumeMin),
			Max:     p.float(KeyPrimaryVolumeMax),
		},
		SecondaryVolume:  p.float(KeySecondaryVolume),
		SecondaryEnabled: p.bool(KeySecondaryEnabled),
		PanningEnabled:   p.bool(KeyPanningEnabled),
		PanningPeriod:    p.millis(KeyPanningPeriod),
	}

	if p.err != nil {
		return Config{}, p.err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Map is the inverse of ParseConfig.
func (c *Config) Map() map[string]any {
	return map[string]any{
		KeyBreathsPerMinute:     c.BreathsPerMinute,
		KeyLightDelay:           c.LightDelay.Milliseconds(),
		KeyLightFade:            c.LightFade.Milliseconds(),
		KeySoundDelay:           c.SoundDelay.Milliseconds(),
		KeySoundFade:            c.SoundFade.Milliseconds(),
		KeyDefaultColor:         c.DefaultColor.Hex(),
		KeyWarmColor:            c.WarmColor.Hex(),
		KeyCoolColor:            c.CoolColor.Hex(),
		KeyPrimaryVolumeDefault: c.PrimaryVolume.Default,
		KeyPrimaryVolumeMin:     c.PrimaryVolume.Min,
		KeyPrimaryVolumeMax:     c.PrimaryVolume.Max,
		KeySecondaryVolume:      c.SecondaryVolume,
		KeySecondaryEnabled:     c.SecondaryEnabled,
		KeyPanningEnabled:       c.PanningEnabled,
		KeyPanningPeriod:        c.PanningPeriod.Milliseconds(),
	}
}

// parser records the first error so ParseConfig reads like a struct
// literal.
type parser struct {
	m   map[string]any
	err error
}

func (p *parser) lookup(key string) (any, bool) {
	v, ok := p.m[key]
	if !ok || v == nil {
		if p.err == nil {
			p.err = invalid(errMissingKey.Fmt(key))
		}

		return nil, false
	}

	return v, true
}

func (p *parser) fail(key string, v any) {
	if p.err == nil {
		p.err = invalid(errInvalidValue.Fmt(key, v))
	}
}

func (p *parser) float(key string) float64 {
	v, ok := p.lookup(key)
	if !ok {
		return 0
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.fail(key, v)
		return 0
	}

	return f
}

func (p *parser) millis(key string) time.Duration {
	return time.Duration(p.float(key) * float64(time.Millisecond))
}

func (p *parser) color(key string) colortemp.RGB {
	v, ok := p.lookup(key)
	if !ok {
		return colortemp.Black
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		p.fail(key, v)
		return colortemp.Black
	}

	c, err := colortemp.ParseHex(s)
	if err != nil {
		p.fail(key, v)
		return colortemp.Black
	}

	return c
}

func (p *parser) bool(key string) bool {
	v, ok := p.m[key]
	if !ok || v == nil {
		return false
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		p.fail(key, v)
		return false
	}

	return b
}
