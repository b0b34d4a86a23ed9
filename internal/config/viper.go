package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyBreathsPerMinute     = "breath.per_minute"
	keyLightDelay           = "light.delay"
	keyLightFade            = "light.fade"
	keySoundDelay           = "sound.delay"
	keySoundFade            = "sound.fade"
	keyPaletteStartKelvin   = "palette.start_kelvin"
	keyPaletteStartHex      = "palette.start_hex"
	keyPaletteEndKelvin     = "palette.end_kelvin"
	keyPaletteEndHex        = "palette.end_hex"
	keyPaletteDefaultKelvin = "palette.default_kelvin"
	keyPaletteWarmKelvin    = "palette.warm_kelvin"
	keyPaletteCoolKelvin    = "palette.cool_kelvin"
	keyPaletteDefaultColor  = "palette.default_color"
	keyPaletteWarmColor     = "palette.warm_color"
	keyPaletteCoolColor     = "palette.cool_color"
	keyVolumeDefault        = "volume.default"
	keyVolumeMin            = "volume.min"
	keyVolumeMax            = "volume.max"
	keySecondaryEnabled     = "secondary.enabled"
	keySecondaryVolume      = "secondary.volume"
	keyPanningEnabled       = "panning.enabled"
	keyPanningPeriod        = "panning.period"
	keySoundscape           = "soundscape"
	keySessionDuration      = "session.duration"
	keyFrameRate            = "settings.frame_rate"
	keySessionCmd           = "settings.cmd"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
	keyMQTTEnabled          = "mqtt.enabled"
	keyMQTTBroker           = "mqtt.broker"
	keyMQTTTopic            = "mqtt.topic"
	keyMQTTMinInterval      = "mqtt.min_interval"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// A missing file is created from the current values.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper registers the current values of c as defaults, so options
// applied earlier (such as the first-run prompt) end up in a new file.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyBreathsPerMinute, c.Breath.PerMinute)
	v.SetDefault(keyLightDelay, c.Light.Delay.String())
	v.SetDefault(keyLightFade, c.Light.Fade.String())
	v.SetDefault(keySoundDelay, c.Sound.Delay.String())
	v.SetDefault(keySoundFade, c.Sound.Fade.String())
	v.SetDefault(keyPaletteStartKelvin, c.Palette.StartKelvin)
	v.SetDefault(keyPaletteStartHex, c.Palette.StartHex)
	v.SetDefault(keyPaletteEndKelvin, c.Palette.EndKelvin)
	v.SetDefault(keyPaletteEndHex, c.Palette.EndHex)
	v.SetDefault(keyPaletteDefaultKelvin, c.Palette.DefaultKelvin)
	v.SetDefault(keyPaletteWarmKelvin, c.Palette.WarmKelvin)
	v.SetDefault(keyPaletteCoolKelvin, c.Palette.CoolKelvin)
	v.SetDefault(keyPaletteDefaultColor, c.Palette.DefaultColor)
	v.SetDefault(keyPaletteWarmColor, c.Palette.WarmColor)
	v.SetDefault(keyPaletteCoolColor, c.Palette.CoolColor)
	v.SetDefault(keyVolumeDefault, c.Volume.Default)
	v.SetDefault(keyVolumeMin, c.Volume.Min)
	v.SetDefault(keyVolumeMax, c.Volume.Max)
	v.SetDefault(keySecondaryEnabled, c.Secondary.Enabled)
	v.SetDefault(keySecondaryVolume, c.Secondary.Volume)
	v.SetDefault(keyPanningEnabled, c.Panning.Enabled)
	v.SetDefault(keyPanningPeriod, c.Panning.Period.String())
	v.SetDefault(keySoundscape, c.Soundscape)
	v.SetDefault(keySessionDuration, c.Limits.Duration.String())
	v.SetDefault(keyFrameRate, c.Settings.FrameRate)
	v.SetDefault(keySessionCmd, c.Settings.Cmd)
	v.SetDefault(keyNotificationsEnabled, c.Notifications.Enabled)
	v.SetDefault(keyDarkTheme, c.Display.DarkTheme)
	v.SetDefault(keyMQTTEnabled, c.MQTT.Enabled)
	v.SetDefault(keyMQTTBroker, c.MQTT.Broker)
	v.SetDefault(keyMQTTTopic, c.MQTT.Topic)
	v.SetDefault(keyMQTTMinInterval, c.MQTT.MinInterval.String())
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	c.Breath.PerMinute = v.GetFloat64(keyBreathsPerMinute)

	c.Palette = PaletteConfig{
		StartKelvin:   v.GetInt(keyPaletteStartKelvin),
		StartHex:      v.GetString(keyPaletteStartHex),
		EndKelvin:     v.GetInt(keyPaletteEndKelvin),
		EndHex:        v.GetString(keyPaletteEndHex),
		DefaultKelvin: v.GetInt(keyPaletteDefaultKelvin),
		WarmKelvin:    v.GetInt(keyPaletteWarmKelvin),
		CoolKelvin:    v.GetInt(keyPaletteCoolKelvin),
		DefaultColor:  v.GetString(keyPaletteDefaultColor),
		WarmColor:     v.GetString(keyPaletteWarmColor),
		CoolColor:     v.GetString(keyPaletteCoolColor),
	}

	c.Volume = VolumeConfig{
		Default: v.GetInt(keyVolumeDefault),
		Min:     v.GetInt(keyVolumeMin),
		Max:     v.GetInt(keyVolumeMax),
	}

	c.Secondary = SecondaryConfig{
		Enabled: v.GetBool(keySecondaryEnabled),
		Volume:  v.GetInt(keySecondaryVolume),
	}

	c.Panning.Enabled = v.GetBool(keyPanningEnabled)
	c.Soundscape = v.GetString(keySoundscape)
	c.Settings.FrameRate = v.GetInt(keyFrameRate)
	c.Settings.Cmd = v.GetString(keySessionCmd)
	c.Notifications.Enabled = v.GetBool(keyNotificationsEnabled)
	c.Display.DarkTheme = v.GetBool(keyDarkTheme)
	c.MQTT.Enabled = v.GetBool(keyMQTTEnabled)
	c.MQTT.Broker = v.GetString(keyMQTTBroker)
	c.MQTT.Topic = v.GetString(keyMQTTTopic)

	durations := map[string]*time.Duration{
		keyLightDelay:      &c.Light.Delay,
		keyLightFade:       &c.Light.Fade,
		keySoundDelay:      &c.Sound.Delay,
		keySoundFade:       &c.Sound.Fade,
		keyPanningPeriod:   &c.Panning.Period,
		keySessionDuration: &c.Limits.Duration,
		keyMQTTMinInterval: &c.MQTT.MinInterval,
	}

	for key, dst := range durations {
		d, err := parseDuration(v.GetString(key))
		if err != nil {
			return errReadConfig.Wrap(err)
		}

		*dst = d
	}

	return nil
}

// parseDuration reads duration strings. A bare number is taken as seconds
// and an empty value as zero.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	// Try parsing as duration string first
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	// Try parsing as seconds in case duration unit is absent
	secs, err := time.ParseDuration(s + "s")
	if err != nil {
		return 0, errInvalidDuration.Fmt(s)
	}

	return secs, nil
}
