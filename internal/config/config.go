// Package config loads the user's settings from the config file, the
// first-run prompt and the command line
package config

import (
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		CLI           CLIConfig
		Palette       PaletteConfig
		MQTT          MQTTConfig
		Settings      SettingsConfig
		Soundscape    string
		Light         WindowConfig
		Sound         WindowConfig
		Volume        VolumeConfig
		Panning       PanningConfig
		Secondary     SecondaryConfig
		Limits        LimitConfig
		Breath        BreathConfig
		Notifications NotificationConfig
		Display       DisplayConfig
	}

	// BreathConfig holds the breathing rate
	BreathConfig struct {
		PerMinute float64
	}

	// WindowConfig is a fade-in window: the wait after the session starts
	// and the length of the fade
	WindowConfig struct {
		Delay time.Duration
		Fade  time.Duration
	}

	// PaletteConfig is the Kelvin range the session colors are picked from.
	// A non-empty color overrides the color at the matching Kelvin value.
	PaletteConfig struct {
		StartHex      string
		EndHex        string
		DefaultColor  string
		WarmColor     string
		CoolColor     string
		StartKelvin   int
		EndKelvin     int
		DefaultKelvin int
		WarmKelvin    int
		CoolKelvin    int
	}

	// VolumeConfig holds the primary track volumes in percent
	VolumeConfig struct {
		Default int
		Min     int
		Max     int
	}

	// SecondaryConfig holds the secondary track settings
	SecondaryConfig struct {
		Volume  int
		Enabled bool
	}

	// PanningConfig holds the stereo panning settings
	PanningConfig struct {
		Period  time.Duration
		Enabled bool
	}

	// LimitConfig bounds a session. A zero duration runs until stopped.
	LimitConfig struct {
		Duration time.Duration
	}

	// SettingsConfig holds general settings
	SettingsConfig struct {
		Cmd       string
		FrameRate int
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool
	}

	// MQTTConfig holds the networked lamp settings. Credentials are read
	// from the environment.
	MQTTConfig struct {
		Broker      string
		Topic       string
		MinInterval time.Duration
		Enabled     bool
	}

	// CLIConfig holds options that only exist on the command line
	CLIConfig struct {
		Since    time.Time
		Preset   string
		Headless bool
		Debug    bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config from the defaults and applies options in order.
// The result is validated.
func New(opts ...Option) (*Config, error) {
	cfg := Default()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// Default returns the settings used when the config file leaves a key out.
func Default() *Config {
	return &Config{
		Breath: BreathConfig{PerMinute: 6},
		Light: WindowConfig{
			Delay: 5 * time.Second,
			Fade:  10 * time.Second,
		},
		Sound: WindowConfig{
			Delay: 10 * time.Second,
			Fade:  10 * time.Second,
		},
		Palette: PaletteConfig{
			StartKelvin:   2000,
			StartHex:      "#f57e0f",
			EndKelvin:     8000,
			EndHex:        "#8cb1ff",
			DefaultKelvin: 5000,
			WarmKelvin:    3000,
			CoolKelvin:    7000,
		},
		Volume:    VolumeConfig{Default: 30, Min: 0, Max: 80},
		Secondary: SecondaryConfig{Volume: 50},
		Panning:   PanningConfig{Period: 10 * time.Second},
		Settings:  SettingsConfig{FrameRate: 30},
		MQTT: MQTTConfig{
			Topic:       "breathe/light/set",
			MinInterval: 200 * time.Millisecond,
		},
		Notifications: NotificationConfig{Enabled: true},
		Display:       DisplayConfig{DarkTheme: true},
	}
}
