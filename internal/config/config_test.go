package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/colortemp"
)

func TestViperWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("New() mismatch (-want +got):\n%s", diff)
	}

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "per_minute: 6")
	assert.Contains(t, string(b), "#f57e0f")
}

func TestViperReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	content := `breath:
  per_minute: 7.5
light:
  delay: 0
  fade: 1m
sound:
  delay: 2
volume:
  default: 40
  max: 90
panning:
  enabled: true
  period: 20s
soundscape: forest
session:
  duration: 15m
palette:
  warm_color: "#ff0000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	want := Default()
	want.Breath.PerMinute = 7.5
	want.Light = WindowConfig{Delay: 0, Fade: time.Minute}
	want.Sound.Delay = 2 * time.Second
	want.Volume.Default = 40
	want.Volume.Max = 90
	want.Panning = PanningConfig{Enabled: true, Period: 20 * time.Second}
	want.Soundscape = "forest"
	want.Limits.Duration = 15 * time.Minute
	want.Palette.WarmColor = "#ff0000"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("New() mismatch (-want +got):\n%s", diff)
	}
}

func TestViperRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("light:\n  fade: soon\n"), 0o644))

	_, err := New(WithViperConfig(path))
	require.Error(t, err)
	assert.ErrorIs(t, err, errConfigOption)
	assert.ErrorIs(t, err, errInvalidDuration)
}

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"":      0,
		"90":    90 * time.Second,
		"1m30s": 90 * time.Second,
		"250ms": 250 * time.Millisecond,
		" 5 ":   5 * time.Second,
	}

	for in, want := range cases {
		got, err := parseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseDuration("later")
	assert.ErrorIs(t, err, errInvalidDuration)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{"rate too low", func(c *Config) { c.Breath.PerMinute = 0.5 }, errInvalidRate},
		{"rate too high", func(c *Config) { c.Breath.PerMinute = 40 }, errInvalidRate},
		{"kelvin", func(c *Config) { c.Palette.WarmKelvin = 500 }, errInvalidKelvin},
		{"color", func(c *Config) { c.Palette.CoolColor = "blue" }, errInvalidColor},
		{"percent", func(c *Config) { c.Secondary.Volume = 120 }, errInvalidPercent},
		{"volume order", func(c *Config) { c.Volume.Min = 90 }, errVolumeOrder},
		{"negative delay", func(c *Config) { c.Light.Delay = -time.Second }, errNegativeDuration},
		{"frame rate", func(c *Config) { c.Settings.FrameRate = 0 }, errInvalidFrameRate},
		{"broker", func(c *Config) { c.MQTT.Enabled = true }, errMissingBroker},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.modify(c)

			assert.ErrorIs(t, c.Validate(), tc.want)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestApplyCLIOptions(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	c := Default()

	err := applyCLIOptions(c, CLIOptions{
		BreathsPerMinute: 5,
		Soundscape:       " stream ",
		Duration:         "10m",
		SessionCmd:       "notify-send done",
		Preset:           "slow",
		Since:            "2 days ago",
		DisableNotify:    true,
		Headless:         true,
		Panning:          true,
	}, now)
	require.NoError(t, err)

	assert.InDelta(t, 5, c.Breath.PerMinute, 0)
	assert.Equal(t, "stream", c.Soundscape)
	assert.Equal(t, 10*time.Minute, c.Limits.Duration)
	assert.Equal(t, "notify-send done", c.Settings.Cmd)
	assert.False(t, c.Notifications.Enabled)
	assert.True(t, c.Panning.Enabled)
	assert.False(t, c.Secondary.Enabled)
	assert.Equal(t, "slow", c.CLI.Preset)
	assert.True(t, c.CLI.Headless)
	assert.False(t, c.CLI.Debug)
	assert.True(t, c.CLI.Since.Before(now))
	assert.WithinDuration(t, now.AddDate(0, 0, -2), c.CLI.Since, 24*time.Hour)
}

func TestApplyCLIOptionsErrors(t *testing.T) {
	err := applyCLIOptions(Default(), CLIOptions{Duration: "forever"}, time.Now())
	assert.ErrorIs(t, err, errInvalidCLIDuration)
}

func TestApplyPromptOptions(t *testing.T) {
	c := Default()

	applyPromptOptions(c, PromptOptions{
		Soundscape:       "forest",
		BreathsPerMinute: 4.5,
		Secondary:        true,
	})

	assert.Equal(t, "forest", c.Soundscape)
	assert.InDelta(t, 4.5, c.Breath.PerMinute, 0)
	assert.True(t, c.Secondary.Enabled)
}

func TestPromptSkippedWhenConfigExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	c := Default()
	require.NoError(t, WithPromptConfig(path, []string{"ocean"})(c))
	assert.Equal(t, Default(), c)
}

func TestSession(t *testing.T) {
	c := Default()
	c.Palette.WarmColor = "#e48737"
	c.Secondary.Enabled = true

	got, err := c.Session()
	require.NoError(t, err)

	start := colortemp.MustParseHex("#f57e0f")
	end := colortemp.MustParseHex("#8cb1ff")

	want := breath.Config{
		// 5000 K sits halfway along the 2000-8000 K range
		DefaultColor: colortemp.Interpolate(start, end, 0.5),
		WarmColor:    colortemp.MustParseHex("#e48737"),
		CoolColor:    colortemp.Interpolate(start, end, 5.0/6),
		PrimaryVolume: breath.Volume{
			Default: 0.3,
			Min:     0,
			Max:     0.8,
		},
		BreathsPerMinute: 6,
		LightDelay:       5 * time.Second,
		LightFade:        10 * time.Second,
		SoundDelay:       10 * time.Second,
		SoundFade:        10 * time.Second,
		SecondaryVolume:  0.5,
		PanningPeriod:    10 * time.Second,
		SecondaryEnabled: true,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Session() mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionRejectsBadHex(t *testing.T) {
	c := Default()
	c.Palette.EndHex = "#zzzzzz"

	_, err := c.Session()
	assert.ErrorIs(t, err, errInvalidColor)
}
