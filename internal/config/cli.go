package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/breathe/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Soundscape       string
	Duration         string
	SessionCmd       string
	Preset           string
	Since            string
	BreathsPerMinute float64
	DisableNotify    bool
	Headless         bool
	Debug            bool
	Panning          bool
	Secondary        bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			BreathsPerMinute: ctx.Float64("bpm"),
			Soundscape:       ctx.String("soundscape"),
			Duration:         ctx.String("duration"),
			SessionCmd:       ctx.String("session-cmd"),
			Preset:           ctx.String("preset"),
			Since:            ctx.String("since"),
			DisableNotify:    ctx.Bool("disable-notification"),
			Headless:         ctx.Bool("headless"),
			Debug:            ctx.Bool("debug"),
			Panning:          ctx.Bool("panning"),
			Secondary:        ctx.Bool("secondary"),
		}

		return applyCLIOptions(c, opts, time.Now())
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions, now time.Time) error {
	if opts.BreathsPerMinute != 0 {
		c.Breath.PerMinute = opts.BreathsPerMinute
	}

	if s := strings.TrimSpace(opts.Soundscape); s != "" {
		c.Soundscape = s
	}

	if opts.Duration != "" {
		d, err := parseDuration(opts.Duration)
		if err != nil {
			return errInvalidCLIDuration.Fmt(opts.Duration, "duration", err)
		}

		c.Limits.Duration = d
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.Panning {
		c.Panning.Enabled = true
	}

	if opts.Secondary {
		c.Secondary.Enabled = true
	}

	c.CLI.Preset = strings.TrimSpace(opts.Preset)
	c.CLI.Headless = opts.Headless
	c.CLI.Debug = opts.Debug

	if opts.Since != "" {
		since, err := timeutil.ParseSince(opts.Since, now)
		if err != nil {
			return errInvalidSince.Fmt(opts.Since).Wrap(err)
		}

		c.CLI.Since = since
	}

	return nil
}
