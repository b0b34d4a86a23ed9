package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
██████╗ ██████╗ ███████╗ █████╗ ████████╗██╗  ██╗███████╗
██╔══██╗██╔══██╗██╔════╝██╔══██╗╚══██╔══╝██║  ██║██╔════╝
██████╔╝██████╔╝█████╗  ███████║   ██║   ███████║█████╗
██╔══██╗██╔══██╗██╔══╝  ██╔══██║   ██║   ██╔══██║██╔══╝
██████╔╝██║  ██║███████╗██║  ██║   ██║   ██║  ██║███████╗
╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚══════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Soundscape       string
	BreathsPerMinute float64
	Secondary        bool
}

// WithPromptConfig returns an Option that asks for the main settings when
// the config file does not exist yet. soundscapes are the choices offered.
func WithPromptConfig(configPath string, soundscapes []string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser(soundscapes)
		if err != nil {
			return errPrompt.Wrap(err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser(soundscapes []string) (PromptOptions, error) {
	opts := PromptOptions{BreathsPerMinute: 6}

	// Display welcome message
	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure breathe for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'breathe edit-config' to change any settings.`, " ").
		Render()

	soundscapeOptions := make([]huh.Option[string], 0, len(soundscapes))
	for i, name := range soundscapes {
		soundscapeOptions = append(
			soundscapeOptions,
			huh.NewOption(name, name).Selected(i == 0),
		)
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Breaths per minute").
				Options(
					huh.NewOption("4.5 (very slow)", 4.5),
					huh.NewOption("5", 5.0),
					huh.NewOption("6", 6.0).Selected(true),
					huh.NewOption("7.5", 7.5),
					huh.NewOption("10", 10.0),
				).
				Value(&opts.BreathsPerMinute),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Play the secondary track of each soundscape?").
				Value(&opts.Secondary),
		),
	}

	if len(soundscapeOptions) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Soundscape").
				Options(soundscapeOptions...).
				Value(&opts.Soundscape),
		))
	}

	err := huh.NewForm(groups...).Run()
	if err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	if opts.BreathsPerMinute > 0 {
		c.Breath.PerMinute = opts.BreathsPerMinute
	}

	if opts.Soundscape != "" {
		c.Soundscape = opts.Soundscape
	}

	c.Secondary.Enabled = opts.Secondary
}
