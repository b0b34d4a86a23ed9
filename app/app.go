// Package app defines the breathe command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/breathe/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

var sessionFlags = []cli.Flag{
	bpmFlag,
	soundscapeFlag,
	presetFlag,
	durationFlag,
	secondaryFlag,
	panningFlag,
	disableNotificationFlag,
	sessionCmdFlag,
	headlessFlag,
	debugFlag,
}

// Get retrieves the breathe app instance.
func Get() *cli.App {
	breatheApp := &cli.App{
		Name: "breathe",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Breathe is a guided breathing companion for the command-line. A
		soundscape and a coloured light fade in, sync up, and then rise and
		fall with every breath at the pace you choose.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start a breathing session (the default command)",
				Flags:  sessionFlags,
				Action: defaultAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "history",
				Usage:  "List past sessions. Defaults to a reporting period of 7 days",
				Flags:  []cli.Flag{sinceFlag, jsonFlag},
				Action: historyAction,
			},
			{
				Name:      "kelvin",
				Usage:     "Convert colour temperatures to hex colours and back (e.g. 2700 or '#ffa757')",
				ArgsUsage: "<kelvin|hex>...",
				Action:    kelvinAction,
			},
			presetsCommand(),
			soundscapesCommand(),
		},
		Flags:  append([]cli.Flag{noColorFlag}, sessionFlags...),
		Action: defaultAction,
		Before: beforeAction,
	}

	return breatheApp
}
