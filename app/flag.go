package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	bpmFlag = &cli.Float64Flag{
		Name:    "bpm",
		Aliases: []string{"b"},
		Usage:   "Breaths per minute (default: 6)",
	}

	soundscapeFlag = &cli.StringFlag{
		Name:    "soundscape",
		Aliases: []string{"s"},
		Usage:   "The soundscape to play. List them with 'breathe soundscapes'",
	}

	presetFlag = &cli.StringFlag{
		Name:    "preset",
		Aliases: []string{"p"},
		Usage:   "Start from a saved preset instead of the config file",
	}

	durationFlag = &cli.StringFlag{
		Name:    "duration",
		Aliases: []string{"t"},
		Usage:   "Stop the session after this long (e.g. 10m). Runs until stopped by default",
	}

	headlessFlag = &cli.BoolFlag{
		Name:  "headless",
		Usage: "Print the session status once per second instead of opening the interface",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Write debug messages to the log file",
	}

	secondaryFlag = &cli.BoolFlag{
		Name:  "secondary",
		Usage: "Play the secondary track of the soundscape",
	}

	panningFlag = &cli.BoolFlag{
		Name:  "panning",
		Usage: "Slowly pan the primary track between the left and right channels",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only include sessions active since this date (e.g. '3 days ago'). Defaults to the last 7 days",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Do not ask for confirmation",
	}
)
