package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/breathe/colortemp"
	"github.com/ayoisaiah/breathe/internal/config"
	"github.com/ayoisaiah/breathe/internal/osutil"
	"github.com/ayoisaiah/breathe/internal/pathutil"
	"github.com/ayoisaiah/breathe/internal/static"
)

const (
	envNoColor        = "NO_COLOR"
	envBreatheNoColor = "BREATHE_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// editConfigAction handles the edit-config command which opens the breathe
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	// create the file with its defaults if it does not exist yet
	if _, err := config.New(config.WithViperConfig(pathutil.ConfigFilePath())); err != nil {
		return err
	}

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

// kelvinAction handles the kelvin command. Numbers are converted to their
// black body colour and hex colours to their estimated temperature.
func kelvinAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errKelvinArgs
	}

	for _, arg := range ctx.Args().Slice() {
		line, err := kelvinLine(arg)
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, line)
	}

	return nil
}

func kelvinLine(arg string) (string, error) {
	arg = strings.TrimSpace(arg)

	if strings.HasPrefix(arg, "#") {
		k, err := colortemp.HexToKelvin(arg)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s ~%d K", swatch(arg), k), nil
	}

	k, err := cast.ToFloat64E(strings.TrimSuffix(strings.ToUpper(arg), "K"))
	if err != nil {
		return "", errKelvinValue.Fmt(arg)
	}

	hex := colortemp.KelvinToHex(k)

	return fmt.Sprintf(
		"%s %d K = %s",
		swatch(hex),
		int(colortemp.ClampKelvin(k)),
		hex,
	), nil
}

// swatch draws a small block of the colour.
func swatch(hex string) string {
	c, err := colortemp.ParseHex(hex)
	if err != nil {
		return ""
	}

	return pterm.NewRGB(c.R, c.G, c.B).Sprint("███")
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if BREATHE_NO_COLOR is set
	if _, exists := os.LookupEnv(envBreatheNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	return static.Install(pathutil.DataDir())
}
