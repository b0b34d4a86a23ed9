package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/breathe/internal/config"
	"github.com/ayoisaiah/breathe/internal/models"
	"github.com/ayoisaiah/breathe/internal/osutil"
	"github.com/ayoisaiah/breathe/internal/pathutil"
	"github.com/ayoisaiah/breathe/internal/ui"
	"github.com/ayoisaiah/breathe/report"
	"github.com/ayoisaiah/breathe/sound"
	"github.com/ayoisaiah/breathe/store"
)

func soundscapesCommand() *cli.Command {
	return &cli.Command{
		Name:   "soundscapes",
		Usage:  "Manage the soundscape library",
		Action: listSoundscapesAction,
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the soundscapes",
				Flags:  []cli.Flag{jsonFlag},
				Action: listSoundscapesAction,
			},
			{
				Name:      "add",
				Usage:     "Add or replace a soundscape. Track files are copied to the sounds directory",
				ArgsUsage: "<name> <primary> [secondary]",
				Action:    addSoundscapeAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a soundscape. The default soundscape cannot be deleted",
				ArgsUsage: "<name>",
				Flags:     []cli.Flag{yesFlag},
				Action:    deleteSoundscapeAction,
			},
		},
	}
}

func listSoundscapesAction(ctx *cli.Context) error {
	return withStore(func(db *store.Client) error {
		list, err := db.Soundscapes()
		if err != nil {
			return err
		}

		if ctx.Bool(jsonFlag.Name) {
			return printJSON(list)
		}

		def, err := db.DefaultSoundscape()
		if err != nil {
			return err
		}

		rows := [][]string{{"NAME", "PRIMARY", "SECONDARY", "TRACKS"}}

		for i := range list {
			s := list[i]

			name := s.Name
			if name == def {
				name += " " + ui.Green("(default)")
			}

			_, err := db.ResolveSoundscape(s.Name)
			tracks := ui.Status(err == nil, "ok", "missing")

			rows = append(rows, []string{name, s.Primary, s.Secondary, tracks})
		}

		if err := ui.PrintTable(config.Stdout, rows); err != nil {
			return err
		}

		pterm.Info.Printfln("Tracks are read from %s", pathutil.SoundsDir())

		return nil
	})
}

func addSoundscapeAction(ctx *cli.Context) error {
	args := ctx.Args()
	if args.Len() < 2 || args.Len() > 3 {
		return errSoundscapeArgs
	}

	primary, err := importTrack(args.Get(1))
	if err != nil {
		return err
	}

	secondary, err := importTrack(args.Get(2))
	if err != nil {
		return err
	}

	s := &models.Soundscape{
		Name:      args.First(),
		Primary:   primary,
		Secondary: secondary,
	}

	return withStore(func(db *store.Client) error {
		if err := db.SaveSoundscape(s); err != nil {
			return err
		}

		report.Success("soundscape %q saved", s.Name)

		return nil
	})
}

// importTrack copies a track file into the sounds directory and returns its
// name there. Arguments that are not files are kept as track names.
func importTrack(arg string) (string, error) {
	if arg == "" {
		return "", nil
	}

	info, err := os.Stat(arg)
	if err != nil || info.IsDir() {
		return arg, nil
	}

	if !sound.Supported(arg) {
		return "", errUnsupportedTrack.Fmt(arg)
	}

	name := filepath.Base(arg)
	dest := filepath.Join(pathutil.SoundsDir(), name)

	if err := copyFile(arg, dest); err != nil {
		return "", err
	}

	return name, nil
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), osutil.DirPermission); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}

	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

func deleteSoundscapeAction(ctx *cli.Context) error {
	name, err := nameArg(ctx, "soundscape")
	if err != nil {
		return err
	}

	return withStore(func(db *store.Client) error {
		if _, err := db.Soundscape(name); err != nil {
			return err
		}

		if !ctx.Bool(yesFlag.Name) {
			if err := confirm(fmt.Sprintf("Soundscape %q will be deleted", name)); err != nil {
				return err
			}
		}

		if err := db.DeleteSoundscape(name); err != nil {
			return err
		}

		report.Success("soundscape %q deleted", name)

		return nil
	})
}
