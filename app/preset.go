package app

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/internal/config"
	"github.com/ayoisaiah/breathe/internal/models"
	"github.com/ayoisaiah/breathe/internal/ui"
	"github.com/ayoisaiah/breathe/report"
	"github.com/ayoisaiah/breathe/store"
)

func presetsCommand() *cli.Command {
	return &cli.Command{
		Name:   "presets",
		Usage:  "Manage saved session presets",
		Action: listPresetsAction,
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List the saved presets",
				Flags:  []cli.Flag{jsonFlag},
				Action: listPresetsAction,
			},
			{
				Name:      "save",
				Usage:     "Save the current settings (config file and flags) as a preset",
				ArgsUsage: "<name>",
				Flags:     sessionFlags,
				Action:    savePresetAction,
			},
			{
				Name:      "show",
				Usage:     "Print the settings of a preset",
				ArgsUsage: "<name>",
				Action:    showPresetAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a preset. The default preset cannot be deleted",
				ArgsUsage: "<name>",
				Flags:     []cli.Flag{yesFlag},
				Action:    deletePresetAction,
			},
			{
				Name:      "default",
				Usage:     "Use a preset whenever --preset is not given",
				ArgsUsage: "<name>",
				Action:    defaultPresetAction,
			},
		},
	}
}

// withStore opens the store for the duration of fn.
func withStore(fn func(db *store.Client) error) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return fn(db)
}

func nameArg(ctx *cli.Context, kind string) (string, error) {
	name := ctx.Args().First()
	if name == "" {
		return "", errMissingName.Fmt(kind)
	}

	return name, nil
}

func listPresetsAction(ctx *cli.Context) error {
	return withStore(func(db *store.Client) error {
		presets, err := db.Presets()
		if err != nil {
			return err
		}

		if ctx.Bool(jsonFlag.Name) {
			return printJSON(presets)
		}

		if len(presets) == 0 {
			pterm.Info.Println("No presets saved yet. Create one with 'breathe presets save <name>'")
			return nil
		}

		def, err := db.DefaultPreset()
		if err != nil {
			return err
		}

		return printPresetsTable(presets, def)
	})
}

func printPresetsTable(presets []models.Preset, def *models.Preset) error {
	rows := [][]string{{"NAME", "BREATHS/MIN", "CREATED", "DEFAULT"}}

	for i := range presets {
		p := presets[i]

		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format("Jan 02, 2006 03:04 PM")
		}

		if p.Builtin {
			created = "built-in"
		}

		isDefault := ""
		if def != nil && def.Name == p.Name {
			isDefault = ui.Green("yes")
		}

		rows = append(rows, []string{
			p.Name,
			cast.ToString(p.Settings[breath.KeyBreathsPerMinute]),
			created,
			isDefault,
		})
	}

	return ui.PrintTable(config.Stdout, rows)
}

func savePresetAction(ctx *cli.Context) error {
	name, err := nameArg(ctx, "preset")
	if err != nil {
		return err
	}

	return withStore(func(db *store.Client) error {
		cfg, err := loadConfig(ctx, db)
		if err != nil {
			return err
		}

		sc, err := cfg.Session()
		if err != nil {
			return err
		}

		p := &models.Preset{
			Name:      name,
			Settings:  sc.Map(),
			CreatedAt: time.Now(),
		}

		if err := db.SavePreset(p); err != nil {
			return err
		}

		report.Success("preset %q saved", name)

		return nil
	})
}

func showPresetAction(ctx *cli.Context) error {
	name, err := nameArg(ctx, "preset")
	if err != nil {
		return err
	}

	return withStore(func(db *store.Client) error {
		p, err := db.Preset(name)
		if err != nil {
			return err
		}

		rows := [][]string{{"SETTING", "VALUE"}}

		for _, k := range slices.Sorted(maps.Keys(p.Settings)) {
			rows = append(rows, []string{k, fmt.Sprint(p.Settings[k])})
		}

		return ui.PrintTable(config.Stdout, rows)
	})
}

func deletePresetAction(ctx *cli.Context) error {
	name, err := nameArg(ctx, "preset")
	if err != nil {
		return err
	}

	return withStore(func(db *store.Client) error {
		if _, err := db.Preset(name); err != nil {
			return err
		}

		if !ctx.Bool(yesFlag.Name) {
			if err := confirm(fmt.Sprintf("Preset %q will be deleted", name)); err != nil {
				return err
			}
		}

		if err := db.DeletePreset(name); err != nil {
			return err
		}

		report.Success("preset %q deleted", name)

		return nil
	})
}

func defaultPresetAction(ctx *cli.Context) error {
	name, err := nameArg(ctx, "preset")
	if err != nil {
		return err
	}

	return withStore(func(db *store.Client) error {
		if err := db.SetDefaultPreset(name); err != nil {
			return err
		}

		report.Success("%q is now the default preset", name)

		return nil
	})
}
