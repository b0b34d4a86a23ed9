package app

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/breathe/internal/config"
	"github.com/ayoisaiah/breathe/internal/models"
	"github.com/ayoisaiah/breathe/internal/timeutil"
	"github.com/ayoisaiah/breathe/internal/ui"
	"github.com/ayoisaiah/breathe/store"
)

const (
	noRunsMsg         = "No sessions found for the specified time range"
	defaultReportDays = 7
)

func printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	fmt.Fprintln(config.Stdout, string(b))

	return nil
}

// printRunsTable prints a session table to the command-line.
func printRunsTable(w io.Writer, runs []models.Run) error {
	tableBody := make([][]string, 0, len(runs)+1)

	tableBody = append(tableBody, []string{
		"#", "START DATE", "ACTIVE", "BREATHS/MIN", "SOUNDSCAPE", "PRESET", "STATUS",
	})

	var total time.Duration

	for i := range runs {
		r := runs[i]
		total += r.Active

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			r.Start.Format("Jan 02, 2006 03:04 PM"),
			timeutil.Clock(r.Active),
			fmt.Sprintf("%.1f", r.BreathsPerMinute),
			r.Soundscape,
			r.Preset,
			ui.Status(r.Completed, "completed", "stopped"),
		})
	}

	if err := ui.PrintTable(w, tableBody); err != nil {
		return err
	}

	_, err := fmt.Fprintf(
		w,
		"Total: %s across %d sessions\n",
		ui.Highlight(timeutil.Clock(total)),
		len(runs),
	)

	return err
}

// historyAction handles the history command and prints a table of the
// sessions active within a time period.
func historyAction(ctx *cli.Context) error {
	now := time.Now()

	since, err := timeutil.ParseSince(ctx.String(sinceFlag.Name), now)
	if err != nil {
		return err
	}

	if since.IsZero() {
		since = timeutil.RoundToStart(now).AddDate(0, 0, -(defaultReportDays - 1))
	}

	return withStore(func(db *store.Client) error {
		runs, err := db.Runs(since, now)
		if err != nil {
			return err
		}

		if ctx.Bool(jsonFlag.Name) {
			return printJSON(runs)
		}

		if len(runs) == 0 {
			pterm.Info.Println(noRunsMsg)
			return nil
		}

		return printRunsTable(config.Stdout, runs)
	})
}
