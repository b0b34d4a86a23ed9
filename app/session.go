package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/internal/config"
	"github.com/ayoisaiah/breathe/internal/models"
	"github.com/ayoisaiah/breathe/internal/pathutil"
	"github.com/ayoisaiah/breathe/internal/static"
	"github.com/ayoisaiah/breathe/internal/timeutil"
	"github.com/ayoisaiah/breathe/internal/ui"
	"github.com/ayoisaiah/breathe/light"
	"github.com/ayoisaiah/breathe/playback"
	"github.com/ayoisaiah/breathe/sound"
	"github.com/ayoisaiah/breathe/store"
	"github.com/ayoisaiah/breathe/tui"
)

const mqttConnectTimeout = 5 * time.Second

// openStore opens the database and adds the built-in library.
func openStore() (*store.Client, error) {
	db, err := store.NewClient(pathutil.DBFilePath(), pathutil.SoundsDir())
	if err != nil {
		return nil, err
	}

	lib, err := static.Load()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Seed(lib); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// loadConfig reads the config file, asking for the main settings on the
// first run, and applies the command-line flags.
func loadConfig(ctx *cli.Context, db *store.Client) (*config.Config, error) {
	soundscapes, err := db.Soundscapes()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(soundscapes))

	def, _ := db.DefaultSoundscape()
	if def != "" {
		names = append(names, def)
	}

	for i := range soundscapes {
		if soundscapes[i].Name != def {
			names = append(names, soundscapes[i].Name)
		}
	}

	path := pathutil.ConfigFilePath()

	return config.New(
		config.WithPromptConfig(path, names),
		config.WithViperConfig(path),
		config.WithCLIConfig(ctx),
	)
}

// sessionConfig picks the settings of the session: the requested preset,
// else the default preset, else the config file. The --bpm flag wins over
// a preset.
func sessionConfig(
	ctx *cli.Context,
	cfg *config.Config,
	db *store.Client,
) (breath.Config, string, error) {
	var (
		preset *models.Preset
		err    error
	)

	if cfg.CLI.Preset != "" {
		preset, err = db.Preset(cfg.CLI.Preset)
	} else {
		preset, err = db.DefaultPreset()
	}

	if err != nil {
		return breath.Config{}, "", err
	}

	if preset == nil {
		sc, err := cfg.Session()
		return sc, "", err
	}

	sc, err := breath.ParseConfig(preset.Settings)
	if err != nil {
		return breath.Config{}, "", err
	}

	if ctx.IsSet(bpmFlag.Name) {
		sc.BreathsPerMinute = cfg.Breath.PerMinute
	}

	return sc, preset.Name, sc.Validate()
}

// connectMQTT connects to the lamp's broker with the credentials from the
// environment.
func connectMQTT(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (light.Client, error) {
	creds, err := light.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}

	client := light.NewClient(&light.MQTTConfig{
		Credentials: creds,
		Broker:      cfg.MQTT.Broker,
		Topic:       cfg.MQTT.Topic,
		MinInterval: cfg.MQTT.MinInterval,
	}, logger)

	ctx, cancel := context.WithTimeout(ctx, mqttConnectTimeout)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

// stopHook records a finished session and runs the post-session actions.
type stopHook struct {
	db     *store.Client
	cfg    *config.Config
	logger *slog.Logger
	done   chan struct{}
	preset string
	once   sync.Once
}

func newStopHook(
	db *store.Client,
	cfg *config.Config,
	preset string,
	logger *slog.Logger,
) *stopHook {
	return &stopHook{
		db:     db,
		cfg:    cfg,
		preset: preset,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (h *stopHook) run(s playback.Summary) {
	defer h.once.Do(func() {
		close(h.done)
	})

	run := &models.Run{
		Start:            s.Start,
		End:              s.End,
		Soundscape:       s.Soundscape,
		Preset:           h.preset,
		Active:           s.Active,
		BreathsPerMinute: s.BreathsPerMinute,
		Completed:        s.Completed,
	}

	if err := h.db.SaveRun(run); err != nil {
		h.logger.Error("unable to save session", slog.Any("error", err))
	}

	if s.Completed {
		h.notify(s)
	}

	if err := runSessionCmd(h.cfg.Settings.Cmd); err != nil {
		h.logger.Error("session command failed", slog.Any("error", err))
	}
}

// wait blocks until the hook has run.
func (h *stopHook) wait() {
	<-h.done
}

// notify sends a desktop notification.
func (h *stopHook) notify(s playback.Summary) {
	if !h.cfg.Notifications.Enabled {
		return
	}

	msg := fmt.Sprintf(
		"You breathed for %s at %.1f breaths per minute",
		timeutil.Clock(s.Active),
		s.BreathsPerMinute,
	)

	err := beeep.Notify("Session complete", msg, "")
	if err != nil {
		h.logger.Warn("unable to display notification", slog.Any("error", err))
	}
}

// runSessionCmd executes the specified command.
func runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return errSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// defaultAction starts a breathing session and blocks until it ends.
func defaultAction(ctx *cli.Context) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	cfg, err := loadConfig(ctx, db)
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	logger, logFile := newLogger(pathutil.LogFilePath(), cfg.CLI.Debug)
	defer logFile.Close()

	sc, presetName, err := sessionConfig(ctx, cfg, db)
	if err != nil {
		return err
	}

	logger.Debug("session config", slog.String("config", spew.Sdump(sc)))

	swatch := &light.Swatch{}
	sinks := light.Multi{swatch}

	if cfg.MQTT.Enabled {
		client, err := connectMQTT(ctx.Context, cfg, logger)
		if err != nil {
			return err
		}

		defer client.Disconnect()

		sinks = append(sinks, light.NewMQTT(
			client,
			cfg.MQTT.Topic,
			cfg.MQTT.MinInterval,
			nil,
			logger,
		))
	}

	hook := newStopHook(db, cfg, presetName, logger)

	ctrl := playback.New(
		sound.NewSpeaker(logger),
		sinks,
		db,
		playback.WithScheduler(playback.NewFrameScheduler(cfg.Settings.FrameRate)),
		playback.WithLogger(logger),
		playback.WithMaxDuration(cfg.Limits.Duration),
		playback.WithOnStop(hook.run),
	)

	if err := ctrl.Start(sc, cfg.Soundscape); err != nil {
		return err
	}

	if cfg.CLI.Headless {
		err = runHeadless(ctx.Context, ctrl)
	} else {
		m := tui.New(ctrl, swatch, tui.NewStyle(cfg.Display.DarkTheme), logger)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	}

	ctrl.Stop()
	hook.wait()

	return err
}

// runHeadless prints the status line every second until the session ends
// or the process is interrupted.
func runHeadless(ctx context.Context, ctrl *playback.Controller) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			st := ctrl.State()
			if !st.Running {
				return nil
			}

			pterm.Println(statusLine(st, ctrl.Status()))
		}
	}
}

func statusLine(st playback.RunState, s playback.Status) string {
	line := fmt.Sprintf(
		"%s | Light: %s | Sound: %s",
		ui.Highlight(s.Running),
		s.Light,
		s.Sound,
	)

	if guide := playback.Guide(st); guide != "" {
		line += " | " + ui.Cyan(guide)
	}

	return line
}
