// Package tui is the terminal interface of a running session
package tui

import (
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/breathe/playback"
)

const (
	refreshInterval = time.Second / 20
	rateStep        = 0.5
	minRate         = 1
	maxRate         = 30
	swatchHeight    = 5
	minWidth        = 10
)

// Session is the part of playback.Controller the interface drives.
type Session interface {
	Pause() error
	Resume() error
	Stop()
	SetBreathsPerMinute(bpm float64) error
	State() playback.RunState
	Status() playback.Status
}

// Swatch renders the current light color.
type Swatch interface {
	Render(width, height int) string
}

type tickMsg time.Time

// Model is the bubbletea model of a session. The session must be started
// before the program runs; the model quits once it stops.
type Model struct {
	session  Session
	swatch   Swatch
	logger   *slog.Logger
	err      error
	style    Style
	help     help.Model
	progress progress.Model
	state    playback.RunState
	status   playback.Status
	width    int
}

// New returns a model for s. swatch may be nil.
func New(s Session, swatch Swatch, style Style, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Model{
		session:  s,
		swatch:   swatch,
		logger:   logger,
		style:    style,
		help:     help.New(),
		progress: progress.New(progress.WithGradient("#e48737", "#9ea9d7")),
		width:    maxWidth,
	}

	m.progress.Width = maxWidth
	m.refresh()

	return m
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) refresh() {
	m.state = m.session.State()
	m.status = m.session.Status()
}

// Err returns the last error reported by the session.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()

		// the duration limit stops the session from its own timer
		if !m.state.Running {
			return m, tea.Quit
		}

		return m, tick()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = max(min(msg.Width-padding*2-4, maxWidth), minWidth)
		m.progress.Width = m.width

		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.quit):
		m.session.Stop()
		m.refresh()

		return m, tea.Quit

	case key.Matches(msg, defaultKeymap.togglePlay):
		var err error
		if m.state.Paused {
			err = m.session.Resume()
		} else {
			err = m.session.Pause()
		}

		m.report(err)

	case key.Matches(msg, defaultKeymap.faster):
		m.changeRate(rateStep)

	case key.Matches(msg, defaultKeymap.slower):
		m.changeRate(-rateStep)
	}

	m.refresh()

	return m, nil
}

func (m *Model) changeRate(delta float64) {
	bpm := m.session.State().BreathsPerMinute + delta
	bpm = math.Max(minRate, math.Min(maxRate, bpm))

	m.report(m.session.SetBreathsPerMinute(bpm))
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}

	m.err = err
	m.logger.Warn("session command failed", slog.Any("error", err))
}
