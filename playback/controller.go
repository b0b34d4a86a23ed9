// Package playback runs breathing sessions. A Controller owns the session
// state, drives the phase engine from a pause-aware clock and applies each
// frame to the audio and light outputs.
package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/clock"
	"github.com/ayoisaiah/breathe/colortemp"
)

// Option configures a Controller.
type Option func(c *Controller)

// WithScheduler sets the scheduler used for frames and the status timer.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

// WithClock sets the time source. A FrameScheduler without its own clock
// reads this one too.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithMaxDuration stops the session once its active time reaches d. The
// summary passed to the stop hook is then marked completed.
func WithMaxDuration(d time.Duration) Option {
	return func(c *Controller) {
		c.maxDuration = d
	}
}

// WithOnStop registers a hook called after a running session stops. It is
// called without the controller lock held.
func WithOnStop(fn func(Summary)) Option {
	return func(c *Controller) {
		c.onStop = fn
	}
}

// Controller is safe for concurrent use. Every operation and every
// scheduled callback holds the same lock, so engine logic never runs in
// parallel.
type Controller struct {
	mu sync.Mutex

	audio    AudioSink
	light    LightSink
	resolver Resolver
	sched    Scheduler
	now      func() time.Time
	logger   *slog.Logger
	onStop   func(Summary)

	env    *clock.Envelope
	engine *breath.Engine

	cancelFrame  CancelFunc
	cancelStatus CancelFunc

	sessionStart time.Time
	soundscape   string
	cfg          breath.Config
	frame        breath.Frame

	maxDuration    time.Duration
	gen            uint64
	frameSeq       uint64
	elapsedSeconds int
	running        bool
}

// New returns an idle controller.
func New(
	audio AudioSink,
	light LightSink,
	resolver Resolver,
	opts ...Option,
) *Controller {
	c := &Controller{
		audio:    audio,
		light:    light,
		resolver: resolver,
		sched:    NewFrameScheduler(0),
		now:      clock.Now,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if fs, ok := c.sched.(*FrameScheduler); ok && fs.Now == nil {
		fs.Now = c.now
	}

	c.env = clock.New(c.now)
	c.engine = breath.NewEngine(breath.Config{})

	return c
}

// Start begins a session with cfg and the tracks of soundscape. It fails
// with ErrInvalidState if a session is running, ErrConfigValidation if cfg
// is invalid or the soundscape is unknown, and ErrSinkUnavailable if audio
// cannot start. On failure the controller stays idle.
func (c *Controller) Start(cfg breath.Config, soundscape string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return ErrInvalidState.Wrap(errAlreadyRunning)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	tracks, err := c.resolver.ResolveSoundscape(soundscape)
	if err != nil {
		return ErrConfigValidation.Wrap(
			errUnknownSoundscape.Fmt(soundscape).Wrap(err),
		)
	}

	if err = c.audio.Init(); err != nil {
		return ErrSinkUnavailable.Wrap(err)
	}

	c.audio.SetGain(Primary, 0)
	c.audio.SetGain(Secondary, 0)
	c.audio.SetPan(0)

	if err = c.audio.LoadAndPlay(Primary, tracks.Primary); err != nil {
		c.audio.Stop()

		return ErrSinkUnavailable.Wrap(
			errLoadTrack.Fmt(Primary, tracks.Primary.Name).Wrap(err),
		)
	}

	if tracks.Secondary != nil && cfg.SecondaryEnabled {
		err = c.audio.LoadAndPlay(Secondary, *tracks.Secondary)
		if err != nil {
			c.audio.Stop()

			return ErrSinkUnavailable.Wrap(
				errLoadTrack.Fmt(Secondary, tracks.Secondary.Name).Wrap(err),
			)
		}
	}

	c.cfg = cfg
	c.soundscape = soundscape
	c.engine = breath.NewEngine(cfg)
	c.elapsedSeconds = 0
	c.running = true
	c.gen++

	now := c.now()
	c.sessionStart = now
	c.env.Start()

	c.logger.Info(
		"session started",
		slog.String("soundscape", soundscape),
		slog.Float64("breaths_per_minute", cfg.BreathsPerMinute),
		slog.Bool("secondary", tracks.Secondary != nil && cfg.SecondaryEnabled),
	)

	c.apply(now)

	gen := c.gen
	c.cancelStatus = c.sched.Every(time.Second, func(t time.Time) {
		c.second(gen, t)
	})

	c.scheduleFrame()

	return nil
}

// Pause freezes the session. Pausing a paused session does nothing.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return ErrInvalidState.Wrap(errNotRunning)
	}

	if c.env.Paused() {
		return nil
	}

	c.env.Pause()
	c.audio.Pause()
	c.cancelPendingFrame()

	c.logger.Info(
		"session paused",
		slog.String("phase", c.engine.Phase().String()),
		slog.Float64("progress", c.engine.Progress()),
	)

	return nil
}

// Resume continues a paused session from where it stopped. Resuming a
// session that is not paused does nothing.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return ErrInvalidState.Wrap(errNotRunning)
	}

	if !c.env.Paused() {
		return nil
	}

	c.env.Resume()
	c.audio.Resume()
	c.scheduleFrame()

	c.logger.Info("session resumed")

	return nil
}

// Stop ends the session. It is always permitted: the outputs are silenced
// and cleared even when no session is running.
func (c *Controller) Stop() {
	c.mu.Lock()
	summary, stopped := c.stopLocked(false)
	onStop := c.onStop
	c.mu.Unlock()

	if stopped && onStop != nil {
		onStop(summary)
	}
}

// SetBreathsPerMinute changes the rate of the running session without a
// jump in breath progress.
func (c *Controller) SetBreathsPerMinute(bpm float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return ErrInvalidState.Wrap(errNotRunning)
	}

	if err := c.engine.SetBreathsPerMinute(bpm); err != nil {
		return err
	}

	c.cfg.BreathsPerMinute = bpm

	c.logger.Info("breathing rate changed", slog.Float64("breaths_per_minute", bpm))

	return nil
}

// State returns a copy of the run state.
func (c *Controller) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stateLocked()
}

// Status returns the human readable labels of the current state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	return StatusOf(c.stateLocked(), c.cfg)
}

// Config returns the configuration of the current or last session.
func (c *Controller) Config() breath.Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cfg
}

// Frame returns the output most recently applied to the sinks.
func (c *Controller) Frame() breath.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.frame
}

func (c *Controller) stateLocked() RunState {
	if !c.running {
		return RunState{}
	}

	return RunState{
		Phase:            c.engine.Phase(),
		SubPhase:         c.engine.SubPhase(),
		Progress:         c.engine.Progress(),
		Display:          c.engine.Display(),
		BreathsPerMinute: c.cfg.BreathsPerMinute,
		SessionStart:     c.sessionStart,
		SyncStart:        c.engine.SyncStart(),
		Elapsed:          c.env.ElapsedNow(),
		ElapsedSeconds:   c.elapsedSeconds,
		Soundscape:       c.soundscape,
		Running:          true,
		Paused:           c.env.Paused(),
	}
}

// tick computes and applies one frame, then schedules the next.
func (c *Controller) tick(seq uint64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.frameSeq || !c.running || c.env.Paused() {
		return
	}

	c.apply(now)
	c.scheduleFrame()
}

// second advances the status counter and enforces the duration limit.
func (c *Controller) second(gen uint64, _ time.Time) {
	c.mu.Lock()

	if gen != c.gen || !c.running || c.env.Paused() {
		c.mu.Unlock()
		return
	}

	c.elapsedSeconds++

	if c.maxDuration <= 0 || c.env.ElapsedNow() < c.maxDuration {
		c.mu.Unlock()
		return
	}

	summary, stopped := c.stopLocked(true)
	onStop := c.onStop
	c.mu.Unlock()

	if stopped && onStop != nil {
		onStop(summary)
	}
}

func (c *Controller) apply(now time.Time) {
	before := c.engine.Phase()
	f := c.engine.Advance(c.env.Elapsed(now), now)

	c.audio.SetGain(Primary, f.PrimaryGain)
	c.audio.SetGain(Secondary, f.SecondaryGain)
	c.audio.SetPan(f.Pan)
	c.light.SetColor(f.Light)

	if phase := c.engine.Phase(); phase != before {
		c.logger.Debug(
			"phase changed",
			slog.String("from", before.String()),
			slog.String("to", phase.String()),
			slog.String("light", f.Light.Hex()),
		)
	}

	c.frame = f
}

func (c *Controller) scheduleFrame() {
	c.frameSeq++
	seq := c.frameSeq

	c.cancelFrame = c.sched.AfterFrame(func(t time.Time) {
		c.tick(seq, t)
	})
}

func (c *Controller) cancelPendingFrame() {
	c.frameSeq++

	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
}

func (c *Controller) stopLocked(completed bool) (Summary, bool) {
	wasRunning := c.running

	var summary Summary
	if wasRunning {
		summary = Summary{
			Start:            c.sessionStart,
			End:              c.now(),
			Soundscape:       c.soundscape,
			Active:           c.env.ElapsedNow(),
			BreathsPerMinute: c.cfg.BreathsPerMinute,
			Completed:        completed,
		}
	}

	c.gen++
	c.cancelPendingFrame()

	if c.cancelStatus != nil {
		c.cancelStatus()
		c.cancelStatus = nil
	}

	c.audio.Stop()
	c.light.SetColor(colortemp.Black)

	c.running = false
	c.elapsedSeconds = 0
	c.frame = breath.Frame{}
	c.engine.Reset()
	c.env = clock.New(c.now)

	if wasRunning {
		c.logger.Info(
			"session stopped",
			slog.Duration("active", summary.Active),
			slog.Bool("completed", completed),
		)
	}

	return summary, wasRunning
}
