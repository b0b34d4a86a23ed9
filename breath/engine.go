// Package breath implements the phase state machine of a breathing session.
// The engine is driven by absolute, pause-aware elapsed time so a skipped or
// late frame never loses a transition.
package breath

import (
	"math"
	"time"

	"github.com/ayoisaiah/breathe/colortemp"
)

// Phase is the coarse state of a session.
type Phase int

const (
	Idle Phase = iota
	FadeIn
	Syncing
	Breathing
)

func (p Phase) String() string {
	switch p {
	case FadeIn:
		return "fade-in"
	case Syncing:
		return "syncing"
	case Breathing:
		return "breathing"
	default:
		return "idle"
	}
}

// SubPhase is the half of the breath cycle being played.
type SubPhase int

const (
	Inhale SubPhase = iota
	Exhale
)

func (s SubPhase) String() string {
	if s == Exhale {
		return "exhale"
	}

	return "inhale"
}

// Frame is the output applied to the sinks on one tick.
type Frame struct {
	Light         colortemp.RGB
	PrimaryGain   float64
	SecondaryGain float64
	Pan           float64
}

// Engine advances a session through FadeIn, Syncing and Breathing. It is not
// safe for concurrent use.
type Engine struct {
	cfg         Config
	phase       Phase
	sub         SubPhase
	progress    float64
	syncStart   time.Duration
	lastElapsed time.Duration
}

// NewEngine returns an idle engine for cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Reset returns the engine to Idle and clears every phase accumulator.
func (e *Engine) Reset() {
	e.phase = Idle
	e.sub = Inhale
	e.progress = 0
	e.syncStart = 0
	e.lastElapsed = 0
}

// Config returns the engine's current settings.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) SubPhase() SubPhase {
	return e.sub
}

// Progress is the position in the current half-cycle, in [0,1).
func (e *Engine) Progress() float64 {
	return e.progress
}

// SyncStart is the elapsed time at which Syncing began.
func (e *Engine) SyncStart() time.Duration {
	return e.syncStart
}

// Display maps Progress to a triangular wave: rising while inhaling and
// falling while exhaling.
func (e *Engine) Display() float64 {
	if e.sub == Exhale {
		return 1 - e.progress
	}

	return e.progress
}

// SetBreathsPerMinute changes the breathing rate. Progress is a ratio, so it
// carries over unchanged and only the speed of future advances changes.
func (e *Engine) SetBreathsPerMinute(bpm float64) error {
	if err := validateRate(bpm); err != nil {
		return err
	}

	e.cfg.BreathsPerMinute = bpm

	return nil
}

// Advance moves the state machine to elapsed and computes the frame for it.
// wall drives the panning oscillator, which is independent of the breath.
// Several transitions may happen in one call if elapsed jumped.
func (e *Engine) Advance(elapsed time.Duration, wall time.Time) Frame {
	if e.phase == Idle {
		e.phase = FadeIn
	}

	if e.phase == FadeIn && elapsed >= e.cfg.FadeInEnd() {
		e.phase = Syncing
		e.syncStart = e.cfg.FadeInEnd()
	}

	if e.phase == Syncing && elapsed >= e.syncStart+SyncDuration {
		e.phase = Breathing
		e.sub = Inhale
		e.progress = 0
		// Time past the end of syncing already belongs to the first inhale.
		e.lastElapsed = e.syncStart + SyncDuration
	}

	switch e.phase {
	case FadeIn:
		return e.fadeInFrame(elapsed)
	case Syncing:
		return e.syncFrame(elapsed)
	default:
		e.breathe(elapsed)

		return e.breathFrame(wall)
	}
}

func (e *Engine) breathe(elapsed time.Duration) {
	delta := elapsed - e.lastElapsed
	if delta <= 0 {
		return
	}

	e.lastElapsed = elapsed

	half := e.cfg.HalfCycle()
	if half <= 0 {
		return
	}

	e.progress += float64(delta) / float64(half)
	if e.progress < 1 {
		return
	}

	whole := math.Floor(e.progress)
	e.progress -= whole

	if math.Mod(whole, 2) == 1 {
		e.sub = 1 - e.sub
	}
}

func (e *Engine) fadeInFrame(elapsed time.Duration) Frame {
	lightDelay, lightFade := e.cfg.LightWindow()
	soundDelay, soundFade := e.cfg.SoundWindow()

	light := window(elapsed, lightDelay, lightFade)
	sound := window(elapsed, soundDelay, soundFade)

	return Frame{
		Light: colortemp.Interpolate(
			colortemp.Black,
			e.cfg.DefaultColor,
			light,
		),
		PrimaryGain:   e.cfg.PrimaryVolume.Default * sound,
		SecondaryGain: e.cfg.SecondaryTarget() * sound,
	}
}

func (e *Engine) syncFrame(elapsed time.Duration) Frame {
	f := colortemp.Clamp01(
		float64(elapsed-e.syncStart) / float64(SyncDuration),
	)

	return Frame{
		Light: colortemp.Interpolate(e.cfg.DefaultColor, e.cfg.WarmColor, f),
		PrimaryGain: colortemp.Lerp(
			e.cfg.PrimaryVolume.Default,
			e.cfg.PrimaryVolume.Min,
			f,
		),
		SecondaryGain: e.cfg.SecondaryTarget(),
	}
}

func (e *Engine) breathFrame(wall time.Time) Frame {
	d := e.Display()

	return Frame{
		Light: colortemp.Interpolate(e.cfg.WarmColor, e.cfg.CoolColor, d),
		PrimaryGain: colortemp.Lerp(
			e.cfg.PrimaryVolume.Min,
			e.cfg.PrimaryVolume.Max,
			d,
		),
		SecondaryGain: e.cfg.SecondaryTarget(),
		Pan:           e.pan(wall),
	}
}

func (e *Engine) pan(wall time.Time) float64 {
	if !e.cfg.PanningEnabled || e.cfg.PanningPeriod <= 0 {
		return 0
	}

	period := float64(e.cfg.PanningPeriod)
	phase := math.Mod(float64(wall.UnixNano()), period) / period

	return math.Sin(2 * math.Pi * phase)
}

// window returns how far elapsed is through the fade that starts at delay
// and lasts fade. An empty window is complete as soon as it starts.
func window(elapsed, delay, fade time.Duration) float64 {
	if elapsed < delay {
		return 0
	}

	if fade <= 0 {
		return 1
	}

	return colortemp.Clamp01(float64(elapsed-delay) / float64(fade))
}
