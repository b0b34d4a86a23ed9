package playback

import (
	"fmt"
	"time"

	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/internal/timeutil"
)

// RunState is a snapshot of the session state. Phase is Idle exactly when
// Running is false.
type RunState struct {
	SessionStart     time.Time
	Soundscape       string
	Phase            breath.Phase
	SubPhase         breath.SubPhase
	Progress         float64
	Display          float64
	BreathsPerMinute float64
	SyncStart        time.Duration
	Elapsed          time.Duration
	ElapsedSeconds   int
	Running          bool
	Paused           bool
}

// Status holds the human readable state of a session.
type Status struct {
	Running string
	Light   string
	Sound   string
}

// Summary describes a session that has ended.
type Summary struct {
	Start            time.Time
	End              time.Time
	Soundscape       string
	Active           time.Duration
	BreathsPerMinute float64
	Completed        bool
}

// Guide is the breathing cue for s, or an empty string before breathing
// starts.
func Guide(s RunState) string {
	switch s.Phase {
	case breath.Syncing:
		return "Get ready..."
	case breath.Breathing:
		if s.SubPhase == breath.Exhale {
			return "Exhale"
		}

		return "Inhale"
	default:
		return ""
	}
}

// StatusOf derives the status labels of s. It has no side effects. Idle
// sessions have an empty status.
func StatusOf(s RunState, cfg breath.Config) Status {
	if !s.Running {
		return Status{}
	}

	label := "Running"
	if s.Paused {
		label = "Paused"
	}

	now := time.Duration(s.ElapsedSeconds) * time.Second

	lightDelay, lightFade := cfg.LightWindow()
	soundDelay, soundFade := cfg.SoundWindow()

	return Status{
		Running: fmt.Sprintf("%s: %s", label, timeutil.ClockSeconds(s.ElapsedSeconds)),
		Light:   phaseLabel(s.Phase, now, lightDelay, lightFade),
		Sound:   phaseLabel(s.Phase, now, soundDelay, soundFade),
	}
}

func phaseLabel(p breath.Phase, now, delay, fade time.Duration) string {
	switch p {
	case breath.FadeIn:
		if now < delay {
			return fmt.Sprintf(
				"fading in soon (%ds left)",
				timeutil.SecondsLeft(now, delay),
			)
		}

		if now < delay+fade {
			return fmt.Sprintf(
				"fading in (%ds left)",
				timeutil.SecondsLeft(now, delay+fade),
			)
		}

		return "waiting to sync"
	case breath.Syncing:
		return "syncing..."
	case breath.Breathing:
		return "synced with breath"
	default:
		return ""
	}
}
