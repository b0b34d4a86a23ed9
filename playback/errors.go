package playback

import (
	"github.com/ayoisaiah/breathe/breath"
	"github.com/ayoisaiah/breathe/internal/apperr"
)

var (
	// ErrConfigValidation is returned by Start for a malformed session config
	// or an unknown soundscape.
	ErrConfigValidation = breath.ErrConfigValidation

	// ErrInvalidState is returned when an operation is not permitted in the
	// current phase. Nothing is changed.
	ErrInvalidState = &apperr.Error{
		Message: "operation not permitted",
	}

	// ErrSinkUnavailable is returned when the audio output cannot be
	// acquired. The session is left idle.
	ErrSinkUnavailable = &apperr.Error{
		Message: "audio output unavailable",
	}
)

var (
	errAlreadyRunning = &apperr.Error{
		Message: "a session is already running",
	}

	errNotRunning = &apperr.Error{
		Message: "no session is running",
	}

	errUnknownSoundscape = &apperr.Error{
		Message: "soundscape %q could not be resolved",
	}

	errLoadTrack = &apperr.Error{
		Message: "loading %s track %q failed",
	}
)
