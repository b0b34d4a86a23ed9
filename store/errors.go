package store

import "github.com/ayoisaiah/breathe/internal/apperr"

// ErrNotFound matches every lookup of a missing record.
var ErrNotFound = &apperr.Error{
	Message: "record not found",
}

var (
	errAlreadyRunning = &apperr.Error{
		Message: "is breathe already running? Only one instance can be active at a time",
	}

	errEmptyName = &apperr.Error{
		Message: "%s name must not be empty",
	}

	errSoundscapeNotFound = &apperr.Error{
		Message: "soundscape %q does not exist",
	}

	errPresetNotFound = &apperr.Error{
		Message: "preset %q does not exist",
	}

	errDefaultSoundscape = &apperr.Error{
		Message: "%q is the default soundscape and cannot be deleted",
	}

	errDefaultPreset = &apperr.Error{
		Message: "%q is the default preset and cannot be deleted",
	}

	errNoPrimary = &apperr.Error{
		Message: "soundscape %q needs a primary track",
	}

	errTrackNotFound = &apperr.Error{
		Message: "track %q was not found in %s",
	}

	errInvalidPreset = &apperr.Error{
		Message: "preset %q is invalid",
	}
)
