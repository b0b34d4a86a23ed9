package breath

import "github.com/ayoisaiah/breathe/internal/apperr"

// ErrConfigValidation reports a malformed or missing session setting.
var ErrConfigValidation = &apperr.Error{
	Message: "invalid session config",
}

var (
	errMissingKey = &apperr.Error{
		Message: "missing required setting %q",
	}

	errInvalidValue = &apperr.Error{
		Message: "setting %q has an invalid value (%v)",
	}

	errRateTooLow = &apperr.Error{
		Message: "breaths per minute must be greater than zero, got %v",
	}

	errVolumeRange = &apperr.Error{
		Message: "%s volume must be between 0 and 1, got %v",
	}

	errVolumeOrder = &apperr.Error{
		Message: "minimum volume (%v) must not exceed maximum volume (%v)",
	}

	errPanningPeriod = &apperr.Error{
		Message: "panning period must be greater than zero when panning is enabled",
	}
)

// invalid marks err as a config validation failure.
func invalid(err error) error {
	return ErrConfigValidation.Wrap(err)
}
