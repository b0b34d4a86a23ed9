package config

import "github.com/ayoisaiah/breathe/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errInvalidKelvin = &apperr.Error{
		Message: "%s Kelvin must be between %d and %d, got %d",
	}

	errInvalidPercent = &apperr.Error{
		Message: "%s volume must be between 0 and 100, got %d",
	}

	errVolumeOrder = &apperr.Error{
		Message: "minimum volume (%d) must not exceed maximum volume (%d)",
	}

	errInvalidRate = &apperr.Error{
		Message: "breaths per minute must be between %v and %v, got %v",
	}

	errInvalidFrameRate = &apperr.Error{
		Message: "frame rate must be between %d and %d, got %d",
	}

	errNegativeDuration = &apperr.Error{
		Message: "%s must not be negative, got %v",
	}

	errMissingBroker = &apperr.Error{
		Message: "mqtt.broker must be set when MQTT is enabled",
	}

	errInvalidDuration = &apperr.Error{
		Message: "invalid duration format: %s",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid duration %q for --%s: %v",
	}

	errInvalidSince = &apperr.Error{
		Message: "unable to understand %q as a start date",
	}
)
