package app

import "github.com/ayoisaiah/breathe/internal/apperr"

var (
	errKelvinArgs = &apperr.Error{
		Message: "provide at least one Kelvin value or hex colour",
	}

	errKelvinValue = &apperr.Error{
		Message: "%q is neither a Kelvin value nor a hex colour",
	}

	errMissingName = &apperr.Error{
		Message: "provide the %s name",
	}

	errSoundscapeArgs = &apperr.Error{
		Message: "usage: breathe soundscapes add <name> <primary> [secondary]",
	}

	errUnsupportedTrack = &apperr.Error{
		Message: "%s: sound files must be in mp3, ogg, flac, or wav format",
	}

	errSessionCmd = &apperr.Error{
		Message: "unable to run session_cmd",
	}

	errAborted = &apperr.Error{
		Message: "operation aborted",
	}
)
