package sound

import "github.com/ayoisaiah/breathe/internal/apperr"

var (
	errUnsupportedFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errOpenTrack = &apperr.Error{
		Message: "unable to open sound file %s",
	}

	errDecodeTrack = &apperr.Error{
		Message: "unable to decode sound file %s",
	}

	errDeviceInit = &apperr.Error{
		Message: "unable to initialize the audio device",
	}
)
