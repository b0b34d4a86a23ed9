package light

import "github.com/ayoisaiah/breathe/internal/apperr"

var (
	errConnect = &apperr.Error{
		Message: "unable to connect to MQTT broker %s",
	}

	errNotConnected = &apperr.Error{
		Message: "not connected to MQTT broker",
	}

	errCredentials = &apperr.Error{
		Message: "unable to read MQTT credentials from the environment",
	}
)
