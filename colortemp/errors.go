package colortemp

import "github.com/ayoisaiah/breathe/internal/apperr"

var errInvalidHex = &apperr.Error{
	Message: "%q is not a valid hex color (expected #rrggbb)",
}
