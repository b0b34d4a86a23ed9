// Package apperr defines the error type shared by every breathe package
package apperr

import (
	"errors"
	"fmt"
)

// Error is an application error. Package-level values act as sentinels and
// the values returned by Fmt and Wrap still match them with errors.Is.
type Error struct {
	Message string
	Cause   error
	parent  *Error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is e or one of the sentinels e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	for cur := e; cur != nil; cur = cur.parent {
		if cur == t {
			return true
		}
	}

	return false
}

// Fmt returns a copy of the error with its message formatted with args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Cause:   e.Cause,
		parent:  e,
	}
}

// Wrap returns a copy of the error with err attached as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   err,
		parent:  e,
	}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error

	ok := errors.As(err, &e)

	return e, ok
}
