// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const secondsInAMinute = 60

// Clock formats a duration as MM:SS. Minutes keep counting past an hour.
func Clock(d time.Duration) string {
	return ClockSeconds(int(d / time.Second))
}

// ClockSeconds formats a number of seconds as MM:SS.
func ClockSeconds(s int) string {
	if s < 0 {
		s = 0
	}

	return fmt.Sprintf("%02d:%02d", s/secondsInAMinute, s%secondsInAMinute)
}

// SecondsLeft returns the whole seconds between now and until, rounded up.
// It is zero once until has passed.
func SecondsLeft(now, until time.Duration) int {
	if until <= now {
		return 0
	}

	return int(math.Ceil((until - now).Seconds()))
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// ParseSince interprets a human date such as "3 days ago", "yesterday" or
// "2025-01-31" relative to now. An empty string is the zero time.
func ParseSince(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}

// keyLayout has a fixed width so keys sort in time order.
const keyLayout = "2006-01-02T15:04:05.000000000Z"

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}
