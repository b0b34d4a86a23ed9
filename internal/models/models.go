// Package models holds the records kept in the store
package models

import "time"

// Soundscape pairs a primary track with an optional secondary one. Track
// names are resolved against the sounds directory; the extension may be
// omitted.
type Soundscape struct {
	Name      string `json:"name"      yaml:"name"`
	Primary   string `json:"primary"   yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary,omitempty"`
	Builtin   bool   `json:"builtin"   yaml:"-"`
}

// Preset is a named flat map of session settings, in the shape accepted by
// breath.ParseConfig.
type Preset struct {
	CreatedAt time.Time      `json:"created_at" yaml:"-"`
	Settings  map[string]any `json:"settings"   yaml:"settings"`
	Name      string         `json:"name"       yaml:"name"`
	Builtin   bool           `json:"builtin"    yaml:"-"`
}

// Run is a finished session.
type Run struct {
	Start            time.Time     `json:"start"`
	End              time.Time     `json:"end"`
	Soundscape       string        `json:"soundscape"`
	Preset           string        `json:"preset"`
	Active           time.Duration `json:"active"`
	BreathsPerMinute float64       `json:"breaths_per_minute"`
	Completed        bool          `json:"completed"`
}
