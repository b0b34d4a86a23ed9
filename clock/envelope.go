// Package clock measures the active time of a session. Paused intervals are
// excluded, so consumers can derive every position from one absolute value
// instead of summing frame-to-frame deltas.
package clock

import (
	"sync"
	"time"
)

// Now is the default time source.
var Now = time.Now

// Envelope is a pausable elapsed-time accumulator. The zero value is not
// started; use New.
type Envelope struct {
	mu        sync.Mutex
	now       func() time.Time
	origin    time.Time
	pausedAt  time.Time
	pausedFor time.Duration
	paused    bool
	started   bool
}

// New returns an envelope reading time from now. A nil now uses Now.
func New(now func() time.Time) *Envelope {
	if now == nil {
		now = Now
	}

	return &Envelope{now: now}
}

// Start records the origin and clears any accumulated pause time.
func (e *Envelope) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.origin = e.now()
	e.pausedFor = 0
	e.pausedAt = time.Time{}
	e.paused = false
	e.started = true
}

// Pause freezes the envelope. It is a no-op if already paused.
func (e *Envelope) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.paused || !e.started {
		return
	}

	e.pausedAt = e.now()
	e.paused = true
}

// Resume adds the time spent paused to the accumulated pause duration. It is
// a no-op if not paused.
func (e *Envelope) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.paused {
		return
	}

	if d := e.now().Sub(e.pausedAt); d > 0 {
		e.pausedFor += d
	}

	e.paused = false
	e.pausedAt = time.Time{}
}

// Paused reports whether the envelope is paused.
func (e *Envelope) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.paused
}

// Elapsed returns the active time at now. While paused the value stays at
// the moment of the pause. The result is never negative.
func (e *Envelope) Elapsed(now time.Time) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return 0
	}

	paused := e.pausedFor
	if e.paused {
		if d := now.Sub(e.pausedAt); d > 0 {
			paused += d
		}
	}

	elapsed := now.Sub(e.origin) - paused
	if elapsed < 0 {
		return 0
	}

	return elapsed
}

// ElapsedNow is Elapsed at the envelope's current time.
func (e *Envelope) ElapsedNow() time.Duration {
	return e.Elapsed(e.now())
}
