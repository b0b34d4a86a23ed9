package playback

import (
	"sync"
	"time"
)

// DefaultFrameInterval is the frame period used when none is configured.
const DefaultFrameInterval = time.Second / 30

// CancelFunc cancels a scheduled callback. Calling it more than once, or
// after the callback ran, is a no-op.
type CancelFunc func()

// Scheduler runs the controller's callbacks. A callback may still run after
// it was cancelled if it had already started; the controller tolerates that.
type Scheduler interface {
	// AfterFrame runs fn once, on the next frame.
	AfterFrame(fn func(now time.Time)) CancelFunc
	// Every runs fn every d until cancelled.
	Every(d time.Duration, fn func(now time.Time)) CancelFunc
}

// FrameScheduler is a Scheduler backed by runtime timers. Callbacks receive
// the time read from Now, or time.Now when it is nil.
type FrameScheduler struct {
	Now      func() time.Time
	Interval time.Duration
}

// NewFrameScheduler returns a scheduler running fps frames per second. A
// non-positive fps uses DefaultFrameInterval.
func NewFrameScheduler(fps int) *FrameScheduler {
	interval := DefaultFrameInterval
	if fps > 0 {
		interval = time.Second / time.Duration(fps)
	}

	return &FrameScheduler{Interval: interval}
}

func (s *FrameScheduler) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}

	return s.Now()
}

func (s *FrameScheduler) AfterFrame(fn func(now time.Time)) CancelFunc {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	t := time.AfterFunc(interval, func() {
		fn(s.now())
	})

	var once sync.Once

	return func() {
		once.Do(func() {
			t.Stop()
		})
	}
}

func (s *FrameScheduler) Every(d time.Duration, fn func(now time.Time)) CancelFunc {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}

				fn(s.now())
			}
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() {
			close(done)
		})
	}
}
