package playback

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameScheduler(t *testing.T) {
	assert.Equal(t, DefaultFrameInterval, NewFrameScheduler(0).Interval)
	assert.Equal(t, 50*time.Millisecond, NewFrameScheduler(20).Interval)
}

func TestAfterFrameRunsOnce(t *testing.T) {
	s := &FrameScheduler{Interval: time.Millisecond}

	done := make(chan time.Time, 1)

	s.AfterFrame(func(now time.Time) {
		done <- now
	})

	select {
	case now := <-done:
		assert.False(t, now.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback did not run")
	}
}

func TestFrameSchedulerUsesItsClock(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	s := &FrameScheduler{
		Interval: time.Millisecond,
		Now: func() time.Time {
			return fixed
		},
	}

	frames := make(chan time.Time, 1)
	s.AfterFrame(func(now time.Time) {
		frames <- now
	})

	ticks := make(chan time.Time, 1)
	cancel := s.Every(time.Millisecond, func(now time.Time) {
		select {
		case ticks <- now:
		default:
		}
	})
	defer cancel()

	for _, ch := range []chan time.Time{frames, ticks} {
		select {
		case now := <-ch:
			assert.Equal(t, fixed, now)
		case <-time.After(2 * time.Second):
			t.Fatal("callback did not run")
		}
	}
}

func TestControllerSharesClockWithScheduler(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	s := NewFrameScheduler(30)
	New(newFakeAudio(), &fakeLight{}, resolver, WithScheduler(s), WithClock(now))

	require.NotNil(t, s.Now)
	assert.Equal(t, fixed, s.Now())

	own := &FrameScheduler{Now: time.Now}
	New(newFakeAudio(), &fakeLight{}, resolver, WithScheduler(own), WithClock(now))

	assert.NotEqual(t, fixed, own.Now())
}

func TestAfterFrameCancel(t *testing.T) {
	s := &FrameScheduler{Interval: 20 * time.Millisecond}

	var ran atomic.Bool

	cancel := s.AfterFrame(func(time.Time) {
		ran.Store(true)
	})

	cancel()
	cancel()

	time.Sleep(60 * time.Millisecond)
	assert.False(t, ran.Load())
}

func TestEveryUntilCancelled(t *testing.T) {
	s := &FrameScheduler{}

	var count atomic.Int32

	cancel := s.Every(time.Millisecond, func(time.Time) {
		count.Add(1)
	})

	assert.Eventually(t, func() bool {
		return count.Load() >= 3
	}, 2*time.Second, time.Millisecond)

	cancel()
	cancel()

	// let an in-flight callback finish
	time.Sleep(10 * time.Millisecond)

	stopped := count.Load()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, count.Load())
}
