package light

import (
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between updates per key.
type RateLimiter struct {
	last map[string]time.Time
	now  func() time.Time
	mu   sync.Mutex
}

// NewRateLimiter creates a new rate limiter. A nil now uses time.Now.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}

	return &RateLimiter{
		last: make(map[string]time.Time),
		now:  now,
	}
}

// Allow reports whether minInterval has passed since the last allowed
// update for key, and records the update if so.
func (rl *RateLimiter) Allow(key string, minInterval time.Duration) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	last, exists := rl.last[key]
	if exists && now.Sub(last) < minInterval {
		return false
	}

	rl.last[key] = now

	return true
}

// Record marks an update for key that bypassed the limit.
func (rl *RateLimiter) Record(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.last[key] = rl.now()
}

// SinceLast returns the time passed since the last update for key.
func (rl *RateLimiter) SinceLast(key string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	t, ok := rl.last[key]
	if !ok {
		return 0, false
	}

	return rl.now().Sub(t), true
}
