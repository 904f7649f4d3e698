package bot

import (
	"sync"
	"time"
)

// rateLimiter implements a per-user sliding window counter.
type rateLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	requests map[int64][]time.Time
}

func newRateLimiter(window time.Duration, max int) *rateLimiter {
	return &rateLimiter{
		window:   window,
		max:      max,
		requests: make(map[int64][]time.Time),
	}
}

func (limiter *rateLimiter) Allow(userID int64, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	cutoff := now.Add(-limiter.window)
	var recent []time.Time
	for _, at := range limiter.requests[userID] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= limiter.max {
		limiter.requests[userID] = recent
		return false
	}

	limiter.requests[userID] = append(recent, now)
	return true
}
