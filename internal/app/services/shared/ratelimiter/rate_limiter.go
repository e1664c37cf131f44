package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiter is an in-process sliding-window admission helper keyed by an
// arbitrary string (operation name, endpoint). Only admitted attempts count
// toward the window; rejected attempts are not recorded.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// NewRateLimiterWithClock constructs a limiter with an injected clock, used by
// tests to step through the window deterministically.
func NewRateLimiterWithClock(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		now:      now,
	}
}

// IsAllowed prunes timestamps older than the window, then admits and records
// the attempt if fewer than maxRequests remain.
func (l *RateLimiter) IsAllowed(key string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	windowStart := now.Add(-window)

	timestamps := l.requests[key]
	pruned := timestamps[:0]
	for _, t := range timestamps {
		if t.After(windowStart) {
			pruned = append(pruned, t)
		}
	}

	if len(pruned) >= maxRequests {
		l.requests[key] = pruned
		return false
	}

	l.requests[key] = append(pruned, now)
	return true
}

// RetryAfter returns how long until the oldest recorded timestamp for the key
// exits the window, clamped to zero. It does not evaluate whether the limit is
// currently exceeded.
func (l *RateLimiter) RetryAfter(key string, maxRequests int, window time.Duration) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamps := l.requests[key]
	if len(timestamps) == 0 {
		return 0
	}

	oldest := timestamps[0]
	for _, t := range timestamps[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}

	retryAfter := oldest.Add(window).Sub(l.now())
	if retryAfter < 0 {
		return 0
	}
	return retryAfter
}
