// Package ratelimit provides a keyed token bucket limiter. It guards the
// roadmap generation endpoint, where every request fans out to a paid
// generative API.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// KeyedLimiter manages per-key rate limiting. Each unique key gets its
// own independent token bucket.
type KeyedLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New creates a keyed limiter allowing rps requests per second with the
// given burst per key.
func New(rps float64, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// PerMinute creates a keyed limiter from a requests-per-minute budget.
func PerMinute(rpm int, burst int) *KeyedLimiter {
	return New(float64(rpm)/60.0, burst)
}

// Allow reports whether a request for the key may proceed right now.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.getLimiter(key).Allow()
}

// Wait blocks until a request for the key is allowed or ctx is canceled.
func (kl *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return kl.getLimiter(key).Wait(ctx)
}

func (kl *KeyedLimiter) getLimiter(key string) *rate.Limiter {
	kl.mu.RLock()
	limiter, exists := kl.limiters[key]
	kl.mu.RUnlock()

	if exists {
		return limiter
	}

	kl.mu.Lock()
	defer kl.mu.Unlock()

	if limiter, exists = kl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(kl.limit, kl.burst)
	kl.limiters[key] = limiter
	return limiter
}
