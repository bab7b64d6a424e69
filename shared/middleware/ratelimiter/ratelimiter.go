// Package ratelimiter keeps one token bucket per identity.
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter manages rate limiting for multiple identities. Buckets
// idle for longer than expirationTime are dropped by a background sweep.
type UserRateLimiter struct {
	mu             sync.Mutex
	limiters       map[string]*entry
	rate           rate.Limit
	burst          int
	expirationTime time.Duration
	stop           chan struct{}
	stopOnce       sync.Once
}

// New creates a limiter allowing ratePerSec requests per second with the
// given burst for every identity.
func New(ratePerSec float64, burst int, expirationTime time.Duration) *UserRateLimiter {
	url := &UserRateLimiter{
		limiters:       make(map[string]*entry),
		rate:           rate.Limit(ratePerSec),
		burst:          burst,
		expirationTime: expirationTime,
		stop:           make(chan struct{}),
	}
	go url.cleanupLoop()
	return url
}

// Allow checks if a request should be allowed for a given identity
func (url *UserRateLimiter) Allow(identity string) bool {
	url.mu.Lock()
	e, ok := url.limiters[identity]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(url.rate, url.burst)}
		url.limiters[identity] = e
	}
	e.lastSeen = time.Now()
	url.mu.Unlock()

	return e.limiter.Allow()
}

func (url *UserRateLimiter) cleanupLoop() {
	period := url.expirationTime / 2
	if period <= 0 {
		period = time.Minute
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-url.stop:
			return
		case now := <-ticker.C:
			url.evict(now.Add(-url.expirationTime))
		}
	}
}

func (url *UserRateLimiter) evict(cutoff time.Time) {
	url.mu.Lock()
	defer url.mu.Unlock()
	for id, e := range url.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(url.limiters, id)
		}
	}
}

func (url *UserRateLimiter) size() int {
	url.mu.Lock()
	defer url.mu.Unlock()
	return len(url.limiters)
}

// Stop ends the background sweep.
func (url *UserRateLimiter) Stop() {
	url.stopOnce.Do(func() { close(url.stop) })
}

// Done is closed once Stop has been called.
func (url *UserRateLimiter) Done() <-chan struct{} {
	return url.stop
}
