package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Strava rate limits: 100 requests per 15 minutes, 1000 per day.
// The limiter tracks both windows locally and trusts the
// X-RateLimit-* response headers as the source of truth.

type limitWindow struct {
	limit    int
	usage    int
	resetsAt time.Time
	span     time.Duration
}

func (w *limitWindow) resetIfExpired(now time.Time) {
	if now.After(w.resetsAt) {
		w.usage = 0
		w.resetsAt = now.Add(w.span)
	}
}

// RateLimiter paces requests against Strava's two quota windows.
type RateLimiter struct {
	mu    sync.Mutex
	short limitWindow
	daily limitWindow

	// Minimum spacing between requests, independent of quota.
	minInterval time.Duration
	lastRequest time.Time
}

// NewRateLimiter creates a limiter preloaded with Strava's published limits.
func NewRateLimiter() *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		short: limitWindow{
			limit:    100,
			resetsAt: now.Add(15 * time.Minute),
			span:     15 * time.Minute,
		},
		daily: limitWindow{
			limit:    1000,
			resetsAt: now.Truncate(24 * time.Hour).Add(24 * time.Hour),
			span:     24 * time.Hour,
		},
		minInterval: 150 * time.Millisecond,
	}
}

// Wait blocks until a request can be made without exceeding either window.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.short.resetIfExpired(now)
	r.daily.resetIfExpired(now)

	for _, w := range []*limitWindow{&r.short, &r.daily} {
		if w.usage >= w.limit {
			if err := r.sleepLocked(ctx, time.Until(w.resetsAt)); err != nil {
				return err
			}
			w.usage = 0
			w.resetsAt = time.Now().Add(w.span)
		}
	}

	if elapsed := time.Since(r.lastRequest); elapsed < r.minInterval {
		if err := r.sleepLocked(ctx, r.minInterval-elapsed); err != nil {
			return err
		}
	}

	r.short.usage++
	r.daily.usage++
	r.lastRequest = time.Now()
	return nil
}

// sleepLocked releases the mutex while sleeping so header updates from
// in-flight responses are not blocked.
func (r *RateLimiter) sleepLocked(ctx context.Context, d time.Duration) error {
	r.mu.Unlock()
	defer r.mu.Lock()
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdateFromHeaders syncs local state with Strava's reported usage.
// Headers look like X-RateLimit-Limit: "100,1000", X-RateLimit-Usage: "34,512".
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if short, daily, ok := splitPair(h.Get("X-RateLimit-Usage")); ok {
		r.short.usage = short
		r.daily.usage = daily
	}
	if short, daily, ok := splitPair(h.Get("X-RateLimit-Limit")); ok {
		r.short.limit = short
		r.daily.limit = daily
	}
}

// Status returns the remaining request budget in each window.
func (r *RateLimiter) Status() (shortRemaining, dailyRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.short.limit - r.short.usage, r.daily.limit - r.daily.usage
}

func splitPair(v string) (first, second int, ok bool) {
	parts := strings.Split(v, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	first, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	second, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return first, second, true
}
