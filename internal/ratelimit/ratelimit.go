// Package ratelimit provides per-route request throttling.
//
// Routes declare a Rule (prefix, limit, window) and the limiter tracks a
// token bucket per rule prefix + client key. The in-memory implementation
// (MemoryLimiter) covers single-instance deployments; the Limiter interface
// is the contract for anything beyond that.
package ratelimit

import (
	"context"
	"strconv"
	"time"
)

// Rule describes one throttling policy: Limit requests per Window,
// namespaced by Prefix so different routes do not share buckets.
type Rule struct {
	Prefix string
	Limit  int
	Window time.Duration
}

// Result is the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the bucket refills to capacity. Denied requests may
	// succeed earlier as individual tokens trickle back.
	ResetAt time.Time
}

// FormatHeaders returns the standard X-RateLimit-* response headers.
func (r Result) FormatHeaders() map[string]string {
	return map[string]string{
		"X-RateLimit-Limit":     strconv.Itoa(r.Limit),
		"X-RateLimit-Remaining": strconv.Itoa(r.Remaining),
		"X-RateLimit-Reset":     strconv.FormatInt(r.ResetAt.Unix(), 10),
	}
}

// Limiter decides whether a request identified by rule and key may proceed.
// Implementations must be safe for concurrent use.
type Limiter interface {
	Allow(ctx context.Context, rule Rule, key string) Result

	// Close releases resources (cleanup goroutines, connections).
	Close() error
}

// NoopLimiter permits every request. Used when rate limiting is disabled.
type NoopLimiter struct{}

// Allow always permits, reporting the rule's full allowance.
func (NoopLimiter) Allow(_ context.Context, rule Rule, _ string) Result {
	return Result{
		Allowed:   true,
		Limit:     rule.Limit,
		Remaining: rule.Limit,
		ResetAt:   time.Now().Add(rule.Window),
	}
}

// Close is a no-op.
func (NoopLimiter) Close() error { return nil }
