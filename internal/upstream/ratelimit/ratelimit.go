// Package ratelimit paces and retries outbound calls to the commerce API.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Config holds pacing and retry configuration for upstream requests.
type Config struct {
	RequestsPerSecond int           `json:"requestsPerSecond"`
	MaxRetries        int           `json:"maxRetries"`
	InitialBackoff    time.Duration `json:"initialBackoff"`
	MaxBackoff        time.Duration `json:"maxBackoff"`
}

// DefaultConfig returns the default upstream pacing configuration.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		MaxRetries:        3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        30 * time.Second,
	}
}

// PartialConfig overrides individual Config fields.
type PartialConfig struct {
	RequestsPerSecond *int           `json:"requestsPerSecond,omitempty"`
	MaxRetries        *int           `json:"maxRetries,omitempty"`
	InitialBackoff    *time.Duration `json:"initialBackoff,omitempty"`
	MaxBackoff        *time.Duration `json:"maxBackoff,omitempty"`
}

// WithOverrides applies a PartialConfig on top of the defaults.
func WithOverrides(overrides PartialConfig) Config {
	cfg := DefaultConfig()
	if overrides.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *overrides.RequestsPerSecond
	}
	if overrides.MaxRetries != nil {
		cfg.MaxRetries = *overrides.MaxRetries
	}
	if overrides.InitialBackoff != nil {
		cfg.InitialBackoff = *overrides.InitialBackoff
	}
	if overrides.MaxBackoff != nil {
		cfg.MaxBackoff = *overrides.MaxBackoff
	}
	return cfg
}

// Limiter enforces a minimum interval between requests.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewLimiter creates a Limiter from the config's requests-per-second.
func NewLimiter(cfg Config) *Limiter {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Limiter{interval: time.Second / time.Duration(rps)}
}

// Wait blocks until the next request slot or until ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()
	next := l.last.Add(l.interval)
	if next.Before(now) {
		next = now
	}
	l.last = next
	l.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset clears the limiter state, releasing the next call immediately.
func (l *Limiter) Reset() {
	l.mu.Lock()
	l.last = time.Time{}
	l.mu.Unlock()
}
