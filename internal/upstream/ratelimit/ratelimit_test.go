package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(429))
	assert.True(t, Retryable(500))
	assert.True(t, Retryable(503))
	assert.False(t, Retryable(200))
	assert.False(t, Retryable(400))
	assert.False(t, Retryable(404))
	assert.False(t, Retryable(600))
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	cfg := Config{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second}

	for attempt := 0; attempt < 8; attempt++ {
		d := Backoff(attempt, cfg)
		base := float64(cfg.InitialBackoff) * float64(int(1)<<uint(attempt))
		if base > float64(cfg.MaxBackoff) {
			base = float64(cfg.MaxBackoff)
		}
		assert.GreaterOrEqual(t, float64(d), base)
		assert.LessOrEqual(t, float64(d), base*1.25)
	}
}

func TestRateLimitBackoffHonorsRetryAfter(t *testing.T) {
	cfg := DefaultConfig()

	d := RateLimitBackoff(0, cfg, "2")
	assert.GreaterOrEqual(t, d, 2*time.Second)
	assert.Less(t, d, 3*time.Second)

	// Unparseable header falls back to the exponential curve.
	d = RateLimitBackoff(0, cfg, "soon")
	assert.Less(t, d, time.Second)
}

func TestWithOverrides(t *testing.T) {
	rps := 50
	backoff := 10 * time.Millisecond
	cfg := WithOverrides(PartialConfig{
		RequestsPerSecond: &rps,
		InitialBackoff:    &backoff,
	})

	assert.Equal(t, 50, cfg.RequestsPerSecond)
	assert.Equal(t, 10*time.Millisecond, cfg.InitialBackoff)
	// Untouched fields keep defaults.
	assert.Equal(t, DefaultConfig().MaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultConfig().MaxBackoff, cfg.MaxBackoff)
}

func TestLimiterPacesCalls(t *testing.T) {
	l := NewLimiter(Config{RequestsPerSecond: 100})

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	// Three slots at 10ms spacing: at least 20ms total.
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestLimiterHonorsContext(t *testing.T) {
	l := NewLimiter(Config{RequestsPerSecond: 1})
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := l.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRetryErrorMessage(t *testing.T) {
	err := &RetryError{
		URL:        "https://api.example.com/api/products",
		Attempts:   4,
		LastStatus: 503,
		Err:        errors.New("service unavailable"),
	}
	assert.Contains(t, err.Error(), "after 4 attempts")
	assert.Contains(t, err.Error(), "HTTP 503")
	assert.ErrorContains(t, err, "service unavailable")
}
