package ratelimit

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"
)

// RetryError reports that all retry attempts for a URL were exhausted.
type RetryError struct {
	URL        string
	Attempts   int
	LastStatus int
	Err        error
}

func (e *RetryError) Error() string {
	msg := fmt.Sprintf("failed to fetch %s after %d attempts", e.URL, e.Attempts)
	if e.LastStatus != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.LastStatus)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RetryError) Unwrap() error { return e.Err }

// Retryable reports whether an HTTP status is worth retrying: 429 and 5xx.
func Retryable(status int) bool {
	return status == 429 || (status >= 500 && status < 600)
}

// Backoff computes the exponential backoff delay for an attempt, capped at
// MaxBackoff, with up to 25% jitter.
func Backoff(attempt int, cfg Config) time.Duration {
	delay := float64(cfg.InitialBackoff) * math.Pow(2, float64(attempt))
	delay = math.Min(delay, float64(cfg.MaxBackoff))
	jitter := rand.Float64() * 0.25 * delay
	return time.Duration(delay + jitter)
}

// RateLimitBackoff computes the delay after an HTTP 429. A server-provided
// Retry-After wins; otherwise a steeper 3x curve is used.
func RateLimitBackoff(attempt int, cfg Config, retryAfter string) time.Duration {
	if retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			jitter := time.Duration(rand.Int63n(int64(time.Second)))
			return time.Duration(seconds)*time.Second + jitter
		}
	}
	delay := float64(cfg.InitialBackoff) * math.Pow(3, float64(attempt))
	delay = math.Min(delay, float64(cfg.MaxBackoff))
	jitter := rand.Float64() * 0.25 * delay
	return time.Duration(delay + jitter)
}
