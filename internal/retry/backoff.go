// Package retry computes delays for failed attempts and enforces the retry
// ceiling for a logical request.
package retry

import (
	"math/rand"
	"time"
)

// Backoff computes exponential delays with a cap and additive jitter. The
// zero MaxRetries means no retries: the first attempt is also the last.
type Backoff struct {
	// MaxRetries is the attempt ceiling; Exceeded(attempt) is true once
	// attempt >= MaxRetries.
	MaxRetries int

	// Base is the unit for the exponential curve. Defaults to one second.
	Base time.Duration

	// MaxDelay caps the pre-jitter delay. Defaults to five minutes.
	MaxDelay time.Duration
}

// New returns a Backoff with the standard curve: base 1s, cap 300s.
func New(maxRetries int) *Backoff {
	return &Backoff{
		MaxRetries: maxRetries,
		Base:       time.Second,
		MaxDelay:   300 * time.Second,
	}
}

// Exceeded reports whether the given attempt index is past the ceiling.
func (b *Backoff) Exceeded(attempt int) bool {
	return attempt >= b.MaxRetries
}

// Delay returns the sleep before retrying after the given attempt:
// min(MaxDelay, Base*2^attempt) plus up to 10% jitter.
func (b *Backoff) Delay(attempt int) time.Duration {
	base := b.Base
	if base <= 0 {
		base = time.Second
	}
	cap := b.MaxDelay
	if cap <= 0 {
		cap = 300 * time.Second
	}

	if attempt > 30 {
		attempt = 30 // avoid shift overflow; cap applies anyway
	}
	d := base << uint(attempt)
	if d > cap || d <= 0 {
		d = cap
	}

	jitter := time.Duration(rand.Float64() * 0.1 * float64(d))
	return d + jitter
}
