package retry

import (
	"testing"
	"time"
)

func TestExceeded(t *testing.T) {
	cases := []struct {
		maxRetries int
		attempt    int
		want       bool
	}{
		{3, 0, false},
		{3, 2, false},
		{3, 3, true},
		{3, 4, true},
		{1, 0, false},
		{1, 1, true},
		{10, 9, false},
		{10, 10, true},
		{0, 0, true}, // zero retries: first attempt is the last
	}

	for _, c := range cases {
		b := New(c.maxRetries)
		if got := b.Exceeded(c.attempt); got != c.want {
			t.Errorf("New(%d).Exceeded(%d) = %v, want %v", c.maxRetries, c.attempt, got, c.want)
		}
	}
}

func TestDelayExponentialBounds(t *testing.T) {
	b := New(3)

	for attempt := 0; attempt < 6; attempt++ {
		base := time.Second << uint(attempt)
		for i := 0; i < 50; i++ {
			d := b.Delay(attempt)
			if d < base {
				t.Fatalf("Delay(%d) = %s, below base %s", attempt, d, base)
			}
			if max := base + base/10; d > max {
				t.Fatalf("Delay(%d) = %s, above base+10%% jitter %s", attempt, d, max)
			}
		}
	}
}

func TestDelayCapped(t *testing.T) {
	b := New(3)

	// Well past the cap: pre-jitter delay must be exactly MaxDelay.
	for _, attempt := range []int{9, 20, 100} {
		d := b.Delay(attempt)
		if d < 300*time.Second {
			t.Errorf("Delay(%d) = %s, below the 300s cap", attempt, d)
		}
		if d > 330*time.Second {
			t.Errorf("Delay(%d) = %s, above cap+10%% jitter", attempt, d)
		}
	}
}

func TestDelayZeroValueDefaults(t *testing.T) {
	b := &Backoff{MaxRetries: 3}

	d := b.Delay(0)
	if d < time.Second || d > time.Second+100*time.Millisecond {
		t.Errorf("zero-value Delay(0) = %s, want ~1s", d)
	}
}
