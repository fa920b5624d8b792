package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/identity"
	"github.com/IshaanNene/TubeStalk/internal/retry"
	"github.com/IshaanNene/TubeStalk/internal/stats"
	"github.com/IshaanNene/TubeStalk/internal/types"
)

// ProxyPool is what the executor needs from the relay pool. Nil pools are
// allowed and mean direct connections only.
type ProxyPool interface {
	Get(ctx context.Context) *url.URL
	Penalize(proxyURL *url.URL)
}

// Executor issues one logical fetch with identity rotation, optional relay
// selection, response classification, and a bounded retry loop. Stats are
// mutated once per logical fetch and once per terminal outcome.
type Executor struct {
	fetcher  Fetcher
	identity *identity.Rotator
	proxies  ProxyPool
	backoff  *retry.Backoff
	stats    *stats.Aggregator
	logger   *slog.Logger

	sleepInterval time.Duration
	warmupURL     string

	warmMu sync.Mutex
	warmed bool
}

// NewExecutor creates an Executor wrapping the given transport. warmupURL may
// be empty to disable the session warm-up navigation.
func NewExecutor(
	f Fetcher,
	rot *identity.Rotator,
	pool ProxyPool,
	backoff *retry.Backoff,
	agg *stats.Aggregator,
	sleepInterval time.Duration,
	warmupURL string,
	logger *slog.Logger,
) *Executor {
	return &Executor{
		fetcher:       f,
		identity:      rot,
		proxies:       pool,
		backoff:       backoff,
		stats:         agg,
		sleepInterval: sleepInterval,
		warmupURL:     warmupURL,
		logger:        logger.With("component", "executor"),
	}
}

// Fetch retrieves the target, retrying up to the backoff ceiling. Every
// attempt carries a fresh identity; 429 sleeps the backoff delay, 403 rotates
// without sleeping, anything else sleeps a randomized interval. The terminal
// outcome is recorded exactly once.
func (e *Executor) Fetch(ctx context.Context, target string) (*types.Response, error) {
	e.stats.RecordRequest()
	e.warmUp(ctx)

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			e.stats.RecordError()
			return nil, err
		}

		resp, err := e.attempt(ctx, target)
		if err != nil {
			if ctx.Err() != nil {
				e.stats.RecordError()
				return nil, ctx.Err()
			}
			lastErr = err
			if e.backoff.Exceeded(attempt + 1) {
				return nil, e.exhausted(target, attempt+1, lastErr)
			}
			if err := e.sleep(ctx, e.randomInterval()); err != nil {
				e.stats.RecordError()
				return nil, err
			}
			continue
		}

		switch {
		case resp.StatusCode == 200:
			e.stats.RecordSuccess()
			return resp, nil

		case resp.StatusCode == 429:
			e.stats.RecordRateLimit()
			lastErr = &types.FetchError{
				URL:        target,
				StatusCode: 429,
				Err:        fmt.Errorf("rate limited"),
				Retryable:  true,
				RetryAfter: parseRetryAfter(resp.Headers.Get("Retry-After")),
			}
			if e.backoff.Exceeded(attempt + 1) {
				return nil, e.exhausted(target, attempt+1, lastErr)
			}
			delay := e.backoff.Delay(attempt)
			e.logger.Warn("rate limited, backing off", "url", target, "attempt", attempt, "delay", delay)
			if err := e.sleep(ctx, delay); err != nil {
				e.stats.RecordError()
				return nil, err
			}

		case resp.StatusCode == 403:
			// Identity and relay rotation is the mitigation; no sleep.
			if resp.Request != nil && resp.Request.Proxy != nil && e.proxies != nil {
				e.proxies.Penalize(resp.Request.Proxy)
			}
			lastErr = &types.FetchError{
				URL:        target,
				StatusCode: 403,
				Err:        fmt.Errorf("blocked by bot detection"),
				Retryable:  true,
			}
			if e.backoff.Exceeded(attempt + 1) {
				return nil, e.exhausted(target, attempt+1, lastErr)
			}
			e.logger.Warn("bot detection response, rotating identity", "url", target, "attempt", attempt)

		default:
			lastErr = &types.FetchError{
				URL:        target,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("unexpected status"),
				Retryable:  true,
			}
			if e.backoff.Exceeded(attempt + 1) {
				return nil, e.exhausted(target, attempt+1, lastErr)
			}
			if err := e.sleep(ctx, e.randomInterval()); err != nil {
				e.stats.RecordError()
				return nil, err
			}
		}
	}
}

// Close releases the underlying transport.
func (e *Executor) Close() error {
	return e.fetcher.Close()
}

// attempt performs a single fetch with a freshly built identity.
func (e *Executor) attempt(ctx context.Context, target string) (*types.Response, error) {
	req, err := types.NewRequest(target)
	if err != nil {
		return nil, err
	}
	req.Headers = e.identity.Generate()
	if e.proxies != nil {
		req.Proxy = e.proxies.Get(ctx)
	}
	return e.fetcher.Fetch(ctx, req)
}

// warmUp performs a one-time navigation to an unrelated popular page so the
// following burst of requests looks less automated. Failures are non-fatal.
func (e *Executor) warmUp(ctx context.Context) {
	if e.warmupURL == "" {
		return
	}
	e.warmMu.Lock()
	defer e.warmMu.Unlock()
	if e.warmed {
		return
	}
	e.warmed = true

	req, err := types.NewRequest(e.warmupURL)
	if err != nil {
		return
	}
	req.Headers = e.identity.Generate()
	if _, err := e.fetcher.Fetch(ctx, req); err != nil {
		e.logger.Warn("warm-up navigation failed", "url", e.warmupURL, "error", err)
	}
	_ = e.sleep(ctx, time.Duration(float64(time.Second)*(1+2*rand.Float64())))
}

func (e *Executor) exhausted(target string, attempts int, lastErr error) error {
	e.stats.RecordError()
	e.logger.Error("retries exhausted", "url", target, "attempts", attempts, "error", lastErr)
	return fmt.Errorf("fetch %s: %w after %d attempts: %w", target, types.ErrRetriesExhausted, attempts, lastErr)
}

// randomInterval returns a duration uniformly in [sleepInterval, 2*sleepInterval].
func (e *Executor) randomInterval() time.Duration {
	if e.sleepInterval <= 0 {
		return 0
	}
	return e.sleepInterval + time.Duration(rand.Float64()*float64(e.sleepInterval))
}

func (e *Executor) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseRetryAfter parses an integer-seconds Retry-After value, capped at two
// minutes. The backoff curve still governs the actual sleep; the parsed value
// is carried on the error for diagnostics.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	var secs int
	if _, err := fmt.Sscanf(header, "%d", &secs); err != nil || secs < 0 {
		return 0
	}
	if secs > 120 {
		secs = 120
	}
	return time.Duration(secs) * time.Second
}
