// Package proxy maintains a refreshable pool of upstream relays scraped from
// public plain-text list sources. Quality of free lists is volatile, so the
// pool drops a relay on its first detected block instead of tracking
// reputation.
package proxy

import (
	"context"
	"log/slog"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/config"
)

type entry struct {
	url      *url.URL
	failures int
}

// Pool holds the live relay set. Get and Penalize are atomic relative to each
// other so a relay cannot be handed out while being removed.
type Pool struct {
	mu          sync.Mutex
	entries     []*entry
	lastRefresh time.Time
	interval    time.Duration
	maxFailures int
	fetch       SourceFetcher
	sources     []string
	now         func() time.Time
	logger      *slog.Logger
}

// NewPool creates a Pool. The pool starts empty; the first Get triggers a
// refresh.
func NewPool(cfg *config.ProxyConfig, logger *slog.Logger) *Pool {
	maxFailures := cfg.MaxFailures
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Pool{
		interval:    cfg.RefreshInterval,
		maxFailures: maxFailures,
		fetch:       NewHTTPSourceFetcher(cfg.SourceTimeout),
		sources:     cfg.Sources,
		now:         time.Now,
		logger:      logger.With("component", "proxy_pool"),
	}
}

// Get returns a uniformly random relay from the live pool, refreshing first
// when the pool is empty or stale. Returns nil when no relay is available;
// callers treat that as "go direct", not as an error.
func (p *Pool) Get(ctx context.Context) *url.URL {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.refreshLocked(ctx)

	if len(p.entries) == 0 {
		return nil
	}
	return p.entries[rand.Intn(len(p.entries))].url
}

// Penalize records a detected block for the given relay. Once its failure
// count reaches the threshold (1 by default) it is removed immediately and
// never handed out again until a refresh repopulates the pool.
func (p *Pool) Penalize(proxyURL *url.URL) {
	if proxyURL == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.entries {
		if e.url.String() != proxyURL.String() {
			continue
		}
		e.failures++
		if e.failures >= p.maxFailures {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			p.logger.Warn("proxy removed from pool", "proxy", proxyURL.Host, "remaining", len(p.entries))
		}
		return
	}
}

// RefreshIfStale refetches the relay list when the pool is empty or older
// than the refresh interval. Per-source failures are logged and non-fatal.
func (p *Pool) RefreshIfStale(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshLocked(ctx)
}

// Size returns the current number of live relays.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

func (p *Pool) refreshLocked(ctx context.Context) {
	if len(p.entries) > 0 && p.now().Sub(p.lastRefresh) <= p.interval {
		return
	}

	var fresh []*entry
	sourcesOK := 0
	for _, source := range p.sources {
		urls, err := p.fetch.Fetch(ctx, source)
		if err != nil {
			p.logger.Warn("proxy source failed", "source", source, "error", err)
			continue
		}
		sourcesOK++
		for _, u := range urls {
			fresh = append(fresh, &entry{url: u})
		}
	}

	if sourcesOK == 0 {
		if len(p.entries) == 0 {
			// Stay unmarked so the next Get re-triggers a refresh instead of
			// waiting out a full interval with nothing to serve.
			p.logger.Warn("all proxy sources failed and pool is empty")
			return
		}
		p.lastRefresh = p.now()
		p.logger.Warn("all proxy sources failed, keeping current pool", "size", len(p.entries))
		return
	}

	p.entries = fresh
	p.lastRefresh = p.now()
	p.logger.Info("proxy pool refreshed", "size", len(p.entries), "sources_ok", sourcesOK)
}
