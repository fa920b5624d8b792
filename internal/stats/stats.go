// Package stats aggregates run-level counters. All mutations are monotonic;
// there is no rollback, so callers must record exactly one terminal outcome
// per logical request.
package stats

import (
	"sync/atomic"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// Aggregator collects process-wide counters for one scrape run.
type Aggregator struct {
	start time.Time

	totalItems     atomic.Int64
	processedItems atomic.Int64
	successCount   atomic.Int64
	errorCount     atomic.Int64
	rateLimitsHit  atomic.Int64
	totalRequests  atomic.Int64
}

// New creates an Aggregator with the run start time set to now.
func New() *Aggregator {
	return &Aggregator{start: time.Now()}
}

// RecordRequest counts one logical fetch, regardless of how many attempts it
// takes.
func (a *Aggregator) RecordRequest() { a.totalRequests.Add(1) }

// RecordSuccess counts a terminal success.
func (a *Aggregator) RecordSuccess() { a.successCount.Add(1) }

// RecordError counts a terminal failure.
func (a *Aggregator) RecordError() { a.errorCount.Add(1) }

// RecordRateLimit counts one HTTP 429 observation. A rate-limited attempt may
// still be retried into success, so this can exceed the error count.
func (a *Aggregator) RecordRateLimit() { a.rateLimitsHit.Add(1) }

// AddItems grows the total item count for a batch operation.
func (a *Aggregator) AddItems(n int) { a.totalItems.Add(int64(n)) }

// RecordProcessed counts one batch item as handled, successfully or not.
func (a *Aggregator) RecordProcessed() { a.processedItems.Add(1) }

// Snapshot returns the current counters. EndTime is filled with the current
// time non-destructively; repeated snapshots move it forward but never rewind
// any counter.
func (a *Aggregator) Snapshot() types.RunStats {
	return types.RunStats{
		StartTime:      a.start,
		EndTime:        time.Now(),
		TotalItems:     a.totalItems.Load(),
		ProcessedItems: a.processedItems.Load(),
		SuccessCount:   a.successCount.Load(),
		ErrorCount:     a.errorCount.Load(),
		RateLimitsHit:  a.rateLimitsHit.Load(),
		TotalRequests:  a.totalRequests.Load(),
	}
}
