package stats

import (
	"sync"
	"testing"
)

func TestAggregatorCounters(t *testing.T) {
	a := New()

	a.RecordRequest()
	a.RecordRequest()
	a.RecordSuccess()
	a.RecordError()
	a.RecordRateLimit()
	a.RecordRateLimit()
	a.RecordRateLimit()
	a.AddItems(5)
	a.RecordProcessed()
	a.RecordProcessed()

	s := a.Snapshot()
	if s.TotalRequests != 2 {
		t.Errorf("TotalRequests = %d, want 2", s.TotalRequests)
	}
	if s.SuccessCount != 1 {
		t.Errorf("SuccessCount = %d, want 1", s.SuccessCount)
	}
	if s.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", s.ErrorCount)
	}
	if s.RateLimitsHit != 3 {
		t.Errorf("RateLimitsHit = %d, want 3", s.RateLimitsHit)
	}
	if s.TotalItems != 5 {
		t.Errorf("TotalItems = %d, want 5", s.TotalItems)
	}
	if s.ProcessedItems != 2 {
		t.Errorf("ProcessedItems = %d, want 2", s.ProcessedItems)
	}
	if s.EndTime.Before(s.StartTime) {
		t.Errorf("EndTime %s before StartTime %s", s.EndTime, s.StartTime)
	}
}

func TestSnapshotNonDestructive(t *testing.T) {
	a := New()
	a.RecordRequest()
	a.RecordSuccess()

	first := a.Snapshot()
	second := a.Snapshot()
	if first.TotalRequests != second.TotalRequests || first.SuccessCount != second.SuccessCount {
		t.Error("snapshot changed counters")
	}

	a.RecordRequest()
	third := a.Snapshot()
	if third.TotalRequests != first.TotalRequests+1 {
		t.Errorf("counting did not continue after snapshot: %d", third.TotalRequests)
	}
}

func TestAggregatorConcurrent(t *testing.T) {
	a := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.RecordRequest()
				a.RecordSuccess()
			}
		}()
	}
	wg.Wait()

	s := a.Snapshot()
	if s.TotalRequests != 1000 || s.SuccessCount != 1000 {
		t.Errorf("got requests=%d successes=%d, want 1000 each", s.TotalRequests, s.SuccessCount)
	}
}
