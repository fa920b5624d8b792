package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/storage"
	"github.com/IshaanNene/TubeStalk/internal/types"
)

type stubStats struct {
	s types.RunStats
}

func (s stubStats) Stats() types.RunStats { return s.s }

func newTestWriter(t *testing.T) *storage.Writer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	writer, err := storage.NewRunWriter(t.TempDir(), "json", logger)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	return writer
}

func TestFinishRunWritesStatsOnScrapeFailure(t *testing.T) {
	writer := newTestWriter(t)
	src := stubStats{s: types.RunStats{
		StartTime:     time.Now(),
		EndTime:       time.Now(),
		TotalRequests: 3,
		ErrorCount:    3,
	}}
	scrapeErr := errors.New("retries exhausted")

	if got := finishRun(src, writer, time.Second, scrapeErr); !errors.Is(got, scrapeErr) {
		t.Fatalf("finishRun = %v, want the scrape error passed through", got)
	}
	if _, err := os.Stat(filepath.Join(writer.RunDir(), "stats.json")); err != nil {
		t.Errorf("stats artifact missing after failed scrape: %v", err)
	}
}

func TestFinishRunSuccess(t *testing.T) {
	writer := newTestWriter(t)
	src := stubStats{s: types.RunStats{TotalRequests: 2, SuccessCount: 2}}

	if err := finishRun(src, writer, time.Second, nil); err != nil {
		t.Fatalf("finishRun = %v", err)
	}
	if _, err := os.Stat(filepath.Join(writer.RunDir(), "stats.json")); err != nil {
		t.Errorf("stats artifact missing: %v", err)
	}
}
