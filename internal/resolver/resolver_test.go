package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// scriptedFetcher returns canned outcomes per target URL.
type scriptedFetcher struct {
	outcomes map[string]error // nil = HTTP 200
	calls    []string
}

func (f *scriptedFetcher) Fetch(ctx context.Context, target string) (*types.Response, error) {
	f.calls = append(f.calls, target)
	if err, ok := f.outcomes[target]; ok && err != nil {
		return nil, err
	}
	return &types.Response{StatusCode: 200, FinalURL: target, Body: []byte("ok")}, nil
}

func TestResolveFirstShapeWins(t *testing.T) {
	f := &scriptedFetcher{}
	r := New(f, slog.Default())

	shapes := []string{"https://yt.test/@name", "https://yt.test/c/name"}
	resp, err := r.Resolve(context.Background(), shapes, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.FinalURL != shapes[0] {
		t.Errorf("resolved %s, want first shape", resp.FinalURL)
	}
	if len(f.calls) != 1 {
		t.Errorf("made %d fetches, want 1", len(f.calls))
	}
}

func TestResolveFallsThroughShapes(t *testing.T) {
	shapes := []string{"https://yt.test/@name", "https://yt.test/c/name", "https://yt.test/channel/name"}
	f := &scriptedFetcher{outcomes: map[string]error{
		shapes[0]: fmt.Errorf("fetch %s: %w", shapes[0], types.ErrRetriesExhausted),
	}}
	r := New(f, slog.Default())

	// First shape fails outright, second returns 200 but is rejected by the
	// accept callback, third is accepted.
	accepted := 0
	resp, err := r.Resolve(context.Background(), shapes, func(resp *types.Response) error {
		if resp.FinalURL == shapes[1] {
			return fmt.Errorf("unparseable page")
		}
		accepted++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.FinalURL != shapes[2] {
		t.Errorf("resolved %s, want third shape", resp.FinalURL)
	}
	if len(f.calls) != 3 {
		t.Errorf("made %d fetches, want 3 (one per shape)", len(f.calls))
	}
	if accepted != 1 {
		t.Errorf("accept passed %d times, want 1", accepted)
	}
}

func TestResolveAllShapesFail(t *testing.T) {
	shapes := []string{"https://yt.test/@name", "https://yt.test/c/name"}
	f := &scriptedFetcher{outcomes: map[string]error{
		shapes[0]: fmt.Errorf("boom: %w", types.ErrRetriesExhausted),
		shapes[1]: fmt.Errorf("boom: %w", types.ErrRetriesExhausted),
	}}
	r := New(f, slog.Default())

	_, err := r.Resolve(context.Background(), shapes, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var ncErr *types.NoCandidateError
	if !errors.As(err, &ncErr) {
		t.Fatalf("error type = %T, want *types.NoCandidateError", err)
	}
	if len(ncErr.Errs) != 2 {
		t.Errorf("carried %d per-shape errors, want 2", len(ncErr.Errs))
	}
	if !errors.Is(err, types.ErrRetriesExhausted) {
		t.Error("per-shape errors not reachable through Unwrap")
	}
}

func TestResolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &scriptedFetcher{}
	r := New(f, slog.Default())

	_, err := r.Resolve(ctx, []string{"https://yt.test/@name"}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(f.calls) != 0 {
		t.Error("fetched despite cancelled context")
	}
}
