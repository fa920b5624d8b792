package fetcher

import (
	"compress/gzip"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/config"
	"github.com/IshaanNene/TubeStalk/internal/types"
)

func newTestHTTPFetcher(t *testing.T) *HTTPFetcher {
	t.Helper()
	f, err := NewHTTPFetcher(config.DefaultConfig(), slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestHTTPFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	f := newTestHTTPFetcher(t)
	req, _ := types.NewRequest(srv.URL)

	resp, err := f.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if string(resp.Body) != "<html>hello</html>" {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.ContentType != "text/html" {
		t.Errorf("content type = %q", resp.ContentType)
	}
	if resp.FetchDuration <= 0 {
		t.Error("fetch duration not recorded")
	}
}

func TestHTTPFetchSendsIdentityHeaders(t *testing.T) {
	var gotUA, gotRTT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotRTT = r.Header.Get("RTT")
	}))
	defer srv.Close()

	f := newTestHTTPFetcher(t)
	req, _ := types.NewRequest(srv.URL)
	req.Headers.Set("User-Agent", "test-agent")
	req.Headers.Set("RTT", "100")

	if _, err := f.Fetch(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotRTT != "100" {
		t.Errorf("RTT = %q", gotRTT)
	}
}

func TestHTTPFetchNon2xxIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := newTestHTTPFetcher(t)
	req, _ := types.NewRequest(srv.URL)

	resp, err := f.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("status classification belongs to the caller, got error: %v", err)
	}
	if resp.StatusCode != 429 {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}
}

func TestHTTPFetchGzipDecompressed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("compressed payload"))
		gz.Close()
	}))
	defer srv.Close()

	f := newTestHTTPFetcher(t)
	req, _ := types.NewRequest(srv.URL)

	resp, err := f.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "compressed payload" {
		t.Errorf("body = %q, want decompressed payload", resp.Body)
	}
}

func TestHTTPFetchBodySizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 4096))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Fetcher.MaxBodySize = 1024
	f, err := NewHTTPFetcher(cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	req, _ := types.NewRequest(srv.URL)
	resp, err := f.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Body) != 1024 {
		t.Errorf("body length = %d, want truncated to 1024", len(resp.Body))
	}
}

func TestHTTPFetchPerRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	f := newTestHTTPFetcher(t)
	req, _ := types.NewRequest(srv.URL)
	req.Timeout = 50 * time.Millisecond

	start := time.Now()
	if _, err := f.Fetch(context.Background(), req); err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > time.Second {
		t.Error("per-request timeout not applied")
	}
}

func TestHTTPFetchRedirectFollowed(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("final"))
	}))
	defer target.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer srv.Close()

	f := newTestHTTPFetcher(t)
	req, _ := types.NewRequest(srv.URL)

	resp, err := f.Fetch(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "final" {
		t.Errorf("body = %q, want redirect followed", resp.Body)
	}
	if resp.FinalURL != target.URL {
		t.Errorf("FinalURL = %s, want %s", resp.FinalURL, target.URL)
	}
}

func TestHTTPFetcherType(t *testing.T) {
	f := newTestHTTPFetcher(t)
	if f.Type() != "http" {
		t.Errorf("Type = %q", f.Type())
	}
}
