package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPSourceFetcherParsesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("1.2.3.4:8080\n\n  5.6.7.8:3128  \nsocks5://9.9.9.9:1080\nnot a url line with spaces\n"))
	}))
	defer srv.Close()

	f := NewHTTPSourceFetcher(5 * time.Second)
	urls, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(urls) < 3 {
		t.Fatalf("parsed %d relays, want at least 3", len(urls))
	}
	if urls[0].Scheme != "http" || urls[0].Host != "1.2.3.4:8080" {
		t.Errorf("first relay = %s://%s, want http://1.2.3.4:8080", urls[0].Scheme, urls[0].Host)
	}
	if urls[2].Scheme != "socks5" {
		t.Errorf("explicit scheme not preserved: %s", urls[2].Scheme)
	}
}

func TestHTTPSourceFetcherNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewHTTPSourceFetcher(5 * time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 source")
	}
}
