package proxy

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SourceFetcher retrieves relay addresses from one list source.
type SourceFetcher interface {
	// Fetch downloads and parses a plain-text source: one host:port per line.
	Fetch(ctx context.Context, source string) ([]*url.URL, error)
}

// HTTPSourceFetcher fetches newline-separated host:port lists over HTTP.
type HTTPSourceFetcher struct {
	client *http.Client
}

// NewHTTPSourceFetcher creates a fetcher with the given per-source timeout.
func NewHTTPSourceFetcher(timeout time.Duration) *HTTPSourceFetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPSourceFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch implements SourceFetcher. Lines that do not parse as host:port URLs
// are skipped silently; a non-200 status fails the source as a whole.
func (f *HTTPSourceFetcher) Fetch(ctx context.Context, source string) ([]*url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	var urls []*url.URL
	scanner := bufio.NewScanner(io.LimitReader(resp.Body, 4<<20))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.Contains(line, "://") {
			line = "http://" + line
		}
		u, err := url.Parse(line)
		if err != nil || u.Host == "" {
			continue
		}
		urls = append(urls, u)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
