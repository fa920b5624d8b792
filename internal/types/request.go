package types

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Request represents a single HTTP attempt against a concrete target.
// The executor builds a fresh Request per attempt so that identity headers
// and the selected proxy never outlive one attempt.
type Request struct {
	// URL is the target URL to fetch.
	URL *url.URL

	// Method is the HTTP method. Defaults to GET.
	Method string

	// Headers carry the full identity header set for this attempt.
	Headers http.Header

	// Proxy is the upstream relay for this attempt; nil means direct.
	Proxy *url.URL

	// Timeout overrides the fetcher's request timeout for this attempt.
	Timeout time.Duration
}

// NewRequest creates a GET Request for the given URL.
func NewRequest(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	return &Request{
		URL:     u,
		Method:  http.MethodGet,
		Headers: make(http.Header),
	}, nil
}

// URLString returns the string representation of the request URL.
func (r *Request) URLString() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.String()
}
