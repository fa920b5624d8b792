package fetcher

import (
	"context"

	"github.com/IshaanNene/TubeStalk/internal/types"
)

// Fetcher is a transport that performs exactly one attempt. Classification
// and retry live in the Executor, so every transport (plain HTTP, headless
// browser) is wrapped by the same resilience logic.
type Fetcher interface {
	// Fetch retrieves the content at the given request's URL. A non-2xx
	// status is returned as a Response, not an error; errors are reserved
	// for transport-level failures.
	Fetch(ctx context.Context, req *types.Request) (*types.Response, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}
