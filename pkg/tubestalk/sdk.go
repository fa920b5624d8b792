// Package tubestalk provides a public SDK for embedding TubeStalk as a
// library.
//
// Example usage:
//
//	client := tubestalk.NewClient(
//	    tubestalk.WithMaxRetries(5),
//	    tubestalk.WithProxies(),
//	)
//	defer client.Close()
//
//	channel, err := client.Channel(ctx, "@SomeCreator")
//	videos, err := client.ChannelVideos(ctx, "@SomeCreator", 25)
package tubestalk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/config"
	"github.com/IshaanNene/TubeStalk/internal/scraper"
	"github.com/IshaanNene/TubeStalk/internal/types"
)

// Client is the high-level API for using TubeStalk as a library. A Client
// owns one scrape session: a shared cookie jar, a warm-up navigation, and
// one running set of stats.
type Client struct {
	cfg    *config.Config
	orch   *scraper.Orchestrator
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*config.Config)

// WithMaxRetries sets the per-request retry ceiling.
func WithMaxRetries(n int) Option {
	return func(c *config.Config) { c.Scraper.MaxRetries = n }
}

// WithSleepInterval sets the base pause between batch items.
func WithSleepInterval(d time.Duration) Option {
	return func(c *config.Config) { c.Scraper.SleepInterval = d }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config.Config) { c.Scraper.RequestTimeout = d }
}

// WithProxies routes requests through the free-proxy pool.
func WithProxies() Option {
	return func(c *config.Config) { c.Proxy.Enabled = true }
}

// WithProxySources replaces the default relay list sources.
func WithProxySources(sources ...string) Option {
	return func(c *config.Config) {
		c.Proxy.Enabled = true
		c.Proxy.Sources = sources
	}
}

// WithBrowser fetches pages through a headless browser instead of plain HTTP.
func WithBrowser() Option {
	return func(c *config.Config) { c.Fetcher.Type = "browser" }
}

// WithUserAgents sets a custom user-agent pool.
func WithUserAgents(agents ...string) Option {
	return func(c *config.Config) { c.Identity.UserAgents = agents }
}

// WithBaseURL points the client at a different frontend, mainly for testing.
func WithBaseURL(base string) Option {
	return func(c *config.Config) { c.Scraper.BaseURL = base }
}

// WithVerbose enables debug-level logging.
func WithVerbose() Option {
	return func(c *config.Config) { c.Logging.Level = "debug" }
}

// NewClient creates a Client with the given options.
func NewClient(opts ...Option) (*Client, error) {
	cfg := config.DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	orch, err := scraper.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, orch: orch, logger: logger}, nil
}

// Channel scrapes a channel's metadata. The identifier may be an @handle, a
// bare handle, or any channel URL form.
func (c *Client) Channel(ctx context.Context, identifier string) (*types.ChannelMetadata, error) {
	return c.orch.Channel(ctx, identifier)
}

// Video scrapes a single video's metadata from its ID or URL.
func (c *Client) Video(ctx context.Context, identifier string) (*types.VideoMetadata, error) {
	return c.orch.Video(ctx, identifier)
}

// ChannelVideos scrapes up to limit videos from a channel (0 = all found).
func (c *Client) ChannelVideos(ctx context.Context, identifier string, limit int) ([]types.VideoMetadata, error) {
	return c.orch.ChannelVideos(ctx, identifier, limit)
}

// Playlists scrapes up to limit playlists from a channel (0 = all found).
func (c *Client) Playlists(ctx context.Context, identifier string, limit int) ([]types.PlaylistMetadata, error) {
	return c.orch.Playlists(ctx, identifier, limit)
}

// Comments scrapes up to limit comments from a video's watch page.
func (c *Client) Comments(ctx context.Context, identifier string, limit int) ([]types.Comment, error) {
	return c.orch.Comments(ctx, identifier, limit)
}

// CommunityPosts scrapes up to limit posts from a channel's community tab.
func (c *Client) CommunityPosts(ctx context.Context, identifier string, limit int) ([]types.CommunityPost, error) {
	return c.orch.CommunityPosts(ctx, identifier, limit)
}

// Stats returns a snapshot of the session counters.
func (c *Client) Stats() types.RunStats {
	return c.orch.Stats()
}

// Close releases the client's transport.
func (c *Client) Close() error {
	return c.orch.Close()
}
