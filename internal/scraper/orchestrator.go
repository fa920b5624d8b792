// Package scraper wires the fetch, resolve, and parse layers into the
// channel/video/playlist/comment/community operations exposed to the CLI.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/config"
	"github.com/IshaanNene/TubeStalk/internal/fetcher"
	"github.com/IshaanNene/TubeStalk/internal/identity"
	"github.com/IshaanNene/TubeStalk/internal/parser"
	"github.com/IshaanNene/TubeStalk/internal/proxy"
	"github.com/IshaanNene/TubeStalk/internal/resolver"
	"github.com/IshaanNene/TubeStalk/internal/retry"
	"github.com/IshaanNene/TubeStalk/internal/stats"
	"github.com/IshaanNene/TubeStalk/internal/types"
)

// Executor is the retrying fetch the orchestrator drives for direct targets.
type Executor interface {
	Fetch(ctx context.Context, target string) (*types.Response, error)
	Close() error
}

// Orchestrator runs scrape operations end to end. Operations are best-effort:
// a batch keeps going past individual failures, and every run produces stats
// whatever the outcome. An error return means nothing usable was produced.
type Orchestrator struct {
	cfg      *config.Config
	exec     Executor
	resolver *resolver.Resolver
	parser   parser.PageParser
	stats    *stats.Aggregator
	logger   *slog.Logger
}

// New builds a fully wired Orchestrator from configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Orchestrator, error) {
	agg := stats.New()
	rot := identity.NewRotator(&cfg.Identity, logger)

	var pool fetcher.ProxyPool
	if cfg.Proxy.Enabled {
		pool = proxy.NewPool(&cfg.Proxy, logger)
	}

	var (
		f   fetcher.Fetcher
		err error
	)
	switch cfg.Fetcher.Type {
	case "browser":
		f, err = fetcher.NewBrowserFetcher(cfg, "", logger)
	default:
		f, err = fetcher.NewHTTPFetcher(cfg, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	warmupURL := ""
	if cfg.Scraper.WarmupPath != "" {
		warmupURL = cfg.Scraper.BaseURL + cfg.Scraper.WarmupPath
	}

	exec := fetcher.NewExecutor(
		f, rot, pool,
		retry.New(cfg.Scraper.MaxRetries),
		agg,
		cfg.Scraper.SleepInterval,
		warmupURL,
		logger,
	)

	o := &Orchestrator{
		cfg:      cfg,
		exec:     exec,
		resolver: resolver.New(exec, logger),
		parser:   parser.New(logger),
		stats:    agg,
		logger:   logger.With("component", "orchestrator"),
	}
	return o, nil
}

// Channel scrapes a channel's about page. An unparseable identifier is the
// only hard failure; when every candidate URL shape fails, a partial record
// carrying the identifier is returned so callers still get something to keep.
func (o *Orchestrator) Channel(ctx context.Context, identifier string) (*types.ChannelMetadata, error) {
	handle, err := resolver.ChannelHandle(identifier)
	if err != nil {
		return nil, err
	}

	var meta *types.ChannelMetadata
	shapes := resolver.ChannelCandidates(o.cfg.Scraper.BaseURL, handle)
	_, err = o.resolver.Resolve(ctx, shapes, func(resp *types.Response) error {
		m, perr := o.parser.Channel(resp)
		if perr != nil {
			return perr
		}
		meta = m
		return nil
	})
	if err != nil {
		o.logger.Error("channel scrape failed, returning partial record", "channel", handle, "error", err)
		return &types.ChannelMetadata{Title: handle, CustomURL: "@" + handle}, nil
	}

	if meta.CustomURL == "" {
		meta.CustomURL = "@" + handle
	}
	return meta, nil
}

// Video scrapes a single video's watch page.
func (o *Orchestrator) Video(ctx context.Context, identifier string) (*types.VideoMetadata, error) {
	id, err := resolver.VideoID(identifier)
	if err != nil {
		return nil, err
	}

	resp, err := o.exec.Fetch(ctx, resolver.WatchURL(o.cfg.Scraper.BaseURL, id))
	if err != nil {
		return nil, err
	}
	return o.parser.Video(resp)
}

// ChannelVideos lists a channel's videos page and deep-fetches each entry up
// to limit (0 means all found). Entries that fail to fetch or parse are
// skipped; the remainder is returned even when incomplete.
func (o *Orchestrator) ChannelVideos(ctx context.Context, identifier string, limit int) ([]types.VideoMetadata, error) {
	handle, err := resolver.ChannelHandle(identifier)
	if err != nil {
		return nil, err
	}

	var entries []types.VideoEntry
	shapes := resolver.VideosCandidates(o.cfg.Scraper.BaseURL, handle)
	if _, err := o.resolver.Resolve(ctx, shapes, func(resp *types.Response) error {
		list, perr := o.parser.VideoEntries(resp)
		if perr != nil {
			return perr
		}
		entries = list
		return nil
	}); err != nil {
		return nil, err
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	o.stats.AddItems(len(entries))
	o.logger.Info("video listing resolved", "channel", handle, "count", len(entries))

	videos := make([]types.VideoMetadata, 0, len(entries))
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return videos, err
		}
		if i > 0 {
			if err := o.pause(ctx); err != nil {
				return videos, err
			}
		}

		resp, err := o.exec.Fetch(ctx, resolver.WatchURL(o.cfg.Scraper.BaseURL, entry.VideoID))
		if err != nil {
			o.logger.Warn("video fetch failed, skipping", "video_id", entry.VideoID, "error", err)
			continue
		}
		meta, err := o.parser.Video(resp)
		if err != nil {
			o.logger.Warn("video parse failed, skipping", "video_id", entry.VideoID, "error", err)
			continue
		}
		videos = append(videos, *meta)
		o.stats.RecordProcessed()
	}
	return videos, nil
}

// Playlists scrapes a channel's playlists page, up to limit entries.
func (o *Orchestrator) Playlists(ctx context.Context, identifier string, limit int) ([]types.PlaylistMetadata, error) {
	handle, err := resolver.ChannelHandle(identifier)
	if err != nil {
		return nil, err
	}

	var playlists []types.PlaylistMetadata
	shapes := resolver.PlaylistCandidates(o.cfg.Scraper.BaseURL, handle)
	if _, err := o.resolver.Resolve(ctx, shapes, func(resp *types.Response) error {
		list, perr := o.parser.Playlists(resp)
		if perr != nil {
			return perr
		}
		playlists = list
		return nil
	}); err != nil {
		return nil, err
	}

	if limit > 0 && len(playlists) > limit {
		playlists = playlists[:limit]
	}
	o.stats.AddItems(len(playlists))
	for range playlists {
		o.stats.RecordProcessed()
	}
	return playlists, nil
}

// CommunityPosts scrapes a channel's community tab, up to limit posts.
func (o *Orchestrator) CommunityPosts(ctx context.Context, identifier string, limit int) ([]types.CommunityPost, error) {
	handle, err := resolver.ChannelHandle(identifier)
	if err != nil {
		return nil, err
	}

	var posts []types.CommunityPost
	shapes := resolver.CommunityCandidates(o.cfg.Scraper.BaseURL, handle)
	if _, err := o.resolver.Resolve(ctx, shapes, func(resp *types.Response) error {
		list, perr := o.parser.CommunityPosts(resp)
		if perr != nil {
			return perr
		}
		posts = list
		return nil
	}); err != nil {
		return nil, err
	}

	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	o.stats.AddItems(len(posts))
	for range posts {
		o.stats.RecordProcessed()
	}
	return posts, nil
}

// Comments scrapes the comments embedded in a video's watch page, up to
// limit entries.
func (o *Orchestrator) Comments(ctx context.Context, identifier string, limit int) ([]types.Comment, error) {
	id, err := resolver.VideoID(identifier)
	if err != nil {
		return nil, err
	}

	resp, err := o.exec.Fetch(ctx, resolver.WatchURL(o.cfg.Scraper.BaseURL, id))
	if err != nil {
		return nil, err
	}
	comments, err := o.parser.Comments(resp)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(comments) > limit {
		comments = comments[:limit]
	}
	o.stats.AddItems(len(comments))
	for range comments {
		o.stats.RecordProcessed()
	}
	return comments, nil
}

// Stats returns a snapshot of the run counters. The run keeps counting.
func (o *Orchestrator) Stats() types.RunStats {
	return o.stats.Snapshot()
}

// Close releases the transport.
func (o *Orchestrator) Close() error {
	return o.exec.Close()
}

// pause sleeps a randomized inter-item interval, honoring cancellation.
func (o *Orchestrator) pause(ctx context.Context) error {
	base := o.cfg.Scraper.SleepInterval
	if base <= 0 {
		return ctx.Err()
	}
	d := base + time.Duration(rand.Float64()*float64(base))
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
