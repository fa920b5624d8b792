package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/TubeStalk/internal/config"
	"github.com/IshaanNene/TubeStalk/internal/repl"
	"github.com/IshaanNene/TubeStalk/internal/scraper"
	"github.com/IshaanNene/TubeStalk/internal/storage"
	"github.com/IshaanNene/TubeStalk/internal/types"
)

var (
	cfgFile     string
	verbose     bool
	outputPath  string
	outputType  string
	fetcherType string
	maxRetries  int
	limit       int
	useProxies  bool
	mongoURI    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tubestalk",
		Short: "TubeStalk — YouTube metadata scraper",
		Long: `TubeStalk scrapes public YouTube metadata (channels, videos, playlists,
comments) with rotating client fingerprints, an optional free-proxy pool,
and exponential-backoff retries.

Results are written to a timestamped run directory as JSON or CSV, and can
be mirrored to MongoDB.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(channelCmd())
	rootCmd.AddCommand(videoCmd())
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// channelCmd creates the "channel" subcommand.
func channelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel [handle-or-url]",
		Short: "Scrape a channel's metadata, videos, and playlists",
		Long: `Scrape a channel identified by @handle, /c/ or /channel/ URL.

By default only the channel record is scraped; --videos, --playlists and
--posts add the deeper listings.`,
		Args: cobra.ExactArgs(1),
		RunE: runChannel,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "./output", "output directory")
	cmd.Flags().StringVarP(&outputType, "format", "f", "json", "output format: json, csv, spreadsheet")
	cmd.Flags().StringVar(&fetcherType, "fetcher", "", "fetcher type: http or browser")
	cmd.Flags().IntVar(&maxRetries, "max-retries", -1, "max retries per request (-1 = config default of 3)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum videos/playlists to scrape (0 = all found)")
	cmd.Flags().BoolVar(&useProxies, "proxies", false, "route requests through the free-proxy pool")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI to mirror results to")
	cmd.Flags().Bool("videos", false, "also scrape the channel's videos")
	cmd.Flags().Bool("playlists", false, "also scrape the channel's playlists")
	cmd.Flags().Bool("posts", false, "also scrape the channel's community posts")

	return cmd
}

// videoCmd creates the "video" subcommand.
func videoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video [id-or-url]",
		Short: "Scrape a single video's metadata",
		Long:  "Scrape one video identified by its 11-character ID or watch/shorts/embed URL.",
		Args:  cobra.ExactArgs(1),
		RunE:  runVideo,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "./output", "output directory")
	cmd.Flags().StringVarP(&outputType, "format", "f", "json", "output format: json, csv, spreadsheet")
	cmd.Flags().StringVar(&fetcherType, "fetcher", "", "fetcher type: http or browser")
	cmd.Flags().IntVar(&maxRetries, "max-retries", -1, "max retries per request (-1 = config default of 3)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum comments to scrape (0 = all found)")
	cmd.Flags().BoolVar(&useProxies, "proxies", false, "route requests through the free-proxy pool")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI to mirror results to")
	cmd.Flags().Bool("comments", false, "also scrape the video's comments")

	return cmd
}

// runChannel executes the channel command.
func runChannel(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, err := scraper.New(cfg, logger)
	if err != nil {
		return err
	}
	defer orch.Close()

	writer, sink, err := setupOutput(cfg, logger)
	if err != nil {
		return err
	}
	if sink != nil {
		defer sink.Close()
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	start := time.Now()
	scrapeErr := scrapeChannel(ctx, cmd, logger, orch, writer, sink, args[0])
	return finishRun(orch, writer, time.Since(start), scrapeErr)
}

// scrapeChannel runs the channel operation and its optional listings. The
// caller finishes the run whatever this returns.
func scrapeChannel(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, orch *scraper.Orchestrator, writer *storage.Writer, sink *storage.MongoStorage, identifier string) error {
	channel, err := orch.Channel(ctx, identifier)
	if err != nil {
		return fmt.Errorf("scrape channel %q: %w", identifier, err)
	}
	if err := persist(ctx, writer, sink, "channel", channel); err != nil {
		return err
	}

	if withVideos, _ := cmd.Flags().GetBool("videos"); withVideos {
		videos, err := orch.ChannelVideos(ctx, identifier, limit)
		if err != nil {
			logger.Error("videos scrape failed", "channel", identifier, "error", err)
		}
		if len(videos) > 0 {
			if err := persist(ctx, writer, sink, "videos", videos); err != nil {
				return err
			}
		}
	}

	if withPlaylists, _ := cmd.Flags().GetBool("playlists"); withPlaylists {
		playlists, err := orch.Playlists(ctx, identifier, limit)
		if err != nil {
			logger.Error("playlists scrape failed", "channel", identifier, "error", err)
		}
		if len(playlists) > 0 {
			if err := persist(ctx, writer, sink, "playlists", playlists); err != nil {
				return err
			}
		}
	}

	if withPosts, _ := cmd.Flags().GetBool("posts"); withPosts {
		posts, err := orch.CommunityPosts(ctx, identifier, limit)
		if err != nil {
			logger.Error("community posts scrape failed", "channel", identifier, "error", err)
		}
		if len(posts) > 0 {
			if err := persist(ctx, writer, sink, "community_posts", posts); err != nil {
				return err
			}
		}
	}

	return nil
}

// runVideo executes the video command.
func runVideo(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch, err := scraper.New(cfg, logger)
	if err != nil {
		return err
	}
	defer orch.Close()

	writer, sink, err := setupOutput(cfg, logger)
	if err != nil {
		return err
	}
	if sink != nil {
		defer sink.Close()
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	start := time.Now()
	scrapeErr := scrapeVideo(ctx, cmd, logger, orch, writer, sink, args[0])
	return finishRun(orch, writer, time.Since(start), scrapeErr)
}

// scrapeVideo runs the video operation and its optional comments. The caller
// finishes the run whatever this returns.
func scrapeVideo(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, orch *scraper.Orchestrator, writer *storage.Writer, sink *storage.MongoStorage, identifier string) error {
	video, err := orch.Video(ctx, identifier)
	if err != nil {
		return fmt.Errorf("scrape video %q: %w", identifier, err)
	}
	if err := persist(ctx, writer, sink, "video", video); err != nil {
		return err
	}

	if withComments, _ := cmd.Flags().GetBool("comments"); withComments {
		comments, err := orch.Comments(ctx, identifier, limit)
		if err != nil {
			logger.Error("comments scrape failed", "video", identifier, "error", err)
		}
		if len(comments) > 0 {
			if err := persist(ctx, writer, sink, "comments", comments); err != nil {
				return err
			}
		}
	}

	return nil
}

// shellCmd creates the "shell" subcommand.
func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive scraping shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return repl.New(cfg, logger).Start()
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("TubeStalk %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Scraper:\n")
			fmt.Printf("  Base URL:         %s\n", cfg.Scraper.BaseURL)
			fmt.Printf("  Warmup Path:      %s\n", cfg.Scraper.WarmupPath)
			fmt.Printf("  Max Retries:      %d\n", cfg.Scraper.MaxRetries)
			fmt.Printf("  Sleep Interval:   %s\n", cfg.Scraper.SleepInterval)
			fmt.Printf("  Request Timeout:  %s\n", cfg.Scraper.RequestTimeout)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Type:             %s\n", cfg.Fetcher.Type)
			fmt.Printf("  Follow Redirects: %v\n", cfg.Fetcher.FollowRedirects)
			fmt.Printf("  Max Body Size:    %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("\nProxy:\n")
			fmt.Printf("  Enabled:          %v\n", cfg.Proxy.Enabled)
			fmt.Printf("  Sources:          %d configured\n", len(cfg.Proxy.Sources))
			fmt.Printf("  Refresh Interval: %s\n", cfg.Proxy.RefreshInterval)
			fmt.Printf("\nIdentity:\n")
			fmt.Printf("  User Agents:      %d configured\n", len(cfg.Identity.UserAgents))
			fmt.Printf("  Agent Source:     %s\n", cfg.Identity.UserAgentSource)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Output Path:      %s\n", cfg.Storage.OutputPath)
			fmt.Printf("  Format:           %s\n", cfg.Storage.Format)
			fmt.Printf("  Mongo URI:        %s\n", cfg.Storage.MongoURI)
			return nil
		},
	}
}

// loadConfig loads the config file and layers CLI overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if outputPath != "" {
		cfg.Storage.OutputPath = outputPath
	}
	if outputType != "" {
		cfg.Storage.Format = strings.ToLower(outputType)
	}
	if fetcherType != "" {
		cfg.Fetcher.Type = strings.ToLower(fetcherType)
	}
	if maxRetries >= 0 {
		cfg.Scraper.MaxRetries = maxRetries
	}
	if useProxies {
		cfg.Proxy.Enabled = true
	}
	if mongoURI != "" {
		cfg.Storage.MongoURI = mongoURI
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupOutput creates the run-directory writer and the optional Mongo sink.
func setupOutput(cfg *config.Config, logger *slog.Logger) (*storage.Writer, *storage.MongoStorage, error) {
	writer, err := storage.NewRunWriter(cfg.Storage.OutputPath, cfg.Storage.Format, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create writer: %w", err)
	}

	var sink *storage.MongoStorage
	if cfg.Storage.MongoURI != "" {
		sink, err = storage.NewMongoStorage(cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.MongoCollection, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("create mongo sink: %w", err)
		}
	}
	return writer, sink, nil
}

// persist writes a result category to disk and mirrors it to Mongo when a
// sink is configured. A Mongo failure is logged but does not fail the run.
func persist(ctx context.Context, writer *storage.Writer, sink *storage.MongoStorage, category string, v any) error {
	if _, err := writer.Write(category, v); err != nil {
		return err
	}
	if sink != nil {
		if err := sink.Store(ctx, category, v); err != nil {
			slog.Warn("mongo mirror failed", "category", category, "error", err)
		}
	}
	return nil
}

// statsSource reports a run's counters.
type statsSource interface {
	Stats() types.RunStats
}

// finishRun writes the stats file, prints the run summary, and then reports
// the scrape outcome. Stats are produced even when the scrape failed.
func finishRun(orch statsSource, writer *storage.Writer, elapsed time.Duration, scrapeErr error) error {
	runStats := orch.Stats()
	_, werr := writer.Write("stats", runStats)
	printStats(runStats, elapsed, writer.RunDir(), scrapeErr == nil)

	if scrapeErr != nil {
		if werr != nil {
			slog.Warn("write stats failed", "error", werr)
		}
		return scrapeErr
	}
	return werr
}

func printStats(s types.RunStats, elapsed time.Duration, runDir string, ok bool) {
	if ok {
		fmt.Printf("\n✅ Scrape complete in %s\n", elapsed.Round(time.Millisecond))
	} else {
		fmt.Printf("\n❌ Scrape failed after %s\n", elapsed.Round(time.Millisecond))
	}
	fmt.Printf("   Requests:    %d total, %d ok, %d failed\n", s.TotalRequests, s.SuccessCount, s.ErrorCount)
	fmt.Printf("   Rate limits: %d hit\n", s.RateLimitsHit)
	fmt.Printf("   Items:       %d/%d processed\n", s.ProcessedItems, s.TotalItems)
	fmt.Printf("   Output:      %s\n", runDir)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down...", "signal", sig)
		cancel()
	}()
	return ctx, cancel
}

// setupLogger creates a structured logger.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
