// Package repl provides the interactive shell behind the "shell" subcommand.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/config"
	"github.com/IshaanNene/TubeStalk/internal/scraper"
	"github.com/IshaanNene/TubeStalk/internal/types"
)

// REPL provides an interactive command-line interface for TubeStalk. All
// commands in one session share a single orchestrator, so the warm-up runs
// once and stats accumulate across commands.
type REPL struct {
	cfg    *config.Config
	orch   *scraper.Orchestrator
	logger *slog.Logger
	reader *bufio.Reader
	limit  int
}

// New creates a new REPL instance.
func New(cfg *config.Config, logger *slog.Logger) *REPL {
	return &REPL{
		cfg:    cfg,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		limit:  10,
	}
}

// Start begins the interactive loop. It returns when the user exits or
// stdin closes.
func (r *REPL) Start() error {
	fmt.Println("📺 TubeStalk Interactive Shell")
	fmt.Println("   Type 'help' for available commands, 'exit' to quit.")
	fmt.Println()

	for {
		fmt.Print("tubestalk> ")
		line, err := r.reader.ReadString('\n')
		if err != nil {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help", "?":
			r.printHelp()
		case "exit", "quit", "q":
			fmt.Println("Goodbye! 👋")
			return r.close()
		case "channel":
			r.cmdChannel(args)
		case "video":
			r.cmdVideo(args)
		case "videos":
			r.cmdVideos(args)
		case "playlists":
			r.cmdPlaylists(args)
		case "comments":
			r.cmdComments(args)
		case "posts":
			r.cmdPosts(args)
		case "stats":
			r.cmdStats()
		case "limit":
			r.cmdLimit(args)
		case "config":
			r.cmdConfig()
		case "clear":
			fmt.Print("\033[H\033[2J")
		default:
			fmt.Printf("Unknown command: %s. Type 'help' for available commands.\n", cmd)
		}
	}
	return r.close()
}

func (r *REPL) printHelp() {
	fmt.Println(`
Available Commands:
  channel <handle-or-url>    Scrape a channel's metadata
  video <id-or-url>          Scrape a single video's metadata
  videos <handle-or-url>     Scrape a channel's videos (up to limit)
  playlists <handle-or-url>  Scrape a channel's playlists (up to limit)
  comments <id-or-url>       Scrape a video's comments (up to limit)
  posts <handle-or-url>      Scrape a channel's community posts (up to limit)

  stats                      Show session statistics
  limit <n>                  Set the batch limit (0 = all found)
  config                     Show current configuration

  clear                      Clear the screen
  help                       Show this help
  exit                       Exit the shell`)
}

// orchestrator lazily builds the session orchestrator on first use.
func (r *REPL) orchestrator() (*scraper.Orchestrator, error) {
	if r.orch != nil {
		return r.orch, nil
	}
	orch, err := scraper.New(r.cfg, r.logger)
	if err != nil {
		return nil, err
	}
	r.orch = orch
	return orch, nil
}

func (r *REPL) close() error {
	if r.orch == nil {
		return nil
	}
	return r.orch.Close()
}

func (r *REPL) cmdChannel(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: channel <handle-or-url>")
		return
	}

	orch, err := r.orchestrator()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	meta, err := orch.Channel(ctx, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\n  Channel:     %s\n", meta.Title)
	fmt.Printf("  ID:          %s\n", meta.ChannelID)
	fmt.Printf("  Subscribers: %d\n", meta.SubscriberCount)
	fmt.Printf("  Videos:      %d\n", meta.VideoCount)
	fmt.Printf("  Views:       %d\n", meta.ViewCount)
	if meta.Country != "" {
		fmt.Printf("  Country:     %s\n", meta.Country)
	}
	if meta.Description != "" {
		fmt.Printf("  About:       %s\n", truncate(meta.Description, 120))
	}
}

func (r *REPL) cmdVideo(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: video <id-or-url>")
		return
	}

	orch, err := r.orchestrator()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	meta, err := orch.Video(ctx, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\n  Title:    %s\n", meta.Title)
	fmt.Printf("  ID:       %s\n", meta.VideoID)
	fmt.Printf("  Channel:  %s\n", meta.ChannelTitle)
	fmt.Printf("  Views:    %d\n", meta.ViewCount)
	fmt.Printf("  Likes:    %d\n", meta.LikeCount)
	fmt.Printf("  Comments: %d\n", meta.CommentCount)
	fmt.Printf("  Duration: %ds\n", meta.Duration)
	if meta.UploadDate != nil {
		fmt.Printf("  Uploaded: %s\n", meta.UploadDate.Format("2006-01-02"))
	}
}

func (r *REPL) cmdVideos(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: videos <handle-or-url>")
		return
	}

	orch, err := r.orchestrator()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	fmt.Printf("Scraping up to %d videos (this paces itself between items)...\n", r.limit)
	videos, err := orch.ChannelVideos(ctx, args[0], r.limit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	for i, v := range videos {
		fmt.Printf("  %2d. [%s] %s (%d views)\n", i+1, v.VideoID, truncate(v.Title, 60), v.ViewCount)
	}
	if len(videos) == 0 {
		fmt.Println("  No videos scraped.")
	}
}

func (r *REPL) cmdPlaylists(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: playlists <handle-or-url>")
		return
	}

	orch, err := r.orchestrator()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	playlists, err := orch.Playlists(ctx, args[0], r.limit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for i, pl := range playlists {
		fmt.Printf("  %2d. [%s] %s (%d videos)\n", i+1, pl.PlaylistID, truncate(pl.Title, 60), pl.VideoCount)
	}
}

func (r *REPL) cmdComments(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: comments <id-or-url>")
		return
	}

	orch, err := r.orchestrator()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	comments, err := orch.Comments(ctx, args[0], r.limit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, c := range comments {
		fmt.Printf("  %s (%d likes): %s\n", c.Author, c.LikeCount, truncate(c.Text, 100))
	}
}

func (r *REPL) cmdPosts(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: posts <handle-or-url>")
		return
	}

	orch, err := r.orchestrator()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	posts, err := orch.CommunityPosts(ctx, args[0], r.limit)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, p := range posts {
		attach := ""
		if p.AttachmentType != "" {
			attach = " [" + p.AttachmentType + "]"
		}
		fmt.Printf("  [%s]%s (%d likes): %s\n", p.PostID, attach, p.LikeCount, truncate(p.Text, 100))
	}
}

func (r *REPL) cmdStats() {
	if r.orch == nil {
		fmt.Println("No requests made yet this session.")
		return
	}
	s := r.orch.Stats()
	printStats(s)
}

func (r *REPL) cmdLimit(args []string) {
	if len(args) == 0 {
		fmt.Printf("Current limit: %d\n", r.limit)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Println("Usage: limit <n>  (0 = all found)")
		return
	}
	r.limit = n
	fmt.Printf("Limit set to %d\n", n)
}

func (r *REPL) cmdConfig() {
	fmt.Printf("  Base URL:       %s\n", r.cfg.Scraper.BaseURL)
	fmt.Printf("  Fetcher:        %s\n", r.cfg.Fetcher.Type)
	fmt.Printf("  Max Retries:    %d\n", r.cfg.Scraper.MaxRetries)
	fmt.Printf("  Sleep Interval: %s\n", r.cfg.Scraper.SleepInterval)
	fmt.Printf("  Proxies:        %v\n", r.cfg.Proxy.Enabled)
	fmt.Printf("  Output:         %s (%s)\n", r.cfg.Storage.OutputPath, r.cfg.Storage.Format)
}

func printStats(s types.RunStats) {
	fmt.Printf("\n  Requests:    %d total, %d ok, %d failed\n", s.TotalRequests, s.SuccessCount, s.ErrorCount)
	fmt.Printf("  Rate limits: %d hit\n", s.RateLimitsHit)
	fmt.Printf("  Items:       %d/%d processed\n", s.ProcessedItems, s.TotalItems)
	fmt.Printf("  Session:     started %s\n", s.StartTime.Format(time.Kitchen))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
