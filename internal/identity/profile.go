// Package identity synthesizes plausible browser fingerprints for outbound
// requests. A fresh identity is generated per attempt and never reused.
package identity

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/IshaanNene/TubeStalk/internal/config"
)

// Profile describes the simulated client characteristics presented alongside
// a user agent. The catalog is small and fixed; realism comes from the
// combination with a randomly drawn user agent per attempt.
type Profile struct {
	Platform   string
	Browser    string
	ViewportW  int
	ViewportH  int
	ScreenW    int
	ScreenH    int
	ColorDepth int
	PixelRatio int
}

var profileCatalog = []Profile{
	{Platform: "Windows", Browser: "Chrome", ViewportW: 1920, ViewportH: 1080, ScreenW: 1920, ScreenH: 1080, ColorDepth: 24, PixelRatio: 1},
	{Platform: "MacOS", Browser: "Safari", ViewportW: 1440, ViewportH: 900, ScreenW: 2560, ScreenH: 1600, ColorDepth: 30, PixelRatio: 2},
	{Platform: "Windows", Browser: "Firefox", ViewportW: 1366, ViewportH: 768, ScreenW: 1366, ScreenH: 768, ColorDepth: 24, PixelRatio: 1},
}

// Rotator produces a full request identity per call. Construction never
// fails: if the user-agent source is unreachable the static list is used.
type Rotator struct {
	profiles []Profile
	agents   []string
	logger   *slog.Logger
}

// NewRotator creates a Rotator. When cfg.UserAgentSource is set, it is
// fetched once (newline-separated user-agent strings); any error falls back
// to cfg.UserAgents.
func NewRotator(cfg *config.IdentityConfig, logger *slog.Logger) *Rotator {
	r := &Rotator{
		profiles: profileCatalog,
		agents:   cfg.UserAgents,
		logger:   logger.With("component", "identity_rotator"),
	}

	if cfg.UserAgentSource != "" {
		agents, err := fetchUserAgents(cfg.UserAgentSource, cfg.SourceTimeout)
		if err != nil {
			r.logger.Warn("user-agent source unavailable, using static list",
				"source", cfg.UserAgentSource, "error", err)
		} else if len(agents) > 0 {
			r.agents = agents
			r.logger.Info("user-agent pool refreshed", "count", len(agents))
		}
	}

	if len(r.agents) == 0 {
		// Last-resort hardcoded identity.
		r.agents = []string{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"}
	}

	return r
}

// Generate builds a complete header set from a random profile and a random
// user agent. Network-quality hints are randomized to plausible values.
func (r *Rotator) Generate() http.Header {
	p := r.profiles[rand.Intn(len(r.profiles))]
	ua := r.agents[rand.Intn(len(r.agents))]

	h := make(http.Header)
	h.Set("User-Agent", ua)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("DNT", "1")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("Sec-CH-UA", `"Not A(Brand";v="99", "Chromium";v="120"`)
	h.Set("Sec-CH-UA-Mobile", "?0")
	h.Set("Sec-CH-UA-Platform", fmt.Sprintf("%q", p.Platform))
	h.Set("Viewport-Width", strconv.Itoa(p.ViewportW))
	h.Set("DPR", strconv.Itoa(p.PixelRatio))
	h.Set("Device-Memory", "8")
	h.Set("RTT", strconv.Itoa(50+rand.Intn(101))) // [50,150] ms
	h.Set("Downlink", strconv.FormatFloat(5+rand.Float64()*5, 'f', 2, 64))
	h.Set("ECT", "4g")
	return h
}

// Profiles exposes the fixed catalog, mainly for the browser fetcher which
// needs viewport dimensions at launch.
func (r *Rotator) Profiles() []Profile {
	return r.profiles
}

func fetchUserAgents(source string, timeout time.Duration) ([]string, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(source)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user-agent source returned status %d", resp.StatusCode)
	}

	var agents []string
	scanner := bufio.NewScanner(io.LimitReader(resp.Body, 1<<20))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			agents = append(agents, line)
		}
	}
	return agents, scanner.Err()
}
