package identity

import (
	"log/slog"
	"strconv"
	"testing"

	"github.com/IshaanNene/TubeStalk/internal/config"
)

func testConfig() *config.IdentityConfig {
	return &config.IdentityConfig{
		UserAgents: []string{"agent-a", "agent-b", "agent-c"},
	}
}

func TestGenerateFullHeaderSet(t *testing.T) {
	r := NewRotator(testConfig(), slog.Default())
	h := r.Generate()

	for _, key := range []string{
		"User-Agent", "Accept", "Accept-Language", "Accept-Encoding",
		"Sec-Fetch-Dest", "Sec-Fetch-Mode", "Sec-CH-UA-Platform",
		"Viewport-Width", "DPR", "Device-Memory", "RTT", "Downlink", "ECT",
	} {
		if h.Get(key) == "" {
			t.Errorf("missing header %s", key)
		}
	}

	if h.Get("ECT") != "4g" {
		t.Errorf("ECT = %q, want 4g", h.Get("ECT"))
	}
}

func TestGenerateUserAgentFromPool(t *testing.T) {
	cfg := testConfig()
	r := NewRotator(cfg, slog.Default())

	pool := make(map[string]bool, len(cfg.UserAgents))
	for _, ua := range cfg.UserAgents {
		pool[ua] = true
	}
	for i := 0; i < 20; i++ {
		if ua := r.Generate().Get("User-Agent"); !pool[ua] {
			t.Fatalf("unexpected user agent %q", ua)
		}
	}
}

func TestGenerateNetworkHintRanges(t *testing.T) {
	r := NewRotator(testConfig(), slog.Default())

	for i := 0; i < 100; i++ {
		h := r.Generate()

		rtt, err := strconv.Atoi(h.Get("RTT"))
		if err != nil || rtt < 50 || rtt > 150 {
			t.Fatalf("RTT = %q, want integer in [50,150]", h.Get("RTT"))
		}

		downlink, err := strconv.ParseFloat(h.Get("Downlink"), 64)
		if err != nil || downlink < 5 || downlink > 10 {
			t.Fatalf("Downlink = %q, want float in [5,10]", h.Get("Downlink"))
		}
	}
}

func TestGenerateFreshHeaderPerCall(t *testing.T) {
	r := NewRotator(testConfig(), slog.Default())

	h1 := r.Generate()
	h2 := r.Generate()
	h1.Set("X-Marker", "1")
	if h2.Get("X-Marker") != "" {
		t.Error("headers shared between calls")
	}
}

func TestNewRotatorEmptyConfig(t *testing.T) {
	r := NewRotator(&config.IdentityConfig{}, slog.Default())

	if ua := r.Generate().Get("User-Agent"); ua == "" {
		t.Error("empty config must still yield a user agent")
	}
}

func TestProfilesCatalog(t *testing.T) {
	r := NewRotator(testConfig(), slog.Default())

	profiles := r.Profiles()
	if len(profiles) == 0 {
		t.Fatal("empty profile catalog")
	}
	for _, p := range profiles {
		if p.ViewportW <= 0 || p.ViewportH <= 0 {
			t.Errorf("profile %s/%s has invalid viewport", p.Platform, p.Browser)
		}
	}
}
