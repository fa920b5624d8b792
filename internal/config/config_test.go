package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scraper.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Scraper.MaxRetries)
	}
	if cfg.Scraper.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %s, want 30s", cfg.Scraper.RequestTimeout)
	}
	if cfg.Proxy.RefreshInterval != 300*time.Second {
		t.Errorf("RefreshInterval = %s, want 300s", cfg.Proxy.RefreshInterval)
	}
	if cfg.Proxy.MaxFailures != 1 {
		t.Errorf("MaxFailures = %d, want 1 (zero tolerance)", cfg.Proxy.MaxFailures)
	}
	if len(cfg.Proxy.Sources) != 3 {
		t.Errorf("got %d proxy sources, want 3", len(cfg.Proxy.Sources))
	}
	if cfg.Scraper.WarmupPath != "/feed/trending" {
		t.Errorf("WarmupPath = %q", cfg.Scraper.WarmupPath)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Scraper.BaseURL = "" }},
		{"bad base url scheme", func(c *Config) { c.Scraper.BaseURL = "ftp://example.com" }},
		{"negative retries", func(c *Config) { c.Scraper.MaxRetries = -1 }},
		{"zero timeout", func(c *Config) { c.Scraper.RequestTimeout = 0 }},
		{"unknown fetcher", func(c *Config) { c.Fetcher.Type = "carrier-pigeon" }},
		{"unknown format", func(c *Config) { c.Storage.Format = "xlsx" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"no user agents", func(c *Config) { c.Identity.UserAgents = nil }},
		{"proxies enabled without sources", func(c *Config) {
			c.Proxy.Enabled = true
			c.Proxy.Sources = nil
		}},
		{"proxies max failures zero", func(c *Config) {
			c.Proxy.Enabled = true
			c.Proxy.MaxFailures = 0
		}},
	}

	for _, c := range cases {
		cfg := DefaultConfig()
		c.mutate(cfg)
		if err := Validate(cfg); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestValidateSpreadsheetFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Format = "spreadsheet"
	if err := Validate(cfg); err != nil {
		t.Errorf("spreadsheet format rejected: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scraper.BaseURL != "https://www.youtube.com" {
		t.Errorf("BaseURL = %q", cfg.Scraper.BaseURL)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("scraper:\n  max_retries: 7\n  sleep_interval: 5s\nstorage:\n  format: csv\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scraper.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d, want file value 7", cfg.Scraper.MaxRetries)
	}
	if cfg.Scraper.SleepInterval != 5*time.Second {
		t.Errorf("SleepInterval = %s", cfg.Scraper.SleepInterval)
	}
	if cfg.Storage.Format != "csv" {
		t.Errorf("Format = %q", cfg.Storage.Format)
	}
	// Untouched keys keep their defaults.
	if cfg.Scraper.BaseURL != "https://www.youtube.com" {
		t.Errorf("BaseURL = %q", cfg.Scraper.BaseURL)
	}
}
