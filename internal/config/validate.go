package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Scraper.BaseURL == "" {
		return fmt.Errorf("scraper.base_url must not be empty")
	}
	if err := ValidateURL(cfg.Scraper.BaseURL); err != nil {
		return fmt.Errorf("scraper.base_url: %w", err)
	}
	if cfg.Scraper.MaxRetries < 0 {
		return fmt.Errorf("scraper.max_retries must be >= 0, got %d", cfg.Scraper.MaxRetries)
	}
	if cfg.Scraper.SleepInterval < 0 {
		return fmt.Errorf("scraper.sleep_interval must be >= 0")
	}
	if cfg.Scraper.RequestTimeout <= 0 {
		return fmt.Errorf("scraper.request_timeout must be > 0")
	}

	if cfg.Fetcher.Type != "http" && cfg.Fetcher.Type != "browser" {
		return fmt.Errorf("fetcher.type must be 'http' or 'browser', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	if cfg.Proxy.Enabled {
		if len(cfg.Proxy.Sources) == 0 {
			return fmt.Errorf("proxy.sources must not be empty when proxy.enabled is true")
		}
		for _, src := range cfg.Proxy.Sources {
			if err := ValidateURL(src); err != nil {
				return fmt.Errorf("invalid proxy source %q: %w", src, err)
			}
		}
		if cfg.Proxy.RefreshInterval <= 0 {
			return fmt.Errorf("proxy.refresh_interval must be > 0")
		}
		if cfg.Proxy.MaxFailures < 1 {
			return fmt.Errorf("proxy.max_failures must be >= 1, got %d", cfg.Proxy.MaxFailures)
		}
	}

	if len(cfg.Identity.UserAgents) == 0 {
		return fmt.Errorf("identity.user_agents must not be empty")
	}

	validFormats := map[string]bool{
		"json": true, "csv": true, "spreadsheet": true,
	}
	if !validFormats[cfg.Storage.Format] {
		return fmt.Errorf("storage.format %q is not supported (valid: json, csv, spreadsheet)", cfg.Storage.Format)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is usable as a fetch target.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
