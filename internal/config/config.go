package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for TubeStalk.
type Config struct {
	Scraper  ScraperConfig  `mapstructure:"scraper"  yaml:"scraper"`
	Fetcher  FetcherConfig  `mapstructure:"fetcher"  yaml:"fetcher"`
	Proxy    ProxyConfig    `mapstructure:"proxy"    yaml:"proxy"`
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Storage  StorageConfig  `mapstructure:"storage"  yaml:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// ScraperConfig controls the scrape orchestrator and retry policy.
type ScraperConfig struct {
	BaseURL        string        `mapstructure:"base_url"        yaml:"base_url"`
	WarmupPath     string        `mapstructure:"warmup_path"     yaml:"warmup_path"`
	MaxRetries     int           `mapstructure:"max_retries"     yaml:"max_retries"`
	SleepInterval  time.Duration `mapstructure:"sleep_interval"  yaml:"sleep_interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// FetcherConfig controls the transport layer.
type FetcherConfig struct {
	Type            string        `mapstructure:"type"              yaml:"type"` // http or browser
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
}

// ProxyConfig controls the upstream relay pool.
type ProxyConfig struct {
	Enabled         bool          `mapstructure:"enabled"          yaml:"enabled"`
	Sources         []string      `mapstructure:"sources"          yaml:"sources"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval" yaml:"refresh_interval"`
	MaxFailures     int           `mapstructure:"max_failures"     yaml:"max_failures"`
	SourceTimeout   time.Duration `mapstructure:"source_timeout"   yaml:"source_timeout"`
}

// IdentityConfig controls client fingerprint generation.
type IdentityConfig struct {
	UserAgents      []string      `mapstructure:"user_agents"       yaml:"user_agents"`
	UserAgentSource string        `mapstructure:"user_agent_source" yaml:"user_agent_source"`
	SourceTimeout   time.Duration `mapstructure:"source_timeout"    yaml:"source_timeout"`
}

// StorageConfig controls result export.
type StorageConfig struct {
	OutputPath      string `mapstructure:"output_path"      yaml:"output_path"`
	Format          string `mapstructure:"format"           yaml:"format"` // json, csv, spreadsheet
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			BaseURL:        "https://www.youtube.com",
			WarmupPath:     "/feed/trending",
			MaxRetries:     3,
			SleepInterval:  3 * time.Second,
			RequestTimeout: 30 * time.Second,
		},
		Fetcher: FetcherConfig{
			Type:            "http",
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
		},
		Proxy: ProxyConfig{
			Enabled: false,
			Sources: []string{
				"https://raw.githubusercontent.com/TheSpeedX/PROXY-List/master/http.txt",
				"https://raw.githubusercontent.com/ShiftyTR/Proxy-List/master/http.txt",
				"https://raw.githubusercontent.com/monosans/proxy-list/main/proxies/http.txt",
			},
			RefreshInterval: 300 * time.Second,
			MaxFailures:     1,
			SourceTimeout:   20 * time.Second,
		},
		Identity: IdentityConfig{
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
			},
			SourceTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			OutputPath: "./output",
			Format:     "json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
