package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNewsURL   = "https://finance.yahoo.com/news/rssindex"
	DefaultRedditURL = "https://www.reddit.com/r/wallstreetbets/.rss"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultSnapshotOutput = "stock-sentiment-frontend/data/snapshot.json"
)

type Config struct {
	Server struct {
		Host                string   `yaml:"host"`
		Port                int      `yaml:"port"`
		AllowedOrigins      []string `yaml:"allowed_origins"`
		FrontendDir         string   `yaml:"frontend_dir"`
		ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
	} `yaml:"server"`
	Feeds struct {
		NewsURL        string `yaml:"news_url"`
		RedditURL      string `yaml:"reddit_url"`
		UserAgent      string `yaml:"user_agent"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxPerFeed     int    `yaml:"max_per_feed"`
	} `yaml:"feeds"`
	Cache struct {
		TTLSeconds            int `yaml:"ttl_seconds"`
		MaxItems              int `yaml:"max_items"`
		ForceRefreshPerMinute int `yaml:"force_refresh_per_minute"`
	} `yaml:"cache"`
	Enrich struct {
		Workers int `yaml:"workers"`
	} `yaml:"enrich"`
	Snapshot struct {
		Output         string `yaml:"output"`
		Schedule       string `yaml:"schedule"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		TickerIndex    int    `yaml:"ticker_index"`
	} `yaml:"snapshot"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}

	if c.Feeds.NewsURL == "" {
		c.Feeds.NewsURL = DefaultNewsURL
	}
	if c.Feeds.RedditURL == "" {
		c.Feeds.RedditURL = DefaultRedditURL
	}
	if c.Feeds.UserAgent == "" {
		c.Feeds.UserAgent = DefaultUserAgent
	}
	if c.Feeds.TimeoutSeconds == 0 {
		c.Feeds.TimeoutSeconds = 12
	}
	if c.Feeds.MaxPerFeed == 0 {
		c.Feeds.MaxPerFeed = 80
	}

	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 180
	}
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 120
	}

	if c.Snapshot.Output == "" {
		c.Snapshot.Output = DefaultSnapshotOutput
	}
	if c.Snapshot.TimeoutSeconds == 0 {
		c.Snapshot.TimeoutSeconds = 15
	}
	if c.Snapshot.TickerIndex == 0 {
		c.Snapshot.TickerIndex = 250
	}
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1-65535, got %d", c.Server.Port)
	}
	if c.Feeds.NewsURL == "" || c.Feeds.RedditURL == "" {
		return errors.New("feeds.news_url and feeds.reddit_url cannot be empty")
	}
	if c.Feeds.TimeoutSeconds < 0 {
		return fmt.Errorf("feeds.timeout_seconds must be positive, got %d", c.Feeds.TimeoutSeconds)
	}
	if c.Feeds.MaxPerFeed < 0 {
		return fmt.Errorf("feeds.max_per_feed must be positive, got %d", c.Feeds.MaxPerFeed)
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive, got %d", c.Cache.TTLSeconds)
	}
	if c.Cache.MaxItems < 0 {
		return fmt.Errorf("cache.max_items must be positive, got %d", c.Cache.MaxItems)
	}
	if c.Cache.ForceRefreshPerMinute < 0 {
		return fmt.Errorf("cache.force_refresh_per_minute cannot be negative, got %d", c.Cache.ForceRefreshPerMinute)
	}
	if c.Enrich.Workers < 0 {
		return fmt.Errorf("enrich.workers cannot be negative, got %d", c.Enrich.Workers)
	}
	if c.Snapshot.Schedule != "" {
		if _, err := cron.ParseStandard(c.Snapshot.Schedule); err != nil {
			return fmt.Errorf("snapshot.schedule '%s' is not a valid cron expression: %w", c.Snapshot.Schedule, err)
		}
	}
	return nil
}

// LoadConfig reads path, falling back to defaults when the file does not
// exist. SENTIMENT_PORT overrides server.port.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if v := os.Getenv("SENTIMENT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SENTIMENT_PORT '%s': %w", v, err)
		}
		c.Server.Port = port
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feeds.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c *Config) SnapshotTimeout() time.Duration {
	return time.Duration(c.Snapshot.TimeoutSeconds) * time.Second
}
