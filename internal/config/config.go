package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Config struct {
	CatalogAPIURL   string `yaml:"catalog_api_url"`
	ClassifierURL   string `yaml:"classifier_url"`
	RequestTimeout  string `yaml:"request_timeout,omitempty"`
	CacheTTL        string `yaml:"cache_ttl,omitempty"`
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
	Retention       string `yaml:"retention,omitempty"`
	PageSize        int    `yaml:"page_size,omitempty"`
	TopicPanelSize  int    `yaml:"topic_panel_size,omitempty"`
}

// RequestTimeoutDuration bounds each outbound request (default 20s).
func (c *Config) RequestTimeoutDuration() time.Duration {
	return parseDuration(c.RequestTimeout, 20*time.Second)
}

// CacheTTLDuration is how long read responses stay fresh (default 5m).
func (c *Config) CacheTTLDuration() time.Duration {
	return parseDuration(c.CacheTTL, 5*time.Minute)
}

// RefreshDuration is the periodic reload interval (default 5m).
func (c *Config) RefreshDuration() time.Duration {
	return parseDuration(c.RefreshInterval, 5*time.Minute)
}

// RetentionDuration is how long the offline snapshot is kept (default 7d).
// Supports the "Nd" day suffix on top of time.ParseDuration syntax.
func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 7 * 24 * time.Hour
	}
	if len(c.Retention) > 1 && c.Retention[len(c.Retention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	return parseDuration(c.Retention, 7*24*time.Hour)
}

// GetPageSize returns the result page size, defaulting to 12.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return 12
	}
	return c.PageSize
}

// GetTopicPanelSize returns how many topic chips to display, defaulting to 8.
func (c *Config) GetTopicPanelSize() int {
	if c.TopicPanelSize <= 0 {
		return 8
	}
	return c.TopicPanelSize
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "sentimentscope", "config.yaml")
}

func SnapshotPath() string {
	return filepath.Join(xdg.CacheHome, "sentimentscope", "sentimentscope.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	endpoints := map[string]string{
		"catalog_api_url": cfg.CatalogAPIURL,
		"classifier_url":  cfg.ClassifierURL,
	}
	for name, raw := range endpoints {
		if raw == "" {
			return fmt.Errorf("%s is required", name)
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid url: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: url scheme must be http or https, got %q", name, u.Scheme)
		}
	}
	if cfg.PageSize < 0 {
		return fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.TopicPanelSize < 0 {
		return fmt.Errorf("topic_panel_size must be positive, got %d", cfg.TopicPanelSize)
	}
	return nil
}
