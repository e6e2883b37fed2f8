package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/matheuskafuri/billwatch/internal/pager"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// APIKeyEnv overrides an empty api_key.
const APIKeyEnv = "BILLWATCH_API_KEY"

const (
	defaultLookback = 30 * 24 * time.Hour
	defaultTimeout  = 30 * time.Second
)

type Config struct {
	APIURL       string   `yaml:"api_url"`
	APIKey       string   `yaml:"api_key,omitempty"`
	Lookback     string   `yaml:"lookback"`
	PageSize     int      `yaml:"page_size"`
	Timeout      string   `yaml:"timeout"`
	LogLevel     string   `yaml:"log_level"`
	ExcludeTerms []string `yaml:"exclude_terms"`
}

// ResolvedAPIKey returns the configured key, falling back to the
// environment. An empty result means the client will use the demo key.
func (c *Config) ResolvedAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv(APIKeyEnv)
}

func (c *Config) LookbackDuration() time.Duration {
	if c.Lookback == "" {
		return defaultLookback
	}
	d, err := ParseDuration(c.Lookback)
	if err != nil || d <= 0 {
		return defaultLookback
	}
	return d
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// GetPageSize returns the configured page size, defaulting to 25.
func (c *Config) GetPageSize() int {
	if !pager.ValidPageSize(c.PageSize) {
		return pager.DefaultPageSize
	}
	return c.PageSize
}

// ParseDuration accepts Go durations plus an "Nd" day suffix.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "billwatch", "config.yaml")
}

// LogPath is where the TUI writes its log while it owns the terminal.
func LogPath() string {
	return filepath.Join(xdg.StateHome, "billwatch", "billwatch.log")
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
			// First run: best effort, embedded defaults work without the file.
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	mergeDefaults(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

// mergeDefaults fills fields the user left out. An explicit empty
// exclude_terms list is kept, so users can turn exclusions off.
func mergeDefaults(cfg, defaults *Config) {
	if cfg.APIURL == "" {
		cfg.APIURL = defaults.APIURL
	}
	if cfg.Lookback == "" {
		cfg.Lookback = defaults.Lookback
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.Timeout == "" {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.ExcludeTerms == nil {
		cfg.ExcludeTerms = append([]string(nil), defaults.ExcludeTerms...)
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o600)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url scheme must be http or https, got %q", u.Scheme)
	}
	if !pager.ValidPageSize(cfg.PageSize) {
		return fmt.Errorf("page_size must be one of %v, got %d", pager.PageSizes, cfg.PageSize)
	}
	if _, err := ParseDuration(cfg.Lookback); err != nil {
		return fmt.Errorf("invalid lookback %q: %w", cfg.Lookback, err)
	}
	if _, err := time.ParseDuration(cfg.Timeout); err != nil {
		return fmt.Errorf("invalid timeout %q: %w", cfg.Timeout, err)
	}
	for i, term := range cfg.ExcludeTerms {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("exclude_terms[%d] is empty", i)
		}
	}
	return nil
}
