package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PORTFOLIO_*). A bare PORT variable,
// as set by most hosting platforms, wins over everything else.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// PORTFOLIO_LANYARD__BASE_URL -> lanyard.base_url
	if err := k.Load(env.Provider("PORTFOLIO_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", p, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "PORTFOLIO_"))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.Profile == "" {
		return fmt.Errorf("profile is required")
	}

	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}

	if c.History && c.DataDir == "" {
		return fmt.Errorf("data_dir is required when history is enabled")
	}

	u, err := url.Parse(c.Lanyard.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid lanyard.base_url %q: must be an http(s) URL", c.Lanyard.BaseURL)
	}

	if c.Lanyard.PollInterval <= 0 {
		return fmt.Errorf("lanyard.poll_interval must be positive")
	}

	if c.Lanyard.Timeout < 0 {
		return fmt.Errorf("lanyard.timeout must be non-negative")
	}

	if c.Dots.Initial < 0 || c.Dots.PerTick < 0 {
		return fmt.Errorf("dots.initial and dots.per_tick must be non-negative")
	}

	if c.Dots.Interval <= 0 {
		return fmt.Errorf("dots.interval must be positive")
	}

	return nil
}
