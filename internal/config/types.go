package config

import "time"

// Config is the top-level portfolio server configuration, corresponding to .portfolio.yml.
type Config struct {
	Port            int           `yaml:"port" koanf:"port"`
	Profile         string        `yaml:"profile" koanf:"profile"`
	SiteDir         string        `yaml:"site_dir" koanf:"site_dir"`
	DataDir         string        `yaml:"data_dir" koanf:"data_dir"`
	History         bool          `yaml:"history" koanf:"history"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	StaticExclude   []string      `yaml:"static_exclude" koanf:"static_exclude"`
	Lanyard         LanyardConfig `yaml:"lanyard" koanf:"lanyard"`
	Dots            DotsConfig    `yaml:"dots" koanf:"dots"`
}

// LanyardConfig controls the presence poller.
type LanyardConfig struct {
	BaseURL      string        `yaml:"base_url" koanf:"base_url"`
	PollInterval time.Duration `yaml:"poll_interval" koanf:"poll_interval"`
	// Timeout bounds a single presence request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
}

// DotsConfig controls the background dot field.
type DotsConfig struct {
	Initial  int           `yaml:"initial" koanf:"initial"`
	PerTick  int           `yaml:"per_tick" koanf:"per_tick"`
	Interval time.Duration `yaml:"interval" koanf:"interval"`
}
