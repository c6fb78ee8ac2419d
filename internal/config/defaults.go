package config

import (
	"slices"
	"time"
)

// DefaultStaticExcludes hides server-side files from the static mount.
var DefaultStaticExcludes = []string{
	".git/**",
	".portfolio/**",
	".portfolio.yml",
	"**/*.go",
	"go.mod",
	"go.sum",
	"**/*.db",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:          8000,
		Profile:       "config.json",
		SiteDir:       ".",
		DataDir:       ".portfolio",
		History:       true,
		StaticExclude: slices.Clone(DefaultStaticExcludes),
		Lanyard: LanyardConfig{
			BaseURL:      "https://api.lanyard.rest",
			PollInterval: 30 * time.Second,
		},
		Dots: DotsConfig{
			Initial:  200,
			PerTick:  2,
			Interval: time.Second,
		},
	}
}
