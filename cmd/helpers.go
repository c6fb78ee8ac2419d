package cmd

import (
	"fmt"

	"github.com/cosmiccodedger/portfolio/internal/config"
	"github.com/cosmiccodedger/portfolio/internal/presence"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newPresenceClient creates a Lanyard client from config.
func newPresenceClient(cfg *config.Config) *presence.Client {
	return presence.NewClient(cfg.Lanyard.BaseURL, cfg.Lanyard.Timeout)
}
