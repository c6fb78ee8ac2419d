package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Port)
	}
	if cfg.Profile != "config.json" {
		t.Errorf("expected default profile %q, got %q", "config.json", cfg.Profile)
	}
	if cfg.Lanyard.PollInterval != 30*time.Second {
		t.Errorf("expected default poll interval 30s, got %s", cfg.Lanyard.PollInterval)
	}
	if cfg.Lanyard.Timeout != 0 {
		t.Errorf("expected no default timeout, got %s", cfg.Lanyard.Timeout)
	}
	if cfg.Dots.Initial != 200 || cfg.Dots.PerTick != 2 || cfg.Dots.Interval != time.Second {
		t.Errorf("unexpected dot defaults: %+v", cfg.Dots)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.portfolio.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.Profile = "https://example.com/config.json"
	original.Lanyard.PollInterval = 45 * time.Second
	original.Dots.Initial = 50
	original.StaticExclude = []string{"secret/**"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Profile != original.Profile {
		t.Errorf("profile: got %q, want %q", loaded.Profile, original.Profile)
	}
	if loaded.Lanyard.PollInterval != original.Lanyard.PollInterval {
		t.Errorf("poll_interval: got %s, want %s", loaded.Lanyard.PollInterval, original.Lanyard.PollInterval)
	}
	if loaded.Dots.Initial != 50 {
		t.Errorf("dots.initial: got %d, want 50", loaded.Dots.Initial)
	}
	if len(loaded.StaticExclude) != 1 || loaded.StaticExclude[0] != "secret/**" {
		t.Errorf("static_exclude: got %v", loaded.StaticExclude)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("PORTFOLIO_PROFILE", "profile.json")
	t.Setenv("PORTFOLIO_LANYARD__BASE_URL", "http://localhost:4000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Profile != "profile.json" {
		t.Errorf("env override failed: got %q", loaded.Profile)
	}
	if loaded.Lanyard.BaseURL != "http://localhost:4000" {
		t.Errorf("nested env override failed: got %q", loaded.Lanyard.BaseURL)
	}
}

func TestLoadPortEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	cfg := DefaultConfig()
	cfg.Port = 7000
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("PORT", "3000")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 3000 {
		t.Errorf("PORT override failed: got %d, want 3000", loaded.Port)
	}
}

func TestLoadInvalidPortEnv(t *testing.T) {
	t.Setenv("PORT", "eighty")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for non-numeric PORT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative port", func(c *Config) { c.Port = -1 }, true},
		{"empty profile", func(c *Config) { c.Profile = "" }, true},
		{"empty site dir", func(c *Config) { c.SiteDir = "" }, true},
		{"history without data dir", func(c *Config) { c.DataDir = "" }, true},
		{"no history without data dir", func(c *Config) { c.History = false; c.DataDir = "" }, false},
		{"bad lanyard url", func(c *Config) { c.Lanyard.BaseURL = "ftp://x" }, true},
		{"zero poll interval", func(c *Config) { c.Lanyard.PollInterval = 0 }, true},
		{"negative timeout", func(c *Config) { c.Lanyard.Timeout = -time.Second }, true},
		{"negative dots", func(c *Config) { c.Dots.PerTick = -2 }, true},
		{"zero dot interval", func(c *Config) { c.Dots.Interval = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadKeepsDefaultExcludes(t *testing.T) {
	want := slices.Clone(DefaultStaticExcludes)

	path := filepath.Join(t.TempDir(), ".portfolio.yml")
	if err := os.WriteFile(path, []byte("static_exclude:\n  - \"secret/**\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.StaticExclude) != 1 || cfg.StaticExclude[0] != "secret/**" {
		t.Errorf("static_exclude = %v, want [secret/**]", cfg.StaticExclude)
	}

	if !slices.Equal(DefaultStaticExcludes, want) {
		t.Errorf("DefaultStaticExcludes changed to %v", DefaultStaticExcludes)
	}
	if got := DefaultConfig().StaticExclude; !slices.Equal(got, want) {
		t.Errorf("DefaultConfig().StaticExclude = %v, want %v", got, want)
	}
}
