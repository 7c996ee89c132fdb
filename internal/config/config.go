// Package config reads showroom settings from SHOWROOM_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"showroom/internal/logger"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
)

const Prefix = "SHOWROOM"

type Config struct {
	AssetDir     string        `envconfig:"ASSET_DIR" default:"assets/models"`
	AssetBaseURL string        `envconfig:"ASSET_BASE_URL"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
	FetchRetry   time.Duration `envconfig:"FETCH_RETRY" default:"10s"`

	Catalog      string `envconfig:"CATALOG"`
	DefaultModel string `envconfig:"DEFAULT_MODEL"`
	DefaultColor string `envconfig:"DEFAULT_COLOR"`

	WindowWidth  int `envconfig:"WINDOW_WIDTH" default:"1280"`
	WindowHeight int `envconfig:"WINDOW_HEIGHT" default:"720"`

	Prefs string `envconfig:"PREFS" default:"~/.config/showroom/prefs.toml"`

	Log logger.Config `envconfig:"LOG"`
}

// Load reads envFiles (".env" when none are given) into the process
// environment and then processes SHOWROOM_* variables. Missing env files
// are skipped; variables already set win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	prefs, err := homedir.Expand(cfg.Prefs)
	if err != nil {
		return nil, fmt.Errorf("prefs path: %w", err)
	}
	cfg.Prefs = prefs
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AssetDir == "" && c.AssetBaseURL == "" {
		return errors.New("one of SHOWROOM_ASSET_DIR or SHOWROOM_ASSET_BASE_URL is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("SHOWROOM_FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.FetchRetry < 0 {
		return fmt.Errorf("SHOWROOM_FETCH_RETRY must not be negative, got %s", c.FetchRetry)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.WindowWidth, c.WindowHeight)
	}
	return nil
}

// Remote reports whether assets are fetched over HTTP.
func (c *Config) Remote() bool {
	return c.AssetBaseURL != ""
}
