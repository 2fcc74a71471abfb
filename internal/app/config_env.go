package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	BaseURL   string        `env:"OPENAI_BASE_URL"`
	Model     string        `env:"OPENAI_MODEL"`
	APIKey    string        `env:"OPENAI_API_KEY"`
	CacheDir  string        `env:"GOPOEM_CACHE_DIR"`
	CacheTTL  time.Duration `env:"GOPOEM_CACHE_TTL"`
	UsageFile string        `env:"GOPOEM_USAGE_FILE"`
}

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = e.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = e.Model
	}
	if cfg.APIKey == "" {
		cfg.APIKey = e.APIKey
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = e.CacheDir
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = e.CacheTTL
	}
	if cfg.UsageFile == "" {
		cfg.UsageFile = e.UsageFile
	}
	return nil
}
