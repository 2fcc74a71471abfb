package app

import (
	"time"

	"github.com/hyperifyio/gopoem/internal/cache"
	"github.com/hyperifyio/gopoem/internal/prompt"
)

// Config holds runtime configuration for the application.
type Config struct {
	// LLM
	BaseURL string
	Model   string
	APIKey  string

	// Generation
	SystemPrompt string
	Temperature  float32
	MaxTokens    int

	// Date, when non-empty, overrides today. Accepts "2006-01-02" or the
	// display form "May 23, 2025".
	Date string

	// Storage
	CacheDir    string
	CacheTTL    time.Duration
	NoCache     bool
	StrictPerms bool
	UsageFile   string

	// Output
	PDFPath string
	Verbose bool
}

// ApplyDefaults fills unset fields with the stock generation parameters and
// the per-user storage locations under ~/.gopoem.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Model == "" {
		cfg.Model = prompt.DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = prompt.DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = prompt.DefaultMaxTokens
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = cache.DefaultTTL
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir()
	}
	if cfg.UsageFile == "" {
		cfg.UsageFile = DefaultUsageFile()
	}
}
