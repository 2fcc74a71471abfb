package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the optional YAML configuration file schema. Nested
// sections map naturally onto flags and environment variables.
type FileConfig struct {
	LLM struct {
		Base  string `yaml:"base"`
		Model string `yaml:"model"`
		Key   string `yaml:"key"`
	} `yaml:"llm"`

	Generation struct {
		SystemPrompt string   `yaml:"systemPrompt"`
		Temperature  *float32 `yaml:"temperature"`
		MaxTokens    int      `yaml:"maxTokens"`
	} `yaml:"generation"`

	Cache struct {
		Dir         string `yaml:"dir"`
		TTL         string `yaml:"ttl"`
		StrictPerms bool   `yaml:"strictPerms"`
	} `yaml:"cache"`

	Usage struct {
		File string `yaml:"file"`
	} `yaml:"usage"`
}

// LoadConfigFile reads and parses the YAML config at path. A missing file is
// reported as fs.ErrNotExist so callers can treat it as optional.
func LoadConfigFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// MergeFileConfig fills unset cfg fields from the file config. Flag and env
// values already present in cfg win over the file.
func MergeFileConfig(cfg *Config, fc *FileConfig) error {
	if cfg == nil || fc == nil {
		return nil
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fc.LLM.Base
	}
	if cfg.Model == "" {
		cfg.Model = fc.LLM.Model
	}
	if cfg.APIKey == "" {
		cfg.APIKey = fc.LLM.Key
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = fc.Generation.SystemPrompt
	}
	if cfg.Temperature == 0 && fc.Generation.Temperature != nil {
		cfg.Temperature = *fc.Generation.Temperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = fc.Generation.MaxTokens
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheTTL == 0 && fc.Cache.TTL != "" {
		d, err := time.ParseDuration(fc.Cache.TTL)
		if err != nil {
			return fmt.Errorf("cache.ttl: %w", err)
		}
		cfg.CacheTTL = d
	}
	if !cfg.StrictPerms {
		cfg.StrictPerms = fc.Cache.StrictPerms
	}
	if cfg.UsageFile == "" {
		cfg.UsageFile = fc.Usage.File
	}
	return nil
}

// LoadOptionalConfigFile merges the config file at path into cfg when it
// exists. An empty path or a missing file is not an error.
func LoadOptionalConfigFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	fc, err := LoadConfigFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return MergeFileConfig(cfg, fc)
}
