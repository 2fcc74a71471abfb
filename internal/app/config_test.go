package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOptionalConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gopoem.yaml")
	data := `
llm:
  base: http://localhost:8081/v1
  model: local-model
  key: sk-file-key-abcdefghijk
generation:
  temperature: 0.2
  maxTokens: 256
cache:
  dir: /tmp/poemcache
  ttl: 48h
usage:
  file: /tmp/usage.json
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg Config
	if err := LoadOptionalConfigFile(&cfg, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8081/v1" || cfg.Model != "local-model" {
		t.Fatalf("llm section not applied: %+v", cfg)
	}
	if cfg.Temperature != 0.2 || cfg.MaxTokens != 256 {
		t.Fatalf("generation section not applied: %+v", cfg)
	}
	if cfg.CacheTTL != 48*time.Hour {
		t.Fatalf("ttl = %v, want 48h", cfg.CacheTTL)
	}
	if cfg.CacheDir != "/tmp/poemcache" || cfg.UsageFile != "/tmp/usage.json" {
		t.Fatalf("storage sections not applied: %+v", cfg)
	}
}

func TestMergeFileConfig_FlagsWin(t *testing.T) {
	fc := &FileConfig{}
	fc.LLM.Model = "file-model"
	fc.Cache.TTL = "1h"

	cfg := Config{Model: "flag-model", CacheTTL: 2 * time.Hour}
	if err := MergeFileConfig(&cfg, fc); err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "flag-model" {
		t.Fatalf("explicit model overridden: %q", cfg.Model)
	}
	if cfg.CacheTTL != 2*time.Hour {
		t.Fatalf("explicit ttl overridden: %v", cfg.CacheTTL)
	}
}

func TestMergeFileConfig_BadTTL(t *testing.T) {
	fc := &FileConfig{}
	fc.Cache.TTL = "not-a-duration"
	var cfg Config
	if err := MergeFileConfig(&cfg, fc); err == nil {
		t.Fatal("expected ttl parse error")
	}
}

func TestLoadOptionalConfigFile_Missing(t *testing.T) {
	var cfg Config
	if err := LoadOptionalConfigFile(&cfg, filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing optional file must not error: %v", err)
	}
	if err := LoadOptionalConfigFile(&cfg, ""); err != nil {
		t.Fatalf("empty path must not error: %v", err)
	}
}

func TestApplyEnvToConfig(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "env-model")
	t.Setenv("OPENAI_API_KEY", "sk-env-key-abcdefghijklm")
	t.Setenv("GOPOEM_CACHE_TTL", "30m")

	cfg := Config{Model: "explicit"}
	if err := ApplyEnvToConfig(&cfg); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Model != "explicit" {
		t.Fatalf("explicit model overridden by env: %q", cfg.Model)
	}
	if cfg.APIKey != "sk-env-key-abcdefghijklm" {
		t.Fatalf("api key not taken from env: %q", cfg.APIKey)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Fatalf("ttl = %v, want 30m", cfg.CacheTTL)
	}
}
