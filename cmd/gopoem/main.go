package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/gopoem/internal/app"
)

var version = "dev"

func main() {
	// A .env next to the binary is a convenient place for OPENAI_API_KEY.
	_ = godotenv.Load()

	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	root := newRootCmd()
	root.AddCommand(newUsageCmd(), newCacheCmd(), newModelsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg        app.Config
		configPath string
	)

	cmd := &cobra.Command{
		Use:     "gopoem",
		Short:   "gopoem — generate a poem about a date with an OpenAI-compatible model",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(cfg, configPath)
			if err != nil {
				return err
			}
			a, err := app.New(resolved)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context(), os.Stdout)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default ~/.gopoem/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")

	cmd.Flags().StringVar(&cfg.Date, "date", "", "Date to write about, e.g. 2025-05-23 or \"May 23, 2025\" (default today)")
	cmd.Flags().StringVar(&cfg.Model, "model", "", "Model name (default gpt-3.5-turbo)")
	cmd.Flags().StringVar(&cfg.BaseURL, "llm.base", "", "OpenAI-compatible base URL")
	cmd.Flags().Float32Var(&cfg.Temperature, "temperature", 0, "Sampling temperature (default 0.7)")
	cmd.Flags().IntVar(&cfg.MaxTokens, "max-tokens", 0, "Maximum completion tokens (default 500)")
	cmd.Flags().StringVar(&cfg.SystemPrompt, "system-prompt", "", "Override the poet system prompt")
	cmd.Flags().StringVar(&cfg.CacheDir, "cache.dir", "", "Response cache directory (default ~/.gopoem/cache)")
	cmd.Flags().DurationVar(&cfg.CacheTTL, "cache.ttl", 0, "Cache entry time-to-live (default 24h)")
	cmd.Flags().BoolVar(&cfg.NoCache, "no-cache", false, "Bypass the response cache")
	cmd.Flags().BoolVar(&cfg.StrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	cmd.Flags().StringVar(&cfg.UsageFile, "usage.file", "", "Usage store path (default ~/.gopoem/usage.json)")
	cmd.Flags().StringVar(&cfg.PDFPath, "pdf", "", "Also save the poem as a PDF at the given path")

	return cmd
}

// resolveConfig layers configuration sources: flags already in cfg win, then
// environment variables, then the config file, then built-in defaults.
func resolveConfig(cfg app.Config, configPath string) (app.Config, error) {
	if err := app.ApplyEnvToConfig(&cfg); err != nil {
		return cfg, err
	}
	if configPath == "" {
		configPath = app.DefaultConfigFile()
	}
	if err := app.LoadOptionalConfigFile(&cfg, configPath); err != nil {
		return cfg, err
	}
	app.ApplyDefaults(&cfg)
	return cfg, nil
}
