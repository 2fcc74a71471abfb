// Package app wires configuration, the model client, the response cache and
// the usage tracker into a runnable poem generation flow.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gopoem/internal/cache"
	"github.com/hyperifyio/gopoem/internal/llm"
	"github.com/hyperifyio/gopoem/internal/poem"
	"github.com/hyperifyio/gopoem/internal/prompt"
	"github.com/hyperifyio/gopoem/internal/usage"
)

// App bundles the constructed components for one invocation.
type App struct {
	cfg       Config
	Generator *poem.Generator
	Cache     *cache.ResponseCache
	Usage     *usage.Tracker
}

// New builds an App from cfg, constructing a real OpenAI-compatible client.
// The API key shape is validated up front against the hosted API; alternative
// base URLs issue their own key formats and skip the check.
func New(cfg Config) (*App, error) {
	ApplyDefaults(&cfg)
	if cfg.BaseURL == "" {
		if err := llm.ValidateAPIKey(cfg.APIKey); err != nil {
			return nil, err
		}
	}
	return newWithClient(cfg, llm.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL)), nil
}

// NewWithClient builds an App around an injected model client. Tests use it
// to substitute fakes for the real backend.
func NewWithClient(cfg Config, client llm.Client) *App {
	ApplyDefaults(&cfg)
	return newWithClient(cfg, client)
}

func newWithClient(cfg Config, client llm.Client) *App {
	a := &App{cfg: cfg}
	a.Usage = &usage.Tracker{Path: cfg.UsageFile}
	if !cfg.NoCache {
		a.Cache = &cache.ResponseCache{Dir: cfg.CacheDir, TTL: cfg.CacheTTL, StrictPerms: cfg.StrictPerms}
	}
	a.Generator = &poem.Generator{
		Client:       client,
		Cache:        a.Cache,
		Usage:        a.Usage,
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
	}
	return a
}

// ResolveDate returns the display form of the configured date, defaulting to
// today when none was given.
func (a *App) ResolveDate() (string, error) {
	d := strings.TrimSpace(a.cfg.Date)
	if d == "" {
		return prompt.FormatDate(time.Now()), nil
	}
	t, err := prompt.ParseDate(d)
	if err != nil {
		return "", err
	}
	return prompt.FormatDate(t), nil
}

// Run resolves the target date, generates the poem and writes it to out,
// optionally also rendering it as a PDF.
func (a *App) Run(ctx context.Context, out io.Writer) error {
	date, err := a.ResolveDate()
	if err != nil {
		return err
	}
	log.Info().Str("date", date).Str("model", a.cfg.Model).Msg("generating poem")

	text, err := a.Generator.Generate(ctx, date)
	if err != nil {
		return fmt.Errorf("generate poem: %w", err)
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(out, "Your poem about %s:\n\n", date)
	fmt.Fprintln(out, text)

	if a.cfg.PDFPath != "" {
		if err := writePoemPDF(date, text, a.cfg.PDFPath); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("path", a.cfg.PDFPath).Msg("saved poem as PDF")
	}
	return nil
}

// Models lists the model identifiers the backend advertises, sorted.
func (a *App) Models(ctx context.Context) ([]string, error) {
	lister, ok := a.Generator.Client.(llm.ModelLister)
	if !ok {
		return nil, errors.New("backend does not support listing models")
	}
	list, err := lister.ListModels(ctx)
	if err != nil {
		return nil, llm.Classify(err)
	}
	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}
