// Package poem orchestrates a single generation: response cache first, then
// the chat model, with every real API call recorded in the usage tracker.
package poem

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/gopoem/internal/cache"
	"github.com/hyperifyio/gopoem/internal/llm"
	"github.com/hyperifyio/gopoem/internal/prompt"
	"github.com/hyperifyio/gopoem/internal/usage"
)

// ErrEmptyCompletion indicates the model answered without any choices.
var ErrEmptyCompletion = errors.New("model returned no choices")

// Generator produces a poem about a date. Cache and Usage are optional;
// leaving either nil disables that concern without changing the generation
// result.
type Generator struct {
	Client llm.Client
	Cache  *cache.ResponseCache
	Usage  *usage.Tracker

	Model string
	// SystemPrompt, when non-empty, overrides the default poet persona.
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
}

// Generate returns a poem about the given display date, e.g. "May 23, 2025".
// A cache hit short-circuits before any API call and is not tracked as usage.
// Failures from the model are classified and recorded as failed usage before
// being returned.
func (g *Generator) Generate(ctx context.Context, date string) (string, error) {
	if g.Client == nil || strings.TrimSpace(g.Model) == "" {
		return "", errors.New("generator not configured")
	}
	system := g.SystemPrompt
	if strings.TrimSpace(system) == "" {
		system = prompt.System
	}
	user := prompt.ForDate(date)

	req := cache.Request{
		Model:        g.Model,
		SystemPrompt: system,
		UserPrompt:   user,
		Temperature:  g.Temperature,
		MaxTokens:    g.MaxTokens,
	}
	if g.Cache != nil {
		if text, ok := g.Cache.Get(ctx, req); ok {
			return text, nil
		}
	}

	resp, err := g.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: g.Temperature,
		MaxTokens:   g.MaxTokens,
		N:           1,
	})
	if err != nil {
		// No completion means no real token counts; fall back to the prompt
		// character length as the usage estimate.
		g.track(llm.EstimatePromptTokens(system, user), 0, false)
		return "", llm.Classify(err)
	}
	if len(resp.Choices) == 0 {
		g.track(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, false)
		return "", ErrEmptyCompletion
	}
	g.track(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, true)

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if g.Cache != nil {
		g.Cache.Set(ctx, req, text)
	}
	return text, nil
}

func (g *Generator) track(promptTokens, completionTokens int, success bool) {
	if g.Usage == nil {
		return
	}
	g.Usage.Track(g.Model, promptTokens, completionTokens, success)
}
