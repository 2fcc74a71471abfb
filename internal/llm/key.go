package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey reports that no API key was supplied by flags, config file
// or the OPENAI_API_KEY environment variable.
var ErrMissingAPIKey = errors.New("API key not set; export OPENAI_API_KEY or pass one via configuration")

// ValidateAPIKey performs a shape check on an OpenAI API key before any
// request is made: non-empty, "sk-" prefix and a minimum length. It catches
// obvious configuration mistakes early; it does not prove the key is live.
func ValidateAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrMissingAPIKey
	}
	if !strings.HasPrefix(key, "sk-") || len(key) < 20 {
		return fmt.Errorf("API key has invalid format")
	}
	return nil
}
