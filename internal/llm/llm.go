// Package llm is the text-completion collaborator for the AI routes.
// Without an API key every route still works through the deterministic
// disabled completer.
package llm

import (
	"context"

	"pathpilot_backend/internal/logger"
)

// Completer produces a plain-text completion for a system + user
// prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// DisabledCompleter answers every prompt with a canned response. Used
// when no API key is configured and as the degradation path when the
// provider errors.
type DisabledCompleter struct{}

func NewDisabledCompleter() *DisabledCompleter { return &DisabledCompleter{} }

func (d *DisabledCompleter) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	excerpt := user
	if len(excerpt) > 200 {
		// Cut on a rune boundary, the prompt may contain non-ASCII text.
		if runes := []rune(excerpt); len(runes) > 200 {
			excerpt = string(runes[:200])
		}
	}
	if excerpt == "" {
		excerpt = "nothing"
	}
	return "[Mock LLM] You asked about: " + excerpt + ". Configure OPENAI_API_KEY for real responses.", nil
}

// Config for the provider-backed completer.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// New picks the real provider when a key is configured, the disabled
// completer otherwise.
func New(cfg Config) Completer {
	if cfg.APIKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set, using disabled completer")
		return NewDisabledCompleter()
	}
	c, err := NewOpenAICompleter(cfg)
	if err != nil {
		logger.Error("llm: provider init failed, using disabled completer", "error", err)
		return NewDisabledCompleter()
	}
	return c
}
