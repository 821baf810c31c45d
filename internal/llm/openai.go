package llm

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"pathpilot_backend/internal/logger"
)

const defaultModel = "gpt-4o-mini"

// OpenAICompleter talks to an OpenAI-compatible chat endpoint. On a
// provider error it degrades to the disabled completer's canned answer
// instead of failing the route.
type OpenAICompleter struct {
	client   llms.Model
	fallback *DisabledCompleter
}

func NewOpenAICompleter(cfg Config) (*OpenAICompleter, error) {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &OpenAICompleter{
		client:   client,
		fallback: NewDisabledCompleter(),
	}, nil
}

func (o *OpenAICompleter) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	resp, err := o.client.GenerateContent(ctx, messages, llms.WithMaxTokens(maxTokens))
	if err != nil {
		logger.CtxWithError(ctx, "llm: completion failed, using mock response", err)
		return o.fallback.Complete(ctx, system, user, maxTokens)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		logger.CtxWarn(ctx, "llm: provider returned empty content, using mock response")
		return o.fallback.Complete(ctx, system, user, maxTokens)
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
