// Package provider implements the hosted language-model backends used by the
// complexity weighter and the summary pipeline.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"teampulse/internal/contract"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider completes prompts through the OpenAI chat-completions API.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	timeout time.Duration
	hasKey  bool
}

var _ contract.IntelligenceProvider = (*OpenAIProvider)(nil)

// NewOpenAI creates an OpenAI-backed provider. An empty key yields a provider
// that reports a soft failure, letting the chain fall through.
func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAIProvider {
	if model == "" {
		model = defaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = contract.DefaultProviderTimeout
	}
	return &OpenAIProvider{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
		hasKey:  apiKey != "",
	}
}

// Name identifies the provider in diagnostics and summary provenance.
func (p *OpenAIProvider) Name() string { return "openai" }

// Complete sends the prompt and returns the first choice's text.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !p.hasKey {
		return "", fmt.Errorf("%w: openai: no api key configured", contract.ErrProviderSoft)
	}

	// The per-call timeout is softer than the parent context: its expiry
	// moves on to the next provider, while parent cancellation aborts.
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", classifyProviderErr(ctx, "openai", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: openai: empty completion", contract.ErrProviderSoft)
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyProviderErr maps a transport failure into the chain taxonomy:
// cancellation of the parent context aborts the chain, anything else, the
// per-call timeout included, lets the next provider try.
func classifyProviderErr(ctx context.Context, name string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %s: %v", contract.ErrProviderHard, name, err)
	}
	return fmt.Errorf("%w: %s: %v", contract.ErrProviderSoft, name, err)
}
