package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"teampulse/internal/contract"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// DefaultOpenRouterModels is the fallback candidate list, tried in order.
var DefaultOpenRouterModels = []string{
	"meta-llama/llama-3.1-8b-instruct:free",
	"mistralai/mistral-7b-instruct:free",
}

// OpenRouterProvider completes prompts through the OpenRouter gateway,
// walking an ordered candidate model list until one answers.
type OpenRouterProvider struct {
	apiKey     string
	models     []string
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

var _ contract.IntelligenceProvider = (*OpenRouterProvider)(nil)

// NewOpenRouter creates an OpenRouter-backed provider. An empty key yields a
// provider that reports a soft failure, letting the chain fall through.
func NewOpenRouter(apiKey string, models []string, timeout time.Duration) *OpenRouterProvider {
	if len(models) == 0 {
		models = DefaultOpenRouterModels
	}
	if timeout <= 0 {
		timeout = contract.DefaultProviderTimeout
	}
	return &OpenRouterProvider{
		apiKey:     apiKey,
		models:     models,
		endpoint:   openRouterEndpoint,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// Name identifies the provider in diagnostics and summary provenance.
func (p *OpenRouterProvider) Name() string { return "openrouter" }

// chatRequest is the OpenAI-compatible request body OpenRouter accepts.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete tries each candidate model in order and returns the first
// non-empty completion.
func (p *OpenRouterProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("%w: openrouter: no api key configured", contract.ErrProviderSoft)
	}

	var lastErr error
	for _, model := range p.models {
		text, err := p.completeWithModel(ctx, model, prompt, maxTokens)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", classifyProviderErr(ctx, "openrouter", err)
		}
		lastErr = err
	}
	return "", fmt.Errorf("%w: openrouter: all models failed: %v", contract.ErrProviderSoft, lastErr)
}

func (p *OpenRouterProvider) completeWithModel(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	payload := chatRequest{
		Model:     model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", model, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("model %s: read response: %w", model, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model %s: status %d: %s", model, resp.StatusCode, truncateBody(data))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("model %s: decode response: %w", model, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("model %s: api error: %s", model, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("model %s: empty completion", model)
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncateBody(data []byte) string {
	const limit = 200
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
