package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// openRouterService is the alternative CompletionClient, speaking the
// OpenAI-compatible chat-completions API via OpenRouter.
type openRouterService struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewOpenRouterService(apiKey, model string, requestTimeout time.Duration) CompletionClient {
	return &openRouterService{
		client: resty.New().SetTimeout(requestTimeout),
		apiKey: apiKey,
		model:  model,
	}
}

func (s *openRouterService) Complete(ctx context.Context, prompt string, maxTokens int32, temperature float32) (string, error) {
	payload := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(openRouterEndpoint)
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode(), resp.String())
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content").String()
	if content == "" {
		return "", fmt.Errorf("no text content in openrouter response")
	}

	return content, nil
}
