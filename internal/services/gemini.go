package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

type GeminiService interface {
	CompletionClient
	EmbeddingClient
}

type geminiService struct {
	client         *genai.Client
	modelName      string
	embedModel     string
	requestTimeout time.Duration
}

func NewGeminiService(apiKey string, requestTimeout time.Duration) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:         client,
		modelName:      "gemini-2.5-flash",
		embedModel:     "text-embedding-004",
		requestTimeout: requestTimeout,
	}, nil
}

// Complete issues a single generation attempt. Failures route the
// pipeline to the fallback scorer, so there is no retry loop here.
func (g *geminiService) Complete(ctx context.Context, prompt string, maxTokens int32, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateEmbedding implements EmbeddingClient.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
