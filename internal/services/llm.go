package services

import "context"

// CompletionClient is the outbound generative-model collaborator. It is
// treated as unreliable: calls may time out, fail, or return text that
// ignores every formatting instruction.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int32, temperature float32) (string, error)
}

type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
