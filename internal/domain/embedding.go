package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
// A nil Embedder means no provider is configured; callers degrade to
// keyword-only relevance rather than failing.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// KeywordFallbackMode is the embedding mode reported when no chunk in the
// corpus carries an embedding and relevance is driven by BM25 alone.
const KeywordFallbackMode = "keyword_fallback"
