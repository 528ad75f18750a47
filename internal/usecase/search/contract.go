package search

import (
	"context"

	"github.com/kailas-cloud/ragdex/internal/domain"
	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
)

// Repository defines the corpus scan contract for search operations.
type Repository interface {
	SearchVector(queryVec []float32, k int) []result.Result
	SearchBM25(query string, k int) []result.Result
}

// Embedder vectorizes query text. May be nil when no provider is configured.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
