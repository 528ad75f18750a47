package pipeline

import (
	"context"

	"github.com/kailas-cloud/ragdex/internal/domain/ingest"
	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
)

// CorpusState owns the chunk collection and the one-time init guard.
type CorpusState interface {
	Initialize(ctx context.Context, load func(ctx context.Context) error) error
	Len() int
	Documents() int
	EmbeddedCount() int
	Reset()
}

// Searcher runs hybrid retrieval and the re-ranking stage.
type Searcher interface {
	Search(queryVec []float32, queryText string, k int) []result.Result
	EmbedQuery(ctx context.Context, text string) []float32
	Rerank(ctx context.Context, candidates []result.Result, originalQuery string, topN int) []result.Result
}

// Ingester chunks and embeds documents into the corpus.
type Ingester interface {
	Ingest(ctx context.Context, title, content string) ingest.Summary
}
