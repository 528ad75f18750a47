package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragdex/internal/domain"
	"github.com/kailas-cloud/ragdex/internal/domain/chunk"
	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	searchVectorFn func(queryVec []float32, k int) []result.Result
	searchBM25Fn   func(query string, k int) []result.Result
}

func (m *mockRepo) SearchVector(queryVec []float32, k int) []result.Result {
	if m.searchVectorFn != nil {
		return m.searchVectorFn(queryVec, k)
	}
	return nil
}

func (m *mockRepo) SearchBM25(query string, k int) []result.Result {
	if m.searchBM25Fn != nil {
		return m.searchBM25Fn(query, k)
	}
	return nil
}

// mockEmbedder implements Embedder with a fixed response.
type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func makeResult(t *testing.T, id, content string, score float64, method result.Method, emb []float32) result.Result {
	t.Helper()
	c, err := chunk.New(id, content, "Doc", chunk.Position{
		Index: 0, Total: 1, CharStart: 0, CharEnd: len(content),
	})
	if err != nil {
		t.Fatalf("chunk.New(%s): %v", id, err)
	}
	if emb != nil {
		c.SetEmbedding(emb)
	}
	return result.New(c, score, method)
}

func newTestService(repo Repository, embed Embedder) *Service {
	return New(repo, embed, zap.NewNop())
}
