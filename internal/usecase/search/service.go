// Package search fuses vector and keyword retrieval signals and hosts the
// query expansion and re-ranking stages around them.
package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
)

// Service runs hybrid searches over the corpus repository.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
}

// New creates a search service. embed may be nil (keyword-only operation).
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, logger: logger}
}

// Search runs the vector and keyword scans independently and fuses them via
// Reciprocal Rank Fusion. Each scan requests 2k candidates to give fusion
// enough material. queryVec may be nil, in which case the vector signal
// contributes nothing and BM25 alone drives relevance.
func (s *Service) Search(queryVec []float32, queryText string, k int) []result.Result {
	if k <= 0 {
		return nil
	}

	var vecResults []result.Result
	if len(queryVec) > 0 {
		vecResults = s.repo.SearchVector(queryVec, 2*k)
	}
	kwResults := s.repo.SearchBM25(queryText, 2*k)

	return fuseRRF(vecResults, kwResults, k)
}

// EmbedQuery produces a query vector, treating every failure as soft:
// a nil vector is returned and the caller proceeds keyword-only.
func (s *Service) EmbedQuery(ctx context.Context, text string) []float32 {
	if s.embed == nil {
		return nil
	}
	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		s.logger.Debug("query embedding failed, continuing keyword-only",
			zap.String("query", text),
			zap.Error(err),
		)
		return nil
	}
	return res.Embedding
}
