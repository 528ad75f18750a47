// Package pipeline composes chunking, retrieval, fusion, and re-ranking into
// the end-to-end query flow and owns the corpus initialization lifecycle.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragdex/internal/corpus"
	"github.com/kailas-cloud/ragdex/internal/domain"
	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
	"github.com/kailas-cloud/ragdex/internal/metrics"
	searchuc "github.com/kailas-cloud/ragdex/internal/usecase/search"
)

// Retrieval depths. Candidates per expanded variant and the final re-ranked
// context size.
const (
	TopK      = 5
	RerankTop = 3
)

// contextSeparator joins tagged chunks in the assembled context block.
const contextSeparator = "\n\n---\n\n"

// Stats is the execution statistics attached to every query result.
type Stats struct {
	Documents     int           `json:"documents"`
	Chunks        int           `json:"chunks"`
	Elapsed       time.Duration `json:"elapsed_ms"`
	EmbeddingMode string        `json:"embedding_mode"`
	TopScore      float64       `json:"top_score"`
}

// Result is the externally visible output of one query.
type Result struct {
	Query        string
	Variants     []string
	Retrieved    []result.Result
	Reranked     []result.Result
	ContextBlock string
	Stats        Stats
}

// Service is the pipeline orchestrator.
type Service struct {
	store    CorpusState
	searcher Searcher
	ingester Ingester
	builtin  []corpus.Document
	model    string
	logger   *zap.Logger
}

// New creates the orchestrator. model is the embedding model name reported
// in stats while semantic mode is active; builtin is the startup corpus
// ingested by the first caller.
func New(store CorpusState, searcher Searcher, ingester Ingester, builtin []corpus.Document, model string, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		searcher: searcher,
		ingester: ingester,
		builtin:  builtin,
		model:    model,
		logger:   logger,
	}
}

// Query answers a free-text query with a re-ranked, citation-tagged context
// block. Embedding failures degrade to keyword-only retrieval; the only
// error returned is context cancellation while awaiting initialization.
func (s *Service) Query(ctx context.Context, text string) (*Result, error) {
	start := time.Now()

	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	variants := searchuc.Expand(text)

	merged := make(map[string]result.Result)
	for _, variant := range variants {
		queryVec := s.searcher.EmbedQuery(ctx, variant)
		for _, r := range s.searcher.Search(queryVec, variant, TopK) {
			if existing, ok := merged[r.ID()]; !ok || r.Score() > existing.Score() {
				merged[r.ID()] = r
			}
		}
	}

	retrieved := make([]result.Result, 0, len(merged))
	for _, r := range merged {
		retrieved = append(retrieved, r)
	}
	sort.SliceStable(retrieved, func(i, j int) bool {
		if retrieved[i].Score() != retrieved[j].Score() {
			return retrieved[i].Score() > retrieved[j].Score()
		}
		return retrieved[i].ID() < retrieved[j].ID()
	})
	if len(retrieved) > TopK {
		retrieved = retrieved[:TopK]
	}

	reranked := s.searcher.Rerank(ctx, retrieved, text, RerankTop)

	res := &Result{
		Query:        text,
		Variants:     variants,
		Retrieved:    retrieved,
		Reranked:     reranked,
		ContextBlock: buildContextBlock(reranked),
		Stats: Stats{
			Documents:     s.store.Documents(),
			Chunks:        s.store.Len(),
			Elapsed:       time.Since(start),
			EmbeddingMode: s.embeddingMode(),
			TopScore:      topScore(reranked),
		},
	}

	metrics.PipelineQueriesTotal.WithLabelValues(res.Stats.EmbeddingMode).Inc()
	metrics.PipelineQueryDuration.Observe(res.Stats.Elapsed.Seconds())

	s.logger.Debug("query answered",
		zap.String("query", text),
		zap.Int("variants", len(variants)),
		zap.Int("retrieved", len(retrieved)),
		zap.Int("reranked", len(reranked)),
		zap.String("embedding_mode", res.Stats.EmbeddingMode),
		zap.Duration("elapsed", res.Stats.Elapsed),
	)
	return res, nil
}

// AddDocument chunks and embeds a new document and appends it to the live
// corpus without resetting existing chunks. Returns the number of chunks
// added; malformed (empty) content yields zero, not an error.
func (s *Service) AddDocument(ctx context.Context, title, content string) (int, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return 0, err
	}
	summary := s.ingester.Ingest(ctx, title, content)
	metrics.CorpusChunks.Set(float64(s.store.Len()))
	return summary.ChunksAdded, nil
}

// CorpusStats reports the live corpus size and embedding mode.
type CorpusStats struct {
	Documents     int    `json:"documents"`
	Chunks        int    `json:"chunks"`
	EmbeddingMode string `json:"embedding_mode"`
}

// Stats returns the live corpus statistics. It does not trigger
// initialization: an empty uninitialized corpus reports zero counts.
func (s *Service) Stats() CorpusStats {
	return CorpusStats{
		Documents:     s.store.Documents(),
		Chunks:        s.store.Len(),
		EmbeddingMode: s.embeddingMode(),
	}
}

// Reset clears the corpus and the initialization guard. Test/debug surface.
func (s *Service) Reset() {
	s.store.Reset()
	metrics.CorpusChunks.Set(0)
}

// ensureInitialized ingests the built-in corpus exactly once; concurrent
// first callers await the same in-flight pass.
func (s *Service) ensureInitialized(ctx context.Context) error {
	return s.store.Initialize(ctx, func(ctx context.Context) error {
		total := 0
		failed := 0
		for _, doc := range s.builtin {
			summary := s.ingester.Ingest(ctx, doc.Title, doc.Content)
			total += summary.ChunksAdded
			failed += summary.Failed
		}
		metrics.CorpusChunks.Set(float64(s.store.Len()))
		s.logger.Info("corpus initialized",
			zap.Int("documents", len(s.builtin)),
			zap.Int("chunks", total),
			zap.Int("embed_failures", failed),
			zap.String("embedding_mode", s.embeddingMode()),
		)
		return nil
	})
}

// embeddingMode reports the active retrieval mode: the embedding model name
// while any chunk carries a vector, keyword_fallback otherwise.
func (s *Service) embeddingMode() string {
	if s.model == "" || s.store.EmbeddedCount() == 0 {
		return domain.KeywordFallbackMode
	}
	return s.model
}

// buildContextBlock concatenates the re-ranked chunks in descending
// relevance order, each prefixed with a source and relevance tag.
func buildContextBlock(reranked []result.Result) string {
	if len(reranked) == 0 {
		return ""
	}
	parts := make([]string, len(reranked))
	for i, r := range reranked {
		ck := r.Chunk()
		parts[i] = fmt.Sprintf("[Source %d: %s | Relevance: %.0f%%]\n%s",
			i+1, ck.Source(), r.Score()*100, ck.Content())
	}
	return strings.Join(parts, contextSeparator)
}

func topScore(results []result.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	return results[0].Score()
}
