// Package ingest chunks documents and populates chunk embeddings before
// handing them to the corpus store.
package ingest

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/ragdex/internal/domain"
	"github.com/kailas-cloud/ragdex/internal/domain/chunk"
	domingest "github.com/kailas-cloud/ragdex/internal/domain/ingest"
)

// DefaultBatchSize bounds the number of concurrent embed calls. Each batch
// is a join point: all calls complete, success or failure, before the next
// batch starts.
const DefaultBatchSize = 10

// Chunker splits document text into chunks.
type Chunker interface {
	Chunk(text, source string) []chunk.Chunk
}

// Appender receives fully ingested chunks.
type Appender interface {
	Append(chunks []chunk.Chunk)
}

// Service ingests documents: chunk, batch-embed, append.
type Service struct {
	chunker   Chunker
	store     Appender
	embed     domain.Embedder
	batchSize int
	logger    *zap.Logger
}

// New creates an ingestion service. embed may be nil, in which case every
// chunk enters the corpus without an embedding.
func New(chunker Chunker, store Appender, embed domain.Embedder, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{chunker: chunker, store: store, embed: embed, batchSize: batchSize, logger: logger}
}

// Ingest chunks and embeds one document and appends it to the live corpus.
// Embedding failures are soft: the affected chunks keep no embedding and are
// recorded in the summary. Empty or whitespace-only content yields zero
// chunks and no error.
func (s *Service) Ingest(ctx context.Context, title, content string) domingest.Summary {
	chunks := s.chunker.Chunk(content, title)
	if len(chunks) == 0 {
		s.logger.Debug("document produced no chunks", zap.String("title", title))
		return domingest.Summary{}
	}

	summary := domingest.Summary{ChunksAdded: len(chunks)}
	summary.Results = s.embedChunks(ctx, chunks)
	for _, r := range summary.Results {
		switch r.Status() {
		case domingest.StatusEmbedded:
			summary.Embedded++
		case domingest.StatusFailed:
			summary.Failed++
		}
	}

	s.store.Append(chunks)

	s.logger.Info("document ingested",
		zap.String("title", title),
		zap.Int("chunks", summary.ChunksAdded),
		zap.Int("embedded", summary.Embedded),
		zap.Int("embed_failures", summary.Failed),
	)
	return summary
}

// embedChunks embeds chunks in batches of at most batchSize concurrent
// calls, waiting for each batch before starting the next.
func (s *Service) embedChunks(ctx context.Context, chunks []chunk.Chunk) []domingest.Result {
	results := make([]domingest.Result, len(chunks))

	if s.embed == nil {
		for i := range chunks {
			results[i] = domingest.NewSkipped(chunks[i].ID())
		}
		return results
	}

	var mu sync.Mutex
	for start := 0; start < len(chunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				res, err := s.embed.Embed(ctx, chunks[i].Content())
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					results[i] = domingest.NewFailed(chunks[i].ID(), err)
					return nil
				}
				chunks[i].SetEmbedding(res.Embedding)
				results[i] = domingest.NewEmbedded(chunks[i].ID())
				return nil
			})
		}
		_ = g.Wait()
	}
	return results
}
