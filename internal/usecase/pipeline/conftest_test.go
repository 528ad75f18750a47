package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragdex/internal/chunker"
	"github.com/kailas-cloud/ragdex/internal/corpus"
	"github.com/kailas-cloud/ragdex/internal/domain"
	repocorpus "github.com/kailas-cloud/ragdex/internal/repository/corpus"
	ingestuc "github.com/kailas-cloud/ragdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/ragdex/internal/usecase/search"
)

// hashEmbedder is a deterministic fake provider: it maps text to a small
// vector of topic-term frequencies so topically similar texts get similar
// vectors. Tracks call counts for init-idempotency assertions.
type hashEmbedder struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

var topicTerms = []string{"cat", "feline", "dog", "canine", "retrieval", "embedding"}

func (e *hashEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	e.mu.Lock()
	e.calls++
	fail := e.fail
	e.mu.Unlock()

	if fail {
		return domain.EmbeddingResult{}, domain.ErrEmbeddingProviderError
	}

	lowered := strings.ToLower(text)
	vec := make([]float32, len(topicTerms))
	for i, term := range topicTerms {
		vec[i] = float32(strings.Count(lowered, term))
	}
	// Never return a zero vector: keep one stable component.
	vec = append(vec, 1)
	return domain.EmbeddingResult{Embedding: vec, TotalTokens: len(text) / 4}, nil
}

func (e *hashEmbedder) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// newTestPipeline wires real components around the given embedder (nil for
// provider-unavailable mode) and document set.
func newTestPipeline(embed domain.Embedder, docs []corpus.Document) *Service {
	logger := zap.NewNop()
	store := repocorpus.NewStore()
	ck := chunker.New(0, 0, 0)
	searcher := searchuc.New(store, embed, logger)
	ingester := ingestuc.New(ck, store, embed, 10, logger)
	model := ""
	if embed != nil {
		model = "test-embedding-model"
	}
	return New(store, searcher, ingester, docs, model, logger)
}

func catsAndDogs() []corpus.Document {
	cats := strings.Join([]string{
		"Cats are solitary hunters by nature. Feline behavior revolves around territory, scent marking, and long stretches of observation from a high vantage point.",
		"A cat communicates through posture and tail position. Feline grooming is both hygiene and a self-soothing ritual that occupies hours of a cat's day.",
		"Play for a cat is rehearsal for the hunt. The feline pounce sequence follows stalk, crouch, wiggle, and strike in a fixed order.",
	}, "\n\n")
	dogs := strings.Join([]string{
		"Dogs are pack animals descended from wolves. Canine behavior is organized around social hierarchy and cooperative activity with the group.",
		"A dog communicates eagerness with its whole body. Canine play bows invite interaction, and fetch satisfies a deep retrieving instinct.",
		"Training a dog builds on its drive to please the pack leader. Canine obedience work rewards attention, patience, and consistent cues.",
	}, "\n\n")
	return []corpus.Document{
		{Title: "Cats", Content: cats},
		{Title: "Dogs", Content: dogs},
	}
}

func requireNonEmpty(t *testing.T, res *Result) {
	t.Helper()
	if res == nil {
		t.Fatal("nil result")
	}
	if len(res.Reranked) == 0 {
		t.Fatal("no reranked chunks")
	}
}
