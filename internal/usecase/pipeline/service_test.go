package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/kailas-cloud/ragdex/internal/corpus"
	"github.com/kailas-cloud/ragdex/internal/domain"
)

func TestQuery_IdempotentInitUnderConcurrency(t *testing.T) {
	embed := &hashEmbedder{}
	svc := newTestPipeline(embed, catsAndDogs())

	const goroutines = 50
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Query(context.Background(), "feline behavior"); err != nil {
				t.Errorf("Query: %v", err)
			}
		}()
	}
	wg.Wait()

	stats := svc.Stats()
	if stats.Documents != 2 {
		t.Errorf("documents = %d, want 2 (duplicate ingestion?)", stats.Documents)
	}

	// One embed call per corpus chunk, plus query-time embeds. Duplicate
	// ingestion would at least double the chunk-embed share.
	queryEmbeds := goroutines * 4 // upper bound: variants + rerank per query
	if embed.callCount() > stats.Chunks+queryEmbeds {
		t.Errorf("embed calls = %d, corpus chunks = %d: ingestion ran more than once", embed.callCount(), stats.Chunks)
	}
}

func TestQuery_SemanticScenarioCatsOverDogs(t *testing.T) {
	svc := newTestPipeline(&hashEmbedder{}, catsAndDogs())

	res, err := svc.Query(context.Background(), "feline behavior")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	requireNonEmpty(t, res)

	topChunk := res.Reranked[0].Chunk()
	if src := topChunk.Source(); src != "Cats" {
		t.Errorf("top reranked source = %s, want Cats", src)
	}
	if res.Stats.EmbeddingMode != "test-embedding-model" {
		t.Errorf("embedding mode = %s", res.Stats.EmbeddingMode)
	}
}

func TestQuery_KeywordFallbackEndToEnd(t *testing.T) {
	svc := newTestPipeline(nil, corpus.Builtin())

	res, err := svc.Query(context.Background(), "RAG pipeline best practices")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	requireNonEmpty(t, res)

	if res.Stats.EmbeddingMode != domain.KeywordFallbackMode {
		t.Errorf("embedding mode = %s, want %s", res.Stats.EmbeddingMode, domain.KeywordFallbackMode)
	}
	found := false
	for _, r := range res.Reranked {
		ck := r.Chunk()
		if ck.Source() == "RAG Pipeline Best Practices" {
			found = true
		}
	}
	if !found {
		t.Error("topical document missing from reranked set")
	}
}

func TestQuery_FailingProviderDegradesWithoutError(t *testing.T) {
	embed := &hashEmbedder{fail: true}
	svc := newTestPipeline(embed, catsAndDogs())

	res, err := svc.Query(context.Background(), "feline behavior")
	if err != nil {
		t.Fatalf("Query must not propagate provider failures: %v", err)
	}
	requireNonEmpty(t, res)
	if res.Stats.EmbeddingMode != domain.KeywordFallbackMode {
		t.Errorf("embedding mode = %s, want %s", res.Stats.EmbeddingMode, domain.KeywordFallbackMode)
	}
}

func TestQuery_InvariantsAndContextBlock(t *testing.T) {
	svc := newTestPipeline(&hashEmbedder{}, catsAndDogs())

	res, err := svc.Query(context.Background(), "canine play")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	requireNonEmpty(t, res)

	if len(res.Reranked) > len(res.Retrieved) {
		t.Errorf("reranked %d > retrieved %d", len(res.Reranked), len(res.Retrieved))
	}
	retrievedIDs := make(map[string]bool)
	for _, r := range res.Retrieved {
		retrievedIDs[r.ID()] = true
	}
	for _, r := range res.Reranked {
		if !retrievedIDs[r.ID()] {
			t.Errorf("reranked chunk %s not in retrieved set", r.ID())
		}
	}
	if len(res.Retrieved) > TopK {
		t.Errorf("retrieved %d > TopK %d", len(res.Retrieved), TopK)
	}
	if len(res.Reranked) > RerankTop {
		t.Errorf("reranked %d > RerankTop %d", len(res.Reranked), RerankTop)
	}

	if !strings.Contains(res.ContextBlock, "[Source 1: ") {
		t.Errorf("context block missing source tag: %q", res.ContextBlock)
	}
	if !strings.Contains(res.ContextBlock, "Relevance: ") {
		t.Errorf("context block missing relevance tag")
	}
	if res.Variants[0] != "canine play" {
		t.Errorf("original query missing from variants: %v", res.Variants)
	}
}

func TestQuery_NoMatchReturnsEmptyValidResult(t *testing.T) {
	svc := newTestPipeline(nil, catsAndDogs())

	res, err := svc.Query(context.Background(), "zeppelin airframe maintenance")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Reranked) != 0 || res.ContextBlock != "" {
		t.Errorf("expected empty outcome, got %d chunks, block %q", len(res.Reranked), res.ContextBlock)
	}
	if res.Stats.Chunks == 0 {
		t.Error("stats missing corpus size")
	}
}

func TestAddDocument_AppendsWithoutReset(t *testing.T) {
	svc := newTestPipeline(nil, catsAndDogs())
	if _, err := svc.Query(context.Background(), "feline"); err != nil {
		t.Fatalf("Query: %v", err)
	}
	before := svc.Stats()

	added, err := svc.AddDocument(context.Background(), "Birds",
		"Parrots mimic speech with startling accuracy. Avian intelligence shows up in tool use and long memories.\n\nMigratory birds navigate by stars, landmarks, and magnetic fields across continents.")
	if err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if added == 0 {
		t.Fatal("no chunks added")
	}

	after := svc.Stats()
	if after.Chunks != before.Chunks+added {
		t.Errorf("chunks = %d, want %d", after.Chunks, before.Chunks+added)
	}
	if after.Documents != before.Documents+1 {
		t.Errorf("documents = %d, want %d", after.Documents, before.Documents+1)
	}
}

func TestAddDocument_SubNoiseFloor(t *testing.T) {
	svc := newTestPipeline(nil, catsAndDogs())

	added, err := svc.AddDocument(context.Background(), "Test", "short")
	if err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if added != 0 {
		t.Errorf("chunks_added = %d, want 0", added)
	}
}

func TestReset_ReingestsOnNextQuery(t *testing.T) {
	embed := &hashEmbedder{}
	svc := newTestPipeline(embed, catsAndDogs())

	if _, err := svc.Query(context.Background(), "feline"); err != nil {
		t.Fatalf("Query: %v", err)
	}
	svc.Reset()
	if got := svc.Stats().Chunks; got != 0 {
		t.Fatalf("chunks after reset = %d", got)
	}

	if _, err := svc.Query(context.Background(), "feline"); err != nil {
		t.Fatalf("Query after reset: %v", err)
	}
	if got := svc.Stats().Chunks; got == 0 {
		t.Error("corpus not re-ingested after reset")
	}
}
