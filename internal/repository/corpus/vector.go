package corpus

import (
	"sort"

	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
	"github.com/kailas-cloud/ragdex/internal/domain/vector"
)

// SearchVector returns the top-k chunks by cosine similarity to the query
// vector, descending. Chunks without an embedding do not participate.
// A brute-force linear scan is sufficient at the corpus sizes this store
// targets (tens of thousands of chunks).
func (s *Store) SearchVector(queryVec []float32, k int) []result.Result {
	if len(queryVec) == 0 || k <= 0 {
		return nil
	}

	entries := s.snapshot()
	results := make([]result.Result, 0, len(entries))
	for _, e := range entries {
		emb := e.chunk.Embedding()
		if len(emb) == 0 {
			continue
		}
		sim := vector.Cosine(queryVec, emb)
		results = append(results, result.New(e.chunk, sim, result.MethodVector))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}
