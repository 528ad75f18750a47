package search

import (
	"context"
	"sort"
	"strings"

	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
	"github.com/kailas-cloud/ragdex/internal/domain/vector"
	"github.com/kailas-cloud/ragdex/internal/repository/corpus"
)

// termOverlapBoost is the weight of the lexical fallback boost applied when
// no query embedding is available.
const termOverlapBoost = 0.5

// Rerank rescores candidates against the original, unexpanded query and
// truncates to topN. When a query embedding can be produced, each candidate's
// score is replaced with the direct cosine similarity between the query
// vector and the candidate's own embedding, bypassing the fusion score it
// arrived with. Otherwise the existing score is boosted by the fraction of
// query terms literally present in the candidate text.
func (s *Service) Rerank(ctx context.Context, candidates []result.Result, originalQuery string, topN int) []result.Result {
	if len(candidates) == 0 || topN <= 0 {
		return nil
	}

	queryVec := s.EmbedQuery(ctx, originalQuery)

	rescored := make([]result.Result, len(candidates))
	if queryVec != nil {
		for i, c := range candidates {
			ck := c.Chunk()
			rescored[i] = c.WithScore(vector.Cosine(queryVec, ck.Embedding()))
		}
	} else {
		terms := corpus.QueryTerms(originalQuery)
		for i, c := range candidates {
			ck := c.Chunk()
			rescored[i] = c.WithScore(c.Score() * (1 + termOverlapBoost*overlapFraction(terms, ck.Content())))
		}
	}

	sort.SliceStable(rescored, func(i, j int) bool {
		return rescored[i].Score() > rescored[j].Score()
	})
	if len(rescored) > topN {
		rescored = rescored[:topN]
	}
	return rescored
}

// overlapFraction returns the fraction of query terms present in the text.
func overlapFraction(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}
	lowered := strings.ToLower(text)
	hit := 0
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			hit++
		}
	}
	return float64(hit) / float64(len(terms))
}
