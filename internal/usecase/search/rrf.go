package search

import (
	"sort"

	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
// Large enough that rank differences dominate over raw score magnitude
// differences between the two heterogeneous scoring scales.
const rrfK = 60

// fuseRRF merges vector and keyword results via Reciprocal Rank Fusion.
// score(d) = sum of 1/(k + rank_i + 1) for each ranking where d appears,
// with rank the 0-based position in that list. When a chunk appears in both
// lists, the contributions are summed and the method tag of the list it was
// first seen in is kept (the vector list is processed first).
func fuseRRF(vec, keyword []result.Result, topK int) []result.Result {
	type scored struct {
		res   result.Result
		score float64
	}

	merged := make(map[string]*scored, len(vec)+len(keyword))
	order := make([]string, 0, len(vec)+len(keyword))

	for rank, r := range vec {
		s := 1.0 / float64(rrfK+rank+1)
		merged[r.ID()] = &scored{res: r, score: s}
		order = append(order, r.ID())
	}

	for rank, r := range keyword {
		s := 1.0 / float64(rrfK+rank+1)
		if existing, ok := merged[r.ID()]; ok {
			existing.score += s
			// Method tag from the vector list is kept.
		} else {
			merged[r.ID()] = &scored{res: r, score: s}
			order = append(order, r.ID())
		}
	}

	results := make([]result.Result, 0, len(merged))
	for _, id := range order {
		s := merged[id]
		results = append(results, s.res.WithScore(s.score))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results
}
