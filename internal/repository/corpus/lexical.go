package corpus

import (
	"math"
	"sort"
	"strings"

	"github.com/kailas-cloud/ragdex/internal/domain/search/result"
)

// BM25 parameters. Standard values plus an approximate average chunk length
// in words; preserved as defaults rather than re-derived.
const (
	bm25K1     = 1.5
	bm25B      = 0.75
	bm25AvgLen = 100.0

	// minNormDivisor avoids division by zero when every score is tiny.
	minNormDivisor = 0.001
)

// SearchBM25 returns the top-k chunks by BM25-style relevance to the query,
// descending. Scores are normalized into [0, 1] by the maximum score in the
// surviving set; chunks with zero total score are discarded.
func (s *Store) SearchBM25(query string, k int) []result.Result {
	terms := QueryTerms(query)
	if len(terms) == 0 || k <= 0 {
		return nil
	}

	entries := s.snapshot()
	n := len(entries)
	if n == 0 {
		return nil
	}

	scores := make([]float64, n)
	for _, term := range terms {
		df := 0
		for _, e := range entries {
			if strings.Contains(e.lowered, term) {
				df++
			}
		}
		if df == 0 {
			continue
		}
		idf := math.Log((float64(n)-float64(df)+0.5)/(float64(df)+0.5) + 1)

		for i, e := range entries {
			occ := strings.Count(e.lowered, term)
			if occ == 0 || e.words == 0 {
				continue
			}
			tf := float64(occ) / float64(e.words)
			norm := bm25K1 * (1 - bm25B + bm25B*float64(e.words)/bm25AvgLen)
			scores[i] += tf * (bm25K1 + 1) / (tf + norm) * idf
		}
	}

	maxScore := 0.0
	for _, sc := range scores {
		if sc > maxScore {
			maxScore = sc
		}
	}
	if maxScore == 0 {
		return nil
	}
	divisor := maxScore
	if divisor < minNormDivisor {
		divisor = minNormDivisor
	}

	results := make([]result.Result, 0, n)
	for i, sc := range scores {
		if sc <= 0 {
			continue
		}
		results = append(results, result.New(entries[i].chunk, sc/divisor, result.MethodKeyword))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	if len(results) > k {
		results = results[:k]
	}
	return results
}

// QueryTerms tokenizes a query into lowercased whitespace-delimited terms
// longer than 2 characters. Shorter tokens are stop-noise and ignored.
func QueryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			terms = append(terms, f)
		}
	}
	return terms
}
