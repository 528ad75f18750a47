// Package vector provides the similarity math shared by the corpus scan
// and the re-ranking stage.
package vector

import "math"

// Cosine returns the cosine similarity between two vectors: the dot product
// over the product of L2 norms. Similarity involving a zero-norm (or empty)
// vector is defined as 0.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
