package result

import "github.com/kailas-cloud/ragdex/internal/domain/chunk"

// Method identifies which signal produced a result's score.
type Method string

// Scoring method values.
const (
	MethodVector  Method = "vector"
	MethodKeyword Method = "keyword"
)

// Result is a single search hit: a scored view over a corpus chunk.
type Result struct {
	chunk  chunk.Chunk
	score  float64
	method Method
}

// New creates a search result.
func New(c chunk.Chunk, score float64, method Method) Result {
	return Result{chunk: c, score: score, method: method}
}

// ID returns the chunk identifier.
func (r *Result) ID() string { return r.chunk.ID() }

// Chunk returns the underlying chunk.
func (r *Result) Chunk() chunk.Chunk { return r.chunk }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }

// Method returns the signal that produced the score.
func (r *Result) Method() Method { return r.method }

// WithScore returns a copy with the score replaced.
func (r *Result) WithScore(score float64) Result {
	return Result{chunk: r.chunk, score: score, method: r.method}
}
