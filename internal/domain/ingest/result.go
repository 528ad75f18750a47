// Package ingest carries per-chunk outcomes of an ingestion pass.
// Embedding failures are soft: they are recorded here instead of aborting
// the surrounding operation.
package ingest

// ItemStatus is the processing outcome of a single chunk.
type ItemStatus string

// Chunk ingestion status values.
const (
	StatusEmbedded ItemStatus = "embedded"
	StatusSkipped  ItemStatus = "skipped"
	StatusFailed   ItemStatus = "failed"
)

// Result is the outcome of embedding one chunk during ingestion.
type Result struct {
	chunkID string
	status  ItemStatus
	err     error
}

// NewEmbedded creates a successful embedding result.
func NewEmbedded(chunkID string) Result { return Result{chunkID: chunkID, status: StatusEmbedded} }

// NewSkipped creates a result for a chunk that was never sent to the provider.
func NewSkipped(chunkID string) Result { return Result{chunkID: chunkID, status: StatusSkipped} }

// NewFailed creates a soft-failure result. The chunk stays in the corpus
// without an embedding.
func NewFailed(chunkID string, err error) Result {
	return Result{chunkID: chunkID, status: StatusFailed, err: err}
}

// ChunkID returns the chunk identifier.
func (r Result) ChunkID() string { return r.chunkID }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the soft failure, if any.
func (r Result) Err() error { return r.err }

// Summary aggregates one document's ingestion outcomes.
type Summary struct {
	ChunksAdded int
	Embedded    int
	Failed      int
	Results     []Result
}
