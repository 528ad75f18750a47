// Package chunk defines the atomic unit of retrieval: a bounded,
// positionally-tagged segment of a source document.
package chunk

import (
	"fmt"
	"strings"
)

// Position locates a chunk inside its source document.
// CharStart/CharEnd are offsets into the cleaned document text.
type Position struct {
	Index     int
	Total     int
	CharStart int
	CharEnd   int
}

// Chunk is a retrievable document segment (immutable after ingestion,
// except for the embedding which is populated asynchronously and at most once).
type Chunk struct {
	id        string
	content   string
	source    string
	position  Position
	embedding []float32
}

// New validates and creates a Chunk.
func New(id, content, source string, pos Position) (Chunk, error) {
	if id == "" {
		return Chunk{}, fmt.Errorf("chunk ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return Chunk{}, fmt.Errorf("chunk content is empty")
	}
	if pos.CharStart >= pos.CharEnd {
		return Chunk{}, fmt.Errorf("invalid offsets: start %d >= end %d", pos.CharStart, pos.CharEnd)
	}
	if pos.Index >= pos.Total {
		return Chunk{}, fmt.Errorf("chunk index %d out of range (total %d)", pos.Index, pos.Total)
	}
	return Chunk{id: id, content: content, source: source, position: pos}, nil
}

// ID returns the chunk identifier, unique within a corpus.
func (c *Chunk) ID() string { return c.id }

// Content returns the chunk text.
func (c *Chunk) Content() string { return c.content }

// Source returns the originating document title.
func (c *Chunk) Source() string { return c.source }

// Position returns the chunk location within its document.
func (c *Chunk) Position() Position { return c.position }

// Embedding returns the embedding vector, nil when embedding failed or no
// provider was available at ingestion time.
func (c *Chunk) Embedding() []float32 { return c.embedding }

// SetEmbedding sets the embedding vector. Called once during ingestion,
// before the chunk enters the corpus store.
func (c *Chunk) SetEmbedding(v []float32) { c.embedding = v }
