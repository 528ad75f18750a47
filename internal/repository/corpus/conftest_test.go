package corpus

import (
	"testing"

	"github.com/kailas-cloud/ragdex/internal/domain/chunk"
)

// mustChunk builds a stored chunk for tests.
func mustChunk(t *testing.T, id, content, source string, emb []float32) chunk.Chunk {
	t.Helper()
	c, err := chunk.New(id, content, source, chunk.Position{
		Index: 0, Total: 1, CharStart: 0, CharEnd: len(content),
	})
	if err != nil {
		t.Fatalf("chunk.New(%s): %v", id, err)
	}
	if emb != nil {
		c.SetEmbedding(emb)
	}
	return c
}

func newStoreWith(t *testing.T, chunks ...chunk.Chunk) *Store {
	t.Helper()
	s := NewStore()
	s.Append(chunks)
	return s
}
