// Package corpus is the in-memory chunk store. The corpus is rebuilt on
// process start; there is no persistence layer behind it.
package corpus

import (
	"context"
	"strings"
	"sync"

	"github.com/kailas-cloud/ragdex/internal/domain/chunk"
)

// initState tracks the one-time corpus initialization lifecycle.
type initState int

const (
	stateUninitialized initState = iota
	stateInitializing
	stateReady
)

// entry caches the lexical statistics needed by BM25 scoring alongside the
// chunk, computed once at append time.
type entry struct {
	chunk   chunk.Chunk
	lowered string
	words   int
}

// Store holds all corpus chunks and guards the one-time initialization.
// Chunks are append-only and immutable once stored, so reads take only the
// RWMutex read lock; queries racing an append may observe either the pre-
// or post-append corpus.
type Store struct {
	mu      sync.RWMutex
	entries []entry
	docs    map[string]struct{}

	state    initState
	initDone chan struct{}
	initErr  error
}

// NewStore creates an empty corpus store.
func NewStore() *Store {
	return &Store{docs: make(map[string]struct{})}
}

// Initialize runs load exactly once. The first caller triggers it; callers
// arriving while the load is in flight block on the same in-flight operation.
// A caller whose context is canceled while waiting returns ctx.Err() without
// disturbing the load. A failed load rearms the guard so a later caller can
// retry.
func (s *Store) Initialize(ctx context.Context, load func(ctx context.Context) error) error {
	s.mu.Lock()
	switch s.state {
	case stateReady:
		s.mu.Unlock()
		return nil
	case stateInitializing:
		done := s.initDone
		s.mu.Unlock()
		select {
		case <-done:
			s.mu.RLock()
			defer s.mu.RUnlock()
			return s.initErr
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	done := make(chan struct{})
	s.state = stateInitializing
	s.initDone = done
	s.mu.Unlock()

	err := load(ctx)

	s.mu.Lock()
	s.initErr = err
	if err != nil {
		s.state = stateUninitialized
	} else {
		s.state = stateReady
	}
	close(done)
	s.mu.Unlock()
	return err
}

// Ready reports whether initialization has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == stateReady
}

// Append adds fully ingested chunks to the corpus.
func (s *Store) Append(chunks []chunk.Chunk) {
	if len(chunks) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		lowered := strings.ToLower(c.Content())
		s.entries = append(s.entries, entry{
			chunk:   c,
			lowered: lowered,
			words:   len(strings.Fields(c.Content())),
		})
		s.docs[c.Source()] = struct{}{}
	}
}

// Chunks returns a snapshot of all stored chunks.
func (s *Store) Chunks() []chunk.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chunk.Chunk, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.chunk
	}
	return out
}

// Len returns the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Documents returns the number of distinct source documents.
func (s *Store) Documents() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// EmbeddedCount returns the number of chunks carrying an embedding.
func (s *Store) EmbeddedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if len(e.chunk.Embedding()) > 0 {
			n++
		}
	}
	return n
}

// Reset clears the corpus and rearms the initialization guard.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.docs = make(map[string]struct{})
	s.state = stateUninitialized
	s.initDone = nil
	s.initErr = nil
}

// snapshot returns the entry slice under the read lock. The slice is
// append-only, so holding it after unlock is safe.
func (s *Store) snapshot() []entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries
}
