// Package memory provides in-memory implementations of driven ports,
// used in tests and wherever persistence is not needed.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
)

// Ensure CollectionStore implements the interface.
var _ driven.CollectionStore = (*CollectionStore)(nil)

// CollectionStore is an in-memory implementation of driven.CollectionStore.
// Similarity search degrades to insertion order: without an embedder the
// first k records are "nearest". Good enough for pipeline tests.
type CollectionStore struct {
	mu          sync.RWMutex
	collections map[string][]driven.Record
}

// NewCollectionStore creates a new in-memory collection store.
func NewCollectionStore() *CollectionStore {
	return &CollectionStore{
		collections: make(map[string][]driven.Record),
	}
}

// EnsureCollection creates the collection if it does not exist.
func (s *CollectionStore) EnsureCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = nil
	}
	return nil
}

// AddRecord writes one record into the collection.
func (s *CollectionStore) AddRecord(_ context.Context, collection string, rec driven.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.collections[collection]
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			return nil
		}
	}
	s.collections[collection] = append(records, rec)
	return nil
}

// QueryByText returns up to k records in insertion order.
func (s *CollectionStore) QueryByText(_ context.Context, collection, _ string, k int) ([]driven.QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.collections[collection]
	if k > len(records) {
		k = len(records)
	}

	results := make([]driven.QueryResult, 0, k)
	for i := 0; i < k; i++ {
		results = append(results, driven.QueryResult{Record: records[i], Similarity: 1})
	}
	return results, nil
}

// HasDigest reports whether any record carries the given digest.
func (s *CollectionStore) HasDigest(_ context.Context, collection, digest string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.collections[collection] {
		if rec.Metadata["content_digest"] == digest {
			return true, nil
		}
	}
	return false, nil
}

// DeleteCollection removes a collection and its records.
func (s *CollectionStore) DeleteCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection]; !ok {
		return domain.ErrNotFound
	}
	delete(s.collections, collection)
	return nil
}

// ListCollections returns all collection names, sorted.
func (s *CollectionStore) ListCollections(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Count returns the number of records in a collection.
func (s *CollectionStore) Count(_ context.Context, collection string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection]), nil
}

// Peek returns up to limit records.
func (s *CollectionStore) Peek(_ context.Context, collection string, limit int) ([]driven.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.collections[collection]
	if limit > len(records) {
		limit = len(records)
	}
	out := make([]driven.Record, limit)
	copy(out, records[:limit])
	return out, nil
}

// Close releases resources.
func (s *CollectionStore) Close() error {
	return nil
}
