package driven

import "context"

// Record is one stored entry in a collection: an id, the chunk text,
// and the chunk's metadata. The store owns the persisted layout; callers
// never parse its on-disk files.
type Record struct {
	// ID is the record's primary identifier, unique within a collection.
	ID string

	// Text is the retrievable chunk text.
	Text string

	// Metadata holds the chunk's key-value pairs (file id, chunk id,
	// file name, content digest).
	Metadata map[string]string
}

// QueryResult is one similarity search hit.
type QueryResult struct {
	Record Record

	// Similarity is the cosine similarity to the query (higher is closer).
	Similarity float64
}

// CollectionStore persists chunk records in named collections and serves
// similarity queries over them. Collections are created lazily on first
// write with create-or-get semantics.
type CollectionStore interface {
	// EnsureCollection creates the collection if it does not exist.
	// It never fails because the collection already exists.
	EnsureCollection(ctx context.Context, collection string) error

	// AddRecord writes one record into the collection, creating the
	// collection if needed. One call per chunk.
	AddRecord(ctx context.Context, collection string, rec Record) error

	// QueryByText returns the k records most similar to the query text.
	// Fewer than k results are returned when the collection is smaller.
	QueryByText(ctx context.Context, collection, text string, k int) ([]QueryResult, error)

	// HasDigest reports whether any record in the collection carries the
	// given content digest. Exact metadata match, not similarity.
	HasDigest(ctx context.Context, collection, digest string) (bool, error)

	// DeleteCollection removes a collection and all its records.
	// Returns domain.ErrNotFound when the collection does not exist.
	DeleteCollection(ctx context.Context, collection string) error

	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// Count returns the number of records in a collection.
	Count(ctx context.Context, collection string) (int, error)

	// Peek returns up to limit records from a collection, in no
	// particular order.
	Peek(ctx context.Context, collection string, limit int) ([]Record, error)

	// Close releases resources.
	Close() error
}
