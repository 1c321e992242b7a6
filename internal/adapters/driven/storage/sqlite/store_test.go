package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
)

// fakeEmbedder returns fixed vectors per text so similarity ordering is
// deterministic in tests.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) Dimensions() int   { return 3 }
func (f *fakeEmbedder) ModelName() string { return "fake" }
func (f *fakeEmbedder) Close() error      { return nil }

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T, embedder driven.EmbeddingService) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir(), embedder)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testRecord(id, text, digest string) driven.Record {
	return driven.Record{
		ID:   id,
		Text: text,
		Metadata: map[string]string{
			"file_id":        "file-1",
			"chunk_id":       id,
			"file_name":      "doc.pdf",
			"content_digest": digest,
		},
	}
}

func TestStore_EnsureCollection(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.EnsureCollection(ctx, "general"))
	// Create-or-get: a second ensure never fails.
	require.NoError(t, store.EnsureCollection(ctx, "general"))

	names, err := store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"general"}, names)
}

func TestStore_EnsureCollection_EmptyName(t *testing.T) {
	store := setupTestStore(t, nil)

	err := store.EnsureCollection(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_AddRecord_CreatesCollectionLazily(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.AddRecord(ctx, "papers", testRecord("f1-0", "hello", "d1")))

	names, err := store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "papers")

	count, err := store.Count(ctx, "papers")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_HasDigest(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-0", "hello", "digest-a")))

	found, err := store.HasDigest(ctx, "general", "digest-a")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.HasDigest(ctx, "general", "digest-b")
	require.NoError(t, err)
	assert.False(t, found)

	// Dedup scope is per collection.
	found, err = store.HasDigest(ctx, "other", "digest-a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_QueryByText_Ranking(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"close":    {1, 0, 0},
		"middling": {1, 1, 0},
		"far":      {0, 0, 1},
		"query":    {1, 0, 0},
	}}
	store := setupTestStore(t, embedder)
	ctx := context.Background()

	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-0", "far", "d1")))
	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-1", "close", "d1")))
	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-2", "middling", "d1")))

	results, err := store.QueryByText(ctx, "general", "query", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "close", results[0].Record.Text)
	assert.Equal(t, "middling", results[1].Record.Text)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestStore_QueryByText_EmptyCollection(t *testing.T) {
	store := setupTestStore(t, &fakeEmbedder{})

	results, err := store.QueryByText(context.Background(), "empty", "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_QueryByText_NoEmbedder(t *testing.T) {
	store := setupTestStore(t, nil)

	_, err := store.QueryByText(context.Background(), "general", "q", 3)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestStore_Peek(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-0", "a", "d1")))
	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-1", "b", "d1")))

	records, err := store.Peek(ctx, "general", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Metadata, "content_digest")
	assert.Contains(t, records[0].Metadata, "file_name")
}

func TestStore_DeleteCollection(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.AddRecord(ctx, "a", testRecord("f1-0", "x", "d1")))
	require.NoError(t, store.AddRecord(ctx, "b", testRecord("f2-0", "y", "d2")))

	require.NoError(t, store.DeleteCollection(ctx, "a"))

	// Only the named collection is gone.
	names, err := store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)

	// Its records are gone with it.
	count, err := store.Count(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = store.Count(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_DeleteCollection_Absent(t *testing.T) {
	store := setupTestStore(t, nil)

	err := store.DeleteCollection(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-0", "persisted", "d1")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.HasDigest(ctx, "general", "d1")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestStore_AddRecord_Upsert(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-0", "first", "d1")))
	require.NoError(t, store.AddRecord(ctx, "general", testRecord("f1-0", "second", "d1")))

	count, err := store.Count(ctx, "general")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	records, err := store.Peek(ctx, "general", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Text)
}
