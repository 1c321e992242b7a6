// Package sqlite implements the CollectionStore on a local SQLite
// database. Embeddings are stored as little-endian float32 blobs and
// similarity queries run a brute-force cosine scan over the collection.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/corvid-labs/quarry-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CollectionStore = (*Store)(nil)

// Store is a SQLite-backed collection store. The embedder, when set,
// embeds record text at write time and query text at search time so
// QueryByText works on plain text.
type Store struct {
	db       *sql.DB
	path     string
	embedder driven.EmbeddingService
}

// NewStore creates a store at the given data directory.
// If dataDir is empty, defaults to ~/.quarry/data.
func NewStore(dataDir string, embedder driven.EmbeddingService) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".quarry", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "collections.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:       db,
		path:     dbPath,
		embedder: embedder,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// EnsureCollection creates the collection if it does not exist.
func (s *Store) EnsureCollection(ctx context.Context, collection string) error {
	if strings.TrimSpace(collection) == "" {
		return fmt.Errorf("%w: empty collection name", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name) VALUES (?)
		ON CONFLICT(name) DO NOTHING
	`, collection)
	if err != nil {
		return fmt.Errorf("ensuring collection %s: %w", collection, err)
	}
	return nil
}

// AddRecord writes one record into the collection, creating the
// collection if needed. Record text is embedded when an embedder is
// configured.
func (s *Store) AddRecord(ctx context.Context, collection string, rec driven.Record) error {
	if err := s.EnsureCollection(ctx, collection); err != nil {
		return err
	}

	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	var embeddingBlob []byte
	if s.embedder != nil {
		embedding, err := s.embedder.Embed(ctx, rec.Text)
		if err != nil {
			return fmt.Errorf("embedding record %s: %w", rec.ID, err)
		}
		embeddingBlob = float32SliceToBytes(embedding)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (collection, id, text, content_digest, metadata, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			text = excluded.text,
			content_digest = excluded.content_digest,
			metadata = excluded.metadata,
			embedding = excluded.embedding
	`, collection, rec.ID, rec.Text, rec.Metadata["content_digest"], string(metadataJSON), embeddingBlob)
	if err != nil {
		return fmt.Errorf("saving record %s: %w", rec.ID, err)
	}
	return nil
}

// QueryByText returns the k records most similar to the query text,
// scored by cosine similarity over stored embeddings.
func (s *Store) QueryByText(ctx context.Context, collection, text string, k int) ([]driven.QueryResult, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if k <= 0 {
		return nil, nil
	}

	query, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, metadata, embedding
		FROM records WHERE collection = ?
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var results []driven.QueryResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, embedding, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if embedding == nil {
			continue
		}
		results = append(results, driven.QueryResult{
			Record:     rec,
			Similarity: cosineSimilarity(query, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// HasDigest reports whether any record in the collection carries the
// given content digest. Exact equality, not similarity.
func (s *Store) HasDigest(ctx context.Context, collection, digest string) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM records
		WHERE collection = ? AND content_digest = ?
	`, collection, digest)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("checking digest: %w", err)
	}
	return count > 0, nil
}

// DeleteCollection removes a collection and all its records.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", collection)
	if err != nil {
		return fmt.Errorf("deleting collection %s: %w", collection, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting collection %s: %w", collection, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCollections returns the names of all collections.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM collections ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying collections: %w", err)
	}
	defer rows.Close()

	var names []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}
	return names, nil
}

// Count returns the number of records in a collection.
// An absent collection counts as zero.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE collection = ?", collection)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// Peek returns up to limit records from a collection.
func (s *Store) Peek(ctx context.Context, collection string, limit int) ([]driven.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, text, metadata, embedding
		FROM records WHERE collection = ? LIMIT ?
	`, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("peeking records: %w", err)
	}
	defer rows.Close()

	var records []driven.Record //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, _, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// scanRecord scans one record row including its embedding blob.
func scanRecord(rows *sql.Rows) (driven.Record, []float32, error) {
	var rec driven.Record
	var metadataJSON string
	var embeddingBlob []byte

	if err := rows.Scan(&rec.ID, &rec.Text, &metadataJSON, &embeddingBlob); err != nil {
		return driven.Record{}, nil, fmt.Errorf("scanning record: %w", err)
	}

	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &rec.Metadata); err != nil {
			return driven.Record{}, nil, fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}

	return rec, bytesToFloat32Slice(embeddingBlob), nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
