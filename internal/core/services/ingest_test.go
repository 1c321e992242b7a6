package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/quarry-cli/internal/adapters/driven/storage/memory"
	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/logger"
)

// stubExtractor supports a single extension and returns canned text.
type stubExtractor struct {
	ext  string
	text string
	err  error
}

func (e *stubExtractor) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), e.ext)
}

func (e *stubExtractor) Extract(_ context.Context, _ string) (string, error) {
	return e.text, e.err
}

// lineChunker splits text on newlines, dropping empty lines.
type lineChunker struct{}

func (lineChunker) Name() string { return "line" }

func (lineChunker) Chunk(_ context.Context, text string) ([]string, error) {
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			chunks = append(chunks, line)
		}
	}
	return chunks, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestService_SingleFile(t *testing.T) {
	store := memory.NewCollectionStore()
	extractor := &stubExtractor{ext: ".txt", text: "alpha\nbeta"}
	svc := NewIngestService(store, extractor, lineChunker{}, "docs")
	svc.SetOutput(&bytes.Buffer{})
	ctx := context.Background()

	path := writeFile(t, t.TempDir(), "a.txt", "source content")

	report, err := svc.Ingest(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesProcessed)
	assert.Equal(t, 2, report.ChunksWritten)
	assert.Zero(t, report.FilesSkipped)
	assert.Zero(t, report.FilesDuplicate)

	count, err := store.Count(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records, err := store.Peek(ctx, "docs", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "alpha", first.Text)
	assert.Equal(t, "a.txt", first.Metadata["file_name"])
	assert.NotEmpty(t, first.Metadata["file_id"])
	assert.NotEmpty(t, first.Metadata["content_digest"])
	assert.Equal(t, first.Metadata["file_id"]+"-0", first.Metadata["chunk_id"])
	assert.Equal(t, first.Metadata["chunk_id"], first.ID)
	assert.Equal(t, records[1].Metadata["file_id"]+"-1", records[1].ID)
}

func TestIngestService_DuplicateSkipped(t *testing.T) {
	store := memory.NewCollectionStore()
	extractor := &stubExtractor{ext: ".txt", text: "alpha"}
	svc := NewIngestService(store, extractor, lineChunker{}, "docs")
	svc.SetOutput(&bytes.Buffer{})
	ctx := context.Background()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "same bytes")

	_, err := svc.Ingest(ctx, path)
	require.NoError(t, err)

	// A second copy with identical content is recognised by digest,
	// regardless of its name.
	copyPath := writeFile(t, dir, "b.txt", "same bytes")
	report, err := svc.Ingest(ctx, copyPath)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesDuplicate)
	assert.Zero(t, report.FilesProcessed)

	count, err := store.Count(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestService_Directory(t *testing.T) {
	store := memory.NewCollectionStore()
	extractor := &stubExtractor{ext: ".txt", text: "alpha"}
	svc := NewIngestService(store, extractor, lineChunker{}, "docs")
	var out bytes.Buffer
	svc.SetOutput(&out)
	ctx := context.Background()

	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one")
	writeFile(t, dir, "b.txt", "two")
	writeFile(t, dir, "c.bin", "binary")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "d.txt", "three")

	report, err := svc.Ingest(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 3, report.FilesProcessed)
	assert.Equal(t, 1, report.FilesSkipped)
	assert.Equal(t, 3, report.ChunksWritten)
	assert.Contains(t, out.String(), "Skipping unsupported file")
}

func TestIngestService_ExtractionFailure(t *testing.T) {
	store := memory.NewCollectionStore()
	extractor := &stubExtractor{ext: ".txt", err: errors.New("corrupt stream")}
	svc := NewIngestService(store, extractor, lineChunker{}, "docs")
	svc.SetOutput(&bytes.Buffer{})
	ctx := context.Background()

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	path := writeFile(t, t.TempDir(), "a.txt", "unreadable payload")

	// A failed extraction degrades to empty content: the file counts as
	// processed with zero chunks and the run keeps going.
	report, err := svc.Ingest(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesProcessed)
	assert.Equal(t, 1, report.ExtractionErrors)
	assert.Zero(t, report.ChunksWritten)
	assert.Contains(t, logs.String(), "Extraction failed")

	names, err := store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "docs")
}

func TestIngestService_MissingPath(t *testing.T) {
	store := memory.NewCollectionStore()
	svc := NewIngestService(store, &stubExtractor{ext: ".txt"}, lineChunker{}, "docs")
	svc.SetOutput(&bytes.Buffer{})

	_, err := svc.Ingest(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestService_DefaultCollection(t *testing.T) {
	store := memory.NewCollectionStore()
	extractor := &stubExtractor{ext: ".txt", text: "alpha"}
	svc := NewIngestService(store, extractor, lineChunker{}, "")
	svc.SetOutput(&bytes.Buffer{})
	ctx := context.Background()

	path := writeFile(t, t.TempDir(), "a.txt", "content")
	_, err := svc.Ingest(ctx, path)
	require.NoError(t, err)

	count, err := store.Count(ctx, domain.DefaultCollection)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
