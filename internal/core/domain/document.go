package domain

import "fmt"

// Document represents one ingested source file.
// It is created at ingestion start and never mutated afterwards.
type Document struct {
	// FileID is an opaque unique identifier generated at ingestion time.
	// It is not derived from content; re-ingesting the same file under a
	// different name produces a different FileID.
	FileID string

	// FileName is the display name (base name of the source path).
	FileName string

	// ContentDigest is the deterministic hash of the file's raw bytes.
	// It is the dedup key within a collection.
	ContentDigest string

	// ChunkCount is the number of chunks emitted for this document.
	ChunkCount int
}

// Chunk represents one retrievable unit of a document's text.
// Chunks from the same file share a ContentDigest and are ordered
// by Ordinal within that file.
type Chunk struct {
	// ID is derived deterministically from the owning document's FileID
	// and the chunk's zero-based position: "{fileId}-{ordinal}".
	ID string

	// FileID links back to the owning Document.
	FileID string

	// FileName is the owning document's display name.
	FileName string

	// ContentDigest is the owning document's content digest.
	ContentDigest string

	// Text is the chunk's content. For token-based chunking this is the
	// decoded text of the token window.
	Text string

	// Ordinal is the chunk's position within the file. Retrieval ignores
	// it; reconstruction depends on it.
	Ordinal int
}

// ChunkID builds the canonical chunk identifier for a file and ordinal.
func ChunkID(fileID string, ordinal int) string {
	return fmt.Sprintf("%s-%d", fileID, ordinal)
}

// Metadata returns the chunk's metadata map as stored alongside the record.
func (c Chunk) Metadata() map[string]string {
	return map[string]string{
		"file_id":        c.FileID,
		"chunk_id":       c.ID,
		"file_name":      c.FileName,
		"content_digest": c.ContentDigest,
	}
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// FilesProcessed counts files that went through the full pipeline,
	// including files whose extraction yielded zero chunks.
	FilesProcessed int

	// FilesSkipped counts files rejected by the document-type filter.
	FilesSkipped int

	// FilesDuplicate counts files whose digest was already present.
	FilesDuplicate int

	// ChunksWritten counts records written to the collection store.
	ChunksWritten int

	// ExtractionErrors counts files that could not be read or whose
	// extraction failed. Failed extractions are treated as empty content.
	ExtractionErrors int
}
