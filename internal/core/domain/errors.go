package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed or unusable input path.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file the extractors cannot handle.
	// Unsupported files are skipped, not failed.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrGeneratorUnavailable indicates the answer generator is not configured.
	// The client command cannot run without one.
	ErrGeneratorUnavailable = errors.New("answer generator unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// The collection store cannot embed text for similarity search without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
