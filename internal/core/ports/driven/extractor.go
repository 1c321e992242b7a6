package driven

import "context"

// TextExtractor produces plain UTF-8 text from a source document file.
// Each extractor handles specific file extensions (e.g. PDF, plain text).
type TextExtractor interface {
	// Supports reports whether this extractor handles the given path,
	// judged by file name only.
	Supports(path string) bool

	// Extract reads the file and returns its text content.
	// A malformed document is an error; the pipeline treats extraction
	// errors as empty content and carries on.
	Extract(ctx context.Context, path string) (string, error)
}
