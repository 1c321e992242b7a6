package driving

import (
	"context"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
)

// Ingestor runs the ingestion pipeline over a file or directory tree.
type Ingestor interface {
	// Ingest processes inputPath into the configured collection.
	// A single file is processed alone; a directory is walked recursively.
	// Per-file failures are reported in the returned report, not as an
	// error; the error is reserved for unrecoverable top-level failures
	// (invalid path, broken store).
	Ingest(ctx context.Context, inputPath string) (*domain.IngestReport, error)
}
