package services

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driving"
	"github.com/corvid-labs/quarry-cli/internal/digest"
	"github.com/corvid-labs/quarry-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService runs the ingestion pipeline: enumerate files, hash,
// dedup-check, extract, chunk, and write chunk records one by one.
//
// Files are processed sequentially; each file completes before the next
// begins. The dedup check is advisory: two concurrent pipelines
// ingesting the same new file can both pass the check and write
// duplicate chunk sets.
type IngestService struct {
	store      driven.CollectionStore
	extractor  driven.TextExtractor
	chunker    driven.Chunker
	collection string
	out        io.Writer
}

// NewIngestService creates an ingestion pipeline writing into the named
// collection.
func NewIngestService(
	store driven.CollectionStore,
	extractor driven.TextExtractor,
	chunker driven.Chunker,
	collection string,
) *IngestService {
	if collection == "" {
		collection = domain.DefaultCollection
	}
	return &IngestService{
		store:      store,
		extractor:  extractor,
		chunker:    chunker,
		collection: collection,
		out:        os.Stdout,
	}
}

// SetOutput redirects the per-file progress lines. Defaults to stdout.
func (s *IngestService) SetOutput(w io.Writer) {
	s.out = w
}

// Ingest processes a file or directory tree into the collection.
func (s *IngestService) Ingest(ctx context.Context, inputPath string) (*domain.IngestReport, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, inputPath)
	}

	logger.Section("Ingestion")
	logger.Debug("Input: %s, collection: %s, chunker: %s", inputPath, s.collection, s.chunker.Name())

	report := &domain.IngestReport{}

	switch {
	case info.Mode().IsRegular():
		if err := s.processFile(ctx, inputPath, report); err != nil {
			return report, err
		}

	case info.IsDir():
		err := filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("walking %s: %w", path, err)
			}
			if !d.Type().IsRegular() {
				return nil
			}
			return s.processFile(ctx, path, report)
		})
		if err != nil {
			return report, err
		}

	default:
		return nil, fmt.Errorf("%w: %s is neither a regular file nor a directory", domain.ErrInvalidInput, inputPath)
	}

	logger.Info("Ingestion complete: %d processed, %d skipped, %d duplicates, %d chunks",
		report.FilesProcessed, report.FilesSkipped, report.FilesDuplicate, report.ChunksWritten)
	return report, nil
}

// processFile runs one file through the pipeline. Recoverable per-file
// conditions (unsupported type, known digest, failed extraction) are
// recorded in the report; only store failures propagate.
func (s *IngestService) processFile(ctx context.Context, path string, report *domain.IngestReport) error {
	fileName := filepath.Base(path)

	if !s.extractor.Supports(path) {
		fmt.Fprintf(s.out, "Skipping unsupported file: %s\n", path)
		report.FilesSkipped++
		return nil
	}

	contentDigest, err := digest.File(path)
	if err != nil {
		// Unreadable file: nothing to dedup against, nothing to extract.
		logger.Warn("Cannot hash %s: %v", path, err)
		fmt.Fprintf(s.out, "Skipping unreadable file: %s\n", path)
		report.ExtractionErrors++
		return nil
	}

	exists, err := s.store.HasDigest(ctx, s.collection, contentDigest)
	if err != nil {
		return fmt.Errorf("dedup check for %s: %w", path, err)
	}
	if exists {
		fmt.Fprintf(s.out, "File already in collection, skipping: %s\n", fileName)
		report.FilesDuplicate++
		return nil
	}

	doc := domain.Document{
		FileID:        uuid.New().String(),
		FileName:      fileName,
		ContentDigest: contentDigest,
	}

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		// A corrupt document is logged and treated as empty content;
		// it never aborts processing of sibling files.
		logger.Warn("Extraction failed for %s: %v", path, err)
		report.ExtractionErrors++
		text = ""
	}

	segments, err := s.chunker.Chunk(ctx, text)
	if err != nil {
		return fmt.Errorf("chunking %s: %w", path, err)
	}

	if err := s.store.EnsureCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("ensuring collection: %w", err)
	}

	for i, segment := range segments {
		chunk := domain.Chunk{
			ID:            domain.ChunkID(doc.FileID, i),
			FileID:        doc.FileID,
			FileName:      doc.FileName,
			ContentDigest: doc.ContentDigest,
			Text:          segment,
			Ordinal:       i,
		}

		rec := driven.Record{
			ID:       chunk.ID,
			Text:     chunk.Text,
			Metadata: chunk.Metadata(),
		}
		if err := s.store.AddRecord(ctx, s.collection, rec); err != nil {
			return fmt.Errorf("writing chunk %s: %w", chunk.ID, err)
		}
	}

	doc.ChunkCount = len(segments)
	report.FilesProcessed++
	report.ChunksWritten += doc.ChunkCount

	fmt.Fprintf(s.out, "%s (%s): %d chunks\n", doc.FileName, doc.ContentDigest, doc.ChunkCount)
	logger.Debug("Processed %s as %s", path, doc.FileID)
	return nil
}
