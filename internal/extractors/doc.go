// Package extractors provides text extraction from source document files
// and a registry that picks the right extractor for a path.
//
// Extractors implement the driven.TextExtractor port. Selection is by
// file extension; files no extractor supports are skipped by the
// ingestion pipeline with a logged notice.
package extractors
