package extractors

import (
	"context"
	"fmt"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.TextExtractor = (*Registry)(nil)

// Registry selects the first registered extractor that supports a path.
// It implements driven.TextExtractor itself so the pipeline sees one
// extractor regardless of how many formats are registered.
type Registry struct {
	extractors []driven.TextExtractor
}

// NewRegistry creates a registry over the given extractors.
// Order matters: the first extractor claiming a path wins.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	return &Registry{extractors: extractors}
}

// Register appends an extractor to the registry.
func (r *Registry) Register(e driven.TextExtractor) {
	r.extractors = append(r.extractors, e)
}

// Supports reports whether any registered extractor handles the path.
func (r *Registry) Supports(path string) bool {
	for _, e := range r.extractors {
		if e.Supports(path) {
			return true
		}
	}
	return false
}

// Extract dispatches to the first extractor supporting the path.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	for _, e := range r.extractors {
		if e.Supports(path) {
			return e.Extract(ctx, path)
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, path)
}
