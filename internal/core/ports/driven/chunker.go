package driven

import "context"

// Chunker splits extracted text into an ordered sequence of overlapping,
// non-empty chunks. The segment index is the chunk's ordinal; adjacent
// segments intentionally share overlapping content.
//
// Two interchangeable strategies exist (character-based and token-based),
// selected by configuration. Sizes and overlaps are measured in the
// strategy's own unit and never mixed within one run.
type Chunker interface {
	// Name returns the strategy name for logging and configuration.
	Name() string

	// Chunk splits text into ordered segments. Empty text yields a nil
	// slice, not an error.
	Chunk(ctx context.Context, text string) ([]string, error)
}
