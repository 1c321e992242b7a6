package driving

import (
	"context"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
)

// CollectionAdmin inspects and resets collections.
type CollectionAdmin interface {
	// Status summarises every collection: name, record count, and the
	// metadata key set of one sampled record when non-empty.
	Status(ctx context.Context) ([]domain.CollectionInfo, error)

	// Reset deletes one named collection. Deleting an absent collection
	// returns domain.ErrNotFound, which callers report and ignore.
	Reset(ctx context.Context, collection string) error

	// ResetAll deletes every collection. Deleting from an empty store is
	// a no-op, not an error.
	ResetAll(ctx context.Context) error
}
