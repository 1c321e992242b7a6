package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driving"
)

var _ driving.CollectionAdmin = (*AdminService)(nil)

// AdminService implements collection inspection and deletion.
type AdminService struct {
	store driven.CollectionStore
}

// NewAdminService creates an admin over the store.
func NewAdminService(store driven.CollectionStore) *AdminService {
	return &AdminService{store: store}
}

// Status reports every collection with its record count and, for
// non-empty collections, the metadata keys of a sample record.
func (s *AdminService) Status(ctx context.Context) ([]domain.CollectionInfo, error) {
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	infos := make([]domain.CollectionInfo, 0, len(names))
	for _, name := range names {
		count, err := s.store.Count(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("counting %s: %w", name, err)
		}

		info := domain.CollectionInfo{Name: name, Count: count}
		if count > 0 {
			sample, err := s.store.Peek(ctx, name, 1)
			if err != nil {
				return nil, fmt.Errorf("peeking %s: %w", name, err)
			}
			if len(sample) > 0 {
				keys := make([]string, 0, len(sample[0].Metadata))
				for k := range sample[0].Metadata {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				info.MetadataKeys = keys
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Reset deletes the named collection and all its records.
func (s *AdminService) Reset(ctx context.Context, collection string) error {
	if err := s.store.DeleteCollection(ctx, collection); err != nil {
		return fmt.Errorf("deleting collection %s: %w", collection, err)
	}
	return nil
}

// ResetAll deletes every collection in the store.
func (s *AdminService) ResetAll(ctx context.Context) error {
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	for _, name := range names {
		if err := s.store.DeleteCollection(ctx, name); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("deleting collection %s: %w", name, err)
		}
	}
	return nil
}
