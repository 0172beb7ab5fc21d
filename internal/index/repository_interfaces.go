package index

import (
	"context"

	"github.com/google/uuid"
)

// IndexRepository abstracts index persistence so the service can run against
// bun or the in-memory store interchangeably. Entries are replaced as a unit
// because the document is the single source of truth for ordering.
type IndexRepository interface {
	Save(ctx context.Context, index *Index) (*Index, error)
	GetByCode(ctx context.Context, code string) (*Index, error)
	ReplaceEntries(ctx context.Context, indexID uuid.UUID, entries []*IndexEntry) error
	ListEntries(ctx context.Context, indexID uuid.UUID) ([]*IndexEntry, error)
}

// CacheInvalidator is an optional extension for repositories that maintain a
// read-through cache.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}
