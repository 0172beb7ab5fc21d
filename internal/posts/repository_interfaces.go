package posts

import (
	"context"

	"github.com/google/uuid"
)

// PostRepository abstracts post persistence so services can run against bun
// or the in-memory store interchangeably.
type PostRepository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	Update(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
}

// CacheInvalidator is an optional extension for repositories that maintain a
// read-through cache.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}
