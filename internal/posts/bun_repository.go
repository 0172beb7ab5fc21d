package posts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	blogposts "github.com/goliatone/go-blog/posts"
)

const postNamespace = "post"

// BunPostRepository implements PostRepository with optional caching.
type BunPostRepository struct {
	repo         repository.Repository[*Post]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunPostRepository creates a post repository without caching.
func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

// NewBunPostRepositoryWithCache creates a post repository with caching services.
func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPostRepository {
	base := NewPostRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(postNamespace)
	}
	return &BunPostRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunPostRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	record, err := r.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunPostRepository) Update(ctx context.Context, post *Post) (*Post, error) {
	record, err := r.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	return record, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	return record, nil
}

func (r *BunPostRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunPostRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func cachePrefix(namespace string) string {
	return "go-blog:" + namespace + ":"
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("%s %s: %w", resource, key, blogposts.ErrPostNotFound)
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
