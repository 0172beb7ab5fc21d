package index

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	blogindexes "github.com/goliatone/go-blog/indexes"
)

const (
	indexNamespace      = "index"
	indexEntryNamespace = "index_entry"
)

// BunIndexRepository implements IndexRepository with optional caching.
type BunIndexRepository struct {
	db           *bun.DB
	repo         repository.Repository[*Index]
	entries      repository.Repository[*IndexEntry]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunIndexRepository creates an index repository without caching.
func NewBunIndexRepository(db *bun.DB) *BunIndexRepository {
	return NewBunIndexRepositoryWithCache(db, nil, nil)
}

// NewBunIndexRepositoryWithCache creates an index repository with caching services.
func NewBunIndexRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunIndexRepository {
	base := NewIndexRepository(db)
	entryBase := NewIndexEntryRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		entryBase = repositorycache.New(entryBase, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(indexNamespace)
	}
	return &BunIndexRepository{
		db:           db,
		repo:         base,
		entries:      entryBase,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

// Save upserts the index row keyed by code.
func (r *BunIndexRepository) Save(ctx context.Context, index *Index) (*Index, error) {
	existing, err := r.repo.GetByIdentifier(ctx, index.Code)
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("index lookup %q: %w", index.Code, err)
		}
		record, createErr := r.repo.Create(ctx, index)
		if createErr != nil {
			return nil, fmt.Errorf("index create %q: %w", index.Code, createErr)
		}
		return record, nil
	}

	index.ID = existing.ID
	index.CreatedAt = existing.CreatedAt
	record, err := r.repo.Update(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("index update %q: %w", index.Code, err)
	}
	return record, nil
}

func (r *BunIndexRepository) GetByCode(ctx context.Context, code string) (*Index, error) {
	record, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("index %q: %w", code, blogindexes.ErrIndexNotFound)
		}
		return nil, fmt.Errorf("index repository error: %w", err)
	}
	return record, nil
}

// ReplaceEntries swaps the full entry set for an index in one transaction.
func (r *BunIndexRepository) ReplaceEntries(ctx context.Context, indexID uuid.UUID, entries []*IndexEntry) error {
	if r.db == nil {
		return errors.New("index repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*IndexEntry)(nil)).
			Where("?TableAlias.index_id = ?", indexID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete index entries: %w", err)
		}

		if len(entries) == 0 {
			return nil
		}

		if _, err := tx.NewInsert().
			Model(&entries).
			Exec(ctx); err != nil {
			return fmt.Errorf("insert index entries: %w", err)
		}
		return nil
	})
}

func (r *BunIndexRepository) ListEntries(ctx context.Context, indexID uuid.UUID) ([]*IndexEntry, error) {
	records, _, err := r.entries.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.index_id = ?", indexID).
				OrderExpr("?TableAlias.position ASC")
		}),
	)
	return records, err
}

func (r *BunIndexRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	if err := r.cacheService.DeleteByPrefix(ctx, r.cachePrefix); err != nil {
		return err
	}
	return r.cacheService.DeleteByPrefix(ctx, cachePrefix(indexEntryNamespace))
}

func cachePrefix(namespace string) string {
	return "go-blog:" + namespace + ":"
}
