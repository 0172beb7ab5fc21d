package blog

import (
	"context"
	"fmt"
	"iter"
	"os"

	"github.com/goliatone/go-blog/indexes"
	internalindex "github.com/goliatone/go-blog/internal/index"
)

// PostRef is the materialized listing row: the curated (title, path) pair
// plus resolution metadata.
type PostRef = indexes.PostRef

// SyncIndex re-syncs the curated index from the given document source.
func (m *Module) SyncIndex(ctx context.Context, input SyncInput) (*SyncReport, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return m.container.IndexService().Sync(ctx, input)
}

// SyncIndexFromFile reads the configured index document from disk and syncs
// the curated index from it.
func (m *Module) SyncIndexFromFile(ctx context.Context) (*SyncReport, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}

	cfg := m.container.Config.Content
	source, err := os.ReadFile(cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("blog: read index document %s: %w", cfg.IndexPath, err)
	}

	return m.container.IndexService().Sync(ctx, SyncInput{
		Code:   cfg.IndexCode,
		Path:   cfg.IndexPath,
		Source: source,
	})
}

// ListPosts returns the curated listing as a lazy sequence of (title, path)
// pairs in document order. The sequence snapshots the listing at call time:
// it is finite, restartable, and yields no errors during iteration.
func (m *Module) ListPosts(ctx context.Context) (iter.Seq2[string, string], error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return m.container.IndexService().Posts(ctx, internalindex.ListInput{})
}

// ListRefs materializes the curated listing for the configured index.
func (m *Module) ListRefs(ctx context.Context) ([]PostRef, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	return m.container.IndexService().List(ctx, internalindex.ListInput{})
}

// ImportPosts imports every post document under the configured posts
// directory, honoring the write-once contract.
func (m *Module) ImportPosts(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	if m == nil || m.container == nil {
		return nil, errNilModule
	}
	importer, err := m.container.Importer()
	if err != nil {
		return nil, err
	}
	return importer.ImportDirectory(ctx, m.container.Config.Content.PostsDir, opts)
}
