package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-blog/internal/domain"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/activity"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

var (
	ErrPostStoreRequired = errors.New("markdown importer: post store is required")
	ErrSlugMissing       = errors.New("markdown importer: document slug is required")
)

// PostStore is the subset of the post service the importer writes through.
type PostStore interface {
	GetBySlug(ctx context.Context, slug string) (*blogposts.Post, error)
	Create(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error)
	Replace(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error)
}

// FrontMatterValidator checks a front-matter payload before it is persisted.
type FrontMatterValidator interface {
	Validate(payload map[string]any) error
}

// PayloadMigrator upgrades legacy front-matter payloads to the current shape.
type PayloadMigrator interface {
	Apply(payload map[string]any) (map[string]any, error)
}

// ImporterConfig encapsulates dependencies required to persist post documents.
// Validator, Migrator, Notifier, and SyncIndex are optional.
type ImporterConfig struct {
	Store     PostStore
	Markdown  *Service
	Validator FrontMatterValidator
	Migrator  PayloadMigrator
	Notifier  activity.Notifier
	Logger    interfaces.Logger
	// SyncIndex re-syncs the curated index document after a successful import
	// pass. Wired by the container so the importer stays decoupled from the
	// index service.
	SyncIndex func(ctx context.Context) error
	Clock     func() time.Time
}

// Importer walks post documents and persists them honoring the write-once
// contract: unchanged files are no-ops, drifted files are conflicts unless
// the caller forces replacement.
type Importer struct {
	store     PostStore
	markdown  *Service
	validator FrontMatterValidator
	migrator  PayloadMigrator
	notifier  activity.Notifier
	logger    interfaces.Logger
	syncIndex func(ctx context.Context) error
	now       func() time.Time
}

// ImportOptions control a single import pass.
type ImportOptions struct {
	// Force replaces stored posts whose checksum drifted from the document.
	Force bool
	// DryRun reports what would happen without writing anything.
	DryRun bool
	// SyncIndex triggers an index document re-sync after the pass.
	SyncIndex bool
	Pattern   string
	Recursive *bool
}

// ImportFailure records a document the importer could not process.
type ImportFailure struct {
	Path string
	Err  error
}

// ImportConflict records a drifted document left untouched because the pass
// ran without Force. Err matches blogposts.ErrPostImmutable via errors.Is.
type ImportConflict struct {
	Slug string
	Path string
	Err  error
}

// ImportResult summarizes one import pass. Slices hold document slugs in
// processing order.
type ImportResult struct {
	Imported  []string
	Replaced  []string
	Skipped   []string
	Conflicts []ImportConflict
	Failed    []ImportFailure
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = activity.NoOp()
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Importer{
		store:     cfg.Store,
		markdown:  cfg.Markdown,
		validator: cfg.Validator,
		migrator:  cfg.Migrator,
		notifier:  notifier,
		logger:    logger,
		syncIndex: cfg.SyncIndex,
		now:       now,
	}
}

// ImportDirectory loads every post document under dir and persists it.
// Per-document failures are collected in the result; the returned error is
// reserved for infrastructure problems (unreadable directory, failed index
// sync).
func (i *Importer) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	if i.store == nil {
		return nil, ErrPostStoreRequired
	}
	if i.markdown == nil {
		return nil, errors.New("markdown importer: markdown service is required")
	}

	docs, err := i.markdown.LoadDirectory(ctx, dir, interfaces.LoadOptions{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	})
	if err != nil {
		return nil, fmt.Errorf("markdown importer: load %s: %w", dir, err)
	}

	result := &ImportResult{}
	for _, doc := range docs {
		i.importDocument(ctx, doc, opts, result)
	}

	if opts.SyncIndex && i.syncIndex != nil && !opts.DryRun {
		if err := i.syncIndex(ctx); err != nil {
			return result, fmt.Errorf("markdown importer: index sync: %w", err)
		}
	}

	i.logger.Info("import pass finished",
		"imported", len(result.Imported),
		"replaced", len(result.Replaced),
		"skipped", len(result.Skipped),
		"conflicts", len(result.Conflicts),
		"failed", len(result.Failed),
	)
	return result, nil
}

// ImportDocument persists a single loaded document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts ImportOptions) (*ImportResult, error) {
	if i.store == nil {
		return nil, ErrPostStoreRequired
	}
	result := &ImportResult{}
	i.importDocument(ctx, doc, opts, result)
	return result, nil
}

func (i *Importer) importDocument(ctx context.Context, doc *interfaces.Document, opts ImportOptions, result *ImportResult) {
	if doc == nil {
		return
	}
	logger := logging.WithDocumentContext(i.logger, doc.FilePath, doc.Slug, "")

	if doc.Slug == "" {
		result.Failed = append(result.Failed, ImportFailure{Path: doc.FilePath, Err: ErrSlugMissing})
		logger.Error("document has no slug")
		return
	}

	payload := doc.FrontMatter.Raw
	if i.migrator != nil {
		migrated, err := i.migrator.Apply(payload)
		if err != nil {
			result.Failed = append(result.Failed, ImportFailure{Path: doc.FilePath, Err: err})
			logger.Error("front matter migration failed", "error", err)
			return
		}
		if migrated != nil {
			payload = migrated
			applyPayload(doc, migrated)
		}
	}

	if i.validator != nil {
		if err := i.validator.Validate(payload); err != nil {
			result.Failed = append(result.Failed, ImportFailure{Path: doc.FilePath, Err: err})
			logger.Error("front matter validation failed", "error", err)
			return
		}
	}

	post, err := i.buildPost(doc)
	if err != nil {
		result.Failed = append(result.Failed, ImportFailure{Path: doc.FilePath, Err: err})
		logger.Error("document rejected", "error", err)
		return
	}

	existing, err := i.store.GetBySlug(ctx, post.Slug)
	switch {
	case err != nil && errors.Is(err, blogposts.ErrPostNotFound):
		if opts.DryRun {
			result.Imported = append(result.Imported, post.Slug)
			return
		}
		if _, err := i.store.Create(ctx, post); err != nil {
			result.Failed = append(result.Failed, ImportFailure{Path: doc.FilePath, Err: err})
			logger.Error("post create failed", "error", err)
			return
		}
		result.Imported = append(result.Imported, post.Slug)
		i.notify(ctx, activity.VerbImport, post)

	case err != nil:
		result.Failed = append(result.Failed, ImportFailure{Path: doc.FilePath, Err: err})
		logger.Error("post lookup failed", "error", err)

	case existing.Checksum == post.Checksum:
		result.Skipped = append(result.Skipped, post.Slug)
		logger.Debug("document unchanged, skipping")

	case !opts.Force:
		result.Conflicts = append(result.Conflicts, ImportConflict{
			Slug: post.Slug,
			Path: doc.FilePath,
			Err:  fmt.Errorf("%s: %w", post.Slug, blogposts.ErrPostImmutable),
		})
		logger.Warn("document drifted from stored post", "stored_checksum", existing.Checksum, "file_checksum", post.Checksum)

	default:
		if opts.DryRun {
			result.Replaced = append(result.Replaced, post.Slug)
			return
		}
		if _, err := i.store.Replace(ctx, post); err != nil {
			result.Failed = append(result.Failed, ImportFailure{Path: doc.FilePath, Err: err})
			logger.Error("post replace failed", "error", err)
			return
		}
		result.Replaced = append(result.Replaced, post.Slug)
		i.notify(ctx, activity.VerbReplace, post)
	}
}

func (i *Importer) buildPost(doc *interfaces.Document) (*blogposts.Post, error) {
	fm := doc.FrontMatter
	if fm.Date.IsZero() {
		return nil, blogposts.ErrDateRequired
	}

	post := &blogposts.Post{
		Slug:        doc.Slug,
		Layout:      fm.Layout,
		Title:       fm.Title,
		Tags:        append([]string(nil), fm.Tags...),
		Extra:       fm.Extra,
		Status:      domain.EffectiveStatus(fm.Published, fm.Date, i.now()),
		PublishedAt: fm.Date,
		Body:        string(doc.Body),
		HTML:        string(doc.BodyHTML),
		Checksum:    hex.EncodeToString(doc.Checksum),
	}
	if fm.Author != "" {
		author := fm.Author
		post.Author = &author
	}
	if fm.Description != "" {
		description := fm.Description
		post.Description = &description
	}
	return post, nil
}

func (i *Importer) notify(ctx context.Context, verb string, post *blogposts.Post) {
	event := activity.Event{
		Verb:           verb,
		ObjectType:     activity.ObjectTypePost,
		ObjectID:       post.ID.String(),
		Channel:        activity.ChannelBlog,
		DefinitionCode: activity.ObjectTypePost + ":" + verb,
		Metadata: map[string]any{
			"slug": post.Slug,
			"path": post.Path,
		},
		OccurredAt: i.now().UTC(),
	}
	if err := i.notifier.Notify(ctx, event); err != nil {
		i.logger.Warn("activity notification failed", "verb", verb, "error", err)
	}
}

// applyPayload folds migrated payload values back into the document's typed
// front matter so downstream persistence sees the upgraded shape.
func applyPayload(doc *interfaces.Document, payload map[string]any) {
	doc.FrontMatter.Raw = payload

	if title, ok := payload["title"].(string); ok && title != "" {
		doc.FrontMatter.Title = title
	}
	if layout, ok := payload["layout"].(string); ok && layout != "" {
		doc.FrontMatter.Layout = layout
	}
	if author, ok := payload["author"].(string); ok && author != "" {
		doc.FrontMatter.Author = author
	}
	if description, ok := payload["description"].(string); ok && description != "" {
		doc.FrontMatter.Description = description
	}
	if tags, ok := stringSlice(payload["tags"]); ok {
		doc.FrontMatter.Tags = tags
	}
	if published, ok := payload["published"].(bool); ok {
		doc.FrontMatter.Published = published
	}
	if date, ok := payload["date"].(time.Time); ok && !date.IsZero() {
		doc.FrontMatter.Date = date
	}
}

func stringSlice(value any) ([]string, bool) {
	switch typed := value.(type) {
	case []string:
		return append([]string(nil), typed...), true
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}
