package index

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path"
	"strings"
	"time"

	blogindexes "github.com/goliatone/go-blog/indexes"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/activity"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

// DefaultCode names the single curated index a stock blog carries.
const DefaultCode = "posts"

// PostResolver looks up stored posts by repository path; the post service
// satisfies this.
type PostResolver interface {
	GetByPath(ctx context.Context, path string) (*blogposts.Post, error)
}

// SyncInput carries one index document into a sync pass.
type SyncInput struct {
	// Code identifies the index; defaults to the service's configured code.
	Code string
	// Path is the document's repository path (e.g. "index.md").
	Path string
	// Source is the raw document content.
	Source []byte
	// Strict overrides the service-level strictness for this pass.
	Strict *bool
}

// SyncReport summarizes a sync pass. BrokenPaths is only populated by lax
// syncs; strict syncs fail instead.
type SyncReport struct {
	Index       *Index
	Entries     int
	BrokenPaths []string
}

// ListInput narrows listing operations to one index.
type ListInput struct {
	Code string
}

// Service owns the curated index: syncing it from its document and exposing
// the listing in document order.
type Service struct {
	repo       IndexRepository
	posts      PostResolver
	logger     interfaces.Logger
	notifier   activity.Notifier
	urls       *EntryURLResolver
	strict     bool
	code       string
	pathPrefix string
	now        func() time.Time
}

// ServiceOption customizes Service construction.
type ServiceOption func(*Service)

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNotifier attaches an activity notifier.
func WithNotifier(notifier activity.Notifier) ServiceOption {
	return func(s *Service) {
		if notifier != nil {
			s.notifier = notifier
		}
	}
}

// WithURLResolver enables absolute URL resolution for entries.
func WithURLResolver(resolver *EntryURLResolver) ServiceOption {
	return func(s *Service) {
		s.urls = resolver
	}
}

// WithStrict toggles strict reference checking during sync. Strict is the
// default: entries must resolve to stored posts.
func WithStrict(strict bool) ServiceOption {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithDefaultCode overrides the index code used when inputs leave it empty.
func WithDefaultCode(code string) ServiceOption {
	return func(s *Service) {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			s.code = trimmed
		}
	}
}

// WithPathPrefix overrides the posts directory prefix used to recognize
// post links inside the document.
func WithPathPrefix(prefix string) ServiceOption {
	return func(s *Service) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			s.pathPrefix = trimmed
		}
	}
}

// WithClock overrides the time source used for activity timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates an index service backed by the given repository and
// post resolver.
func NewService(repo IndexRepository, posts PostResolver, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:       repo,
		posts:      posts,
		logger:     logging.NoOp(),
		notifier:   activity.NoOp(),
		strict:     true,
		code:       DefaultCode,
		pathPrefix: "/_posts",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Sync upserts the index and its entries from the document, preserving
// document order and normalizing positions to 0..n-1. Duplicate paths keep
// their first occurrence. In strict mode a reference to a missing post fails
// the pass with a BrokenReferenceError; in lax mode the entry is kept with a
// nil PostID and the path is reported.
func (s *Service) Sync(ctx context.Context, input SyncInput) (*SyncReport, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = s.code
	}
	if code == "" {
		return nil, blogindexes.ErrIndexCodeRequired
	}
	if len(input.Source) == 0 {
		return nil, blogindexes.ErrIndexPathRequired
	}

	doc, err := ParseDocument(input.Source, s.pathPrefix)
	if err != nil {
		return nil, err
	}

	strict := s.strict
	if input.Strict != nil {
		strict = *input.Strict
	}

	links := dedupeLinks(doc.Links)

	var broken []string
	entries := make([]*IndexEntry, 0, len(links))
	indexID := identity.IndexUUID(code)

	for position, link := range links {
		entry := &IndexEntry{
			ID:       identity.IndexEntryUUID(indexID, link.Path),
			IndexID:  indexID,
			Position: position,
			Title:    link.Title,
			Path:     link.Path,
		}

		post, lookupErr := s.posts.GetByPath(ctx, link.Path)
		switch {
		case lookupErr == nil:
			id := post.ID
			entry.PostID = &id
		case errors.Is(lookupErr, blogposts.ErrPostNotFound):
			broken = append(broken, link.Path)
		default:
			return nil, fmt.Errorf("index sync: resolve %s: %w", link.Path, lookupErr)
		}

		entries = append(entries, entry)
	}

	if strict && len(broken) > 0 {
		return nil, &blogindexes.BrokenReferenceError{Code: code, Paths: broken}
	}

	title := doc.Title
	if title == "" {
		title = code
	}

	record, err := s.repo.Save(ctx, &Index{
		ID:       indexID,
		Code:     code,
		Title:    title,
		Path:     input.Path,
		Checksum: doc.Checksum,
	})
	if err != nil {
		return nil, fmt.Errorf("index sync: save %q: %w", code, err)
	}

	if err := s.repo.ReplaceEntries(ctx, record.ID, entries); err != nil {
		return nil, fmt.Errorf("index sync: entries %q: %w", code, err)
	}

	s.invalidate(ctx)
	s.notify(ctx, record, len(entries), broken)
	s.logger.Info("index synced", "code", code, "entries", len(entries), "broken", len(broken))

	record.Entries = entries
	return &SyncReport{
		Index:       record,
		Entries:     len(entries),
		BrokenPaths: broken,
	}, nil
}

// Resolve returns the index with its entries in curated order.
func (s *Service) Resolve(ctx context.Context, code string) (*Index, error) {
	if strings.TrimSpace(code) == "" {
		code = s.code
	}
	record, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("index %q entries: %w", code, err)
	}
	record.Entries = entries
	return record, nil
}

// List materializes the curated listing as []PostRef in document order.
func (s *Service) List(ctx context.Context, input ListInput) ([]PostRef, error) {
	record, err := s.Resolve(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	refs := make([]PostRef, 0, len(record.Entries))
	for _, entry := range record.Entries {
		refs = append(refs, PostRef{
			Position: entry.Position,
			Title:    entry.Title,
			Path:     entry.Path,
			PostID:   entry.PostID,
		})
	}
	return refs, nil
}

// Posts is the curated listing as a lazy sequence of (title, path) pairs in
// document order. The sequence snapshots the listing at call time: it is
// finite, restartable, and yields no errors during iteration. An empty index
// yields an empty sequence.
func (s *Service) Posts(ctx context.Context, input ListInput) (iter.Seq2[string, string], error) {
	refs, err := s.List(ctx, input)
	if err != nil {
		return nil, err
	}

	return func(yield func(string, string) bool) {
		for _, ref := range refs {
			if !yield(ref.Title, ref.Path) {
				return
			}
		}
	}, nil
}

// EntryURL resolves the absolute site URL for an entry. Without a configured
// resolver the entry's relative path is returned.
func (s *Service) EntryURL(ref PostRef) (string, error) {
	if s.urls == nil {
		return ref.Path, nil
	}
	url, err := s.urls.Resolve(slugFromPath(ref.Path))
	if err != nil {
		return "", err
	}
	if url == "" {
		return ref.Path, nil
	}
	return url, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if invalidator, ok := s.repo.(CacheInvalidator); ok {
		if err := invalidator.InvalidateCache(ctx); err != nil {
			s.logger.Warn("index cache invalidation failed", "error", err)
		}
	}
}

func (s *Service) notify(ctx context.Context, record *Index, entries int, broken []string) {
	event := activity.Event{
		Verb:           activity.VerbSync,
		ObjectType:     activity.ObjectTypeIndex,
		ObjectID:       record.ID.String(),
		Channel:        activity.ChannelBlog,
		DefinitionCode: activity.ObjectTypeIndex + ":" + activity.VerbSync,
		Metadata: map[string]any{
			"code":    record.Code,
			"entries": entries,
			"broken":  len(broken),
		},
		OccurredAt: s.now().UTC(),
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("activity notification failed", "verb", activity.VerbSync, "error", err)
	}
}

func dedupeLinks(links []DocumentLink) []DocumentLink {
	seen := make(map[string]struct{}, len(links))
	out := make([]DocumentLink, 0, len(links))
	for _, link := range links {
		if _, ok := seen[link.Path]; ok {
			continue
		}
		seen[link.Path] = struct{}{}
		out = append(out, link)
	}
	return out
}

func slugFromPath(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
