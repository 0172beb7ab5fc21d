package posts

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/domain"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
)

// DefaultPathPrefix is the repository-relative directory posts live under.
const DefaultPathPrefix = "/_posts"

// ListOptions narrows List and Count results. The zero value returns
// published posts only, newest first.
type ListOptions struct {
	IncludeDrafts bool
	IncludeFuture bool
	Tag           string
	Limit         int
	Offset        int
}

// Service coordinates post persistence and enforces the write-once contract:
// posts are created, optionally replaced on explicit request, never deleted.
type Service struct {
	repo       PostRepository
	logger     interfaces.Logger
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

// WithPathPrefix overrides the directory prefix used to derive and parse
// post paths.
func WithPathPrefix(prefix string) ServiceOption {
	return func(s *Service) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			s.pathPrefix = normalizePrefix(trimmed)
		}
	}
}

// WithClock overrides the time source used for status resolution.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a post service backed by the given repository.
func NewService(repo PostRepository, opts ...ServiceOption) *Service {
	svc := &Service{
		repo:       repo,
		logger:     logging.NoOp(),
		pathPrefix: DefaultPathPrefix,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// PathPrefix returns the directory prefix used for post paths.
func (s *Service) PathPrefix() string {
	return s.pathPrefix
}

// PathFor derives the canonical repository path for a slug.
func (s *Service) PathFor(slug string) string {
	return path.Join(s.pathPrefix, slug) + ".md"
}

// SlugFromPath extracts the slug from a post path. It fails when the path is
// outside the posts directory or is not a Markdown document.
func (s *Service) SlugFromPath(p string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(p))
	prefix := s.pathPrefix + "/"
	if !strings.HasPrefix(cleaned, prefix) {
		return "", fmt.Errorf("%w: %q is outside %s", blogposts.ErrPathRequired, p, s.pathPrefix)
	}
	rest := strings.TrimPrefix(cleaned, prefix)
	if strings.Contains(rest, "/") {
		return "", fmt.Errorf("%w: %q nests below %s", blogposts.ErrPathRequired, p, s.pathPrefix)
	}
	slug, ok := strings.CutSuffix(rest, ".md")
	if !ok {
		slug, ok = strings.CutSuffix(rest, ".markdown")
	}
	if !ok || slug == "" {
		return "", fmt.Errorf("%w: %q is not a markdown document", blogposts.ErrPathRequired, p)
	}
	return slug, nil
}

// Create stores a new post. The slug must not already exist; callers that
// want re-import semantics should check for the existing record first and
// use Replace when forcing an update.
func (s *Service) Create(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error) {
	if err := s.prepare(post); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySlug(ctx, post.Slug); err == nil {
		return nil, fmt.Errorf("slug %q: %w", post.Slug, blogposts.ErrPostExists)
	}

	record, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post %q: %w", post.Slug, err)
	}

	s.invalidate(ctx)
	logging.WithDocumentContext(s.logger, record.Path, record.Slug, "created").
		Info("post stored", "status", string(record.Status))
	return record, nil
}

// Replace overwrites an existing post with new content, keeping its identity
// and creation time. This is the only sanctioned mutation of a stored post.
func (s *Service) Replace(ctx context.Context, post *blogposts.Post) (*blogposts.Post, error) {
	if err := s.prepare(post); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(ctx, post.Slug)
	if err != nil {
		return nil, fmt.Errorf("replace post %q: %w", post.Slug, err)
	}

	post.ID = existing.ID
	post.CreatedAt = existing.CreatedAt

	record, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("replace post %q: %w", post.Slug, err)
	}

	s.invalidate(ctx)
	logging.WithDocumentContext(s.logger, record.Path, record.Slug, "replaced").
		Info("post replaced", "checksum", record.Checksum)
	return record, nil
}

// Get fetches a post by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*blogposts.Post, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug fetches a post by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*blogposts.Post, error) {
	return s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
}

// GetByPath fetches a post by its repository path.
func (s *Service) GetByPath(ctx context.Context, p string) (*blogposts.Post, error) {
	slug, err := s.SlugFromPath(p)
	if err != nil {
		return nil, err
	}
	return s.repo.GetBySlug(ctx, slug)
}

// List returns posts ordered newest first. Drafts and scheduled posts are
// excluded unless the options include them.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*blogposts.Post, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	filtered := records[:0]
	for _, record := range records {
		if !s.matches(record, opts) {
			continue
		}
		filtered = append(filtered, record)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].PublishedAt.Equal(filtered[j].PublishedAt) {
			return filtered[i].PublishedAt.After(filtered[j].PublishedAt)
		}
		return filtered[i].Slug < filtered[j].Slug
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(filtered) {
			return []*blogposts.Post{}, nil
		}
		filtered = filtered[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(filtered) {
		filtered = filtered[:opts.Limit]
	}
	return filtered, nil
}

// Count reports how many posts match the options.
func (s *Service) Count(ctx context.Context, opts ListOptions) (int, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	total := 0
	for _, record := range records {
		if s.matches(record, opts) {
			total++
		}
	}
	return total, nil
}

func (s *Service) matches(post *blogposts.Post, opts ListOptions) bool {
	switch post.Status {
	case domain.StatusDraft:
		if !opts.IncludeDrafts {
			return false
		}
	case domain.StatusScheduled:
		if !opts.IncludeFuture {
			return false
		}
	}
	if opts.Tag != "" {
		found := false
		for _, tag := range post.Tags {
			if strings.EqualFold(tag, opts.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *Service) prepare(post *blogposts.Post) error {
	if post == nil {
		return blogposts.ErrPathRequired
	}

	post.Slug = strings.TrimSpace(post.Slug)
	if post.Slug == "" {
		return blogposts.ErrSlugRequired
	}
	if !blogposts.IsValidSlug(post.Slug) {
		normalized, err := blogposts.NormalizeSlug(post.Slug)
		if err != nil || normalized == "" {
			return fmt.Errorf("%w: %q", blogposts.ErrSlugInvalid, post.Slug)
		}
		post.Slug = normalized
	}

	if strings.TrimSpace(post.Title) == "" {
		return blogposts.ErrTitleRequired
	}
	if post.PublishedAt.IsZero() {
		return blogposts.ErrDateRequired
	}
	if strings.TrimSpace(post.Checksum) == "" {
		return blogposts.ErrChecksumRequired
	}

	if strings.TrimSpace(post.Path) == "" {
		post.Path = s.PathFor(post.Slug)
	}
	if post.ID == uuid.Nil {
		post.ID = identity.PostUUID(post.Slug)
	}
	if post.Status == "" {
		post.Status = domain.EffectiveStatus(true, post.PublishedAt, s.now())
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if invalidator, ok := s.repo.(CacheInvalidator); ok {
		if err := invalidator.InvalidateCache(ctx); err != nil {
			s.logger.Warn("post cache invalidation failed", "error", err)
		}
	}
}

func normalizePrefix(prefix string) string {
	cleaned := path.Clean("/" + strings.Trim(prefix, "/"))
	if cleaned == "/" {
		return DefaultPathPrefix
	}
	return cleaned
}
