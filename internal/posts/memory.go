package posts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	blogposts "github.com/goliatone/go-blog/posts"
)

// MemoryPostRepository is the default in-process store used when no database
// is configured. It mirrors the bun repository contract closely enough for
// services and tests to be driver-agnostic.
type MemoryPostRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Post
	bySlug  map[string]uuid.UUID
}

// NewMemoryPostRepository constructs an empty in-memory post store.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		records: map[uuid.UUID]*Post{},
		bySlug:  map[string]uuid.UUID{},
	}
}

func (r *MemoryPostRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	if _, exists := r.bySlug[post.Slug]; exists {
		return nil, blogposts.ErrPostExists
	}

	stored := clonePost(post)
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.records[stored.ID] = stored
	r.bySlug[stored.Slug] = stored.ID
	return clonePost(stored), nil
}

func (r *MemoryPostRepository) Update(ctx context.Context, post *Post) (*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[post.ID]
	if !ok {
		return nil, blogposts.ErrPostNotFound
	}

	stored := clonePost(post)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()

	delete(r.bySlug, existing.Slug)
	r.records[stored.ID] = stored
	r.bySlug[stored.Slug] = stored.ID
	return clonePost(stored), nil
}

func (r *MemoryPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, blogposts.ErrPostNotFound
	}
	return clonePost(record), nil
}

func (r *MemoryPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[slug]
	if !ok {
		return nil, blogposts.ErrPostNotFound
	}
	return clonePost(r.records[id]), nil
}

func (r *MemoryPostRepository) List(ctx context.Context) ([]*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Post, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, clonePost(record))
	}
	return out, nil
}

func clonePost(in *Post) *Post {
	if in == nil {
		return nil
	}
	out := *in
	if in.Tags != nil {
		out.Tags = append([]string(nil), in.Tags...)
	}
	if in.Extra != nil {
		out.Extra = make(map[string]any, len(in.Extra))
		for key, value := range in.Extra {
			out.Extra[key] = value
		}
	}
	if in.Author != nil {
		author := *in.Author
		out.Author = &author
	}
	if in.Description != nil {
		description := *in.Description
		out.Description = &description
	}
	return &out
}
