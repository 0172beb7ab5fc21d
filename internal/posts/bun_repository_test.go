package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/domain"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/pkg/testsupport"
	blogposts "github.com/goliatone/go-blog/posts"
)

func storedPost(slug, title string, published time.Time) *Post {
	return &Post{
		ID:          identity.PostUUID(slug),
		Slug:        slug,
		Path:        "/_posts/" + slug + ".md",
		Title:       title,
		Status:      domain.StatusPublished,
		PublishedAt: published,
		Body:        "body",
		Checksum:    "sha256:" + slug,
	}
}

func TestBunPostRepositoryCreateAndGet(t *testing.T) {
	db := testsupport.NewContentDB(t)
	repo := NewBunPostRepository(db)
	ctx := context.Background()

	post := storedPost(testsupport.FixtureSelfHostingSlug, "Self-Hosting LLMs in Production",
		time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC))

	created, err := repo.Create(ctx, post)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if created.ID != post.ID {
		t.Fatalf("expected deterministic id %s, got %s", post.ID, created.ID)
	}

	bySlug, err := repo.GetBySlug(ctx, post.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.Title != post.Title || bySlug.Path != post.Path {
		t.Fatalf("unexpected stored post %+v", bySlug)
	}

	byID, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Slug != post.Slug {
		t.Fatalf("expected slug %q, got %q", post.Slug, byID.Slug)
	}
}

func TestBunPostRepositoryNotFound(t *testing.T) {
	db := testsupport.NewContentDB(t)
	repo := NewBunPostRepository(db)

	_, err := repo.GetBySlug(context.Background(), "missing-post")
	if !errors.Is(err, blogposts.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestBunPostRepositoryUpdate(t *testing.T) {
	db := testsupport.NewContentDB(t)
	repo := NewBunPostRepository(db)
	ctx := context.Background()

	post := storedPost(testsupport.FixtureCachingSlug, "Semantic Caching for LLM Applications",
		time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC))
	if _, err := repo.Create(ctx, post); err != nil {
		t.Fatalf("create post: %v", err)
	}

	post.Checksum = "sha256:drifted"
	post.Body = "updated body"
	if _, err := repo.Update(ctx, post); err != nil {
		t.Fatalf("update post: %v", err)
	}

	stored, err := repo.GetBySlug(ctx, post.Slug)
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if stored.Checksum != "sha256:drifted" || stored.Body != "updated body" {
		t.Fatalf("expected updated post, got %+v", stored)
	}
}

func TestBunPostRepositoryList(t *testing.T) {
	db := testsupport.NewContentDB(t)
	repo := NewBunPostRepository(db)
	ctx := context.Background()

	for i, slug := range []string{testsupport.FixtureSelfHostingSlug, testsupport.FixtureCachingSlug} {
		post := storedPost(slug, slug, time.Date(2025, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC))
		if _, err := repo.Create(ctx, post); err != nil {
			t.Fatalf("create post %s: %v", slug, err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(records))
	}
}
