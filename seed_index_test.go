package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/indexes"
	internalindex "github.com/goliatone/go-blog/internal/index"
	internalposts "github.com/goliatone/go-blog/internal/posts"
)

func seedServices(t *testing.T) (*PostService, *IndexService) {
	t.Helper()
	postSvc := internalposts.NewService(internalposts.NewMemoryPostRepository())
	indexSvc := internalindex.NewService(internalindex.NewMemoryIndexRepository(), postSvc)
	return postSvc, indexSvc
}

func seedCorpusPosts(t *testing.T, posts *PostService) {
	t.Helper()
	err := SeedPosts(context.Background(), SeedPostsOptions{
		Posts: posts,
		Items: []SeedPost{
			{
				Slug:  "2025-04-07-self-hosting-llms",
				Title: "Self-Hosting LLMs",
				Date:  time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC),
				Body:  "Lessons from running inference on our own hardware.",
			},
			{
				Slug:  "2025-03-17-semantic-caching",
				Title: "Semantic Caching",
				Date:  time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
				Body:  "Cutting token spend with embedding-keyed caches.",
			},
		},
	})
	if err != nil {
		t.Fatalf("SeedPosts: %v", err)
	}
}

func TestSeedIndexCuratedOrder(t *testing.T) {
	posts, index := seedServices(t)
	seedCorpusPosts(t, posts)

	report, err := SeedIndex(context.Background(), SeedIndexOptions{
		Index: index,
		Title: "Engineering Blog",
		Path:  "index.md",
		Entries: []SeedIndexEntry{
			{Title: "Self-Hosting LLMs", Path: "/_posts/2025-04-07-self-hosting-llms.md"},
			{Title: "Semantic Caching", Path: "/_posts/2025-03-17-semantic-caching.md"},
		},
	})
	if err != nil {
		t.Fatalf("SeedIndex: %v", err)
	}
	if report.Entries != 2 {
		t.Fatalf("expected 2 entries, got %d", report.Entries)
	}
	if len(report.BrokenPaths) != 0 {
		t.Fatalf("expected no broken paths, got %v", report.BrokenPaths)
	}

	refs, err := index.List(context.Background(), internalindex.ListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Title != "Self-Hosting LLMs" || refs[1].Title != "Semantic Caching" {
		t.Fatalf("unexpected curated order: %+v", refs)
	}
	if refs[0].PostID == nil || refs[1].PostID == nil {
		t.Fatal("expected both entries resolved to stored posts")
	}
}

func TestSeedIndexStrictFailsOnMissingPost(t *testing.T) {
	posts, index := seedServices(t)
	seedCorpusPosts(t, posts)

	_, err := SeedIndex(context.Background(), SeedIndexOptions{
		Index: index,
		Entries: []SeedIndexEntry{
			{Title: "Ghost", Path: "/_posts/2025-01-01-missing.md"},
		},
	})
	if !errors.Is(err, indexes.ErrBrokenReference) {
		t.Fatalf("expected broken reference error, got %v", err)
	}
}

func TestSeedIndexLaxReportsBrokenPaths(t *testing.T) {
	posts, index := seedServices(t)
	seedCorpusPosts(t, posts)

	lax := false
	report, err := SeedIndex(context.Background(), SeedIndexOptions{
		Index:  index,
		Strict: &lax,
		Entries: []SeedIndexEntry{
			{Title: "Self-Hosting LLMs", Path: "/_posts/2025-04-07-self-hosting-llms.md"},
			{Title: "Ghost", Path: "/_posts/2025-01-01-missing.md"},
		},
	})
	if err != nil {
		t.Fatalf("SeedIndex: %v", err)
	}
	if report.Entries != 2 {
		t.Fatalf("expected both entries kept, got %d", report.Entries)
	}
	if len(report.BrokenPaths) != 1 || report.BrokenPaths[0] != "/_posts/2025-01-01-missing.md" {
		t.Fatalf("unexpected broken paths %v", report.BrokenPaths)
	}
}

func TestSeedIndexRejectsInvalidEntry(t *testing.T) {
	_, index := seedServices(t)

	_, err := SeedIndex(context.Background(), SeedIndexOptions{
		Index: index,
		Entries: []SeedIndexEntry{
			{Title: "", Path: "/_posts/a.md"},
		},
	})
	if !errors.Is(err, ErrSeedEntryTitleRequired) {
		t.Fatalf("expected title error, got %v", err)
	}

	_, err = SeedIndex(context.Background(), SeedIndexOptions{
		Index: index,
		Entries: []SeedIndexEntry{
			{Title: "Nested", Path: "/_posts/2025/nested.md"},
		},
	})
	if !errors.Is(err, ErrPostPathInvalid) {
		t.Fatalf("expected path error, got %v", err)
	}
}

func TestSeedIndexRequiresService(t *testing.T) {
	if _, err := SeedIndex(context.Background(), SeedIndexOptions{}); !errors.Is(err, ErrSeedIndexServiceRequired) {
		t.Fatalf("expected service error, got %v", err)
	}
}

func TestSeedPostsIsIdempotent(t *testing.T) {
	posts, _ := seedServices(t)
	seedCorpusPosts(t, posts)
	seedCorpusPosts(t, posts)

	count, err := posts.Count(context.Background(), PostListOptions{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 posts after re-seed, got %d", count)
	}
}
