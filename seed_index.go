package blog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	blogposts "github.com/goliatone/go-blog/posts"
)

var (
	ErrSeedIndexServiceRequired = errors.New("blog: index service is required")
	ErrSeedPostServiceRequired  = errors.New("blog: post service is required")
	ErrSeedEntryTitleRequired   = errors.New("blog: seed index entry title is required")
)

// SeedIndexEntry is one curated reference in a seeded index document.
type SeedIndexEntry struct {
	Title string
	Path  string
}

// SeedIndexOptions describe the index document SeedIndex converges onto.
type SeedIndexOptions struct {
	Index *IndexService
	// Code identifies the index; empty falls back to the service default.
	Code string
	// Title becomes the document's front matter title.
	Title string
	// Path is recorded as the document's repository path (e.g. "index.md").
	Path string
	// PathPrefix is the posts directory prefix entries must live under.
	// Defaults to "/_posts".
	PathPrefix string
	Entries    []SeedIndexEntry
	// Strict overrides the service-level broken reference handling.
	Strict *bool
}

// SeedIndex renders a curated index document from the provided entries and
// syncs it through the index service. Entry order is preserved; duplicate
// paths keep their first occurrence per the sync contract.
func SeedIndex(ctx context.Context, opts SeedIndexOptions) (*SyncReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Index == nil {
		return nil, ErrSeedIndexServiceRequired
	}

	prefix := CanonicalPostPathPrefix(opts.PathPrefix)

	var b strings.Builder
	b.WriteString("---\n")
	if title := strings.TrimSpace(opts.Title); title != "" {
		fmt.Fprintf(&b, "title: %q\n", title)
	}
	b.WriteString("---\n\n")

	for _, entry := range opts.Entries {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: path %q", ErrSeedEntryTitleRequired, entry.Path)
		}
		parsed, err := ParsePostPath(prefix, entry.Path)
		if err != nil {
			return nil, fmt.Errorf("blog: seed index entry %q: %w", entry.Path, err)
		}
		fmt.Fprintf(&b, "- [%s](%s)\n", title, parsed.Path)
	}

	docPath := strings.TrimSpace(opts.Path)
	if docPath == "" {
		docPath = "index.md"
	}

	return opts.Index.Sync(ctx, SyncInput{
		Code:   CanonicalIndexCode(opts.Code),
		Path:   docPath,
		Source: []byte(b.String()),
		Strict: opts.Strict,
	})
}

// SeedPost is one post record for convenience seeding.
type SeedPost struct {
	Slug        string
	Title       string
	Author      *string
	Description *string
	Tags        []string
	Date        time.Time
	Body        string
}

// SeedPostsOptions configure a SeedPosts pass.
type SeedPostsOptions struct {
	Posts *PostService
	Items []SeedPost
}

// SeedPosts stores the provided posts through the post service. Seeding is
// idempotent under the write-once contract: posts whose slug already exists
// are left untouched.
func SeedPosts(ctx context.Context, opts SeedPostsOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Posts == nil {
		return ErrSeedPostServiceRequired
	}

	for _, item := range opts.Items {
		sum := sha256.Sum256([]byte(item.Body))
		post := &blogposts.Post{
			Slug:        item.Slug,
			Title:       item.Title,
			Author:      item.Author,
			Description: item.Description,
			Tags:        item.Tags,
			PublishedAt: item.Date,
			Body:        item.Body,
			Checksum:    hex.EncodeToString(sum[:]),
		}
		if _, err := opts.Posts.Create(ctx, post); err != nil {
			if errors.Is(err, blogposts.ErrPostExists) {
				continue
			}
			return fmt.Errorf("blog: seed post %q: %w", item.Slug, err)
		}
	}
	return nil
}
