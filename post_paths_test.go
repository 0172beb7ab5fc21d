package blog

import (
	"errors"
	"testing"
	"time"
)

func TestParsePostPath(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		input    string
		wantPath string
		wantSlug string
		wantStem string
		wantDate string
		wantErr  error
	}{
		{
			name:     "dated document",
			prefix:   "/_posts",
			input:    "/_posts/2025-04-07-self-hosting-llms.md",
			wantPath: "/_posts/2025-04-07-self-hosting-llms.md",
			wantSlug: "2025-04-07-self-hosting-llms",
			wantStem: "self-hosting-llms",
			wantDate: "2025-04-07",
		},
		{
			name:     "bare filename resolves under prefix",
			prefix:   "/_posts",
			input:    "2025-03-17-semantic-caching.md",
			wantPath: "/_posts/2025-03-17-semantic-caching.md",
			wantSlug: "2025-03-17-semantic-caching",
			wantStem: "semantic-caching",
			wantDate: "2025-03-17",
		},
		{
			name:     "undated document keeps full slug",
			prefix:   "/_posts",
			input:    "/_posts/about-the-blog.markdown",
			wantPath: "/_posts/about-the-blog.markdown",
			wantSlug: "about-the-blog",
			wantStem: "about-the-blog",
		},
		{
			name:     "relative dot path",
			prefix:   "_posts",
			input:    "./_posts/hello.md",
			wantPath: "/_posts/hello.md",
			wantSlug: "hello",
			wantStem: "hello",
		},
		{
			name:    "empty path",
			prefix:  "/_posts",
			input:   "   ",
			wantErr: ErrPostPathRequired,
		},
		{
			name:    "outside posts directory",
			prefix:  "/_posts",
			input:   "/pages/hello.md",
			wantErr: ErrPostPathOutside,
		},
		{
			name:    "nested below posts directory",
			prefix:  "/_posts",
			input:   "/_posts/2025/hello.md",
			wantErr: ErrPostPathInvalid,
		},
		{
			name:    "not a markdown document",
			prefix:  "/_posts",
			input:   "/_posts/hello.html",
			wantErr: ErrPostPathInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParsePostPath(tc.prefix, tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePostPath: %v", err)
			}
			if parsed.Path != tc.wantPath {
				t.Fatalf("path = %q, want %q", parsed.Path, tc.wantPath)
			}
			if parsed.Slug != tc.wantSlug {
				t.Fatalf("slug = %q, want %q", parsed.Slug, tc.wantSlug)
			}
			if parsed.Stem != tc.wantStem {
				t.Fatalf("stem = %q, want %q", parsed.Stem, tc.wantStem)
			}
			if tc.wantDate == "" {
				if parsed.HasDate {
					t.Fatalf("expected no date, got %v", parsed.PublishedAt)
				}
				return
			}
			want, err := time.Parse("2006-01-02", tc.wantDate)
			if err != nil {
				t.Fatalf("parse want date: %v", err)
			}
			if !parsed.HasDate || !parsed.PublishedAt.Equal(want) {
				t.Fatalf("date = %v (has=%v), want %v", parsed.PublishedAt, parsed.HasDate, want)
			}
		})
	}
}

func TestCanonicalPostPathPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "/_posts"},
		{"/", "/_posts"},
		{"_posts", "/_posts"},
		{"/_posts/", "/_posts"},
		{"content/posts", "/content/posts"},
	}
	for _, tc := range tests {
		if got := CanonicalPostPathPrefix(tc.input); got != tc.want {
			t.Fatalf("CanonicalPostPathPrefix(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPostPathFor(t *testing.T) {
	if got := PostPathFor("", "hello-world"); got != "/_posts/hello-world.md" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := PostPathFor("content/posts", "hello"); got != "/content/posts/hello.md" {
		t.Fatalf("unexpected path %q", got)
	}
}
